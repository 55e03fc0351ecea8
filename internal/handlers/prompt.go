package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/portal-api/internal/dto"
	apierrors "github.com/yukikurage/portal-api/internal/errors"
	"github.com/yukikurage/portal-api/internal/services"
)

// PromptAsker runs a prompt on a language model backend
type PromptAsker interface {
	Ask(ctx context.Context, backend services.Backend, prompt string) (string, error)
}

type PromptHandler struct {
	prompts PromptAsker
}

func NewPromptHandler(prompts PromptAsker) *PromptHandler {
	return &PromptHandler{prompts: prompts}
}

// Ask returns a handler that answers {prompt} with {text} from backend
func (h *PromptHandler) Ask(backend services.Backend) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.PromptRequest
		if !bindJSON(c, &req) {
			return
		}
		text, err := h.prompts.Ask(c.Request.Context(), backend, req.Prompt)
		if err != nil {
			apierrors.RespondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.PromptResponse{Text: text})
	}
}

func (h *PromptHandler) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}
