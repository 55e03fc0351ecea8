package handlers

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/portal-api/internal/clients"
	"github.com/yukikurage/portal-api/internal/dto"
	apierrors "github.com/yukikurage/portal-api/internal/errors"
	"github.com/yukikurage/portal-api/internal/services"
)

// DocumentIndex is the document indexing service the handler proxies to
type DocumentIndex interface {
	Upload(ctx context.Context, files []clients.UploadFile) (*clients.Relay, error)
	BuildIndex(ctx context.Context) (*clients.Relay, error)
	IndexStatus(ctx context.Context) (*clients.Relay, error)
	Clear(ctx context.Context) (*clients.Relay, error)
	Ask(ctx context.Context, question string) (*clients.Relay, error)
	AskSimple(ctx context.Context, question string) (*clients.Relay, error)
	DeleteDocument(ctx context.Context, filename string) (*clients.Relay, error)
	ListDocuments(ctx context.Context) (*clients.DocumentList, error)
}

// DocumentHandler relays the document index endpoints. Upstream answers, including
// their status code, are passed through unchanged.
type DocumentHandler struct {
	docs DocumentIndex
}

func NewDocumentHandler(docs DocumentIndex) *DocumentHandler {
	return &DocumentHandler{docs: docs}
}

func relay(c *gin.Context, r *clients.Relay, err error) {
	if err != nil {
		apierrors.RespondUpstreamError(c, err)
		return
	}
	contentType := r.ContentType
	if contentType == "" {
		contentType = "text/plain; charset=utf-8"
	}
	c.Data(r.StatusCode, contentType, r.Body)
}

// Upload forwards every "files" part of the multipart form
func (h *DocumentHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		apierrors.BadRequest(c, "Invalid multipart form")
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		apierrors.BadRequest(c, services.ErrNoFiles.Error())
		return
	}

	files := make([]clients.UploadFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			apierrors.BadRequest(c, "Cannot read "+header.Filename)
			return
		}
		defer f.Close()
		files = append(files, clients.UploadFile{Name: header.Filename, Content: f})
	}
	apierrors.Logger(c).WithField("files", len(files)).Info("Uploading documents")

	r, err := h.docs.Upload(c.Request.Context(), files)
	relay(c, r, err)
}

func (h *DocumentHandler) BuildIndex(c *gin.Context) {
	r, err := h.docs.BuildIndex(c.Request.Context())
	relay(c, r, err)
}

func (h *DocumentHandler) IndexStatus(c *gin.Context) {
	r, err := h.docs.IndexStatus(c.Request.Context())
	relay(c, r, err)
}

func (h *DocumentHandler) Clear(c *gin.Context) {
	r, err := h.docs.Clear(c.Request.Context())
	relay(c, r, err)
}

func (h *DocumentHandler) question(c *gin.Context) (string, bool) {
	var req dto.QuestionRequest
	if !bindJSON(c, &req) {
		return "", false
	}
	if strings.TrimSpace(req.Question) == "" {
		apierrors.BadRequest(c, services.ErrQuestionRequired.Error())
		return "", false
	}
	return req.Question, true
}

func (h *DocumentHandler) Ask(c *gin.Context) {
	question, ok := h.question(c)
	if !ok {
		return
	}
	r, err := h.docs.Ask(c.Request.Context(), question)
	relay(c, r, err)
}

func (h *DocumentHandler) AskSimple(c *gin.Context) {
	question, ok := h.question(c)
	if !ok {
		return
	}
	r, err := h.docs.AskSimple(c.Request.Context(), question)
	relay(c, r, err)
}

// List returns the indexed file names; an upstream error status comes back with an empty list
func (h *DocumentHandler) List(c *gin.Context) {
	list, err := h.docs.ListDocuments(c.Request.Context())
	if err != nil {
		apierrors.RespondUpstreamError(c, err)
		return
	}
	c.JSON(list.StatusCode, list.Documents)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	var req dto.DeleteDocumentRequest
	if !bindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.Filename) == "" {
		apierrors.BadRequest(c, services.ErrFilenameRequired.Error())
		return
	}
	r, err := h.docs.DeleteDocument(c.Request.Context(), req.Filename)
	relay(c, r, err)
}
