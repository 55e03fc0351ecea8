package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/portal-api/internal/dto"
	apierrors "github.com/yukikurage/portal-api/internal/errors"
	"github.com/yukikurage/portal-api/internal/repository"
	"github.com/yukikurage/portal-api/internal/services"
)

type EnvironmentHandler struct {
	service *services.EnvironmentService
}

func NewEnvironmentHandler(service *services.EnvironmentService) *EnvironmentHandler {
	return &EnvironmentHandler{service: service}
}

// ListEnvironments returns one page of environments. The type filter is also accepted as "name".
func (h *EnvironmentHandler) ListEnvironments(c *gin.Context) {
	envType := queryPtr(c, "type")
	if envType == nil {
		envType = queryPtr(c, "name")
	}
	page, err := h.service.Search(repository.EnvironmentFilter{Type: envType}, pageRequest(c, "type", false))
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPageResponse(page, dto.ToEnvironmentDTO))
}

func (h *EnvironmentHandler) ListAllEnvironments(c *gin.Context) {
	envs, err := h.service.List()
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToList(envs, dto.ToEnvironmentDTO))
}

func (h *EnvironmentHandler) GetEnvironment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	env, err := h.service.Get(id)
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEnvironmentDTO(*env))
}

func (h *EnvironmentHandler) GetEnvironmentByType(c *gin.Context) {
	env, err := h.service.GetByType(c.Param("type"))
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEnvironmentDTO(*env))
}

func (h *EnvironmentHandler) CreateEnvironment(c *gin.Context) {
	var req dto.CreateEnvironmentRequest
	if !bindJSON(c, &req) {
		return
	}
	env, err := h.service.Create(req.ToInput())
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToEnvironmentDTO(*env))
}

func (h *EnvironmentHandler) UpdateEnvironment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateEnvironmentRequest
	if !bindJSON(c, &req) {
		return
	}
	env, err := h.service.Update(id, req.ToPatch())
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEnvironmentDTO(*env))
}

func (h *EnvironmentHandler) DeleteEnvironment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(id); err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EnvironmentHandler) DeleteEnvironmentByType(c *gin.Context) {
	deleted, err := h.service.DeleteByType(c.Param("type"))
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	if !deleted {
		apierrors.NotFound(c, "environment not found")
		return
	}
	c.Status(http.StatusNoContent)
}
