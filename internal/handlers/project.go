package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/portal-api/internal/dto"
	apierrors "github.com/yukikurage/portal-api/internal/errors"
	"github.com/yukikurage/portal-api/internal/repository"
	"github.com/yukikurage/portal-api/internal/services"
)

type ProjectHandler struct {
	service *services.ProjectService
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// ListProjects returns one page of projects, optionally filtered by name
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	filter := repository.ProjectFilter{Name: queryPtr(c, "name")}
	page, err := h.service.Search(filter, pageRequest(c, "name", false))
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPageResponse(page, dto.ToProjectDTO))
}

// ListAllProjects returns every project without paging
func (h *ProjectHandler) ListAllProjects(c *gin.Context) {
	projects, err := h.service.List()
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToList(projects, dto.ToProjectDTO))
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	project, err := h.service.Get(id)
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

func (h *ProjectHandler) GetProjectByName(c *gin.Context) {
	project, err := h.service.GetByName(c.Param("name"))
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// CreateProject creates a project and syncs its README into the document index
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	project, err := h.service.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	project, err := h.service.Update(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProjectHandler) DeleteProjectByName(c *gin.Context) {
	deleted, err := h.service.DeleteByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	if !deleted {
		apierrors.NotFound(c, "project not found")
		return
	}
	c.Status(http.StatusNoContent)
}
