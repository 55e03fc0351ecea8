package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/portal-api/internal/dto"
	apierrors "github.com/yukikurage/portal-api/internal/errors"
	"github.com/yukikurage/portal-api/internal/repository"
	"github.com/yukikurage/portal-api/internal/services"
)

type ServerHandler struct {
	service *services.ServerService
}

func NewServerHandler(service *services.ServerService) *ServerHandler {
	return &ServerHandler{service: service}
}

func (h *ServerHandler) ListServers(c *gin.Context) {
	filter := repository.ServerFilter{Name: queryPtr(c, "name")}
	page, err := h.service.Search(filter, pageRequest(c, "name", false))
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPageResponse(page, dto.ToServerDTO))
}

func (h *ServerHandler) ListAllServers(c *gin.Context) {
	servers, err := h.service.List()
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToList(servers, dto.ToServerDTO))
}

func (h *ServerHandler) GetServer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	server, err := h.service.Get(id)
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToServerDTO(*server))
}

func (h *ServerHandler) GetServerByName(c *gin.Context) {
	server, err := h.service.GetByName(c.Param("name"))
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToServerDTO(*server))
}

func (h *ServerHandler) CreateServer(c *gin.Context) {
	var req dto.CreateServerRequest
	if !bindJSON(c, &req) {
		return
	}
	server, err := h.service.Create(req.ToInput())
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToServerDTO(*server))
}

func (h *ServerHandler) UpdateServer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateServerRequest
	if !bindJSON(c, &req) {
		return
	}
	server, err := h.service.Update(id, req.ToPatch())
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToServerDTO(*server))
}

func (h *ServerHandler) DeleteServer(c *gin.Context) {
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

func (h *ServerHandler) DeleteServerByName(c *gin.Context) {
	deleted, err := h.service.DeleteByName(c.Param("name"))
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	if !deleted {
		apierrors.NotFound(c, "server not found")
		return
	}
	c.Status(http.StatusNoContent)
}
