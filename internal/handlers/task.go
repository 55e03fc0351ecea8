package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/portal-api/internal/dto"
	apierrors "github.com/yukikurage/portal-api/internal/errors"
	"github.com/yukikurage/portal-api/internal/models"
	"github.com/yukikurage/portal-api/internal/repository"
	"github.com/yukikurage/portal-api/internal/services"
)

type TaskHandler struct {
	service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// ListTasks returns one page of tasks. Every filter is optional and filters combine with AND;
// the newest updates come first unless orderBy/isOrderDesc say otherwise.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	filter := repository.TaskFilter{
		Title:       queryPtr(c, "title"),
		Description: queryPtr(c, "description"),
		AssignedTo:  queryPtr(c, "assignedTo"),
	}
	if status := queryPtr(c, "status"); status != nil {
		s := models.TaskStatus(*status)
		filter.Status = &s
	}
	if priority := queryPtr(c, "priority"); priority != nil {
		p := models.TaskPriority(*priority)
		filter.Priority = &p
	}
	if raw := queryPtr(c, "projectId"); raw != nil {
		projectID, err := strconv.ParseUint(*raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid projectId")
			return
		}
		filter.ProjectID = &projectID
	}

	page, err := h.service.Search(filter, pageRequest(c, "updatedAt", true))
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPageResponse(page, dto.ToTaskDTO))
}

func (h *TaskHandler) respondList(c *gin.Context, tasks []models.Task, err error) {
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToList(tasks, dto.ToTaskDTO))
}

func (h *TaskHandler) ListAllTasks(c *gin.Context) {
	tasks, err := h.service.List()
	h.respondList(c, tasks, err)
}

func (h *TaskHandler) ListTasksByStatus(c *gin.Context) {
	tasks, err := h.service.ListByStatus(models.TaskStatus(c.Param("status")))
	h.respondList(c, tasks, err)
}

func (h *TaskHandler) ListTasksByPriority(c *gin.Context) {
	tasks, err := h.service.ListByPriority(models.TaskPriority(c.Param("priority")))
	h.respondList(c, tasks, err)
}

func (h *TaskHandler) ListTasksByAssignedTo(c *gin.Context) {
	tasks, err := h.service.ListByAssignedTo(c.Param("assignedTo"))
	h.respondList(c, tasks, err)
}

func (h *TaskHandler) ListTasksByProject(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	tasks, err := h.service.ListByProject(projectID)
	h.respondList(c, tasks, err)
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	task, err := h.service.GetTask(id)
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	task, err := h.service.CreateTask(input)
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask updates only the fields present in the body
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	patch, err := req.ToPatch()
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	task, err := h.service.UpdateTask(id, patch)
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteTask(id); err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) DeleteTaskByTitle(c *gin.Context) {
	deleted, err := h.service.DeleteByTitle(c.Param("title"))
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	if !deleted {
		apierrors.NotFound(c, "task not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// AssignProject attaches a task to a project
func (h *TaskHandler) AssignProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	task, err := h.service.AssignProject(id, projectID)
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UnassignProject detaches a task from its project
func (h *TaskHandler) UnassignProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	task, err := h.service.UnassignProject(id)
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

func (h *TaskHandler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats()
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// SuggestTasks asks the AI service to extract tasks from free text. Nothing is saved.
func (h *TaskHandler) SuggestTasks(c *gin.Context) {
	var req dto.SuggestTasksRequest
	if !bindJSON(c, &req) {
		return
	}
	tasks, err := h.service.SuggestTasks(c.Request.Context(), req.Text)
	if err != nil {
		apierrors.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}
