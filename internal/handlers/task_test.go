package handlers

import (
	"net/http"

	"github.com/yukikurage/portal-api/internal/dto"
	"github.com/yukikurage/portal-api/internal/models"
	"github.com/yukikurage/portal-api/internal/services"
)

func (suite *APITestSuite) createTask(title, status, priority, assignedTo string) uint64 {
	return suite.create("/api/tasks", map[string]interface{}{
		"title":       title,
		"description": title + " description",
		"status":      status,
		"priority":    priority,
		"assignedTo":  assignedTo,
	})
}

func (suite *APITestSuite) TestCreateTask() {
	w := suite.perform(http.MethodPost, "/api/tasks", map[string]interface{}{
		"title":       "Deploy",
		"description": "Deploy the API",
		"priority":    "alta",
		"dueDate":     "2030-01-31",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var task dto.TaskDTO
	suite.decode(w, &task)
	suite.Equal(models.TaskStatusPending, task.Status)
	suite.NotNil(task.StartDate)
	suite.Require().NotNil(task.DueDate)
	suite.Equal("2030-01-31", *task.DueDate)
	suite.Nil(task.CompletedDate)
}

func (suite *APITestSuite) TestCreateTask_Validation() {
	cases := map[string]map[string]interface{}{
		"missing title":   {"description": "d", "priority": "alta"},
		"bad priority":    {"title": "t", "description": "d", "priority": "urgente"},
		"bad status":      {"title": "t", "description": "d", "priority": "alta", "status": "hecha"},
		"bad date":        {"title": "t", "description": "d", "priority": "alta", "dueDate": "31/01/2030"},
		"id not allowed":  {"id": 3, "title": "t", "description": "d", "priority": "alta"},
		"unknown project": {"title": "t", "description": "d", "priority": "alta", "projectId": 77},
	}
	for name, body := range cases {
		w := suite.perform(http.MethodPost, "/api/tasks", body)
		if name == "unknown project" {
			suite.Equal(http.StatusNotFound, w.Code, name)
			continue
		}
		suite.Equal(http.StatusBadRequest, w.Code, name)
	}
}

func (suite *APITestSuite) TestUpdateTask_StatusOnly() {
	id := suite.createTask("Deploy", "pendiente", "alta", "Ana")

	w := suite.perform(http.MethodPut, "/api/tasks/1", map[string]interface{}{"status": "completada"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var task dto.TaskDTO
	suite.decode(w, &task)
	suite.Equal(id, task.ID)
	suite.Equal("Deploy", task.Title)
	suite.Equal("Ana", task.AssignedTo)
	suite.Equal(models.TaskPriorityHigh, task.Priority)
	suite.NotNil(task.CompletedDate)
}

func (suite *APITestSuite) TestListTasks_FiltersAndPaging() {
	suite.createTask("Deploy API", "pendiente", "alta", "Ana")
	suite.createTask("Deploy web", "en_progreso", "alta", "Luis")
	suite.createTask("Write docs", "pendiente", "baja", "Ana")

	w := suite.perform(http.MethodGet, "/api/tasks?title=deploy&status=pendiente", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var page dto.PageResponse[dto.TaskDTO]
	suite.decode(w, &page)
	suite.Equal(int64(1), page.TotalElements)
	suite.Equal("Deploy API", page.Content[0].Title)

	w = suite.perform(http.MethodGet, "/api/tasks?orderBy=title&isOrderDesc=false&size=2&page=1", nil)
	suite.decode(w, &page)
	suite.Equal(int64(3), page.TotalElements)
	suite.Equal(2, page.TotalPages)
	suite.Require().Len(page.Content, 1)
	suite.Equal("Write docs", page.Content[0].Title)

	suite.Equal(http.StatusBadRequest, suite.perform(http.MethodGet, "/api/tasks?status=hecha", nil).Code)
	suite.Equal(http.StatusBadRequest, suite.perform(http.MethodGet, "/api/tasks?projectId=x", nil).Code)

	var tasks []dto.TaskDTO
	suite.decode(suite.perform(http.MethodGet, "/api/tasks/assignedTo/Ana", nil), &tasks)
	suite.Len(tasks, 2)
	suite.decode(suite.perform(http.MethodGet, "/api/tasks/priority/alta", nil), &tasks)
	suite.Len(tasks, 2)
	suite.decode(suite.perform(http.MethodGet, "/api/tasks/status/en_progreso", nil), &tasks)
	suite.Len(tasks, 1)
}

func (suite *APITestSuite) TestTaskProjectAssignment() {
	taskID := suite.createTask("Deploy", "pendiente", "media", "")
	projectID := suite.create("/api/projects", map[string]interface{}{"name": "Portal"})

	suite.Equal(http.StatusNotFound, suite.perform(http.MethodPut, "/api/tasks/1/assign-project/99", nil).Code)

	w := suite.perform(http.MethodPut, "/api/tasks/1/assign-project/1", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var task dto.TaskDTO
	suite.decode(w, &task)
	suite.Equal(taskID, task.ID)
	suite.Require().NotNil(task.ProjectID)
	suite.Equal(projectID, *task.ProjectID)

	var tasks []dto.TaskDTO
	suite.decode(suite.perform(http.MethodGet, "/api/tasks/project/1", nil), &tasks)
	suite.Len(tasks, 1)

	w = suite.perform(http.MethodPut, "/api/tasks/1/unassign-project", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(w, &task)
	suite.Nil(task.ProjectID)
}

func (suite *APITestSuite) TestTaskStatsAndDelete() {
	suite.createTask("a", "pendiente", "alta", "")
	suite.createTask("b", "completada", "baja", "")

	var stats services.TaskStats
	suite.decode(suite.perform(http.MethodGet, "/api/tasks/stats", nil), &stats)
	suite.Equal(int64(2), stats.Total)
	suite.Equal(int64(1), stats.Pendientes)
	suite.Equal(int64(1), stats.Completadas)
	suite.Equal(int64(0), stats.EnProgreso)
	suite.Equal(int64(1), stats.PorPrioridad["alta"])

	suite.Equal(http.StatusNoContent, suite.perform(http.MethodDelete, "/api/tasks/title/b", nil).Code)
	suite.Equal(http.StatusNotFound, suite.perform(http.MethodDelete, "/api/tasks/title/b", nil).Code)
	suite.Equal(http.StatusNoContent, suite.perform(http.MethodDelete, "/api/tasks/1", nil).Code)
	suite.Equal(http.StatusNotFound, suite.perform(http.MethodGet, "/api/tasks/1", nil).Code)
}

func (suite *APITestSuite) TestSuggestTasks_WithoutAI() {
	w := suite.perform(http.MethodPost, "/api/tasks/suggest", map[string]interface{}{"text": "mañana desplegar"})
	suite.Equal(http.StatusServiceUnavailable, w.Code)
}
