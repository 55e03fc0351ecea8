package dto

import (
	"time"

	"gorm.io/datatypes"

	"github.com/yukikurage/portal-api/internal/models"
	"github.com/yukikurage/portal-api/internal/services"
	"github.com/yukikurage/portal-api/internal/utils"
)

// TaskDTO represents a task in API responses. Dates are YYYY-MM-DD.
type TaskDTO struct {
	ID            uint64              `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Priority      models.TaskPriority `json:"priority"`
	Status        models.TaskStatus   `json:"status"`
	StartDate     *string             `json:"startDate"`
	DueDate       *string             `json:"dueDate"`
	CompletedDate *string             `json:"completedDate"`
	AssignedTo    string              `json:"assignedTo"`
	ProjectID     *uint64             `json:"projectId"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// CreateTaskRequest is the body of POST /api/tasks
type CreateTaskRequest struct {
	ID            *uint64             `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Priority      models.TaskPriority `json:"priority"`
	Status        models.TaskStatus   `json:"status"`
	StartDate     *string             `json:"startDate"`
	DueDate       *string             `json:"dueDate"`
	CompletedDate *string             `json:"completedDate"`
	AssignedTo    string              `json:"assignedTo"`
	ProjectID     *uint64             `json:"projectId"`
}

// UpdateTaskRequest is the body of PUT /api/tasks/:id; absent fields are kept
type UpdateTaskRequest struct {
	Title         *string              `json:"title"`
	Description   *string              `json:"description"`
	Priority      *models.TaskPriority `json:"priority"`
	Status        *models.TaskStatus   `json:"status"`
	StartDate     *string              `json:"startDate"`
	DueDate       *string              `json:"dueDate"`
	CompletedDate *string              `json:"completedDate"`
	AssignedTo    *string              `json:"assignedTo"`
}

// SuggestTasksRequest is the body of POST /api/tasks/suggest
type SuggestTasksRequest struct {
	Text string `json:"text"`
}

// parseDates parses every non-nil YYYY-MM-DD string; an empty string counts as absent
func parseDates(raw ...*string) ([]*datatypes.Date, error) {
	out := make([]*datatypes.Date, len(raw))
	for i, s := range raw {
		if s == nil {
			continue
		}
		d, err := utils.ParseOptionalDate(*s)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

func (r CreateTaskRequest) ToInput() (services.CreateTaskInput, error) {
	dates, err := parseDates(r.StartDate, r.DueDate, r.CompletedDate)
	if err != nil {
		return services.CreateTaskInput{}, err
	}
	return services.CreateTaskInput{
		ID:            r.ID,
		Title:         r.Title,
		Description:   r.Description,
		Priority:      r.Priority,
		Status:        r.Status,
		StartDate:     dates[0],
		DueDate:       dates[1],
		CompletedDate: dates[2],
		AssignedTo:    r.AssignedTo,
		ProjectID:     r.ProjectID,
	}, nil
}

func (r UpdateTaskRequest) ToPatch() (services.TaskPatch, error) {
	dates, err := parseDates(r.StartDate, r.DueDate, r.CompletedDate)
	if err != nil {
		return services.TaskPatch{}, err
	}
	return services.TaskPatch{
		Title:         r.Title,
		Description:   r.Description,
		Priority:      r.Priority,
		Status:        r.Status,
		StartDate:     dates[0],
		DueDate:       dates[1],
		CompletedDate: dates[2],
		AssignedTo:    r.AssignedTo,
	}, nil
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		Priority:      task.Priority,
		Status:        task.Status,
		StartDate:     utils.FormatOptionalDate(task.StartDate),
		DueDate:       utils.FormatOptionalDate(task.DueDate),
		CompletedDate: utils.FormatOptionalDate(task.CompletedDate),
		AssignedTo:    task.AssignedTo,
		ProjectID:     task.ProjectID,
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}
}
