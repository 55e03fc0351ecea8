package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/yukikurage/portal-api/internal/models"
	"github.com/yukikurage/portal-api/internal/repository"
	"github.com/yukikurage/portal-api/internal/utils"
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	aiService   *AIService
	now         func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, aiService *AIService) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		aiService:   aiService,
		now:         time.Now,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	ID            *uint64
	Title         string
	Description   string
	Priority      models.TaskPriority
	Status        models.TaskStatus
	StartDate     *datatypes.Date
	DueDate       *datatypes.Date
	CompletedDate *datatypes.Date
	AssignedTo    string
	ProjectID     *uint64
}

// TaskPatch holds the fields to change on a task; nil fields are left untouched.
// The project is changed through AssignProject and UnassignProject only.
type TaskPatch struct {
	Title         *string
	Description   *string
	Priority      *models.TaskPriority
	Status        *models.TaskStatus
	StartDate     *datatypes.Date
	DueDate       *datatypes.Date
	CompletedDate *datatypes.Date
	AssignedTo    *string
}

// Apply merges the patch into task
func (p TaskPatch) Apply(task *models.Task) {
	if p.Title != nil {
		task.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		task.Description = strings.TrimSpace(*p.Description)
	}
	if p.Priority != nil {
		task.Priority = *p.Priority
	}
	if p.Status != nil {
		task.Status = *p.Status
	}
	if p.StartDate != nil {
		task.StartDate = p.StartDate
	}
	if p.DueDate != nil {
		task.DueDate = p.DueDate
	}
	if p.CompletedDate != nil {
		task.CompletedDate = p.CompletedDate
	}
	if p.AssignedTo != nil {
		task.AssignedTo = *p.AssignedTo
	}
}

// TaskStats is the aggregate view of all tasks
type TaskStats struct {
	Total        int64            `json:"total"`
	Pendientes   int64            `json:"pendientes"`
	EnProgreso   int64            `json:"en_progreso"`
	Completadas  int64            `json:"completadas"`
	PorPrioridad map[string]int64 `json:"por_prioridad"`
}

func validateTask(task *models.Task) error {
	if task.Title == "" {
		return ErrTitleRequired
	}
	if task.Description == "" {
		return ErrDescriptionRequired
	}
	if !task.Priority.Valid() {
		return ErrInvalidPriority
	}
	if !task.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

func (s *TaskService) today() datatypes.Date {
	return utils.DateOf(s.now())
}

func (s *TaskService) List() ([]models.Task, error) {
	return s.find(repository.TaskFilter{})
}

func (s *TaskService) find(filter repository.TaskFilter) ([]models.Task, error) {
	tasks, err := s.taskRepo.FindAll(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a task by ID
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, lookupErr(err, ErrTaskNotFound, "task")
	}
	return task, nil
}

func (s *TaskService) GetByTitle(title string) (*models.Task, error) {
	task, err := s.taskRepo.FindByTitle(title)
	if err != nil {
		return nil, lookupErr(err, ErrTaskNotFound, "task")
	}
	return task, nil
}

func (s *TaskService) ListByProject(projectID uint64) ([]models.Task, error) {
	return s.find(repository.TaskFilter{ProjectID: &projectID})
}

func (s *TaskService) ListByStatus(status models.TaskStatus) ([]models.Task, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.find(repository.TaskFilter{Status: &status})
}

func (s *TaskService) ListByPriority(priority models.TaskPriority) ([]models.Task, error) {
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}
	return s.find(repository.TaskFilter{Priority: &priority})
}

// ListByAssignedTo returns the tasks assigned to exactly assignedTo
func (s *TaskService) ListByAssignedTo(assignedTo string) ([]models.Task, error) {
	tasks, err := s.find(repository.TaskFilter{AssignedTo: &assignedTo})
	if err != nil {
		return nil, err
	}
	exact := tasks[:0]
	for _, task := range tasks {
		if task.AssignedTo == assignedTo {
			exact = append(exact, task)
		}
	}
	return exact, nil
}

// Search returns one page of tasks matching filter
func (s *TaskService) Search(filter repository.TaskFilter, page repository.PageRequest) (*repository.Page[models.Task], error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if filter.Priority != nil && !filter.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	result, err := s.taskRepo.List(filter, page)
	if err != nil {
		return nil, listErr(err, "tasks")
	}
	return result, nil
}

// CreateTask creates a new task with validation. The start date defaults to today.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.ID != nil {
		return nil, ErrIDNotAllowed
	}

	task := &models.Task{
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		Priority:      input.Priority,
		Status:        input.Status,
		StartDate:     input.StartDate,
		DueDate:       input.DueDate,
		CompletedDate: input.CompletedDate,
		AssignedTo:    input.AssignedTo,
		ProjectID:     input.ProjectID,
	}
	if task.Status == "" {
		task.Status = models.TaskStatusPending
	}
	if err := validateTask(task); err != nil {
		return nil, err
	}

	if input.ProjectID != nil {
		if err := s.requireProject(*input.ProjectID); err != nil {
			return nil, err
		}
	}

	today := s.today()
	if task.StartDate == nil {
		task.StartDate = &today
	}
	if task.Status == models.TaskStatusCompleted && task.CompletedDate == nil {
		task.CompletedDate = &today
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// UpdateTask merges patch into the task. Moving into completada stamps today's date as the
// completion date and moving out of it clears the date, unless the patch sets one itself.
func (s *TaskService) UpdateTask(taskID uint64, patch TaskPatch) (*models.Task, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, err
	}

	previous := task.Status
	patch.Apply(task)
	if err := validateTask(task); err != nil {
		return nil, err
	}

	if patch.CompletedDate == nil && task.Status != previous {
		if task.Status == models.TaskStatusCompleted {
			today := s.today()
			task.CompletedDate = &today
		} else {
			task.CompletedDate = nil
		}
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// DeleteTask deletes a task
func (s *TaskService) DeleteTask(taskID uint64) error {
	if _, err := s.GetTask(taskID); err != nil {
		return err
	}
	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// DeleteByTitle deletes the first task with the given title and reports whether one existed
func (s *TaskService) DeleteByTitle(title string) (bool, error) {
	task, err := s.GetByTitle(title)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := s.taskRepo.Delete(task.ID); err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	return true, nil
}

func (s *TaskService) requireProject(projectID uint64) error {
	ok, err := s.projectRepo.Exists(projectID)
	if err != nil {
		return fmt.Errorf("failed to check project: %w", err)
	}
	if !ok {
		return ErrProjectNotFound
	}
	return nil
}

// AssignProject attaches the task to a project; both must exist
func (s *TaskService) AssignProject(taskID, projectID uint64) (*models.Task, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := s.requireProject(projectID); err != nil {
		return nil, err
	}

	task.ProjectID = &projectID
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to assign project: %w", err)
	}
	return task, nil
}

// UnassignProject detaches the task from its project
func (s *TaskService) UnassignProject(taskID uint64) (*models.Task, error) {
	task, err := s.GetTask(taskID)
	if err != nil {
		return nil, err
	}

	task.ProjectID = nil
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to unassign project: %w", err)
	}
	return task, nil
}

// Stats counts tasks overall, by status and by priority
func (s *TaskService) Stats() (*TaskStats, error) {
	total, err := s.taskRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}
	byStatus, err := s.taskRepo.CountByStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks by status: %w", err)
	}
	byPriority, err := s.taskRepo.CountByPriority()
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks by priority: %w", err)
	}

	return &TaskStats{
		Total:       total,
		Pendientes:  byStatus[models.TaskStatusPending],
		EnProgreso:  byStatus[models.TaskStatusInProgress],
		Completadas: byStatus[models.TaskStatusCompleted],
		PorPrioridad: map[string]int64{
			string(models.TaskPriorityHigh):   byPriority[models.TaskPriorityHigh],
			string(models.TaskPriorityMedium): byPriority[models.TaskPriorityMedium],
			string(models.TaskPriorityLow):    byPriority[models.TaskPriorityLow],
		},
	}, nil
}

// SuggestTasks asks the AI service to extract tasks from free text. Nothing is saved.
func (s *TaskService) SuggestTasks(ctx context.Context, text string) ([]SuggestedTask, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrPromptRequired
	}
	return s.aiService.SuggestTasks(ctx, text)
}
