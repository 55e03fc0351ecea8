package repository

import (
	"gorm.io/gorm"

	"github.com/yukikurage/portal-api/internal/database"
	"github.com/yukikurage/portal-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Omit("Project").Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByTitle finds the first task with exactly the given title
func (r *GormTaskRepository) FindByTitle(title string) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("title = ?", title).Order("id ASC").First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *GormTaskRepository) filtered(filter TaskFilter) *gorm.DB {
	query := r.db.Model(&models.Task{})

	// Substring filters
	if filter.Title != nil {
		query = query.Where(database.ContainsFold("title", *filter.Title))
	}
	if filter.Description != nil {
		query = query.Where(database.ContainsFold("description", *filter.Description))
	}
	if filter.AssignedTo != nil {
		query = query.Where(database.ContainsFold("assigned_to", *filter.AssignedTo))
	}

	// Exact filters
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}

	return query
}

// FindAll lists every task matching filter ordered by ID
func (r *GormTaskRepository) FindAll(filter TaskFilter) ([]models.Task, error) {
	tasks := []models.Task{}
	if err := r.filtered(filter).Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// List retrieves tasks with filtering, sorting and pagination
func (r *GormTaskRepository) List(filter TaskFilter, page PageRequest) (*Page[models.Task], error) {
	return findPage[models.Task](r.filtered(filter), taskSortColumns, page)
}

// Update saves all fields of a task except its creation time
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Omit("Project").Save(task).Error
}

// Delete deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// Count counts all tasks
func (r *GormTaskRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Task{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type groupCount struct {
	GroupKey string
	Total    int64
}

func (r *GormTaskRepository) countGrouped(column string) ([]groupCount, error) {
	var rows []groupCount
	err := r.db.Model(&models.Task{}).
		Select(column + " AS group_key, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountByStatus counts tasks grouped by status
func (r *GormTaskRepository) CountByStatus() (map[models.TaskStatus]int64, error) {
	rows, err := r.countGrouped("status")
	if err != nil {
		return nil, err
	}
	counts := make(map[models.TaskStatus]int64, len(rows))
	for _, row := range rows {
		counts[models.TaskStatus(row.GroupKey)] = row.Total
	}
	return counts, nil
}

// CountByPriority counts tasks grouped by priority
func (r *GormTaskRepository) CountByPriority() (map[models.TaskPriority]int64, error) {
	rows, err := r.countGrouped("priority")
	if err != nil {
		return nil, err
	}
	counts := make(map[models.TaskPriority]int64, len(rows))
	for _, row := range rows {
		counts[models.TaskPriority(row.GroupKey)] = row.Total
	}
	return counts, nil
}
