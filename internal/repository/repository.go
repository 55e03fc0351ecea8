package repository

import (
	"gorm.io/datatypes"

	"github.com/yukikurage/portal-api/internal/models"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with its environments
	FindByID(id uint64) (*models.Project, error)

	// FindByName finds the first project with the given name
	FindByName(name string) (*models.Project, error)

	// FindAll lists every project ordered by ID
	FindAll() ([]models.Project, error)

	// List retrieves projects with filtering, sorting and pagination
	List(filter ProjectFilter, page PageRequest) (*Page[models.Project], error)

	// Update saves all fields of a project
	Update(project *models.Project) error

	// Delete removes a project, its environments, and detaches its tasks
	Delete(id uint64) error

	// Exists reports whether a project with the given ID exists
	Exists(id uint64) (bool, error)
}

// ProjectFilter holds filtering options for listing projects
type ProjectFilter struct {
	Name *string
}

// ServerRepository defines the interface for server data access
type ServerRepository interface {
	Create(server *models.Server) error
	FindByID(id uint64) (*models.Server, error)
	FindByName(name string) (*models.Server, error)
	FindAll() ([]models.Server, error)
	List(filter ServerFilter, page PageRequest) (*Page[models.Server], error)
	Update(server *models.Server) error
	Delete(id uint64) error
	Exists(id uint64) (bool, error)
}

// ServerFilter holds filtering options for listing servers
type ServerFilter struct {
	Name *string
}

// EnvironmentRepository defines the interface for environment data access
type EnvironmentRepository interface {
	Create(env *models.Environment) error
	FindByID(id uint64) (*models.Environment, error)
	FindByType(envType string) (*models.Environment, error)
	FindAll() ([]models.Environment, error)
	List(filter EnvironmentFilter, page PageRequest) (*Page[models.Environment], error)
	Update(env *models.Environment) error
	Delete(id uint64) error
}

// EnvironmentFilter holds filtering options for listing environments
type EnvironmentFilter struct {
	Type *string
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// FindByTitle finds the first task with exactly the given title
	FindByTitle(title string) (*models.Task, error)

	// FindAll lists every task matching filter ordered by ID
	FindAll(filter TaskFilter) ([]models.Task, error)

	// List retrieves tasks with filtering, sorting and pagination
	List(filter TaskFilter, page PageRequest) (*Page[models.Task], error)

	// Update saves all fields of a task
	Update(task *models.Task) error

	// Delete deletes a task
	Delete(id uint64) error

	// Count counts all tasks
	Count() (int64, error)

	// CountByStatus counts tasks grouped by status
	CountByStatus() (map[models.TaskStatus]int64, error)

	// CountByPriority counts tasks grouped by priority
	CountByPriority() (map[models.TaskPriority]int64, error)
}

// TaskFilter holds filtering options for listing tasks. Nil fields are ignored.
type TaskFilter struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
	AssignedTo  *string
	ProjectID   *uint64
}

// DailyNoteRepository defines the interface for daily note data access
type DailyNoteRepository interface {
	Create(note *models.DailyNote) error
	FindByID(id uint64) (*models.DailyNote, error)
	FindByDate(date datatypes.Date) (*models.DailyNote, error)

	// FindAll lists every note matching filter ordered by date
	FindAll(filter DailyNoteFilter) ([]models.DailyNote, error)

	List(filter DailyNoteFilter, page PageRequest) (*Page[models.DailyNote], error)
	Update(note *models.DailyNote) error
	Delete(id uint64) error
	ExistsByDate(date datatypes.Date) (bool, error)

	// Count counts notes whose date falls in [from, to]; nil bounds are open
	Count(from, to *datatypes.Date) (int64, error)

	// AverageContentLength returns the mean content length, or 0 without notes
	AverageContentLength() (float64, error)
}

// DailyNoteFilter holds filtering options for listing notes. StartDate and EndDate are inclusive.
type DailyNoteFilter struct {
	StartDate *datatypes.Date
	EndDate   *datatypes.Date
	Content   *string
}
