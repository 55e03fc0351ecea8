package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/portal-api/internal/models"
	"github.com/yukikurage/portal-api/internal/repository"
)

// ProjectHook observes project lifecycle events. Hooks run synchronously and must not fail the
// operation that triggered them, so they report problems through logging only.
type ProjectHook interface {
	// ProjectSaved runs after a create or update has been committed.
	ProjectSaved(ctx context.Context, project *models.Project)

	// ProjectDeleting runs before the project row is deleted.
	ProjectDeleting(ctx context.Context, project *models.Project)
}

// ProjectService handles project business logic
type ProjectService struct {
	repo  repository.ProjectRepository
	hooks []ProjectHook
	now   func() time.Time
}

// NewProjectService creates a new ProjectService
func NewProjectService(repo repository.ProjectRepository, hooks ...ProjectHook) *ProjectService {
	return &ProjectService{
		repo:  repo,
		hooks: hooks,
		now:   time.Now,
	}
}

// ProjectInput represents input for creating a project
type ProjectInput struct {
	ID           *uint64
	Name         string
	Description  string
	Status       string
	Tags         string
	TechStack    string
	Informacion  string
	CreationDate *time.Time
}

// ProjectPatch holds the fields to change on a project; nil fields are left untouched
type ProjectPatch struct {
	Name         *string
	Description  *string
	Status       *string
	Tags         *string
	TechStack    *string
	Informacion  *string
	CreationDate *time.Time
}

// Apply merges the patch into project
func (p ProjectPatch) Apply(project *models.Project) {
	if p.Name != nil {
		project.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		project.Description = *p.Description
	}
	if p.Status != nil {
		project.Status = *p.Status
	}
	if p.Tags != nil {
		project.Tags = *p.Tags
	}
	if p.TechStack != nil {
		project.TechStack = *p.TechStack
	}
	if p.Informacion != nil {
		project.Informacion = *p.Informacion
	}
	if p.CreationDate != nil {
		project.CreationDate = p.CreationDate
	}
}

func (s *ProjectService) List() ([]models.Project, error) {
	projects, err := s.repo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

func (s *ProjectService) Get(id uint64) (*models.Project, error) {
	project, err := s.repo.FindByID(id)
	if err != nil {
		return nil, lookupErr(err, ErrProjectNotFound, "project")
	}
	return project, nil
}

func (s *ProjectService) GetByName(name string) (*models.Project, error) {
	project, err := s.repo.FindByName(name)
	if err != nil {
		return nil, lookupErr(err, ErrProjectNotFound, "project")
	}
	return project, nil
}

// Search returns one page of projects matching filter
func (s *ProjectService) Search(filter repository.ProjectFilter, page repository.PageRequest) (*repository.Page[models.Project], error) {
	result, err := s.repo.List(filter, page)
	if err != nil {
		return nil, listErr(err, "projects")
	}
	return result, nil
}

// Create validates and stores a new project, then notifies the hooks
func (s *ProjectService) Create(ctx context.Context, input ProjectInput) (*models.Project, error) {
	if input.ID != nil {
		return nil, ErrIDNotAllowed
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	creationDate := input.CreationDate
	if creationDate == nil {
		now := s.now().UTC()
		creationDate = &now
	}

	project := &models.Project{
		Name:         name,
		Description:  input.Description,
		Status:       input.Status,
		Tags:         input.Tags,
		TechStack:    input.TechStack,
		Informacion:  input.Informacion,
		CreationDate: creationDate,
	}
	if err := s.repo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.saved(ctx, project)
	return project, nil
}

// Update merges patch into the project and notifies the hooks
func (s *ProjectService) Update(ctx context.Context, id uint64, patch ProjectPatch) (*models.Project, error) {
	project, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	patch.Apply(project)
	if project.Name == "" {
		return nil, ErrNameRequired
	}

	if err := s.repo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.saved(ctx, project)
	return project, nil
}

// Delete runs the hooks and then deletes the project, whatever the hooks managed to do
func (s *ProjectService) Delete(ctx context.Context, id uint64) error {
	project, err := s.Get(id)
	if err != nil {
		return err
	}
	return s.delete(ctx, project)
}

// DeleteByName deletes the first project called name and reports whether one existed
func (s *ProjectService) DeleteByName(ctx context.Context, name string) (bool, error) {
	project, err := s.GetByName(name)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := s.delete(ctx, project); err != nil {
		return false, err
	}
	return true, nil
}

func (s *ProjectService) delete(ctx context.Context, project *models.Project) error {
	for _, hook := range s.hooks {
		hook.ProjectDeleting(ctx, project)
	}
	if err := s.repo.Delete(project.ID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func (s *ProjectService) saved(ctx context.Context, project *models.Project) {
	for _, hook := range s.hooks {
		hook.ProjectSaved(ctx, project)
	}
}
