package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/portal-api/internal/models"
	"github.com/yukikurage/portal-api/internal/repository"
)

// EnvironmentService handles environment business logic
type EnvironmentService struct {
	repo     repository.EnvironmentRepository
	projects repository.ProjectRepository
	servers  repository.ServerRepository
}

// NewEnvironmentService creates a new EnvironmentService
func NewEnvironmentService(repo repository.EnvironmentRepository, projects repository.ProjectRepository, servers repository.ServerRepository) *EnvironmentService {
	return &EnvironmentService{
		repo:     repo,
		projects: projects,
		servers:  servers,
	}
}

type EnvironmentInput struct {
	ID                 *uint64
	Type               string
	DeployInstructions string
	Commands           string
	ProjectID          *uint64
	ServerID           *uint64
}

// EnvironmentPatch holds the fields to change on an environment; nil fields are left untouched
type EnvironmentPatch struct {
	Type               *string
	DeployInstructions *string
	Commands           *string
	ProjectID          *uint64
	ServerID           *uint64
}

func (p EnvironmentPatch) Apply(env *models.Environment) {
	if p.Type != nil {
		env.Type = strings.TrimSpace(*p.Type)
	}
	if p.DeployInstructions != nil {
		env.DeployInstructions = *p.DeployInstructions
	}
	if p.Commands != nil {
		env.Commands = *p.Commands
	}
	if p.ProjectID != nil {
		env.ProjectID = p.ProjectID
		env.Project = nil
	}
	if p.ServerID != nil {
		env.ServerID = p.ServerID
		env.Server = nil
	}
}

func (s *EnvironmentService) List() ([]models.Environment, error) {
	envs, err := s.repo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list environments: %w", err)
	}
	return envs, nil
}

func (s *EnvironmentService) Get(id uint64) (*models.Environment, error) {
	env, err := s.repo.FindByID(id)
	if err != nil {
		return nil, lookupErr(err, ErrEnvironmentNotFound, "environment")
	}
	return env, nil
}

func (s *EnvironmentService) GetByType(envType string) (*models.Environment, error) {
	env, err := s.repo.FindByType(envType)
	if err != nil {
		return nil, lookupErr(err, ErrEnvironmentNotFound, "environment")
	}
	return env, nil
}

func (s *EnvironmentService) Search(filter repository.EnvironmentFilter, page repository.PageRequest) (*repository.Page[models.Environment], error) {
	result, err := s.repo.List(filter, page)
	if err != nil {
		return nil, listErr(err, "environments")
	}
	return result, nil
}

// checkReferences makes sure the referenced project and server exist
func (s *EnvironmentService) checkReferences(projectID, serverID *uint64) error {
	if projectID != nil {
		ok, err := s.projects.Exists(*projectID)
		if err != nil {
			return fmt.Errorf("failed to check project: %w", err)
		}
		if !ok {
			return ErrProjectNotFound
		}
	}
	if serverID != nil {
		ok, err := s.servers.Exists(*serverID)
		if err != nil {
			return fmt.Errorf("failed to check server: %w", err)
		}
		if !ok {
			return ErrServerNotFound
		}
	}
	return nil
}

func (s *EnvironmentService) Create(input EnvironmentInput) (*models.Environment, error) {
	if input.ID != nil {
		return nil, ErrIDNotAllowed
	}
	envType := strings.TrimSpace(input.Type)
	if envType == "" {
		return nil, ErrTypeRequired
	}
	if err := s.checkReferences(input.ProjectID, input.ServerID); err != nil {
		return nil, err
	}

	env := &models.Environment{
		Type:               envType,
		DeployInstructions: input.DeployInstructions,
		Commands:           input.Commands,
		ProjectID:          input.ProjectID,
		ServerID:           input.ServerID,
	}
	if err := s.repo.Create(env); err != nil {
		return nil, fmt.Errorf("failed to create environment: %w", err)
	}
	return s.Get(env.ID)
}

func (s *EnvironmentService) Update(id uint64, patch EnvironmentPatch) (*models.Environment, error) {
	env, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(patch.ProjectID, patch.ServerID); err != nil {
		return nil, err
	}

	patch.Apply(env)
	if env.Type == "" {
		return nil, ErrTypeRequired
	}

	if err := s.repo.Update(env); err != nil {
		return nil, fmt.Errorf("failed to update environment: %w", err)
	}
	return s.Get(env.ID)
}

func (s *EnvironmentService) Delete(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete environment: %w", err)
	}
	return nil
}

// DeleteByType deletes the first environment of the given type and reports whether one existed
func (s *EnvironmentService) DeleteByType(envType string) (bool, error) {
	env, err := s.GetByType(envType)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := s.repo.Delete(env.ID); err != nil {
		return false, fmt.Errorf("failed to delete environment: %w", err)
	}
	return true, nil
}
