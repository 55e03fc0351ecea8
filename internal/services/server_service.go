package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/portal-api/internal/models"
	"github.com/yukikurage/portal-api/internal/repository"
)

// ServerService handles server business logic
type ServerService struct {
	repo repository.ServerRepository
}

// NewServerService creates a new ServerService
func NewServerService(repo repository.ServerRepository) *ServerService {
	return &ServerService{repo: repo}
}

type ServerInput struct {
	ID    *uint64
	Name  string
	IP    string
	OS    string
	Notes string
}

// ServerPatch holds the fields to change on a server; nil fields are left untouched
type ServerPatch struct {
	Name  *string
	IP    *string
	OS    *string
	Notes *string
}

func (p ServerPatch) Apply(server *models.Server) {
	if p.Name != nil {
		server.Name = strings.TrimSpace(*p.Name)
	}
	if p.IP != nil {
		server.IP = strings.TrimSpace(*p.IP)
	}
	if p.OS != nil {
		server.OS = *p.OS
	}
	if p.Notes != nil {
		server.Notes = *p.Notes
	}
}

func (s *ServerService) List() ([]models.Server, error) {
	servers, err := s.repo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}
	return servers, nil
}

func (s *ServerService) Get(id uint64) (*models.Server, error) {
	server, err := s.repo.FindByID(id)
	if err != nil {
		return nil, lookupErr(err, ErrServerNotFound, "server")
	}
	return server, nil
}

func (s *ServerService) GetByName(name string) (*models.Server, error) {
	server, err := s.repo.FindByName(name)
	if err != nil {
		return nil, lookupErr(err, ErrServerNotFound, "server")
	}
	return server, nil
}

func (s *ServerService) Search(filter repository.ServerFilter, page repository.PageRequest) (*repository.Page[models.Server], error) {
	result, err := s.repo.List(filter, page)
	if err != nil {
		return nil, listErr(err, "servers")
	}
	return result, nil
}

func (s *ServerService) Create(input ServerInput) (*models.Server, error) {
	if input.ID != nil {
		return nil, ErrIDNotAllowed
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	server := &models.Server{
		Name:  name,
		IP:    strings.TrimSpace(input.IP),
		OS:    input.OS,
		Notes: input.Notes,
	}
	if err := s.repo.Create(server); err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}
	return server, nil
}

func (s *ServerService) Update(id uint64, patch ServerPatch) (*models.Server, error) {
	server, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	patch.Apply(server)
	if server.Name == "" {
		return nil, ErrNameRequired
	}

	if err := s.repo.Update(server); err != nil {
		return nil, fmt.Errorf("failed to update server: %w", err)
	}
	return server, nil
}

func (s *ServerService) Delete(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete server: %w", err)
	}
	return nil
}

func (s *ServerService) DeleteByName(name string) (bool, error) {
	server, err := s.GetByName(name)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := s.repo.Delete(server.ID); err != nil {
		return false, fmt.Errorf("failed to delete server: %w", err)
	}
	return true, nil
}
