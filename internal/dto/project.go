package dto

import (
	"time"

	"github.com/yukikurage/portal-api/internal/models"
	"github.com/yukikurage/portal-api/internal/services"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID           uint64           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Status       string           `json:"status"`
	Tags         string           `json:"tags"`
	TechStack    string           `json:"techStack"`
	Informacion  string           `json:"informacion"`
	CreationDate *time.Time       `json:"creationDate"`
	Environments []EnvironmentDTO `json:"environments"`
}

// CreateProjectRequest is the body of POST /api/projects
type CreateProjectRequest struct {
	ID           *uint64    `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	Tags         string     `json:"tags"`
	TechStack    string     `json:"techStack"`
	Informacion  string     `json:"informacion"`
	CreationDate *time.Time `json:"creationDate"`
}

// UpdateProjectRequest is the body of PUT /api/projects/:id; absent fields are kept
type UpdateProjectRequest struct {
	Name         *string    `json:"name"`
	Description  *string    `json:"description"`
	Status       *string    `json:"status"`
	Tags         *string    `json:"tags"`
	TechStack    *string    `json:"techStack"`
	Informacion  *string    `json:"informacion"`
	CreationDate *time.Time `json:"creationDate"`
}

func (r CreateProjectRequest) ToInput() services.ProjectInput {
	return services.ProjectInput{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		Status:       r.Status,
		Tags:         r.Tags,
		TechStack:    r.TechStack,
		Informacion:  r.Informacion,
		CreationDate: r.CreationDate,
	}
}

func (r UpdateProjectRequest) ToPatch() services.ProjectPatch {
	return services.ProjectPatch{
		Name:         r.Name,
		Description:  r.Description,
		Status:       r.Status,
		Tags:         r.Tags,
		TechStack:    r.TechStack,
		Informacion:  r.Informacion,
		CreationDate: r.CreationDate,
	}
}

// ToProjectDTO converts a Project model to ProjectDTO, including its preloaded environments
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:           project.ID,
		Name:         project.Name,
		Description:  project.Description,
		Status:       project.Status,
		Tags:         project.Tags,
		TechStack:    project.TechStack,
		Informacion:  project.Informacion,
		CreationDate: project.CreationDate,
		Environments: ToList(project.Environments, ToEnvironmentDTO),
	}
}
