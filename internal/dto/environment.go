package dto

import (
	"github.com/yukikurage/portal-api/internal/models"
	"github.com/yukikurage/portal-api/internal/services"
)

// EnvironmentDTO represents an environment; the server is embedded when loaded
type EnvironmentDTO struct {
	ID                 uint64     `json:"id"`
	Type               string     `json:"type"`
	DeployInstructions string     `json:"deployInstructions"`
	Commands           string     `json:"commands"`
	ProjectID          *uint64    `json:"projectId"`
	ServerID           *uint64    `json:"serverId"`
	Server             *ServerDTO `json:"server,omitempty"`
}

type CreateEnvironmentRequest struct {
	ID                 *uint64 `json:"id"`
	Type               string  `json:"type"`
	DeployInstructions string  `json:"deployInstructions"`
	Commands           string  `json:"commands"`
	ProjectID          *uint64 `json:"projectId"`
	ServerID           *uint64 `json:"serverId"`
}

type UpdateEnvironmentRequest struct {
	Type               *string `json:"type"`
	DeployInstructions *string `json:"deployInstructions"`
	Commands           *string `json:"commands"`
	ProjectID          *uint64 `json:"projectId"`
	ServerID           *uint64 `json:"serverId"`
}

func (r CreateEnvironmentRequest) ToInput() services.EnvironmentInput {
	return services.EnvironmentInput{
		ID:                 r.ID,
		Type:               r.Type,
		DeployInstructions: r.DeployInstructions,
		Commands:           r.Commands,
		ProjectID:          r.ProjectID,
		ServerID:           r.ServerID,
	}
}

func (r UpdateEnvironmentRequest) ToPatch() services.EnvironmentPatch {
	return services.EnvironmentPatch{
		Type:               r.Type,
		DeployInstructions: r.DeployInstructions,
		Commands:           r.Commands,
		ProjectID:          r.ProjectID,
		ServerID:           r.ServerID,
	}
}

func ToEnvironmentDTO(env models.Environment) EnvironmentDTO {
	dto := EnvironmentDTO{
		ID:                 env.ID,
		Type:               env.Type,
		DeployInstructions: env.DeployInstructions,
		Commands:           env.Commands,
		ProjectID:          env.ProjectID,
		ServerID:           env.ServerID,
	}
	if env.Server != nil {
		server := ToServerDTO(*env.Server)
		dto.Server = &server
	}
	return dto
}
