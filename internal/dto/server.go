package dto

import (
	"github.com/yukikurage/portal-api/internal/models"
	"github.com/yukikurage/portal-api/internal/services"
)

type ServerDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	IP    string `json:"ip"`
	OS    string `json:"os"`
	Notes string `json:"notes"`
}

type CreateServerRequest struct {
	ID    *uint64 `json:"id"`
	Name  string  `json:"name"`
	IP    string  `json:"ip"`
	OS    string  `json:"os"`
	Notes string  `json:"notes"`
}

type UpdateServerRequest struct {
	Name  *string `json:"name"`
	IP    *string `json:"ip"`
	OS    *string `json:"os"`
	Notes *string `json:"notes"`
}

func (r CreateServerRequest) ToInput() services.ServerInput {
	return services.ServerInput{ID: r.ID, Name: r.Name, IP: r.IP, OS: r.OS, Notes: r.Notes}
}

func (r UpdateServerRequest) ToPatch() services.ServerPatch {
	return services.ServerPatch{Name: r.Name, IP: r.IP, OS: r.OS, Notes: r.Notes}
}

func ToServerDTO(server models.Server) ServerDTO {
	return ServerDTO{
		ID:    server.ID,
		Name:  server.Name,
		IP:    server.IP,
		OS:    server.OS,
		Notes: server.Notes,
	}
}
