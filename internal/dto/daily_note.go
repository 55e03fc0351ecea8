package dto

import (
	"errors"
	"time"

	"github.com/yukikurage/portal-api/internal/models"
	"github.com/yukikurage/portal-api/internal/services"
	"github.com/yukikurage/portal-api/internal/utils"
)

type DailyNoteDTO struct {
	ID        uint64    `json:"id"`
	Date      string    `json:"date"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateDailyNoteRequest struct {
	ID      *uint64 `json:"id"`
	Date    *string `json:"date"`
	Content string  `json:"content"`
}

type UpdateDailyNoteRequest struct {
	Date    *string `json:"date"`
	Content *string `json:"content"`
}

// NoteContentRequest carries the content for the by-date endpoints
type NoteContentRequest struct {
	Date    string `json:"date"`
	Content string `json:"content"`
}

func (r CreateDailyNoteRequest) ToInput() (services.DailyNoteInput, error) {
	dates, err := parseDates(r.Date)
	if err != nil {
		return services.DailyNoteInput{}, err
	}
	return services.DailyNoteInput{ID: r.ID, Date: dates[0], Content: r.Content}, nil
}

func (r UpdateDailyNoteRequest) ToPatch() (services.DailyNotePatch, error) {
	if r.Date != nil && *r.Date == "" {
		return services.DailyNotePatch{}, errors.New("date must not be empty")
	}
	dates, err := parseDates(r.Date)
	if err != nil {
		return services.DailyNotePatch{}, err
	}
	return services.DailyNotePatch{Date: dates[0], Content: r.Content}, nil
}

func ToDailyNoteDTO(note models.DailyNote) DailyNoteDTO {
	return DailyNoteDTO{
		ID:        note.ID,
		Date:      utils.FormatDate(note.Date),
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}
