package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/yukikurage/portal-api/internal/constants"
	"github.com/yukikurage/portal-api/internal/models"
	"github.com/yukikurage/portal-api/internal/repository"
	"github.com/yukikurage/portal-api/internal/utils"
)

// DailyNoteService handles daily note business logic. There is at most one note per calendar day.
type DailyNoteService struct {
	repo repository.DailyNoteRepository
	now  func() time.Time
}

// NewDailyNoteService creates a new DailyNoteService
func NewDailyNoteService(repo repository.DailyNoteRepository) *DailyNoteService {
	return &DailyNoteService{repo: repo, now: time.Now}
}

type DailyNoteInput struct {
	ID      *uint64
	Date    *datatypes.Date
	Content string
}

// DailyNotePatch holds the fields to change on a note; nil fields are left untouched
type DailyNotePatch struct {
	Date    *datatypes.Date
	Content *string
}

// Apply merges the patch into note. Content is stored trimmed.
func (p DailyNotePatch) Apply(note *models.DailyNote) {
	if p.Date != nil {
		note.Date = *p.Date
	}
	if p.Content != nil {
		note.Content = strings.TrimSpace(*p.Content)
	}
}

// NoteStats is the aggregate view of all notes
type NoteStats struct {
	Total              int64 `json:"total"`
	EsteMes            int64 `json:"este_mes"`
	EsteAnio           int64 `json:"este_año"`
	EstaSemana         int64 `json:"esta_semana"`
	PromedioCaracteres int64 `json:"promedio_caracteres"`
}

func validateContent(content string) error {
	if len([]rune(content)) < constants.MinNoteContentLength {
		return ErrContentTooShort
	}
	return nil
}

func (s *DailyNoteService) List() ([]models.DailyNote, error) {
	return s.find(repository.DailyNoteFilter{})
}

func (s *DailyNoteService) find(filter repository.DailyNoteFilter) ([]models.DailyNote, error) {
	notes, err := s.repo.FindAll(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily notes: %w", err)
	}
	return notes, nil
}

func (s *DailyNoteService) Get(id uint64) (*models.DailyNote, error) {
	note, err := s.repo.FindByID(id)
	if err != nil {
		return nil, lookupErr(err, ErrDailyNoteNotFound, "daily note")
	}
	return note, nil
}

func (s *DailyNoteService) GetByDate(date datatypes.Date) (*models.DailyNote, error) {
	note, err := s.repo.FindByDate(date)
	if err != nil {
		return nil, lookupErr(err, ErrDailyNoteNotFound, "daily note")
	}
	return note, nil
}

func (s *DailyNoteService) Search(filter repository.DailyNoteFilter, page repository.PageRequest) (*repository.Page[models.DailyNote], error) {
	if filter.StartDate != nil && filter.EndDate != nil && time.Time(*filter.StartDate).After(time.Time(*filter.EndDate)) {
		return nil, ErrInvalidDateRange
	}
	result, err := s.repo.List(filter, page)
	if err != nil {
		return nil, listErr(err, "daily notes")
	}
	return result, nil
}

// ListByDateRange returns the notes between from and to, both inclusive, ordered by date
func (s *DailyNoteService) ListByDateRange(from, to datatypes.Date) ([]models.DailyNote, error) {
	if time.Time(from).After(time.Time(to)) {
		return nil, ErrInvalidDateRange
	}
	return s.find(repository.DailyNoteFilter{StartDate: &from, EndDate: &to})
}

func (s *DailyNoteService) ListByMonth(year int, month time.Month) ([]models.DailyNote, error) {
	if month < time.January || month > time.December {
		return nil, ErrInvalidMonth
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return s.ListByDateRange(datatypes.Date(first), datatypes.Date(first.AddDate(0, 1, -1)))
}

func (s *DailyNoteService) ListByYear(year int) ([]models.DailyNote, error) {
	first := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return s.ListByDateRange(datatypes.Date(first), datatypes.Date(first.AddDate(1, 0, -1)))
}

func (s *DailyNoteService) ListCurrentMonth() ([]models.DailyNote, error) {
	now := s.now()
	return s.ListByMonth(now.Year(), now.Month())
}

// SearchContent returns the notes whose content contains text, ignoring case
func (s *DailyNoteService) SearchContent(text string) ([]models.DailyNote, error) {
	return s.find(repository.DailyNoteFilter{Content: &text})
}

func (s *DailyNoteService) Exists(date datatypes.Date) (bool, error) {
	exists, err := s.repo.ExistsByDate(date)
	if err != nil {
		return false, fmt.Errorf("failed to check daily note: %w", err)
	}
	return exists, nil
}

// NotesMap returns the content of each note in the range keyed by its YYYY-MM-DD date
func (s *DailyNoteService) NotesMap(from, to datatypes.Date) (map[string]string, error) {
	notes, err := s.ListByDateRange(from, to)
	if err != nil {
		return nil, err
	}
	result := make(map[string]string, len(notes))
	for _, note := range notes {
		result[utils.FormatDate(note.Date)] = note.Content
	}
	return result, nil
}

// Create stores a new note; the date must be free
func (s *DailyNoteService) Create(input DailyNoteInput) (*models.DailyNote, error) {
	if input.ID != nil {
		return nil, ErrIDNotAllowed
	}
	if input.Date == nil {
		return nil, ErrDateRequired
	}
	content := strings.TrimSpace(input.Content)
	if err := validateContent(content); err != nil {
		return nil, err
	}

	taken, err := s.Exists(*input.Date)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrNoteDateTaken
	}

	note := &models.DailyNote{Date: *input.Date, Content: content}
	if err := s.repo.Create(note); err != nil {
		return nil, fmt.Errorf("failed to create daily note: %w", err)
	}
	return note, nil
}

// CreateOrUpdate upserts the note for date. Blank content deletes the note instead,
// and the result is nil whenever no note is left for the date.
func (s *DailyNoteService) CreateOrUpdate(date datatypes.Date, content string) (*models.DailyNote, error) {
	content = strings.TrimSpace(content)

	existing, err := s.GetByDate(date)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if content == "" {
		if existing != nil {
			if err := s.repo.Delete(existing.ID); err != nil {
				return nil, fmt.Errorf("failed to delete daily note: %w", err)
			}
		}
		return nil, nil
	}

	if err := validateContent(content); err != nil {
		return nil, err
	}

	if existing == nil {
		note := &models.DailyNote{Date: date, Content: content}
		if err := s.repo.Create(note); err != nil {
			return nil, fmt.Errorf("failed to create daily note: %w", err)
		}
		return note, nil
	}

	existing.Content = content
	if err := s.repo.Update(existing); err != nil {
		return nil, fmt.Errorf("failed to update daily note: %w", err)
	}
	return existing, nil
}

// Update merges patch into the note. Moving it to another date requires that date to be free.
func (s *DailyNoteService) Update(id uint64, patch DailyNotePatch) (*models.DailyNote, error) {
	note, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if patch.Date != nil && !utils.SameDate(*patch.Date, note.Date) {
		taken, err := s.Exists(*patch.Date)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrNoteDateTaken
		}
	}

	patch.Apply(note)
	if err := validateContent(note.Content); err != nil {
		return nil, err
	}

	if err := s.repo.Update(note); err != nil {
		return nil, fmt.Errorf("failed to update daily note: %w", err)
	}
	return note, nil
}

// UpdateByDate replaces the content of the note for date
func (s *DailyNoteService) UpdateByDate(date datatypes.Date, content string) (*models.DailyNote, error) {
	note, err := s.GetByDate(date)
	if err != nil {
		return nil, err
	}

	note.Content = strings.TrimSpace(content)
	if err := validateContent(note.Content); err != nil {
		return nil, err
	}

	if err := s.repo.Update(note); err != nil {
		return nil, fmt.Errorf("failed to update daily note: %w", err)
	}
	return note, nil
}

func (s *DailyNoteService) Delete(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete daily note: %w", err)
	}
	return nil
}

// DeleteByDate deletes the note for date and reports whether there was one
func (s *DailyNoteService) DeleteByDate(date datatypes.Date) (bool, error) {
	note, err := s.GetByDate(date)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := s.repo.Delete(note.ID); err != nil {
		return false, fmt.Errorf("failed to delete daily note: %w", err)
	}
	return true, nil
}

// Stats counts notes overall and in the current month, year and week (weeks start on Monday),
// and reports the rounded average content length
func (s *DailyNoteService) Stats() (*NoteStats, error) {
	now := s.now()
	today := utils.DateOf(now)
	t := time.Time(today)

	startOfMonth := datatypes.Date(time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC))
	startOfYear := datatypes.Date(time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC))
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	startOfWeek := datatypes.Date(t.AddDate(0, 0, -daysSinceMonday))

	var stats NoteStats
	var err error
	if stats.Total, err = s.repo.Count(nil, nil); err != nil {
		return nil, fmt.Errorf("failed to count daily notes: %w", err)
	}
	if stats.EsteMes, err = s.repo.Count(&startOfMonth, &today); err != nil {
		return nil, fmt.Errorf("failed to count daily notes: %w", err)
	}
	if stats.EsteAnio, err = s.repo.Count(&startOfYear, &today); err != nil {
		return nil, fmt.Errorf("failed to count daily notes: %w", err)
	}
	if stats.EstaSemana, err = s.repo.Count(&startOfWeek, &today); err != nil {
		return nil, fmt.Errorf("failed to count daily notes: %w", err)
	}

	avg, err := s.repo.AverageContentLength()
	if err != nil {
		return nil, fmt.Errorf("failed to average daily notes: %w", err)
	}
	stats.PromedioCaracteres = int64(math.Round(avg))

	return &stats, nil
}
