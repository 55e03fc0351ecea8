package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/portal-api/internal/repository"
)

// Error categories. Every error a service returns for bad input or a missing entity
// matches one of these with errors.Is; anything else is unexpected.
var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid input")
)

type domainError struct {
	kind error
	msg  string
}

func (e *domainError) Error() string { return e.msg }
func (e *domainError) Unwrap() error { return e.kind }

func notFound(msg string) error { return &domainError{kind: ErrNotFound, msg: msg} }
func invalid(msg string) error  { return &domainError{kind: ErrInvalid, msg: msg} }

func invalidf(format string, args ...interface{}) error {
	return invalid(fmt.Sprintf(format, args...))
}

var (
	ErrProjectNotFound     = notFound("project not found")
	ErrServerNotFound      = notFound("server not found")
	ErrEnvironmentNotFound = notFound("environment not found")
	ErrTaskNotFound        = notFound("task not found")
	ErrDailyNoteNotFound   = notFound("daily note not found")

	ErrIDNotAllowed        = invalid("id is assigned by the server and must not be sent on create")
	ErrNameRequired        = invalid("name is required")
	ErrTypeRequired        = invalid("type is required")
	ErrTitleRequired       = invalid("title is required")
	ErrDescriptionRequired = invalid("description is required")
	ErrInvalidStatus       = invalid("status must be one of pendiente, en_progreso, completada")
	ErrInvalidPriority     = invalid("priority must be one of alta, media, baja")
	ErrDateRequired        = invalid("date is required")
	ErrContentTooShort     = invalid("content must have at least 3 characters")
	ErrNoteDateTaken       = invalid("a note already exists for this date")
	ErrInvalidDateRange    = invalid("start date must not be after end date")
	ErrInvalidMonth        = invalid("month must be between 1 and 12")
	ErrPromptRequired      = invalid("prompt is required")
	ErrUnknownBackend      = invalid("unknown prompt backend")
	ErrFilenameRequired    = invalid("filename is required")
	ErrQuestionRequired    = invalid("question is required")
	ErrNoFiles             = invalid("at least one file is required")

	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
)

// lookupErr maps a repository lookup error: missing rows become missing, anything else is wrapped.
func lookupErr(err, missing error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return missing
	}
	return fmt.Errorf("failed to find %s: %w", what, err)
}

// listErr maps a repository listing error, turning an unsupported sort field into a validation error.
func listErr(err error, what string) error {
	if errors.Is(err, repository.ErrUnsupportedSortField) {
		return invalid(err.Error())
	}
	return fmt.Errorf("failed to list %s: %w", what, err)
}
