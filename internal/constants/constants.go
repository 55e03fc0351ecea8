package constants

// Pagination
const (
	DefaultPage     = 0
	DefaultPageSize = 20
	MaxPageSize     = 200
)

// Gin context keys
const (
	ContextKeyRequestID = "request_id"
	ContextKeyLogger    = "logger"
	ContextKeyID        = "id"
)

const HeaderRequestID = "X-Request-ID"

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Daily notes
const MinNoteContentLength = 3

// AI task suggestions
const MaxSuggestedTasks = 20
