package errors

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yukikurage/portal-api/internal/clients"
	"github.com/yukikurage/portal-api/internal/constants"
	"github.com/yukikurage/portal-api/internal/logging"
	"github.com/yukikurage/portal-api/internal/services"
)

const (
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeInvalidFormat      = "INVALID_FORMAT"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeTimeout            = "TIMEOUT"
	ErrCodeUpstreamError      = "UPSTREAM_ERROR"
)

// APIError is the JSON body of every error response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// defaults holds the error code and fallback message used for each status
var defaults = map[int]APIError{
	http.StatusBadRequest:          {Code: ErrCodeInvalidInput, Message: "Invalid request"},
	http.StatusNotFound:            {Code: ErrCodeNotFound, Message: "Resource not found"},
	http.StatusInternalServerError: {Code: ErrCodeInternalError, Message: "Internal server error"},
	http.StatusBadGateway:          {Code: ErrCodeUpstreamError, Message: "Upstream service unreachable"},
	http.StatusServiceUnavailable:  {Code: ErrCodeServiceUnavailable, Message: "Service temporarily unavailable"},
	http.StatusGatewayTimeout:      {Code: ErrCodeTimeout, Message: "Upstream service timed out"},
}

// Respond aborts the handler chain with status and an APIError body. An empty message is replaced
// by the status' default.
func Respond(c *gin.Context, status int, message string) {
	body := defaults[status]
	if message != "" {
		body.Message = message
	}
	c.AbortWithStatusJSON(status, &body)
}

func NotFound(c *gin.Context, message string) { Respond(c, http.StatusNotFound, message) }

func BadRequest(c *gin.Context, message string) { Respond(c, http.StatusBadRequest, message) }

func InternalError(c *gin.Context, message string) { Respond(c, http.StatusInternalServerError, message) }

func ServiceUnavailable(c *gin.Context, message string) {
	Respond(c, http.StatusServiceUnavailable, message)
}

// BadRequestWithDetails answers 400 with per-field binding details
func BadRequestWithDetails(c *gin.Context, message string, details interface{}) {
	c.AbortWithStatusJSON(http.StatusBadRequest, &APIError{Code: ErrCodeInvalidFormat, Message: message, Details: details})
}

// Logger returns the request-scoped logger set by the request middleware, or the global one.
func Logger(c *gin.Context) *logrus.Entry {
	if v, ok := c.Get(constants.ContextKeyLogger); ok {
		if entry, ok := v.(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.NewEntry(logging.Logger)
}

// RespondServiceError maps an error returned by a service to a response.
// Unexpected errors are logged and answered with a generic 500 so internals do not leak.
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case stderrors.Is(err, services.ErrInvalid):
		BadRequest(c, err.Error())
	case stderrors.Is(err, services.ErrNotFound):
		NotFound(c, err.Error())
	case stderrors.Is(err, services.ErrAIServiceNotConfigured):
		ServiceUnavailable(c, err.Error())
	case clients.Unavailable(err):
		Logger(c).WithError(err).Warn("Upstream circuit open")
		ServiceUnavailable(c, "")
	case stderrors.Is(err, context.DeadlineExceeded):
		Logger(c).WithError(err).Warn("Upstream call timed out")
		Respond(c, http.StatusGatewayTimeout, "")
	default:
		Logger(c).WithError(err).Error("Request failed")
		InternalError(c, "")
	}
}

// RespondUpstreamError answers a failed call to an upstream service that could not be relayed
func RespondUpstreamError(c *gin.Context, err error) {
	switch {
	case clients.Unavailable(err):
		Logger(c).WithError(err).Warn("Upstream circuit open")
		ServiceUnavailable(c, "")
	case stderrors.Is(err, context.DeadlineExceeded):
		Logger(c).WithError(err).Warn("Upstream call timed out")
		Respond(c, http.StatusGatewayTimeout, "")
	default:
		Logger(c).WithError(err).Error("Upstream call failed")
		Respond(c, http.StatusBadGateway, "")
	}
}
