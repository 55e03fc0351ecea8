package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yukikurage/portal-api/internal/constants"
	apierrors "github.com/yukikurage/portal-api/internal/errors"
)

// RequestLogger tags every request with an id (taken from X-Request-ID when the caller sends one),
// stores a request-scoped logger in the context and writes one access log line per request.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(constants.HeaderRequestID, requestID)

		entry := logger.WithField("request_id", requestID)
		c.Set(constants.ContextKeyRequestID, requestID)
		c.Set(constants.ContextKeyLogger, entry)

		started := time.Now()
		c.Next()

		fields := logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"route":    c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(started).String(),
			"client":   c.ClientIP(),
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.WithFields(fields).Error("Request served")
		case status >= 400:
			entry.WithFields(fields).Warn("Request served")
		default:
			entry.WithFields(fields).Info("Request served")
		}
	}
}

// Recovery turns a panic into a 500 and logs it with the request id
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		apierrors.Logger(c).WithField("panic", recovered).Error("Handler panicked")
		apierrors.InternalError(c, "")
	})
}
