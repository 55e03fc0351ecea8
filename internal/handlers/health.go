package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apierrors "github.com/yukikurage/portal-api/internal/errors"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health reports whether the API and its database are reachable
func (h *HealthHandler) Health(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		apierrors.Logger(c).WithError(err).Error("Database ping failed")
		apierrors.ServiceUnavailable(c, "database unreachable")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Portal API is running",
	})
}
