package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/portal-api/internal/clients"
)

// GPUMetricsReader returns the latest known GPU metrics and never fails
type GPUMetricsReader interface {
	Get(ctx context.Context) []clients.GPUMetric
}

type MetricsHandler struct {
	gpus GPUMetricsReader
}

func NewMetricsHandler(gpus GPUMetricsReader) *MetricsHandler {
	return &MetricsHandler{gpus: gpus}
}

func (h *MetricsHandler) GPU(c *gin.Context) {
	c.JSON(http.StatusOK, h.gpus.Get(c.Request.Context()))
}
