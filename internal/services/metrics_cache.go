package services

import (
	"context"
	"sync"
	"time"

	"github.com/yukikurage/portal-api/internal/clients"
	"github.com/yukikurage/portal-api/internal/logging"
)

// UnknownGPU is served when metrics have never been fetched successfully
var UnknownGPU = clients.GPUMetric{
	Index:         -1,
	Name:          "Unknown",
	Utilization:   -1,
	MemoryTotalMB: -1,
	MemoryUsedMB:  -1,
}

// MetricsFetcher loads the current GPU metrics from the source of truth
type MetricsFetcher func(ctx context.Context) ([]clients.GPUMetric, error)

// MetricsCache is a cache-aside view of the GPU metrics. A value younger than ttl is served as is;
// an older one triggers a fetch, and when that fails the previous value (or UnknownGPU) is served.
// Get never returns an error. Concurrent stale reads may each fetch; the last one wins.
type MetricsCache struct {
	ttl   time.Duration
	now   func() time.Time
	fetch MetricsFetcher

	mu        sync.Mutex
	value     []clients.GPUMetric
	fetchedAt time.Time
	hasValue  bool
}

func NewMetricsCache(ttl time.Duration, fetch MetricsFetcher, now func() time.Time) *MetricsCache {
	if now == nil {
		now = time.Now
	}
	return &MetricsCache{ttl: ttl, now: now, fetch: fetch}
}

func (c *MetricsCache) cached() ([]clients.GPUMetric, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fresh := c.hasValue && c.now().Sub(c.fetchedAt) < c.ttl
	return c.value, fresh
}

// Get returns the current metrics
func (c *MetricsCache) Get(ctx context.Context) []clients.GPUMetric {
	if value, fresh := c.cached(); fresh {
		return value
	}

	metrics, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		logging.Logger.WithError(err).Warn("Failed to fetch GPU metrics, serving cached value")
		if c.hasValue {
			return c.value
		}
		return []clients.GPUMetric{UnknownGPU}
	}

	c.value = metrics
	c.fetchedAt = c.now()
	c.hasValue = true
	return metrics
}
