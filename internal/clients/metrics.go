package clients

import (
	"context"
	"encoding/json"
	"fmt"
)

// GPUMetric is one GPU as reported by the metrics collector.
type GPUMetric struct {
	Index         int     `json:"gpu_index"`
	Name          string  `json:"gpu_name"`
	Utilization   float64 `json:"gpu_utilization"`
	MemoryTotalMB float64 `json:"memory_total_mb"`
	MemoryUsedMB  float64 `json:"memory_used_mb"`
}

// GPUMetrics reads GPU usage from the metrics collector.
type GPUMetrics struct {
	client *Client
}

func NewGPUMetrics(client *Client) *GPUMetrics {
	return &GPUMetrics{client: client}
}

// Fetch returns the current metrics. Unlike the other upstreams, a non-2xx answer is an error here.
func (m *GPUMetrics) Fetch(ctx context.Context) ([]GPUMetric, error) {
	relay, err := m.client.Get(ctx, "/gpu_metrics")
	if err != nil {
		return nil, err
	}
	if !relay.OK() {
		return nil, fmt.Errorf("metrics service answered %d", relay.StatusCode)
	}

	var metrics []GPUMetric
	if err := json.Unmarshal(relay.Body, &metrics); err != nil {
		return nil, fmt.Errorf("failed to parse gpu metrics: %w", err)
	}
	if metrics == nil {
		return nil, fmt.Errorf("metrics service returned no data")
	}
	return metrics, nil
}
