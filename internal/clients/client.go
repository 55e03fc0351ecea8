package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/yukikurage/portal-api/internal/config"
	"github.com/yukikurage/portal-api/internal/logging"
)

// Relay is an upstream response passed back to the caller as-is.
type Relay struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// OK reports whether the upstream answered with a 2xx status.
func (r *Relay) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client calls one upstream service through a circuit breaker. Only transport failures count
// against the breaker; an upstream that answers, whatever the status, is healthy.
type Client struct {
	name    string
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewBreaker builds the circuit breaker used for the upstream called name.
func NewBreaker(name string, cfg config.UpstreamConfig) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cfg.BreakerOpenDelay,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
		},
	})
}

func NewClient(name, baseURL string, cfg config.UpstreamConfig) *Client {
	return &Client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		breaker: NewBreaker(name, cfg),
	}
}

// Unavailable reports whether err means the breaker refused the call.
func Unavailable(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// Do sends one request to path and reads the whole response.
func (c *Client) Do(ctx context.Context, method, path string, body io.Reader, contentType string) (*Relay, error) {
	started := time.Now()
	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return nil, err
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return &Relay{
			StatusCode:  resp.StatusCode,
			ContentType: resp.Header.Get("Content-Type"),
			Body:        payload,
		}, nil
	})

	entry := logging.Logger.WithFields(logrus.Fields{
		"upstream": c.name,
		"method":   method,
		"path":     path,
		"latency":  time.Since(started).String(),
	})
	if err != nil {
		entry.WithError(err).Error("Upstream request failed")
		return nil, fmt.Errorf("%s %s %s: %w", c.name, method, path, err)
	}

	relay := result.(*Relay)
	entry.WithField("status", relay.StatusCode).Debug("Upstream request completed")
	return relay, nil
}

func (c *Client) Get(ctx context.Context, path string) (*Relay, error) {
	return c.Do(ctx, http.MethodGet, path, nil, "")
}

// Post sends an empty POST body.
func (c *Client) Post(ctx context.Context, path string) (*Relay, error) {
	return c.Do(ctx, http.MethodPost, path, nil, "")
}

// PostJSON encodes payload as the JSON request body.
func (c *Client) PostJSON(ctx context.Context, path string, payload interface{}) (*Relay, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}
	return c.Do(ctx, http.MethodPost, path, bytes.NewReader(body), "application/json")
}
