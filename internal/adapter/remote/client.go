package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/sahanarao-sps/sps-team30-project/internal/adapter/metrics"
	"github.com/sahanarao-sps/sps-team30-project/internal/domain"
)

const (
	maxResponseBytes = 1 << 20

	breakerFailureThreshold = 5
	breakerDelay            = 30 * time.Second
)

// Options configures a collaborator client.
type Options struct {
	Timeout        time.Duration
	CircuitBreaker bool
	Metrics        *metrics.RemoteMetrics // nil disables metrics
	HTTPClient     *http.Client           // overrides Timeout when set
}

// client posts JSON to a single collaborator endpoint and returns the text body.
type client struct {
	name    string
	url     string
	http    *http.Client
	breaker circuitbreaker.CircuitBreaker[any]
	metrics *metrics.RemoteMetrics
}

func newClient(name, baseURL, path string, opts Options) *client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	c := &client{
		name:    name,
		url:     strings.TrimSuffix(baseURL, "/") + path,
		http:    httpClient,
		metrics: opts.Metrics,
	}
	if opts.CircuitBreaker {
		c.breaker = newBreaker(name, opts.Metrics)
	}
	return c
}

func newBreaker(name string, m *metrics.RemoteMetrics) circuitbreaker.CircuitBreaker[any] {
	return circuitbreaker.NewBuilder[any]().
		WithFailureThreshold(breakerFailureThreshold).
		WithDelay(breakerDelay).
		WithSuccessThreshold(1).
		OnStateChanged(func(e circuitbreaker.StateChangedEvent) {
			slog.Warn("Circuit breaker state changed",
				"component", name,
				"from", e.OldState.String(),
				"to", e.NewState.String(),
			)
			if m != nil {
				m.BreakerState.WithLabelValues(name).Set(stateToFloat(e.NewState))
			}
		}).
		Build()
}

func stateToFloat(state circuitbreaker.State) float64 {
	switch state {
	case circuitbreaker.ClosedState:
		return 0
	case circuitbreaker.HalfOpenState:
		return 1
	case circuitbreaker.OpenState:
		return 2
	default:
		return -1
	}
}

// post sends payload as JSON and returns the response body as text.
func (c *client) post(ctx context.Context, payload any) (string, error) {
	start := time.Now()

	body, err := c.do(ctx, payload)
	if err != nil {
		c.observe(start, "error")
		return "", err
	}

	c.observe(start, "success")
	return body, nil
}

func (c *client) do(ctx context.Context, payload any) (string, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode %s request: %w", c.name, err)
	}

	if c.breaker != nil && !c.breaker.TryAcquirePermit() {
		c.fail("circuit_open")
		return "", &domain.TransportError{Endpoint: c.url, Err: circuitbreaker.ErrOpen}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("build %s request: %w", c.name, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.recordFailure(err)
		c.fail("transport")
		return "", &domain.TransportError{Endpoint: c.url, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.WarnContext(ctx, "Failed to close collaborator response body", "endpoint", c.url, "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		statusErr := fmt.Errorf("status %d", resp.StatusCode)
		if resp.StatusCode >= 500 {
			c.recordFailure(statusErr)
		} else {
			c.recordSuccess()
		}
		c.fail("status")
		return "", &domain.TransportError{Endpoint: c.url, StatusCode: resp.StatusCode, Err: statusErr}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		c.recordFailure(err)
		c.fail("read_body")
		return "", &domain.TransportError{Endpoint: c.url, StatusCode: resp.StatusCode, Err: err}
	}

	c.recordSuccess()
	return string(data), nil
}

func (c *client) recordFailure(err error) {
	if c.breaker != nil {
		c.breaker.RecordError(err)
	}
}

func (c *client) recordSuccess() {
	if c.breaker != nil {
		c.breaker.RecordSuccess()
	}
}

func (c *client) fail(reason string) {
	if c.metrics != nil {
		c.metrics.Failures.WithLabelValues(c.name, reason).Inc()
	}
}

func (c *client) observe(start time.Time, outcome string) {
	if c.metrics != nil {
		c.metrics.RequestDuration.WithLabelValues(c.name, outcome).Observe(time.Since(start).Seconds())
	}
}
