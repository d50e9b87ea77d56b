package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sahanarao-sps/sps-team30-project/internal/platform/version"
)

const (
	startupProbeTimeout   = 2 * time.Second
	readinessProbeTimeout = 5 * time.Second
)

// HealthCheck is a named dependency probe used by startup and readiness.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type checkResult struct {
	Name      string  `json:"name"`
	Healthy   bool    `json:"healthy"`
	LatencyMS float64 `json:"latency_ms"`
	Error     string  `json:"error,omitempty"`
}

type readinessResponse struct {
	Status string        `json:"status"`
	Checks []checkResult `json:"checks"`
}

type livenessResponse struct {
	Status  string  `json:"status"`
	Uptime  float64 `json:"uptime"`
	Version string  `json:"version"`
}

func (s *Server) registerHealthRoutes() {
	s.echo.GET("/health/startup", s.probe(startupProbeTimeout))
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.probe(readinessProbeTimeout))
	s.echo.GET("/version", s.handleVersion)
}

func (s *Server) handleLiveness(c echo.Context) error {
	return c.JSON(http.StatusOK, livenessResponse{
		Status:  "ok",
		Uptime:  time.Since(s.startTime).Seconds(),
		Version: version.Version,
	})
}

// probe runs every check under one deadline and reports each result.
func (s *Server) probe(timeout time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		defer cancel()

		resp := readinessResponse{Status: "ready", Checks: make([]checkResult, 0, len(s.healthChecks))}
		for _, hc := range s.healthChecks {
			result := runCheck(ctx, hc)
			if !result.Healthy {
				resp.Status = "unhealthy"
			}
			resp.Checks = append(resp.Checks, result)
		}

		status := http.StatusOK
		if resp.Status != "ready" {
			status = http.StatusServiceUnavailable
		}
		return c.JSON(status, resp)
	}
}

func runCheck(ctx context.Context, hc HealthCheck) checkResult {
	start := time.Now()
	err := hc.Check(ctx)
	result := checkResult{
		Name:      hc.Name,
		Healthy:   err == nil,
		LatencyMS: float64(time.Since(start).Microseconds()) / 1000,
	}
	if err != nil {
		slog.WarnContext(ctx, "Health check failed", "check", hc.Name, "error", err)
		result.Error = err.Error()
	}
	return result
}

func (s *Server) handleVersion(c echo.Context) error {
	return c.JSON(http.StatusOK, version.Get())
}
