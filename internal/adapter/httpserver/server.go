package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sahanarao-sps/sps-team30-project/internal/adapter/metrics"
	"github.com/sahanarao-sps/sps-team30-project/internal/app"
	"github.com/sahanarao-sps/sps-team30-project/internal/domain"
	"github.com/sahanarao-sps/sps-team30-project/internal/platform/config"
	"github.com/sahanarao-sps/sps-team30-project/internal/surface"
)

type appService interface {
	Languages() []string
	CreateSurface(ctx context.Context) (uuid.UUID, error)
	DeleteSurface(ctx context.Context, id uuid.UUID) error
	Snapshot(ctx context.Context, id uuid.UUID) (surface.Snapshot, error)
	Analyze(ctx context.Context, surfaceID uuid.UUID, input domain.UserInput) (app.Result, error)
}

// SubscriberCounter reports websocket viewers of a surface.
type SubscriberCounter interface {
	Subscribers(surfaceID uuid.UUID) int
}

// Options carries the optional collaborators of the server.
type Options struct {
	WebsocketHandler http.Handler      // nil disables /connection/websocket
	Presence         SubscriberCounter // nil omits subscriber counts
	MetricsHandler   http.Handler      // nil disables /metrics
	HTTPMetrics      *metrics.HTTPMetrics
	HealthChecks     []HealthCheck
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	app      appService
	presence SubscriberCounter

	websocketHandler http.Handler
	metricsHandler   http.Handler
	httpMetrics      *metrics.HTTPMetrics

	healthChecks []HealthCheck
	startTime    time.Time
}

func NewServer(cfg *config.Config, app appService, opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:             e,
		config:           cfg,
		app:              app,
		presence:         opts.Presence,
		websocketHandler: opts.WebsocketHandler,
		metricsHandler:   opts.MetricsHandler,
		httpMetrics:      opts.HTTPMetrics,
		healthChecks:     opts.HealthChecks,
		startTime:        time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// ServeHTTP exposes the router, mainly for tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}
