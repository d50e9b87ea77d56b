package httpserver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sahanarao-sps/sps-team30-project/internal/app"
	"github.com/sahanarao-sps/sps-team30-project/internal/domain"
	"github.com/sahanarao-sps/sps-team30-project/internal/platform/config"
	"github.com/sahanarao-sps/sps-team30-project/internal/surface"
)

// --- Mock implementations ---

type mockAppService struct {
	languagesFn     func() []string
	createSurfaceFn func(ctx context.Context) (uuid.UUID, error)
	deleteSurfaceFn func(ctx context.Context, id uuid.UUID) error
	snapshotFn      func(ctx context.Context, id uuid.UUID) (surface.Snapshot, error)
	analyzeFn       func(ctx context.Context, surfaceID uuid.UUID, input domain.UserInput) (app.Result, error)
}

func (m *mockAppService) Languages() []string {
	if m.languagesFn != nil {
		return m.languagesFn()
	}
	return []string{"en", "es"}
}

func (m *mockAppService) CreateSurface(ctx context.Context) (uuid.UUID, error) {
	if m.createSurfaceFn != nil {
		return m.createSurfaceFn(ctx)
	}
	return uuid.New(), nil
}

func (m *mockAppService) DeleteSurface(ctx context.Context, id uuid.UUID) error {
	if m.deleteSurfaceFn != nil {
		return m.deleteSurfaceFn(ctx, id)
	}
	return nil
}

func (m *mockAppService) Snapshot(ctx context.Context, id uuid.UUID) (surface.Snapshot, error) {
	if m.snapshotFn != nil {
		return m.snapshotFn(ctx, id)
	}
	return surface.Snapshot{}, domain.ErrSurfaceNotFound
}

func (m *mockAppService) Analyze(ctx context.Context, surfaceID uuid.UUID, input domain.UserInput) (app.Result, error) {
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, surfaceID, input)
	}
	return app.Result{}, errors.New("not implemented")
}

type stubPresence int

func (s stubPresence) Subscribers(uuid.UUID) int { return int(s) }

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:               "development",
		Port:                 "0",
		AppURL:               "http://localhost:8080",
		AnalyzeRatePerSecond: 100,
		AnalyzeBurst:         100,
	}
}

func newTestServer(t *testing.T, svc appService, opts ...func(*Options)) *Server {
	t.Helper()

	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	return NewServer(testConfig(), svc, o)
}

func withHealthChecks(checks ...HealthCheck) func(*Options) {
	return func(o *Options) {
		o.HealthChecks = checks
	}
}

func withPresence(p SubscriberCounter) func(*Options) {
	return func(o *Options) {
		o.Presence = p
	}
}

func withWebsocketHandler(h http.Handler) func(*Options) {
	return func(o *Options) {
		o.WebsocketHandler = h
	}
}

func withMetricsHandler(h http.Handler) func(*Options) {
	return func(o *Options) {
		o.MetricsHandler = h
	}
}

// do sends a request through the full router, middleware included.
func do(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}
