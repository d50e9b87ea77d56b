package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sahanarao-sps/sps-team30-project/internal/platform/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_AllMetricSetsRegister(t *testing.T) {
	reg := NewRegistry()

	require.NotPanics(t, func() {
		NewHTTPMetrics(reg)
		NewRemoteMetrics(reg)
		NewAnalysisMetrics(reg)
		NewWebSocketMetrics(reg)
		NewRedisMetrics(reg)
	})
}

func TestHandler_ServesRegisteredMetrics(t *testing.T) {
	reg := NewRegistry()
	m := NewAnalysisMetrics(reg)
	m.AnalysesTotal.WithLabelValues("ok").Inc()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `sentimeter_analyses_total{result="ok"} 1`)
}

func TestNewRegistry_ExposesBuildInfo(t *testing.T) {
	reg := NewRegistry()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	info := version.Get()
	body := rec.Body.String()
	assert.Contains(t, body, "sentimeter_build_info{")
	assert.Contains(t, body, `version="`+info.Version+`"`)
	assert.Contains(t, body, `commit="`+info.Commit+`"`)
	assert.Contains(t, body, "sentimeter_process_cpu_seconds_total")
}

func TestHTTPMiddleware_RecordsAPIRoutes(t *testing.T) {
	reg := NewRegistry()
	m := NewHTTPMetrics(reg)

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/api/languages", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for _, target := range []string{"/api/languages", "/health/live"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
	expected := `
# HELP sentimeter_http_in_flight_requests Number of HTTP requests currently being processed.
# TYPE sentimeter_http_in_flight_requests gauge
sentimeter_http_in_flight_requests 0
`
	assert.NoError(t, testutil.CollectAndCompare(m.InFlightGauge, strings.NewReader(expected)))
}

func TestSkipRoute(t *testing.T) {
	tests := []struct {
		route string
		skip  bool
	}{
		{"/metrics", true},
		{"/connection/websocket", true},
		{"/health/ready", true},
		{"/api/surfaces/:id/analyze", false},
		{"/version", false},
	}
	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			assert.Equal(t, tt.skip, skipRoute(tt.route))
		})
	}
}
