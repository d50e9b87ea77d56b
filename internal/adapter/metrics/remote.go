package metrics

import "github.com/prometheus/client_golang/prometheus"

// RemoteMetrics holds Prometheus metrics for calls to the text-analysis collaborators.
type RemoteMetrics struct {
	RequestDuration *prometheus.HistogramVec
	Failures        *prometheus.CounterVec
	BreakerState    *prometheus.GaugeVec
}

// NewRemoteMetrics creates and registers collaborator metrics on the given registry.
func NewRemoteMetrics(reg prometheus.Registerer) *RemoteMetrics {
	m := &RemoteMetrics{
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "remote",
			Name:      "request_duration_seconds",
			Help:      "Duration of collaborator requests in seconds, by endpoint and outcome.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint", "outcome"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "remote",
			Name:      "failures_total",
			Help:      "Total number of failed collaborator requests, by endpoint and reason.",
		}, []string{"endpoint", "reason"}),
		BreakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "remote",
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state per endpoint (0=closed, 1=half-open, 2=open).",
		}, []string{"endpoint"}),
	}

	reg.MustRegister(m.RequestDuration, m.Failures, m.BreakerState)
	return m
}
