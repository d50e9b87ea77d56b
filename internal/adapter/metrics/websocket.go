package metrics

import "github.com/prometheus/client_golang/prometheus"

// WebSocketMetrics holds Prometheus metrics for surface subscribers.
type WebSocketMetrics struct {
	ActiveConnections prometheus.Gauge
	EventsPublished   *prometheus.CounterVec
	PublishFailures   prometheus.Counter
}

// NewWebSocketMetrics creates and registers WebSocket metrics on the given registry.
func NewWebSocketMetrics(reg prometheus.Registerer) *WebSocketMetrics {
	m := &WebSocketMetrics{
		ActiveConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "websocket",
			Name:      "active_connections",
			Help:      "Number of active WebSocket connections.",
		}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "websocket",
			Name:      "events_published_total",
			Help:      "Total number of surface events published, by event type.",
		}, []string{"type"}),
		PublishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "websocket",
			Name:      "publish_failures_total",
			Help:      "Total number of surface events that failed to publish.",
		}),
	}

	reg.MustRegister(m.ActiveConnections, m.EventsPublished, m.PublishFailures)
	return m
}
