package metrics

import "github.com/prometheus/client_golang/prometheus"

// AnalysisMetrics holds Prometheus metrics for the analyze pipeline and the bar animation.
type AnalysisMetrics struct {
	AnalysesTotal   *prometheus.CounterVec
	BucketsTotal    *prometheus.CounterVec
	AnimationFrames prometheus.Counter
	AnimationRuns   *prometheus.CounterVec
	ActiveSurfaces  prometheus.Gauge
}

// NewAnalysisMetrics creates and registers pipeline metrics on the given registry.
func NewAnalysisMetrics(reg prometheus.Registerer) *AnalysisMetrics {
	m := &AnalysisMetrics{
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Total number of analyze requests, by result.",
		}, []string{"result"}),
		BucketsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Total number of presented scores, by classification bucket.",
		}, []string{"bucket"}),
		AnimationFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "animation",
			Name:      "frames_total",
			Help:      "Total number of bar animation frames drawn.",
		}),
		AnimationRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "animation",
			Name:      "runs_total",
			Help:      "Total number of bar animations, by outcome.",
		}, []string{"outcome"}),
		ActiveSurfaces: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_surfaces",
			Help:      "Number of display surfaces held in the registry.",
		}),
	}

	reg.MustRegister(m.AnalysesTotal, m.BucketsTotal, m.AnimationFrames, m.AnimationRuns, m.ActiveSurfaces)
	return m
}
