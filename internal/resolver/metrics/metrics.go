package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the resolver module.
type Metrics struct {
	Resolutions    *prometheus.CounterVec
	ResolveLatency prometheus.Histogram
}

// New creates a new Metrics instance with all resolver metrics registered.
func New() *Metrics {
	return &Metrics{
		Resolutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "importintel_resolutions_total",
			Help: "Total resolution attempts by strategy and outcome",
		}, []string{"strategy", "outcome"}),

		ResolveLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "importintel_resolve_duration_seconds",
			Help:    "Duration of vehicle identity resolution",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
	}
}

// IncrementResolution records a resolution attempt outcome.
func (m *Metrics) IncrementResolution(strategy, outcome string) {
	if m != nil {
		m.Resolutions.WithLabelValues(strategy, outcome).Inc()
	}
}

// ObserveResolveLatency records the duration of a resolution call.
func (m *Metrics) ObserveResolveLatency(d time.Duration) {
	if m != nil {
		m.ResolveLatency.Observe(d.Seconds())
	}
}
