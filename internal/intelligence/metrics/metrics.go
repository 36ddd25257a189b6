package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the intelligence module.
type Metrics struct {
	Requests     *prometheus.CounterVec
	StageLatency *prometheus.HistogramVec
}

// New creates a new Metrics instance with all intelligence metrics registered.
func New() *Metrics {
	return &Metrics{
		Requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "importintel_intelligence_requests_total",
			Help: "Total intelligence requests by operation and outcome",
		}, []string{"operation", "outcome"}),

		StageLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "importintel_intelligence_stage_duration_seconds",
			Help:    "Duration of each intelligence pipeline stage",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.05, 0.1, 0.5},
		}, []string{"stage"}),
	}
}

// IncrementRequest records a request outcome for an operation.
func (m *Metrics) IncrementRequest(operation, outcome string) {
	if m != nil {
		m.Requests.WithLabelValues(operation, outcome).Inc()
	}
}

// ObserveStageLatency records how long a pipeline stage took.
func (m *Metrics) ObserveStageLatency(stage string, d time.Duration) {
	if m != nil {
		m.StageLatency.WithLabelValues(stage).Observe(d.Seconds())
	}
}
