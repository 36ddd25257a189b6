package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the journey module.
type Metrics struct {
	Operations       *prometheus.CounterVec
	Reconstructs     *prometheus.CounterVec
	SweepDeactivated prometheus.Counter
}

// New creates a new Metrics instance with all journey metrics registered.
func New() *Metrics {
	return &Metrics{
		Operations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "importintel_journey_operations_total",
			Help: "Total journey session operations by operation and outcome",
		}, []string{"operation", "outcome"}),

		Reconstructs: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "importintel_journey_reconstructs_total",
			Help: "Total session reconstruction attempts by result",
		}, []string{"result"}),

		SweepDeactivated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "importintel_journey_sweep_deactivated_total",
			Help: "Total sessions soft-deactivated by the idle sweep",
		}),
	}
}

// IncrementOperation records a session operation outcome.
func (m *Metrics) IncrementOperation(operation, outcome string) {
	if m != nil {
		m.Operations.WithLabelValues(operation, outcome).Inc()
	}
}

// IncrementReconstruct records a reconstruction attempt result.
func (m *Metrics) IncrementReconstruct(result string) {
	if m != nil {
		m.Reconstructs.WithLabelValues(result).Inc()
	}
}

// AddSweepDeactivated records sessions deactivated by a sweep pass.
func (m *Metrics) AddSweepDeactivated(n int) {
	if m != nil && n > 0 {
		m.SweepDeactivated.Add(float64(n))
	}
}
