package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the lookup cache.
type Metrics struct {
	Lookups      *prometheus.CounterVec
	SweepDeleted prometheus.Counter
}

// New creates a new Metrics instance with all cache metrics registered.
func New() *Metrics {
	return &Metrics{
		Lookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "importintel_cache_lookups_total",
			Help: "Cache lookups by kind and outcome",
		}, []string{"kind", "outcome"}), // outcome: hit, miss, expired, store_error

		SweepDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "importintel_cache_sweep_deleted_total",
			Help: "Entries removed by the periodic TTL sweep",
		}),
	}
}

// IncrementLookup records a cache lookup outcome.
func (m *Metrics) IncrementLookup(kind, outcome string) {
	if m != nil {
		m.Lookups.WithLabelValues(kind, outcome).Inc()
	}
}

// AddSweepDeleted records entries removed by a sweep pass.
func (m *Metrics) AddSweepDeleted(n int) {
	if m != nil && n > 0 {
		m.SweepDeleted.Add(float64(n))
	}
}
