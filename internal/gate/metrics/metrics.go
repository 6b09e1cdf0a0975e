package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the onboarding gate.
type Metrics struct {
	DecisionsAllowed prometheus.Counter
	DecisionsBlocked *prometheus.CounterVec
	EvaluateDuration prometheus.Histogram
}

// New creates a new Metrics instance with all gate metrics registered.
func New() *Metrics {
	return &Metrics{
		DecisionsAllowed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dutywire_gate_decisions_allowed_total",
			Help: "Total number of sign-in attempts allowed through the gate",
		}),
		DecisionsBlocked: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dutywire_gate_decisions_blocked_total",
			Help: "Total number of sign-in attempts blocked, by block code",
		}, []string{"code"}),
		EvaluateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "dutywire_gate_evaluate_duration_seconds",
			Help:    "Duration of gate evaluations (sign-in critical path)",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
	}
}

// ObserveAllowed records one allowed decision.
func (m *Metrics) ObserveAllowed(start time.Time) {
	m.DecisionsAllowed.Inc()
	m.EvaluateDuration.Observe(time.Since(start).Seconds())
}

// ObserveBlocked records one blocked decision with its code.
func (m *Metrics) ObserveBlocked(code string, start time.Time) {
	m.DecisionsBlocked.WithLabelValues(code).Inc()
	m.EvaluateDuration.Observe(time.Since(start).Seconds())
}
