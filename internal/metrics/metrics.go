package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds the Prometheus metrics for the decision engine.
type Registry struct {
	Evaluations  *prometheus.CounterVec
	GateFailures *prometheus.CounterVec
	Decisions    *prometheus.CounterVec
	Confidence   *prometheus.HistogramVec
}

// NewRegistry creates the engine metrics and registers them with the given
// registerer. Pass prometheus.DefaultRegisterer for the process registry.
func NewRegistry(reg prometheus.Registerer) *Registry {
	r := &Registry{
		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "playbook_evaluations_total",
				Help: "Strategy evaluations by strategy and outcome",
			},
			[]string{"strategy", "outcome"},
		),
		GateFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "playbook_gate_failures_total",
				Help: "Gatekeeper failures by strategy",
			},
			[]string{"strategy"},
		),
		Decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "playbook_decisions_total",
				Help: "Composite decisions by selected strategy (none for NO_TRADE)",
			},
			[]string{"best_signal"},
		),
		Confidence: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "playbook_confidence",
				Help:    "Confidence of valid strategy results",
				Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
			},
			[]string{"strategy"},
		),
	}

	reg.MustRegister(r.Evaluations, r.GateFailures, r.Decisions, r.Confidence)
	return r
}

// ObserveEvaluation records one strategy evaluation outcome.
func (r *Registry) ObserveEvaluation(strategy string, valid bool, confidence float64) {
	if r == nil {
		return
	}
	outcome := "valid"
	if !valid {
		outcome = "gate_failure"
		r.GateFailures.WithLabelValues(strategy).Inc()
	} else {
		r.Confidence.WithLabelValues(strategy).Observe(confidence)
	}
	r.Evaluations.WithLabelValues(strategy, outcome).Inc()
}

// ObserveDecision records the cascade outcome.
func (r *Registry) ObserveDecision(bestSignal string) {
	if r == nil {
		return
	}
	if bestSignal == "" {
		bestSignal = "none"
	}
	r.Decisions.WithLabelValues(bestSignal).Inc()
}
