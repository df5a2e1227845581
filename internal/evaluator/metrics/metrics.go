package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the application evaluator.
type Metrics struct {
	// Decision outcomes by decision and entry point
	DecisionOutcome *prometheus.CounterVec

	// Lookups the validator reported as performed
	ValidatorLookups prometheus.Counter

	// Validator faults swallowed by the evaluator, by error category
	ValidatorFaults *prometheus.CounterVec

	// Overall evaluation latency, collaborator calls included
	EvaluateLatency prometheus.Histogram
}

// New creates a Metrics instance registered with reg. A nil reg registers with
// the default prometheus registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		DecisionOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cardeval_decision_outcomes_total",
			Help: "Total application decisions by outcome and entry point",
		}, []string{"decision", "entrypoint"}),

		ValidatorLookups: factory.NewCounter(prometheus.CounterOpts{
			Name: "cardeval_decision_validator_lookups_total",
			Help: "Frequent flyer lookups performed by the validator",
		}),

		ValidatorFaults: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "cardeval_decision_validator_faults_total",
			Help: "Frequent flyer validation faults treated as an invalid number",
		}, []string{"category"}),

		EvaluateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cardeval_decision_evaluate_duration_seconds",
			Help:    "Duration of a full application evaluation including collaborator calls",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// IncrementOutcome records a decision outcome.
func (m *Metrics) IncrementOutcome(decision, entrypoint string) {
	if m != nil {
		m.DecisionOutcome.WithLabelValues(decision, entrypoint).Inc()
	}
}

// IncrementLookups records one validator lookup.
func (m *Metrics) IncrementLookups() {
	if m != nil {
		m.ValidatorLookups.Inc()
	}
}

// IncrementFaults records a swallowed validator fault.
func (m *Metrics) IncrementFaults(category string) {
	if m != nil {
		m.ValidatorFaults.WithLabelValues(category).Inc()
	}
}

// ObserveEvaluateLatency records the total evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}
