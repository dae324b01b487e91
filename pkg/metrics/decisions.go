package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DecisionMetrics records how the pricing and fulfillment engines behave.
type DecisionMetrics struct {
	duration    *prometheus.HistogramVec
	ruleFirings *prometheus.CounterVec
	fulfillment *prometheus.CounterVec
	failures    *prometheus.CounterVec
}

// NewDecisionMetrics registers the decision metrics on the provided registerer.
func NewDecisionMetrics(reg prometheus.Registerer) *DecisionMetrics {
	if reg == nil {
		return &DecisionMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "decision_evaluation_duration_seconds",
		Help:    "Duration of decision engine evaluations in seconds.",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	}, []string{"engine"})
	ruleFirings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_rule_firings_total",
		Help: "Promotion rules fired while pricing orders.",
	}, []string{"rule"})
	fulfillment := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_outcomes_total",
		Help: "Warehouse selections by outcome.",
	}, []string{"outcome"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "decision_failures_total",
		Help: "Decision evaluations that returned an error, by error code.",
	}, []string{"code"})
	reg.MustRegister(duration, ruleFirings, fulfillment, failures)
	return &DecisionMetrics{
		duration:    duration,
		ruleFirings: ruleFirings,
		fulfillment: fulfillment,
		failures:    failures,
	}
}

// ObserveDuration records how long the named engine took.
func (m *DecisionMetrics) ObserveDuration(engine string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(engine)).Observe(duration.Seconds())
}

// IncRuleFiring counts one firing of the named promotion rule.
func (m *DecisionMetrics) IncRuleFiring(rule string) {
	if m == nil || m.ruleFirings == nil {
		return
	}
	m.ruleFirings.WithLabelValues(normalizeLabel(rule)).Inc()
}

// IncFulfillment counts one warehouse selection with the given outcome.
func (m *DecisionMetrics) IncFulfillment(outcome string) {
	if m == nil || m.fulfillment == nil {
		return
	}
	m.fulfillment.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncFailure counts one failed evaluation by error code.
func (m *DecisionMetrics) IncFailure(code string) {
	if m == nil || m.failures == nil {
		return
	}
	m.failures.WithLabelValues(normalizeLabel(code)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
