// Package metrics counts routed queries.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes of a dispatched query, used as the "outcome" label.
const (
	OutcomeOk          = "ok"
	OutcomeAppError    = "app_error"
	OutcomeSystemError = "system_error"
)

type Metrics struct {
	queries *prometheus.CounterVec
	depth   prometheus.Histogram
}

// New creates the query metrics and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ensemble",
				Name:      "queries_total",
				Help:      "Total number of dispatched queries",
			},
			[]string{"kind", "outcome"},
		),
		depth: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "ensemble",
				Name:      "query_depth",
				Help:      "Nesting depth at which queries were dispatched",
				Buckets:   prometheus.LinearBuckets(0, 1, 11),
			},
		),
	}
	for _, c := range []prometheus.Collector{m.queries, m.depth} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Observe records one query of kind at depth.
func (m *Metrics) Observe(kind, outcome string, depth int) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(kind, outcome).Inc()
	m.depth.Observe(float64(depth))
}

// Queries returns the counter for kind and outcome.
func (m *Metrics) Queries(kind, outcome string) prometheus.Counter {
	return m.queries.WithLabelValues(kind, outcome)
}
