// Package metrics exposes document store activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records store transactions. It implements docstore.Observer.
type Metrics struct {
	registry     *prometheus.Registry
	transactions *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

// New creates a registry with the transaction collectors and the standard
// Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zaloga",
			Subsystem: "docstore",
			Name:      "transactions_total",
			Help:      "Document store operations by document, operation and outcome.",
		}, []string{"document", "op", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "zaloga",
			Subsystem: "docstore",
			Name:      "transaction_duration_seconds",
			Help:      "Time spent holding the document lock, including waiting for it.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{"document", "op"}),
	}
	reg.MustRegister(
		m.transactions,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveTransaction implements docstore.Observer.
func (m *Metrics) ObserveTransaction(document, op, outcome string, d time.Duration) {
	m.transactions.WithLabelValues(document, op, outcome).Inc()
	m.duration.WithLabelValues(document, op).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
