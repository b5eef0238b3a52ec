// Package metrics counts what one keyvars run did: store calls, enumerated
// and discarded entries, injected variables. Counters live in a private
// registry and can be written out in the Prometheus text format for a
// node_exporter textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Store call results
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Metrics holds the counters of a single run
type Metrics struct {
	registry   *prometheus.Registry
	storeCalls *prometheus.CounterVec
	enumerated prometheus.Counter
	discarded  prometheus.Counter
	injected   prometheus.Gauge
}

// New creates the counters and registers them in a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		storeCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keyvars_store_calls_total",
				Help: "Credential store calls by operation and result",
			},
			[]string{"op", "result"},
		),
		enumerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "keyvars_enumerated_entries_total",
			Help: "Entries read from the credential store listing",
		}),
		discarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "keyvars_foreign_entries_total",
			Help: "Listed entries discarded because they do not belong to keyvars",
		}),
		injected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "keyvars_injected_variables",
			Help: "Variables injected into the last executed command",
		}),
	}

	m.registry.MustRegister(m.storeCalls, m.enumerated, m.discarded, m.injected)
	return m
}

// StoreCall records one store operation
func (m *Metrics) StoreCall(op, result string) {
	m.storeCalls.WithLabelValues(op, result).Inc()
}

// Enumerated records a listing: total entries seen and how many survived filtering
func (m *Metrics) Enumerated(total, kept int) {
	m.enumerated.Add(float64(total))
	if total > kept {
		m.discarded.Add(float64(total - kept))
	}
}

// Injected records the number of variables passed to a child process
func (m *Metrics) Injected(n int) {
	m.injected.Set(float64(n))
}

// Registry exposes the registry for gathering
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteFile writes all counters to path in the Prometheus text format
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
