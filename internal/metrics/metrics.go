package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics bundles the collectors exported at /metrics. Each instance owns its registry so tests
// can build as many as they like.
type Metrics struct {
	Registry        *prometheus.Registry
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	PersistenceOps  *prometheus.CounterVec
	StoredWorkouts  prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		Registry: registry,
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		PersistenceOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "workout_persistence_operations_total",
				Help: "Whole-collection reads and writes against the backing store",
			},
			[]string{"operation", "result"},
		),
		StoredWorkouts: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "workouts_stored",
				Help: "Number of workouts in the collection after the last successful read or write",
			},
		),
	}
	registry.MustRegister(m.RequestsTotal, m.RequestDuration, m.PersistenceOps, m.StoredWorkouts)
	return m
}

// ObservePersistence counts one repository call.
func (m *Metrics) ObservePersistence(operation string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.PersistenceOps.WithLabelValues(operation, result).Inc()
}
