// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Simulation metrics
	SimulationsTotal    *prometheus.CounterVec
	PathsSimulated      prometheus.Counter
	SimulationDuration  prometheus.Histogram
	SimulationsInFlight prometheus.Gauge

	// Assumption store metrics
	AssumptionSetsStored prometheus.Counter
	StoreErrors          *prometheus.CounterVec
}

// NewMetrics creates a Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "advisor_mc_lab"
	}

	return &Metrics{
		SimulationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "simulations_total",
			Help:      "Total number of simulation runs by outcome",
		}, []string{"outcome"}),
		PathsSimulated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "paths_simulated_total",
			Help:      "Total number of Monte Carlo paths simulated",
		}),
		SimulationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "simulation_duration_seconds",
			Help:      "Wall-clock duration of simulation runs in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		SimulationsInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "simulations_in_flight",
			Help:      "Number of simulation runs currently executing",
		}),
		AssumptionSetsStored: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "assumption_sets_stored_total",
			Help:      "Total number of assumption sets stored",
		}),
		StoreErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "errors_total",
			Help:      "Total number of storage errors by operation",
		}, []string{"operation"}),
	}
}

// RecordSimulation records the outcome of one simulation run.
func (m *Metrics) RecordSimulation(outcome string, paths int, seconds float64) {
	m.SimulationsTotal.WithLabelValues(outcome).Inc()
	m.PathsSimulated.Add(float64(paths))
	m.SimulationDuration.Observe(seconds)
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
