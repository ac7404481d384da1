package metrics

import (
	"fmt"
	"sync"

	"github.com/drakos74/offset-model/internal/fit"
	"github.com/drakos74/offset-model/internal/model"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records fit diagnostics on its own registry.
type Metrics struct {
	mutex      *sync.RWMutex
	registry   *prometheus.Registry
	prometheus Prometheus
}

// New creates the fit metrics.
func New() *Metrics {
	m := &Metrics{
		mutex:      new(sync.RWMutex),
		registry:   prometheus.NewRegistry(),
		prometheus: NewPrometheusMetrics(),
	}
	m.registry.MustRegister(
		m.prometheus.RSquared,
		m.prometheus.Degree,
		m.prometheus.Samples,
		m.prometheus.Saves,
	)
	return m
}

// Observe records the outcome of a fit.
func (m *Metrics) Observe(axis model.Axis, r fit.Result) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	a := string(axis)
	m.prometheus.RSquared.WithLabelValues(a).Set(r.RSquared)
	m.prometheus.Degree.WithLabelValues(a).Set(float64(r.Degree))
	m.prometheus.Samples.WithLabelValues(a, "retained").Set(float64(r.Count()))
	m.prometheus.Samples.WithLabelValues(a, "rejected").Set(float64(r.Rejected()))
}

// Saved counts a persisted model.
func (m *Metrics) Saved(axis model.Axis) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.prometheus.Saves.WithLabelValues(string(axis)).Inc()
}

// Gatherer exposes the registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteFile writes the metrics in the text exposition format,
// suitable for the node exporter textfile collector.
func (m *Metrics) WriteFile(path string) error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("could not write metrics: %w", err)
	}
	return nil
}
