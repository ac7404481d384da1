package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "offset_model"

// Prometheus holds the collectors of a fit run.
type Prometheus struct {
	RSquared *prometheus.GaugeVec
	Degree   *prometheus.GaugeVec
	Samples  *prometheus.GaugeVec
	Saves    *prometheus.CounterVec
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		RSquared: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "r_squared",
				Help:      "Coefficient of determination of the last fit.",
			}, []string{"axis"}),
		Degree: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "degree",
				Help:      "Polynomial degree of the last fit.",
			}, []string{"axis"}),
		Samples: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "samples",
				Help:      "Samples of the last fit by outlier state.",
			}, []string{"axis", "state"}),
		Saves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "saves_total",
				Help:      "Models persisted.",
			}, []string{"axis"}),
	}
}
