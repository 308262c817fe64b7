package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	Translations        *prometheus.CounterVec
	TranslationDuration *prometheus.HistogramVec
	Requests            *prometheus.CounterVec
	RateLimited         prometheus.Counter
	TableReloads        *prometheus.CounterVec
	TableRules          prometheus.Gauge
}

// NewMetrics creates the collectors and registers them, together with the
// Go runtime and process collectors, on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Translations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dialect",
				Subsystem: "translations",
				Name:      "total",
				Help:      "Translations performed, by direction and outcome",
			},
			[]string{"direction", "outcome"},
		),

		TranslationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "dialect",
				Subsystem: "translations",
				Name:      "duration_seconds",
				Help:      "Time spent translating one text",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
			},
			[]string{"direction"},
		),

		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dialect",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests served, by method and status code",
			},
			[]string{"method", "code"},
		),

		RateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "dialect",
				Subsystem: "http",
				Name:      "rate_limited_total",
				Help:      "Requests rejected by the per-client rate limiter",
			},
		),

		TableReloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "dialect",
				Subsystem: "tables",
				Name:      "reloads_total",
				Help:      "Lookup table reload attempts, by result",
			},
			[]string{"result"},
		),

		TableRules: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "dialect",
				Subsystem: "tables",
				Name:      "rules",
				Help:      "Number of rules in the active lookup tables",
			},
		),
	}

	reg.MustRegister(
		m.Translations,
		m.TranslationDuration,
		m.Requests,
		m.RateLimited,
		m.TableReloads,
		m.TableRules,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}
