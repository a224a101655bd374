package infra

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the application's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	Evaluations     prometheus.Counter
	ViolationsFound *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scorekeeper_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scorekeeper_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		Evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scorekeeper_rule_evaluations_total",
			Help: "Total compliance evaluations run.",
		}),
		ViolationsFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scorekeeper_rule_violations_total",
			Help: "Safety-rule violations found, by rule.",
		}, []string{"rule"}),
	}
	reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.Evaluations, m.ViolationsFound)
	return m
}

// Handler exposes the /metrics endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
