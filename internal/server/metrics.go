package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry *prometheus.Registry
	reports  *prometheus.CounterVec
	invalid  *prometheus.CounterVec
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)
	return &metrics{
		registry: reg,
		reports: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "farmcarbon_reports_generated_total",
			Help: "Reports generated, by carbon intensity band.",
		}, []string{"intensity"}),
		invalid: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "farmcarbon_invalid_requests_total",
			Help: "Requests rejected as invalid input, by field.",
		}, []string{"field"}),
	}
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
