package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the serving-side instruments on a private registry so tests
// can build as many instances as they like without duplicate registration
// panics.
type Metrics struct {
	registry *prometheus.Registry

	SnapshotLoadSeconds prometheus.Gauge
	SnapshotAgeSeconds  prometheus.Gauge
	ProductsTotal       prometheus.Gauge
	HTTPRequests        *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.SnapshotLoadSeconds = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_snapshot_load_seconds",
		Help: "Wall time spent loading the most recent catalog snapshot.",
	})
	m.SnapshotAgeSeconds = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_snapshot_age_seconds",
		Help: "Age of the serving snapshot, from its manifest timestamp.",
	})
	m.ProductsTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_products_total",
		Help: "Number of products in the serving snapshot.",
	})
	m.HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_http_requests_total",
		Help: "HTTP requests served, by route and status code.",
	}, []string{"route", "code"})

	m.registry.MustRegister(
		m.SnapshotLoadSeconds,
		m.SnapshotAgeSeconds,
		m.ProductsTotal,
		m.HTTPRequests,
	)
	return m
}

// Handler serves the registry in the standard exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
