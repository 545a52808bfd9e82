// Where: internal/server/metrics.go
// What: Prometheus collectors for page requests and dependency failures.
// Why: Expose fallback and secret error rates on a separate, opt-in listener.
package server

import (
	"net/http"

	"github.com/poruru/infopage/internal/meta"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests and multiple servers never collide.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	duration        *prometheus.HistogramVec
	publicFallbacks prometheus.Counter
	secretErrors    prometheus.Counter
}

// NewMetrics registers the page collectors plus Go and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: meta.MetricNamespace,
			Name:      "requests_total",
			Help:      "Requests to the page route by HTTP status code.",
		}, []string{"code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: meta.MetricNamespace,
			Name:      "request_duration_seconds",
			Help:      "Time to gather and render a page.",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{}),
		publicFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: meta.MetricNamespace,
			Name:      "public_address_fallbacks_total",
			Help:      "Public address lookups that fell back to the placeholder.",
		}),
		secretErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: meta.MetricNamespace,
			Name:      "secret_fetch_errors_total",
			Help:      "Secret fetches that failed.",
		}),
	}
	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.publicFallbacks,
		m.secretErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Instrument counts and times requests passing through next. It wraps the
// page route only, so 404 and 405 responses are not counted.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return promhttp.InstrumentHandlerCounter(m.requests,
		promhttp.InstrumentHandlerDuration(m.duration, next))
}

// PublicAddressFallback records one placeholder substitution.
func (m *Metrics) PublicAddressFallback(error) {
	if m != nil {
		m.publicFallbacks.Inc()
	}
}

// SecretFetchError records one failed secret fetch.
func (m *Metrics) SecretFetchError(error) {
	if m != nil {
		m.secretErrors.Inc()
	}
}
