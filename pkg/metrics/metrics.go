package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fetch outcomes
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// Booking outcomes
const (
	BookingSent    = "sent"
	BookingInvalid = "invalid"
	BookingFailed  = "failed"
	BookingLimited = "limited"
)

// Metrics holds Prometheus metrics for the site.
//
// Metrics:
//   - tattoo_cms_requests_total{operation,outcome} - content fetches by outcome
//   - tattoo_cms_request_duration_seconds{operation} - content fetch latency
//   - tattoo_cms_cache_lookups_total{result} - response cache hits and misses
//   - tattoo_booking_submissions_total{outcome} - booking form submissions
//
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	CMSRequests        *prometheus.CounterVec
	CMSDuration        *prometheus.HistogramVec
	CacheLookups       *prometheus.CounterVec
	BookingSubmissions *prometheus.CounterVec
}

// New creates the collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		CMSRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tattoo_cms_requests_total",
				Help: "Total number of CMS content fetches by outcome",
			},
			[]string{"operation", "outcome"},
		),
		CMSDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tattoo_cms_request_duration_seconds",
				Help:    "Duration of CMS content fetches in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"operation"},
		),
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tattoo_cms_cache_lookups_total",
				Help: "Total number of CMS response cache lookups",
			},
			[]string{"result"},
		),
		BookingSubmissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tattoo_booking_submissions_total",
				Help: "Total number of booking submissions by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// ObserveFetch records one content fetch.
func (m *Metrics) ObserveFetch(operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.CMSRequests.WithLabelValues(operation, outcome).Inc()
	m.CMSDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// CacheLookup records a response cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// Booking records a booking submission outcome.
func (m *Metrics) Booking(outcome string) {
	if m == nil {
		return
	}
	m.BookingSubmissions.WithLabelValues(outcome).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
