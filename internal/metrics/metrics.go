// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	httpRequests    *prometheus.CounterVec
	httpLatency     prometheus.Histogram
	proximityScans  prometheus.Counter
	registrations   prometheus.Counter
	loginFailures   *prometheus.CounterVec
	cacheMisses     prometheus.Counter
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "servineo_http_requests_total",
			Help: "HTTP responses by status code.",
		}, []string{"status_code"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "servineo_http_latency_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		proximityScans: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "servineo_proximity_scans_total",
			Help: "Proximity searches served.",
		}),
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "servineo_registrations_total",
			Help: "Successful identity registrations.",
		}),
		loginFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "servineo_login_failures_total",
			Help: "Failed logins by reason.",
		}, []string{"reason"}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "servineo_location_cache_misses_total",
			Help: "Location cache misses falling through to the store.",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.proximityScans,
		c.registrations,
		c.loginFailures,
		c.cacheMisses,
	)

	return c
}

func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpRequests.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

func (c *Collector) RecordHTTPLatency(d time.Duration) {
	c.httpLatency.Observe(d.Seconds())
}

func (c *Collector) RecordProximityScan() {
	c.proximityScans.Inc()
}

func (c *Collector) RecordRegistration() {
	c.registrations.Inc()
}

func (c *Collector) RecordLoginFailure(reason string) {
	c.loginFailures.WithLabelValues(reason).Inc()
}

func (c *Collector) RecordCacheMiss() {
	c.cacheMisses.Inc()
}

// Handler serves the scrape endpoint for the given registry.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// Middleware records status and latency for every request.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		c.RecordHTTPStatus(rec.status)
		c.RecordHTTPLatency(time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
