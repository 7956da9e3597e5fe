// Package metrics defines the Prometheus collectors of the search engine
// and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors. A nil *Metrics is valid and
// records nothing, so components can run without instrumentation.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	SearchQueriesTotal   *prometheus.CounterVec
	SearchLatency        *prometheus.HistogramVec
	SearchResultsCount   *prometheus.HistogramVec
	IndexBuildsTotal     *prometheus.CounterVec
	IndexBuildDuration   *prometheus.HistogramVec
	IndexDocuments       *prometheus.GaugeVec
	IndexTerms           *prometheus.GaugeVec
	JobsTotal            *prometheus.CounterVec
	JobDuration          *prometheus.HistogramVec
	JobsRunning          prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New creates all collectors and registers them with reg. Passing a fresh
// prometheus.NewRegistry() keeps independent instances apart (tests).
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, route, and status.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
		HTTPRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed.",
			},
		),
		SearchQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_queries_total",
				Help: "Total search queries by index and result type (hit, zero_result).",
			},
			[]string{"index", "result_type"},
		),
		SearchLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "search_latency_seconds",
				Help:    "Search query latency in seconds.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
			},
			[]string{"index"},
		),
		SearchResultsCount: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "search_results_count",
				Help:    "Number of matching documents per search query.",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 500},
			},
			[]string{"index"},
		),
		IndexBuildsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "index_builds_total",
				Help: "Total index builds by index and status (success, empty, cancelled, error).",
			},
			[]string{"index", "status"},
		),
		IndexBuildDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "index_build_duration_seconds",
				Help:    "Index build time in seconds.",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"index"},
		),
		IndexDocuments: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "index_documents",
				Help: "Number of documents in each published index.",
			},
			[]string{"index"},
		),
		IndexTerms: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "index_terms",
				Help: "Number of unique terms in each published index.",
			},
			[]string{"index"},
		),
		JobsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jobs_total",
				Help: "Total finished background jobs by type and final status.",
			},
			[]string{"type", "status"},
		),
		JobDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "job_duration_seconds",
				Help:    "Background job execution time in seconds.",
				Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
			},
			[]string{"type"},
		),
		JobsRunning: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "jobs_running",
				Help: "Number of background jobs currently executing.",
			},
		),
		gatherer: reg,
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.SearchQueriesTotal,
		m.SearchLatency,
		m.SearchResultsCount,
		m.IndexBuildsTotal,
		m.IndexBuildDuration,
		m.IndexDocuments,
		m.IndexTerms,
		m.JobsTotal,
		m.JobDuration,
		m.JobsRunning,
	)

	return m
}

// ObserveSearch records one executed query.
func (m *Metrics) ObserveSearch(indexName string, took time.Duration, results int) {
	if m == nil {
		return
	}
	resultType := "hit"
	if results == 0 {
		resultType = "zero_result"
	}
	m.SearchQueriesTotal.WithLabelValues(indexName, resultType).Inc()
	m.SearchLatency.WithLabelValues(indexName).Observe(took.Seconds())
	m.SearchResultsCount.WithLabelValues(indexName).Observe(float64(results))
}

// ObserveBuild records one index build. status is "success", "empty", "cancelled" or "error".
func (m *Metrics) ObserveBuild(indexName, status string, took time.Duration) {
	if m == nil {
		return
	}
	m.IndexBuildsTotal.WithLabelValues(indexName, status).Inc()
	m.IndexBuildDuration.WithLabelValues(indexName).Observe(took.Seconds())
}

// SetIndexSize publishes the size gauges of an index.
func (m *Metrics) SetIndexSize(indexName string, documents, terms int) {
	if m == nil {
		return
	}
	m.IndexDocuments.WithLabelValues(indexName).Set(float64(documents))
	m.IndexTerms.WithLabelValues(indexName).Set(float64(terms))
}

// ForgetIndex drops the gauges of a deleted index.
func (m *Metrics) ForgetIndex(indexName string) {
	if m == nil {
		return
	}
	m.IndexDocuments.DeleteLabelValues(indexName)
	m.IndexTerms.DeleteLabelValues(indexName)
}

// JobStarted marks a job as executing.
func (m *Metrics) JobStarted() {
	if m == nil {
		return
	}
	m.JobsRunning.Inc()
}

// JobFinished records the outcome of a job previously passed to JobStarted.
func (m *Metrics) JobFinished(jobType, status string, took time.Duration) {
	if m == nil {
		return
	}
	m.JobsRunning.Dec()
	m.JobsTotal.WithLabelValues(jobType, status).Inc()
	m.JobDuration.WithLabelValues(jobType).Observe(took.Seconds())
}

// ObserveHTTP records one served HTTP request.
func (m *Metrics) ObserveHTTP(method, route string, status int, took time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(took.Seconds())
}

// Handler returns the Prometheus scrape handler for the registry passed to New.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
