package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/turtacn/supplyrisk/pkg/constants"
)

// Metrics manages the Prometheus metrics.
type Metrics struct {
	AssessmentRequests  *prometheus.CounterVec
	AssessmentLatency   *prometheus.HistogramVec
	ClimateFetches      *prometheus.CounterVec
	ClimateFetchLatency *prometheus.HistogramVec
	ClimateSources      *prometheus.CounterVec
	BatchDeadlines      *prometheus.CounterVec
	CacheAccess         *prometheus.CounterVec
	RateLimitHits       *prometheus.CounterVec

	HTTPRequests       *prometheus.CounterVec
	HTTPActiveRequests *prometheus.GaugeVec
	HTTPLatency        *prometheus.HistogramVec
}

// NewMetrics creates the Prometheus metrics and registers them with reg.
// A nil registerer uses the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		AssessmentRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "supplyrisk_assessments_total",
				Help: "Total number of completed assessments.",
			},
			[]string{"country", "sector", "skip_climate"},
		),
		AssessmentLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "supplyrisk_assessment_duration_seconds",
				Help:    "Latency of assessments including climate enrichment.",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
			},
			[]string{"skip_climate"},
		),
		ClimateFetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "supplyrisk_climate_fetches_total",
				Help: "Climate enrichment lookups by outcome.",
			},
			[]string{"outcome"},
		),
		ClimateFetchLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "supplyrisk_climate_fetch_duration_seconds",
				Help:    "Latency of live hazard-service calls.",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 15},
			},
			[]string{"outcome"},
		),
		ClimateSources: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "supplyrisk_climate_sources_total",
				Help: "Expected-loss figures used in assessments by source.",
			},
			[]string{"source"},
		),
		BatchDeadlines: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "supplyrisk_climate_batches_total",
				Help: "Climate enrichment batches by whether the deadline was exceeded.",
			},
			[]string{"deadline_exceeded"},
		),
		CacheAccess: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "supplyrisk_cache_access_total",
				Help: "Cache lookups by cache and result.",
			},
			[]string{"cache", "result"},
		),
		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "supplyrisk_rate_limit_hits_total",
				Help: "Total number of rate limit hits.",
			},
			[]string{"scope"},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "supplyrisk_http_requests_total",
				Help: "HTTP requests by route, method and status.",
			},
			[]string{"path", "method", "status"},
		),
		HTTPActiveRequests: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "supplyrisk_http_active_requests",
				Help: "In-flight HTTP requests.",
			},
			[]string{"path", "method"},
		),
		HTTPLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "supplyrisk_http_request_duration_seconds",
				Help:    "HTTP request latency.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
	}
}

// RecordAssessment records metrics for a completed assessment.
func (m *Metrics) RecordAssessment(country, sector string, skipClimate bool, duration time.Duration) {
	skip := strconv.FormatBool(skipClimate)
	m.AssessmentRequests.WithLabelValues(country, sector, skip).Inc()
	m.AssessmentLatency.WithLabelValues(skip).Observe(duration.Seconds())
}

// RecordClimateFetch records one enrichment lookup. Only live calls carry a latency.
func (m *Metrics) RecordClimateFetch(outcome constants.ClimateOutcome, duration time.Duration) {
	m.ClimateFetches.WithLabelValues(string(outcome)).Inc()
	if duration > 0 {
		m.ClimateFetchLatency.WithLabelValues(string(outcome)).Observe(duration.Seconds())
	}
}

func (m *Metrics) RecordClimateSource(source constants.ClimateSource) {
	m.ClimateSources.WithLabelValues(string(source)).Inc()
}

func (m *Metrics) RecordBatchDeadline(exceeded bool) {
	m.BatchDeadlines.WithLabelValues(strconv.FormatBool(exceeded)).Inc()
}

func (m *Metrics) RecordCacheAccess(cacheType string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheAccess.WithLabelValues(cacheType, result).Inc()
}

// RecordRateLimitHit records a rate limit hit.
func (m *Metrics) RecordRateLimitHit(scope string) {
	m.RateLimitHits.WithLabelValues(scope).Inc()
}

func (m *Metrics) ActiveRequestsInc(path, method string) {
	m.HTTPActiveRequests.WithLabelValues(path, method).Inc()
}

func (m *Metrics) ActiveRequestsDec(path, method string) {
	m.HTTPActiveRequests.WithLabelValues(path, method).Dec()
}

func (m *Metrics) ObserveRequest(path, method string, status int, duration time.Duration) {
	m.HTTPRequests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.HTTPLatency.WithLabelValues(path, method).Observe(duration.Seconds())
}

//Personal.AI order the ending
