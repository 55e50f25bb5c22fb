package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OperationPairRate = "pair_rate"
	OperationAllRates = "all_rates"

	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

type Metrics struct {
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter
	CacheSweptTotal  prometheus.Counter

	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics registers all collectors on reg. Passing a fresh registry keeps
// tests independent of the global default one.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CacheHitsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rate_cache_hits_total",
				Help: "Total number of pair rate lookups answered from the cache",
			},
		),

		CacheMissesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rate_cache_misses_total",
				Help: "Total number of pair rate lookups that required an upstream fetch",
			},
		),

		CacheSweptTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rate_cache_swept_entries_total",
				Help: "Total number of expired cache entries removed by the sweeper",
			},
		),

		UpstreamRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_upstream_requests_total",
				Help: "Total number of requests sent to the rate-quote service",
			},
			[]string{"operation", "outcome"},
		),

		UpstreamRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rate_upstream_request_duration_seconds",
				Help:    "Rate-quote service request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
	}
}

func (m *Metrics) CacheHit() {
	if m != nil {
		m.CacheHitsTotal.Inc()
	}
}

func (m *Metrics) CacheMiss() {
	if m != nil {
		m.CacheMissesTotal.Inc()
	}
}

func (m *Metrics) Swept(n int) {
	if m != nil && n > 0 {
		m.CacheSweptTotal.Add(float64(n))
	}
}

func (m *Metrics) Upstream(operation string, seconds float64, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.UpstreamRequestsTotal.WithLabelValues(operation, outcome).Inc()
	m.UpstreamRequestDuration.WithLabelValues(operation).Observe(seconds)
}

// HTTPRequest records one served request. path should be a route pattern, not the raw URL.
func (m *Metrics) HTTPRequest(path string, method string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(path, method).Observe(seconds)
}
