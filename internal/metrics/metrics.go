package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the Prometheus collectors for allocation runs, provider
// fetches and HTTP traffic. A nil *Recorder is valid and records nothing.
type Recorder struct {
	allocations      *prometheus.CounterVec
	allocationErrors *prometheus.CounterVec
	fetches          *prometheus.CounterVec
	fetchLatency     *prometheus.HistogramVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New creates a recorder registered with reg. A nil reg leaves the
// collectors unregistered, which is what tests want.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		allocations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macro_parity_allocations_total",
				Help: "Total number of allocations computed",
			},
			[]string{"strategy"},
		),
		allocationErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macro_parity_allocation_errors_total",
				Help: "Total number of failed allocation computations",
			},
			[]string{"kind"},
		),
		fetches: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macro_parity_provider_fetches_total",
				Help: "Indicator series fetches by outcome",
			},
			[]string{"function", "outcome"},
		),
		fetchLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "macro_parity_provider_fetch_duration_seconds",
				Help:    "Duration of indicator series fetches in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"function"},
		),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macro_parity_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		httpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "macro_parity_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"route", "method"},
		),
	}
}

func (r *Recorder) RecordAllocation(strategy string) {
	if r == nil {
		return
	}
	r.allocations.WithLabelValues(strategy).Inc()
}

func (r *Recorder) RecordAllocationError(kind string) {
	if r == nil {
		return
	}
	r.allocationErrors.WithLabelValues(kind).Inc()
}

// RecordFetch records one provider fetch. outcome is "ok", "cache_hit" or an error code.
func (r *Recorder) RecordFetch(function, outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.fetches.WithLabelValues(function, outcome).Inc()
	if outcome != "cache_hit" {
		r.fetchLatency.WithLabelValues(function).Observe(d.Seconds())
	}
}

func (r *Recorder) RecordHTTP(route, method string, status int, d time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(route, method).Observe(d.Seconds())
}
