// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the rolodex API.
package observability

import "github.com/prometheus/client_golang/prometheus"

// APIBuckets defines histogram buckets for request latencies dominated by
// a handful of keyed database lookups, from 1ms to 5s.
var APIBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5}

var (
	// RequestsTotal counts all HTTP requests by method and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rolodex_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "status"},
	)

	// RequestDuration records HTTP request duration in seconds by method.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rolodex_request_duration_seconds",
			Help:    "Request duration",
			Buckets: APIBuckets,
		},
		[]string{"method"},
	)

	// AuthFailuresTotal counts requests rejected by the auth middleware.
	// Missing and invalid tokens are deliberately not separated: the metric
	// mirrors what callers can observe.
	AuthFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rolodex_auth_failures_total",
			Help: "Requests rejected with 401",
		},
	)

	// LoginsTotal counts login attempts by outcome ("ok" or "rejected").
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rolodex_logins_total",
			Help: "Login attempts",
		},
		[]string{"outcome"},
	)

	// OwnershipMissesTotal counts guard resolutions that failed closed,
	// labeled by the resource level that missed.
	OwnershipMissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rolodex_ownership_misses_total",
			Help: "Ownership guard misses",
		},
		[]string{"resource"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		AuthFailuresTotal,
		LoginsTotal,
		OwnershipMissesTotal,
	)
}
