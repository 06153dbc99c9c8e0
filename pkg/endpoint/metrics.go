package endpoint

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for endpoint operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hirez_requests_total",
		Help: "Total Hi-Rez API requests by method and outcome",
	}, []string{"method", "outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hirez_request_duration_seconds",
		Help:    "Hi-Rez API request duration in seconds by method",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"method"})

	sessionsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hirez_sessions_created_total",
		Help: "Total number of API sessions created",
	})

	retriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hirez_retries_total",
		Help: "Total number of retry attempts by reason",
	}, []string{"reason"}) // "connection", "invalid_session"
)
