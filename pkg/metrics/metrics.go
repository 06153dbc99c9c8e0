// Package metrics provides the centralized Prometheus metrics registry
// for the Hi-Rez API client. All metrics are defined in their respective
// packages (endpoint, cache, usage) to maintain modularity and avoid
// circular dependencies.
//
// This package provides documentation and reference for all available
// metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the client.
// All metrics are automatically registered via promauto in their
// respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/endpoint):
//   - hirez_requests_total{method, outcome} (Counter): API requests by method and
//     outcome (ok, unauthorized, unavailable, limit_reached, retry_exhausted,
//     http_error, network)
//   - hirez_request_duration_seconds{method} (Histogram): Request duration by method
//   - hirez_sessions_created_total (Counter): API sessions created
//   - hirez_retries_total{reason} (Counter): Retry attempts by reason
//     (connection, invalid_session)
//
// Cache Metrics (pkg/cache):
//   - hirez_cache_hits_total{cache} (Counter): Fresh entries served without a fetch
//   - hirez_cache_misses_total{cache} (Counter): Lookups that found no fresh entry
//   - hirez_cache_refreshes_total{cache, outcome} (Counter): Refresh attempts by
//     outcome (ok, error)
//   - hirez_cache_entries{cache} (Gauge): Populated entries per cache
//
// Usage Metrics (pkg/usage):
//   - hirez_usage_requests_today (Gauge): API requests issued in the current UTC day
//   - hirez_usage_sessions_today (Gauge): Sessions created in the current UTC day
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(hirez_cache_hits_total[5m])) /
//   (sum(rate(hirez_cache_hits_total[5m])) + sum(rate(hirez_cache_misses_total[5m])))
//
//   # Daily Quota Headroom
//   7500 - hirez_usage_requests_today
//
//   # Request Error Rate
//   sum(rate(hirez_requests_total{outcome!="ok"}[5m]))
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(hirez_request_duration_seconds_bucket[5m]))
//
//   # Session Churn (invalid sessions recreated)
//   rate(hirez_retries_total{reason="invalid_session"}[5m])
