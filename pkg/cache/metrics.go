package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks fresh entries served without a fetch, by cache name.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hirez_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"}, // "data", "status"
	)

	// CacheMisses tracks lookups that found no fresh entry, by cache name.
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hirez_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	// CacheRefreshes tracks refresh attempts by cache name and outcome.
	CacheRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hirez_cache_refreshes_total",
			Help: "Total number of cache refresh attempts",
		},
		[]string{"cache", "outcome"}, // outcome: "ok", "error"
	)

	// CacheEntries tracks the number of populated entries per cache.
	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hirez_cache_entries",
			Help: "Current number of populated cache entries",
		},
		[]string{"cache"},
	)
)
