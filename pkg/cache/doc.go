// Package cache provides TTL-based in-memory caching for slow-changing
// Hi-Rez reference data (champion/item catalogs, server status).
//
// The cache follows a stale-while-degraded policy:
//
// - Entries are refreshed when older than the configured TTL
// - A failed refresh keeps the previous value (stale beats absent)
// - Fetch errors are logged and swallowed, never returned to callers
// - Entries are only ever replaced whole, never merged in place
// - Concurrent refreshes of the same key collapse into one fetch
// - Entries persist for the process lifetime; there is no eviction
//
// # Basic Usage
//
//	data, err := cache.New(cache.Config[client.Language, *client.ChampionInfo]{
//		Name:  "data",
//		TTL:   12 * time.Hour,
//		Fetch: fetchChampionInfo,
//	})
//	if err != nil {
//		return err
//	}
//
//	// Get returns (value, false) only if the key was never populated.
//	info, ok := data.Get(ctx, client.LanguageEnglish, false)
//
// # Metrics
//
// The cache exports Prometheus metrics:
//
//   - hirez_cache_hits_total{cache} - Fresh entries served without a fetch
//   - hirez_cache_misses_total{cache} - Lookups that found no fresh entry
//   - hirez_cache_refreshes_total{cache, outcome} - Refresh attempts by outcome
//   - hirez_cache_entries{cache} - Number of populated entries
//
// # Consistency
//
// Values handed out by Get are shared, read-only data. The cache never
// mutates a stored value; a refresh installs a brand new one, so holders
// of previously returned values are unaffected.
package cache
