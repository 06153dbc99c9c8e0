package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/DevilXD/HiRezAPI/pkg/logging"
	"github.com/rs/zerolog"
)

// FetchFunc loads a fresh value for a key. It is invoked only when the
// cache decides a refresh is due. Returning an error leaves the previous
// entry (if any) untouched.
type FetchFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// Config holds keyed cache configuration.
type Config[K comparable, V any] struct {
	// Name identifies the cache in logs and metrics (e.g. "data").
	Name string

	// TTL is the maximum entry age before a refresh is attempted.
	TTL time.Duration

	// Fetch loads a fresh value for a key.
	Fetch FetchFunc[K, V]

	// Clock supplies the current time (default: time.Now).
	// Injectable for deterministic tests.
	Clock func() time.Time
}

// Keyed is a TTL cache mapping keys to whole-value entries.
//
// Get never returns an error: a failed refresh degrades to serving the
// previous value, or reports absence if the key was never populated.
type Keyed[K comparable, V any] struct {
	name    string
	ttl     time.Duration
	fetch   FetchFunc[K, V]
	clock   func() time.Time
	logger  zerolog.Logger
	flight  singleflight.Group
	mu      sync.RWMutex
	entries map[K]Entry[V]
}

// New creates a keyed cache.
func New[K comparable, V any](cfg Config[K, V]) (*Keyed[K, V], error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("cache name is required")
	}

	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive (got %v)", cfg.TTL)
	}

	if cfg.Fetch == nil {
		return nil, fmt.Errorf("fetch function is required")
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Keyed[K, V]{
		name:    cfg.Name,
		ttl:     cfg.TTL,
		fetch:   cfg.Fetch,
		clock:   clock,
		logger:  logging.NewLogger("cache." + cfg.Name),
		entries: make(map[K]Entry[V]),
	}, nil
}

// Get returns the cached value for key, refreshing it first when the
// entry is absent, older than the TTL, or forceRefresh is set.
//
// The boolean reports whether a value exists at all; it is false only
// when the key has never been successfully populated. A refresh failure
// is logged and swallowed - the previous value keeps being served.
func (c *Keyed[K, V]) Get(ctx context.Context, key K, forceRefresh bool) (V, bool) {
	if entry, ok := c.lookup(key); ok && !forceRefresh && !entry.IsStale(c.clock(), c.ttl) {
		CacheHits.WithLabelValues(c.name).Inc()
		return entry.Value, true
	}

	CacheMisses.WithLabelValues(c.name).Inc()
	c.refresh(ctx, key, forceRefresh)

	entry, ok := c.lookup(key)
	return entry.Value, ok
}

// Peek returns the cached value without triggering a refresh, stale or not.
func (c *Keyed[K, V]) Peek(key K) (V, bool) {
	entry, ok := c.lookup(key)
	return entry.Value, ok
}

// Len returns the number of populated entries.
func (c *Keyed[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Keyed[K, V]) lookup(key K) (Entry[V], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	return entry, ok
}

// refresh fetches a fresh value and installs it as a whole-entry
// replacement. Concurrent refreshes of the same key collapse into one
// fetch via singleflight; losers wait for the winner's result and then
// read the entry the winner installed.
func (c *Keyed[K, V]) refresh(ctx context.Context, key K, force bool) {
	_, _, _ = c.flight.Do(fmt.Sprintf("%v", key), func() (any, error) {
		// Another caller may have refreshed while we queued behind
		// the flight. A forced refresh always fetches.
		if entry, ok := c.lookup(key); ok && !force && !entry.IsStale(c.clock(), c.ttl) {
			return nil, nil
		}

		value, err := c.fetch(ctx, key)
		if err != nil {
			CacheRefreshes.WithLabelValues(c.name, "error").Inc()
			c.logger.Warn().
				Err(err).
				Str("cache", c.name).
				Msg("Cache refresh failed, serving previous value")
			return nil, nil
		}

		now := c.clock()
		c.mu.Lock()
		c.entries[key] = Entry[V]{Value: value, PopulatedAt: now}
		c.mu.Unlock()

		CacheRefreshes.WithLabelValues(c.name, "ok").Inc()
		CacheEntries.WithLabelValues(c.name).Set(float64(c.Len()))

		c.logger.Debug().
			Str("cache", c.name).
			Time("populated_at", now).
			Msg("Cache entry refreshed")
		return nil, nil
	})
}
