package cache

import (
	"context"
	"time"
)

// singleKey is the one key a Single cache holds an entry under.
type singleKey struct{}

// Single is a one-entry TTL cache, used for global values like the
// server status snapshot. It shares the Keyed refresh semantics.
type Single[V any] struct {
	keyed *Keyed[singleKey, V]
}

// SingleConfig holds single-entry cache configuration.
type SingleConfig[V any] struct {
	// Name identifies the cache in logs and metrics (e.g. "status").
	Name string

	// TTL is the maximum entry age before a refresh is attempted.
	TTL time.Duration

	// Fetch loads a fresh value.
	Fetch func(ctx context.Context) (V, error)

	// Clock supplies the current time (default: time.Now).
	Clock func() time.Time
}

// NewSingle creates a single-entry cache.
func NewSingle[V any](cfg SingleConfig[V]) (*Single[V], error) {
	var fetch FetchFunc[singleKey, V]
	if cfg.Fetch != nil {
		fetch = func(ctx context.Context, _ singleKey) (V, error) {
			return cfg.Fetch(ctx)
		}
	}

	keyed, err := New(Config[singleKey, V]{
		Name:  cfg.Name,
		TTL:   cfg.TTL,
		Fetch: fetch,
		Clock: cfg.Clock,
	})
	if err != nil {
		return nil, err
	}

	return &Single[V]{keyed: keyed}, nil
}

// Get returns the cached value, refreshing it first when absent, stale,
// or forceRefresh is set. The boolean is false only if the value was
// never successfully populated.
func (c *Single[V]) Get(ctx context.Context, forceRefresh bool) (V, bool) {
	return c.keyed.Get(ctx, singleKey{}, forceRefresh)
}

// Peek returns the cached value without triggering a refresh.
func (c *Single[V]) Peek() (V, bool) {
	return c.keyed.Peek(singleKey{})
}
