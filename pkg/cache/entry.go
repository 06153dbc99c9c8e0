package cache

import (
	"time"
)

// Entry represents a populated cache slot: a value and the time it was
// installed. Entries are immutable; a refresh replaces the whole Entry.
type Entry[V any] struct {
	// Value is the cached value. It is never mutated after installation.
	Value V

	// PopulatedAt is when the value was installed (taken from the
	// cache's clock, not the wall clock, so tests can pin it).
	PopulatedAt time.Time
}

// Age returns how old the entry is at the given instant.
func (e *Entry[V]) Age(now time.Time) time.Duration {
	return now.Sub(e.PopulatedAt)
}

// IsStale reports whether the entry is due for a refresh.
// An entry aged exactly ttl counts as stale.
func (e *Entry[V]) IsStale(now time.Time, ttl time.Duration) bool {
	return e.Age(now) >= ttl
}
