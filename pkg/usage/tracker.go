package usage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Prometheus metrics for usage tracking.
var (
	usageRequestsToday = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hirez_usage_requests_today",
		Help: "Number of API requests issued in the current UTC day",
	})

	usageSessionsToday = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hirez_usage_sessions_today",
		Help: "Number of sessions created in the current UTC day",
	})
)

// Tracker counts requests and sessions against the daily quotas.
// Implementations must be safe for concurrent use.
type Tracker interface {
	// RecordRequest counts one API request against today's quota.
	RecordRequest(ctx context.Context) error

	// RecordSession counts one session creation against today's quota.
	RecordSession(ctx context.Context) error

	// State returns today's usage counters.
	State(ctx context.Context) (State, error)
}

// MemoryTracker keeps usage counters in process memory. This is the
// default; counters reset when the process restarts or the UTC day
// rolls over.
type MemoryTracker struct {
	mu           sync.Mutex
	day          string
	requests     int
	sessions     int
	requestLimit int
	sessionLimit int
	clock        func() time.Time
}

// NewMemoryTracker creates an in-memory usage tracker with the default
// daily limits. A nil clock defaults to time.Now.
func NewMemoryTracker(clock func() time.Time) *MemoryTracker {
	if clock == nil {
		clock = time.Now
	}
	return &MemoryTracker{
		requestLimit: DefaultRequestLimit,
		sessionLimit: DefaultSessionLimit,
		clock:        clock,
	}
}

// rollover resets the counters when the UTC day has changed.
// Callers must hold t.mu.
func (t *MemoryTracker) rollover() {
	day := Today(t.clock())
	if day != t.day {
		t.day = day
		t.requests = 0
		t.sessions = 0
	}
}

// RecordRequest counts one API request against today's quota.
func (t *MemoryTracker) RecordRequest(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover()
	t.requests++
	usageRequestsToday.Set(float64(t.requests))
	return nil
}

// RecordSession counts one session creation against today's quota.
func (t *MemoryTracker) RecordSession(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover()
	t.sessions++
	usageSessionsToday.Set(float64(t.sessions))
	return nil
}

// State returns today's usage counters.
func (t *MemoryTracker) State(_ context.Context) (State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover()
	return State{
		Day:          t.day,
		Requests:     t.requests,
		Sessions:     t.sessions,
		RequestLimit: t.requestLimit,
		SessionLimit: t.sessionLimit,
	}, nil
}

// RedisTracker keeps usage counters in Redis so multiple processes
// sharing one set of credentials account against the same quota.
type RedisTracker struct {
	redis        *redis.Client
	logger       zerolog.Logger
	requestLimit int
	sessionLimit int
	clock        func() time.Time
}

// counterExpiry is how long day-scoped counter keys live in Redis.
// Two days covers the current day plus clock skew between processes.
const counterExpiry = 48 * time.Hour

// NewRedisTracker creates a Redis-backed usage tracker with the default
// daily limits.
func NewRedisTracker(redisClient *redis.Client, logger zerolog.Logger) *RedisTracker {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	return &RedisTracker{
		redis:        redisClient,
		logger:       logger,
		requestLimit: DefaultRequestLimit,
		sessionLimit: DefaultSessionLimit,
		clock:        time.Now,
	}
}

func (t *RedisTracker) dayKey(base string) string {
	return fmt.Sprintf("%s:%s", base, Today(t.clock()))
}

// increment bumps a day-scoped counter and refreshes its expiry.
func (t *RedisTracker) increment(ctx context.Context, base string) (int64, error) {
	key := t.dayKey(base)

	pipe := t.redis.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, counterExpiry)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("redis incr %s: %w", key, err)
	}
	return incr.Val(), nil
}

// RecordRequest counts one API request against today's quota.
func (t *RedisTracker) RecordRequest(ctx context.Context) error {
	count, err := t.increment(ctx, RedisKeyRequests)
	if err != nil {
		return err
	}
	usageRequestsToday.Set(float64(count))
	return nil
}

// RecordSession counts one session creation against today's quota.
func (t *RedisTracker) RecordSession(ctx context.Context) error {
	count, err := t.increment(ctx, RedisKeySessions)
	if err != nil {
		return err
	}
	usageSessionsToday.Set(float64(count))
	return nil
}

// State returns today's usage counters. Missing keys read as zero, so a
// fresh day (or a fresh Redis) starts from a clean quota.
func (t *RedisTracker) State(ctx context.Context) (State, error) {
	requests, err := t.redis.Get(ctx, t.dayKey(RedisKeyRequests)).Int()
	if err != nil && err != redis.Nil {
		return State{}, fmt.Errorf("get request count: %w", err)
	}

	sessions, err := t.redis.Get(ctx, t.dayKey(RedisKeySessions)).Int()
	if err != nil && err != redis.Nil {
		return State{}, fmt.Errorf("get session count: %w", err)
	}

	state := State{
		Day:          Today(t.clock()),
		Requests:     requests,
		Sessions:     sessions,
		RequestLimit: t.requestLimit,
		SessionLimit: t.sessionLimit,
	}

	if state.NearLimit() {
		t.logger.Warn().
			Int("requests_today", state.Requests).
			Int("request_limit", state.RequestLimit).
			Msg("Approaching daily request quota")
	}

	return state, nil
}
