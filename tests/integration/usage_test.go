//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/DevilXD/HiRezAPI/internal/testutil"
	"github.com/DevilXD/HiRezAPI/pkg/client"
	"github.com/DevilXD/HiRezAPI/pkg/logging"
	"github.com/DevilXD/HiRezAPI/pkg/usage"
)

// setupRedis creates a Redis container for integration testing.
func setupRedis(t *testing.T) *redis.Client {
	t.Helper()

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start Redis container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: host + ":" + port.Port(),
	})

	t.Cleanup(func() {
		redisClient.Close()
		container.Terminate(ctx)
	})

	return redisClient
}

func newRedisTracker(redisClient *redis.Client) *usage.RedisTracker {
	return usage.NewRedisTracker(redisClient, logging.NewLogger("usage"))
}

func TestRedisTracker_RoundTrip(t *testing.T) {
	redisClient := setupRedis(t)
	tracker := newRedisTracker(redisClient)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := tracker.RecordRequest(ctx); err != nil {
			t.Fatalf("RecordRequest() error = %v", err)
		}
	}
	if err := tracker.RecordSession(ctx); err != nil {
		t.Fatalf("RecordSession() error = %v", err)
	}

	state, err := tracker.State(ctx)
	if err != nil {
		t.Fatalf("State() error = %v", err)
	}

	if state.Requests != 3 {
		t.Errorf("Requests = %d, want 3", state.Requests)
	}
	if state.Sessions != 1 {
		t.Errorf("Sessions = %d, want 1", state.Sessions)
	}
	if state.Day != usage.Today(time.Now()) {
		t.Errorf("Day = %q, want %q", state.Day, usage.Today(time.Now()))
	}
	if state.Exhausted() {
		t.Error("Exhausted() = true for a nearly empty quota")
	}
}

func TestRedisTracker_SharedAcrossProcesses(t *testing.T) {
	redisClient := setupRedis(t)
	ctx := context.Background()

	// Two trackers over the same Redis stand in for two processes
	// sharing one set of credentials.
	first := newRedisTracker(redisClient)
	second := newRedisTracker(redisClient)

	if err := first.RecordRequest(ctx); err != nil {
		t.Fatalf("RecordRequest() error = %v", err)
	}
	if err := second.RecordRequest(ctx); err != nil {
		t.Fatalf("RecordRequest() error = %v", err)
	}

	state, err := first.State(ctx)
	if err != nil {
		t.Fatalf("State() error = %v", err)
	}
	if state.Requests != 2 {
		t.Errorf("Requests = %d, want 2 (counters not shared)", state.Requests)
	}
}

func TestRedisTracker_CountersExpire(t *testing.T) {
	redisClient := setupRedis(t)
	tracker := newRedisTracker(redisClient)
	ctx := context.Background()

	if err := tracker.RecordRequest(ctx); err != nil {
		t.Fatalf("RecordRequest() error = %v", err)
	}

	keys, err := redisClient.Keys(ctx, usage.RedisKeyRequests+":*").Result()
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("Got %d request counter keys, want 1", len(keys))
	}

	ttl, err := redisClient.TTL(ctx, keys[0]).Result()
	if err != nil {
		t.Fatalf("TTL() error = %v", err)
	}
	if ttl <= 0 || ttl > 48*time.Hour {
		t.Errorf("Counter TTL = %v, want within (0, 48h]", ttl)
	}
}

func TestClient_RecordsUsageInRedis(t *testing.T) {
	redisClient := setupRedis(t)
	tracker := newRedisTracker(redisClient)
	ctx := context.Background()

	mock := testutil.NewMockHiRez()
	defer mock.Close()
	mock.RespondJSON("gethirezserverstatus", []map[string]any{
		{"environment": "live", "platform": "pc", "status": "UP", "version": "5.1"},
	})

	cfg := client.DefaultConfig("1234", "secretKey")
	cfg.URL = mock.URL()
	cfg.Usage = tracker

	api, err := client.New(cfg)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	defer api.Close()

	if _, ok := api.GetServerStatus(ctx, false); !ok {
		t.Fatal("GetServerStatus() reported no value")
	}

	state, err := tracker.State(ctx)
	if err != nil {
		t.Fatalf("State() error = %v", err)
	}
	if state.Requests != 1 {
		t.Errorf("Requests = %d, want 1", state.Requests)
	}
	if state.Sessions != 1 {
		t.Errorf("Sessions = %d, want 1", state.Sessions)
	}
}
