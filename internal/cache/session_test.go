package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"socialhub_backend/internal/cache"
	"socialhub_backend/internal/model"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		t.Fatalf("parse redis url: %v", err)
	}
	opts.DB = 15 // keep test keys away from real data

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available, skipping test: %v", err)
	}

	client.FlushDB(context.Background())
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})
	return client
}

func testSession(expiresIn time.Duration) *model.Session {
	return &model.Session{
		User: model.SessionUser{ID: "user-1", Name: "Alice", Email: "alice@example.com"},
		Session: model.SessionInfo{
			ID:        "sess-1",
			UserID:    "user-1",
			ExpiresAt: time.Now().Add(expiresIn),
		},
	}
}

func TestRedisSessionCache_SetGet(t *testing.T) {
	client := setupTestRedis(t)
	c := cache.NewSessionCache(client)
	ctx := context.Background()

	if err := c.Set(ctx, "fp", testSession(time.Hour), cache.DefaultSessionTTL); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, found, err := c.Get(ctx, "fp")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatal("expected cache hit")
	}
	if got.User.ID != "user-1" {
		t.Errorf("user id = %q, want %q", got.User.ID, "user-1")
	}

	ttl := client.TTL(ctx, cache.SessionCachePrefix+"fp").Val()
	if ttl <= 0 || ttl > cache.DefaultSessionTTL {
		t.Errorf("ttl = %v, want within (0, %v]", ttl, cache.DefaultSessionTTL)
	}
}

func TestRedisSessionCache_TTLCappedBySessionExpiry(t *testing.T) {
	client := setupTestRedis(t)
	c := cache.NewSessionCache(client)
	ctx := context.Background()

	if err := c.Set(ctx, "fp", testSession(30*time.Second), cache.DefaultSessionTTL); err != nil {
		t.Fatalf("Set: %v", err)
	}

	ttl := client.TTL(ctx, cache.SessionCachePrefix+"fp").Val()
	if ttl > 30*time.Second {
		t.Errorf("ttl = %v, want <= 30s", ttl)
	}
}

func TestRedisSessionCache_MissAndDelete(t *testing.T) {
	client := setupTestRedis(t)
	c := cache.NewSessionCache(client)
	ctx := context.Background()

	if _, found, err := c.Get(ctx, "missing"); err != nil || found {
		t.Errorf("Get(missing) = found:%v err:%v, want miss", found, err)
	}

	if err := c.Set(ctx, "fp", testSession(time.Hour), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Delete(ctx, "fp"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := c.Get(ctx, "fp"); found {
		t.Error("expected miss after Delete")
	}
}
