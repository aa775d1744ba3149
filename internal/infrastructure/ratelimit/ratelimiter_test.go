package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestRedisRateLimiter_Allow(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, RateLimitConfig{RequestsPerMinute: 5})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed, "6th request should be denied")

	allowed, err = limiter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, allowed, "other keys are independent")

	require.NoError(t, limiter.Reset(ctx, "10.0.0.1"))
	allowed, err = limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisRateLimiter_WindowSlides(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client, RateLimitConfig{RequestsPerMinute: 2})
	now := time.Now()
	limiter.clock = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, "k")
		require.NoError(t, err)
		assert.True(t, allowed)
		now = now.Add(time.Millisecond)
	}
	allowed, err := limiter.Allow(ctx, "k")
	require.NoError(t, err)
	assert.False(t, allowed)

	now = now.Add(61 * time.Second)
	allowed, err = limiter.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestMemoryRateLimiter_Allow(t *testing.T) {
	limiter := NewMemoryRateLimiter(RateLimitConfig{RequestsPerMinute: 3})
	now := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	limiter.clock = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, _ := limiter.Allow(ctx, "a")
	assert.False(t, allowed)

	allowed, _ = limiter.Allow(ctx, "b")
	assert.True(t, allowed)

	// one token refills every 20s
	now = now.Add(21 * time.Second)
	allowed, _ = limiter.Allow(ctx, "a")
	assert.True(t, allowed)
}

func TestMemoryRateLimiter_Unlimited(t *testing.T) {
	limiter := NewMemoryRateLimiter(RateLimitConfig{})
	for i := 0; i < 100; i++ {
		allowed, err := limiter.Allow(context.Background(), "x")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}

func TestMemoryRateLimiter_Cleanup(t *testing.T) {
	limiter := NewMemoryRateLimiter(RateLimitConfig{RequestsPerMinute: 1})
	now := time.Now()
	limiter.clock = func() time.Time { return now }

	_, _ = limiter.Allow(context.Background(), "idle")
	now = now.Add(11 * time.Minute)
	limiter.cleanup()

	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	assert.Empty(t, limiter.entries)
}
