package ratelimit

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:embed lua/sliding_window.lua
var luaSlidingWindow string

// RedisRateLimiter keeps a sliding window per key in a sorted set. The
// trim, count and add run as one script so concurrent instances agree.
type RedisRateLimiter struct {
	client redis.UniversalClient
	script *redis.Script
	config RateLimitConfig
	prefix string
	clock  func() time.Time
}

func NewRedisRateLimiter(client redis.UniversalClient, config RateLimitConfig) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		script: redis.NewScript(luaSlidingWindow),
		config: config,
		prefix: "perkloop:ratelimit",
		clock:  time.Now,
	}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	window, limit := l.config.Window()
	if limit <= 0 {
		return true, nil
	}

	now := l.clock().UnixNano()
	ttl := (window + time.Minute).Milliseconds()

	res, err := l.script.Run(ctx, l.client, []string{l.getKey(key, window)},
		now, window.Nanoseconds(), limit, ttl).Int64Slice()
	if err != nil {
		return false, fmt.Errorf("failed to evaluate rate limit: %w", err)
	}
	if len(res) == 0 {
		return false, fmt.Errorf("unexpected rate limit script result")
	}
	return res[0] == 1, nil
}

// Reset clears every window recorded for key.
func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	pattern := fmt.Sprintf("%s:%s:*", l.prefix, key)

	iter := l.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := l.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys: %w", err)
	}
	return nil
}

func (l *RedisRateLimiter) getKey(identifier string, window time.Duration) string {
	return fmt.Sprintf("%s:%s:%s", l.prefix, identifier, window.String())
}
