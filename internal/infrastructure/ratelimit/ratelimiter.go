// Package ratelimit throttles requests per client key.
package ratelimit

import (
	"context"
	"time"
)

type RateLimitConfig struct {
	RequestsPerMinute int
}

// Window returns the window length and request allowance.
func (c RateLimitConfig) Window() (time.Duration, int) {
	return time.Minute, c.RequestsPerMinute
}

type RateLimiter interface {
	// Allow records one request for key and reports whether it is within the limit.
	Allow(ctx context.Context, key string) (bool, error)
}
