package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type memoryEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryRateLimiter is a per-process token bucket per key, used when Redis
// is disabled. Limits are not shared between instances.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	limit   rate.Limit
	burst   int
	ttl     time.Duration
	clock   func() time.Time
}

func NewMemoryRateLimiter(config RateLimitConfig) *MemoryRateLimiter {
	window, n := config.Window()
	l := &MemoryRateLimiter{
		entries: make(map[string]*memoryEntry, 256),
		limit:   rate.Inf,
		burst:   n,
		ttl:     10 * time.Minute,
		clock:   time.Now,
	}
	if n > 0 {
		l.limit = rate.Every(window / time.Duration(n))
	}
	return l
}

func (l *MemoryRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.clock()

	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &memoryEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = now
	l.mu.Unlock()

	return e.limiter.AllowN(now, 1), nil
}

// StartJanitor drops idle keys until ctx is cancelled.
func (l *MemoryRateLimiter) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	ticker := time.NewTicker(every)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.cleanup()
			}
		}
	}()
}

func (l *MemoryRateLimiter) cleanup() {
	cut := l.clock().Add(-l.ttl)

	l.mu.Lock()
	for k, e := range l.entries {
		if e.lastSeen.Before(cut) {
			delete(l.entries, k)
		}
	}
	l.mu.Unlock()
}
