package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// memoryRateLimiter is the in-process fallback used when Redis is not
// configured (the demo default). One token bucket per key, refilling at
// limit/window with a burst of limit.
type memoryRateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
}

// NewMemoryRateLimiter creates an in-memory rate limiter
func NewMemoryRateLimiter() RateLimiter {
	rl := &memoryRateLimiter{
		limiters: make(map[string]*rate.Limiter),
	}
	rl.cleanup()
	return rl
}

func (m *memoryRateLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	m.mu.RLock()
	limiter, exists := m.limiters[key]
	m.mu.RUnlock()

	if !exists {
		m.mu.Lock()
		// Double check after acquiring write lock
		limiter, exists = m.limiters[key]
		if !exists {
			limiter = rate.NewLimiter(rate.Limit(float64(limit)/window.Seconds()), limit)
			m.limiters[key] = limiter
		}
		m.mu.Unlock()
	}

	return limiter.Allow(), nil
}

func (m *memoryRateLimiter) Reset(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.limiters, key)
	return nil
}

// cleanup drops the limiter map when it grows too large. Keys are client
// IPs, so unbounded growth would otherwise be possible.
func (m *memoryRateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	go func() {
		for range ticker.C {
			m.mu.Lock()
			if len(m.limiters) > 10000 {
				m.limiters = make(map[string]*rate.Limiter)
			}
			m.mu.Unlock()
		}
	}()
}
