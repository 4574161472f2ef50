// Package cache provides rate limiting primitives for the transport
// layer, backed by Redis when configured and process memory otherwise.
package cache

import (
	"context"
	"time"
)

// RateLimiter enforces a request cap per key over a time window
type RateLimiter interface {
	// Allow reports whether one more request for key fits under limit
	// within the trailing window. A disallowed request is not counted.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	// Reset clears the counter for a key
	Reset(ctx context.Context, key string) error
}

// RateLimitPrefix namespaces rate limit keys in Redis
const RateLimitPrefix = "ratelimit:"
