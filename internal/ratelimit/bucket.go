// Package ratelimit provides token bucket rate limiting for the HTTP API and
// for bounding calls to the generative fallback.
package ratelimit

import (
	"sync"
	"time"
)

// TokenBucket allows up to capacity events at once and refills at a steady rate.
// It is safe for concurrent use.
type TokenBucket struct {
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	now        func() time.Time
	mu         sync.Mutex
}

// NewTokenBucket creates a full bucket.
func NewTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return newTokenBucketAt(capacity, refillRate, time.Now)
}

// NewWindowBucket creates a bucket that admits limit events per window, with
// burst events available immediately (limit when burst is not positive).
func NewWindowBucket(limit int, window time.Duration, burst int) *TokenBucket {
	if burst <= 0 {
		burst = limit
	}
	rate := 0.0
	if window > 0 {
		rate = float64(limit) / window.Seconds()
	}
	return NewTokenBucket(burst, rate)
}

func newTokenBucketAt(capacity int, refillRate float64, now func() time.Time) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: now(),
		now:        now,
	}
}

// refill must be called with mu held.
func (tb *TokenBucket) refill() {
	now := tb.now()
	elapsed := now.Sub(tb.lastRefill)
	tb.tokens = min(float64(tb.capacity), tb.tokens+elapsed.Seconds()*tb.refillRate)
	tb.lastRefill = now
}

// Allow consumes a token if one is available.
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true
	}
	return false
}

// Status reports whole tokens left and when the bucket will be full again,
// without consuming a token.
func (tb *TokenBucket) Status() (remaining int, resetTime time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	remaining = int(tb.tokens)

	resetTime = tb.lastRefill
	if missing := float64(tb.capacity) - tb.tokens; missing > 0 && tb.refillRate > 0 {
		resetTime = tb.lastRefill.Add(time.Duration(missing / tb.refillRate * float64(time.Second)))
	}
	return remaining, resetTime
}

// Capacity returns the burst size.
func (tb *TokenBucket) Capacity() int {
	return tb.capacity
}
