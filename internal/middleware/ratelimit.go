package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"schoolrecords/internal/pkg/response"
)

type tokenBucket struct {
	tokens   int
	capacity int
	refillAt time.Time
	window   time.Duration
	mu       sync.Mutex
}

func newTokenBucket(capacity int, window time.Duration) *tokenBucket {
	return &tokenBucket{
		tokens:   capacity,
		capacity: capacity,
		refillAt: time.Now(),
		window:   window,
	}
}

func (tb *tokenBucket) take() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	if now.After(tb.refillAt.Add(tb.window)) {
		tb.tokens = tb.capacity
		tb.refillAt = now
	} else {
		elapsed := now.Sub(tb.refillAt)
		add := int(elapsed.Nanoseconds() * int64(tb.capacity) / tb.window.Nanoseconds())
		if add > 0 {
			tb.tokens = min(tb.capacity, tb.tokens+add)
			tb.refillAt = now
		}
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true
	}
	return false
}

// RateLimiter keeps one token bucket per caller key. Stale buckets are swept
// lazily on acquisition.
type RateLimiter struct {
	limit     int
	window    time.Duration
	buckets   map[string]*tokenBucket
	mu        sync.Mutex
	lastSweep time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*tokenBucket),
	}
}

// Allow reports whether one more request is permitted for key.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	if time.Since(rl.lastSweep) > 5*time.Minute {
		rl.sweepLocked()
	}
	bucket, ok := rl.buckets[key]
	if !ok {
		bucket = newTokenBucket(rl.limit, rl.window)
		rl.buckets[key] = bucket
	}
	rl.mu.Unlock()

	return bucket.take()
}

func (rl *RateLimiter) sweepLocked() {
	now := time.Now()
	for key, bucket := range rl.buckets {
		bucket.mu.Lock()
		idle := now.Sub(bucket.refillAt) > bucket.window*2
		bucket.mu.Unlock()
		if idle {
			delete(rl.buckets, key)
		}
	}
	rl.lastSweep = now
}

// Middleware enforces the limiter per client IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests, try again later")
			c.Abort()
			return
		}
		c.Next()
	}
}
