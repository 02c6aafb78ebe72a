// Package ratelimit provides per-client inbound rate limiting.
package ratelimit

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// KeyedLimiter keeps one token bucket per key (typically the client IP).
// Buckets idle for longer than idleTTL are evicted.
type KeyedLimiter struct {
	mu       sync.Mutex
	limiters *gocache.Cache
	rps      rate.Limit
	burst    int
	idleTTL  time.Duration
}

// NewKeyedLimiter creates a limiter allowing rps requests per second with the given burst per key.
func NewKeyedLimiter(rps float64, burst int, idleTTL time.Duration) *KeyedLimiter {
	if idleTTL <= 0 {
		idleTTL = 10 * time.Minute
	}
	if burst <= 0 {
		burst = 1
	}
	return &KeyedLimiter{
		limiters: gocache.New(idleTTL, idleTTL),
		rps:      rate.Limit(rps),
		burst:    burst,
		idleTTL:  idleTTL,
	}
}

// Allow consumes one token for key and reports whether the request may proceed.
func (l *KeyedLimiter) Allow(key string) bool {
	return l.limiter(key).Allow()
}

// RetryAfter estimates how long key has to wait for the next token.
func (l *KeyedLimiter) RetryAfter(key string) time.Duration {
	lim := l.limiter(key)
	r := lim.Reserve()
	defer r.Cancel()
	if !r.OK() {
		return l.idleTTL
	}
	return r.Delay()
}

func (l *KeyedLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	if v, ok := l.limiters.Get(key); ok {
		// refresh the idle deadline
		l.limiters.Set(key, v, gocache.DefaultExpiration)
		return v.(*rate.Limiter)
	}
	lim := rate.NewLimiter(l.rps, l.burst)
	l.limiters.Set(key, lim, gocache.DefaultExpiration)
	return lim
}

// Len returns the number of tracked keys.
func (l *KeyedLimiter) Len() int {
	return l.limiters.ItemCount()
}
