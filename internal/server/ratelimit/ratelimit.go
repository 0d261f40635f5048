// Package ratelimit provides per-client token bucket rate limiting for the
// AI-backed endpoints.
package ratelimit

import (
	"sync"
	"time"
)

// tokenBucket allows a burst of requests with tokens refilling at a steady
// rate.
type tokenBucket struct {
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

func newTokenBucket(capacity int, refillRate float64) *tokenBucket {
	return &tokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

func (tb *tokenBucket) allow() (ok bool, remaining int, resetTime time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)
	tb.tokens = min(float64(tb.capacity), tb.tokens+elapsed.Seconds()*tb.refillRate)
	tb.lastRefill = now

	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		ok = true
	}

	resetTime = now
	if tb.tokens < float64(tb.capacity) {
		secondsUntilFull := (float64(tb.capacity) - tb.tokens) / tb.refillRate
		resetTime = now.Add(time.Duration(secondsUntilFull * float64(time.Second)))
	}
	return ok, int(tb.tokens), resetTime
}

// Info reports the rate limit status for a single decision.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Config holds rate limiter settings.
type Config struct {
	Enabled bool
	// Burst is the bucket capacity per client.
	Burst int
	// PerMinute is the sustained refill rate.
	PerMinute int
	// CleanupInterval controls how often idle client buckets are dropped.
	CleanupInterval time.Duration
}

// DefaultConfig matches the provider quota for the cheapest AI tier.
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		Burst:           5,
		PerMinute:       10,
		CleanupInterval: 5 * time.Minute,
	}
}

// Limiter manages one token bucket per client.
type Limiter struct {
	cfg     Config
	mu      sync.Mutex
	buckets map[string]*tokenBucket
	seen    map[string]time.Time
	stop    chan struct{}
	once    sync.Once
}

// NewLimiter creates a limiter and starts its idle-bucket cleanup loop.
func NewLimiter(cfg Config) *Limiter {
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultConfig().Burst
	}
	if cfg.PerMinute <= 0 {
		cfg.PerMinute = DefaultConfig().PerMinute
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultConfig().CleanupInterval
	}
	l := &Limiter{
		cfg:     cfg,
		buckets: make(map[string]*tokenBucket),
		seen:    make(map[string]time.Time),
		stop:    make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Allow decides whether the client may make another AI call.
func (l *Limiter) Allow(clientID string) Info {
	if !l.cfg.Enabled {
		return Info{Allowed: true}
	}

	l.mu.Lock()
	bucket, ok := l.buckets[clientID]
	if !ok {
		bucket = newTokenBucket(l.cfg.Burst, float64(l.cfg.PerMinute)/60.0)
		l.buckets[clientID] = bucket
	}
	l.seen[clientID] = time.Now()
	l.mu.Unlock()

	allowed, remaining, resetTime := bucket.allow()
	info := Info{
		Allowed:   allowed,
		Limit:     l.cfg.Burst,
		Remaining: remaining,
		ResetTime: resetTime,
	}
	if !allowed {
		// One token's worth of refill is the soonest retry.
		info.RetryAfter = time.Duration(60.0 / float64(l.cfg.PerMinute) * float64(time.Second))
	}
	return info
}

// Stop terminates the cleanup goroutine.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-2 * l.cfg.CleanupInterval)
			l.mu.Lock()
			for id, last := range l.seen {
				if last.Before(cutoff) {
					delete(l.buckets, id)
					delete(l.seen, id)
				}
			}
			l.mu.Unlock()
		}
	}
}
