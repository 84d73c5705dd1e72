// Package ratelimiter implements an in-memory token bucket keyed by string,
// plus HTTP middleware that enforces it.
package ratelimiter

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrInvalidConfig is returned by New for non-positive settings.
var ErrInvalidConfig = errors.New("invalid rate limiter configuration")

// Config describes one bucket. Every key starts with Capacity tokens and
// regains RefillRate tokens per RefillInterval, up to Capacity.
type Config struct {
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"60"`
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"1"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"1s"`
}

func (c Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	case c.RefillRate <= 0:
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	case c.RefillInterval <= 0:
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// Result is the outcome of a single Allow call.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
	Allowed   bool
}

// RetryAfter returns how long a rejected caller should wait relative to now.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed {
		return 0
	}
	return max(r.ResetAt.Sub(now), 0)
}

type bucket struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// Limiter is safe for concurrent use.
type Limiter struct {
	cfg Config
	now func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// staleAfter is how long an untouched bucket is kept.
const staleAfter = time.Hour

// New validates cfg and returns a Limiter.
func New(cfg Config, opts ...Option) (*Limiter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	l := &Limiter{cfg: cfg, now: time.Now, buckets: make(map[string]*bucket)}
	for _, opt := range opts {
		opt(l)
	}
	l.lastSweep = l.now()
	return l, nil
}

// Allow takes one token for key. A rejected call consumes nothing.
func (l *Limiter) Allow(key string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.cfg.Capacity, lastRefill: now}
		l.buckets[key] = b
	}
	b.lastAccess = now

	if intervals := int64(now.Sub(b.lastRefill) / l.cfg.RefillInterval); intervals > 0 {
		// Capped so the multiplication cannot overflow.
		capped := min(intervals, int64(l.cfg.Capacity/l.cfg.RefillRate+1))
		b.tokens = min(b.tokens+int(capped)*l.cfg.RefillRate, l.cfg.Capacity)
		b.lastRefill = b.lastRefill.Add(time.Duration(intervals) * l.cfg.RefillInterval)
	}

	res := Result{Limit: l.cfg.Capacity, ResetAt: b.lastRefill.Add(l.cfg.RefillInterval)}
	if b.tokens > 0 {
		b.tokens--
		res.Allowed = true
	}
	res.Remaining = b.tokens
	return res
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < staleAfter {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.lastAccess) > staleAfter {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}
