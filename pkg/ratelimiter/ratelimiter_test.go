package ratelimiter_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/namekit/pkg/ratelimiter"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock { return &clock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newLimiter(t *testing.T, c *clock, cfg ratelimiter.Config) *ratelimiter.Limiter {
	t.Helper()
	l, err := ratelimiter.New(cfg, ratelimiter.WithClock(c.Now))
	require.NoError(t, err)
	return l
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	for _, cfg := range []ratelimiter.Config{
		{Capacity: 0, RefillRate: 1, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 0, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 1, RefillInterval: 0},
	} {
		_, err := ratelimiter.New(cfg)
		assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
	}
}

func TestLimiter_Allow(t *testing.T) {
	t.Parallel()

	c := newClock()
	l := newLimiter(t, c, ratelimiter.Config{Capacity: 3, RefillRate: 1, RefillInterval: time.Second})

	for want := 2; want >= 0; want-- {
		res := l.Allow("a")
		require.True(t, res.Allowed)
		assert.Equal(t, want, res.Remaining)
		assert.Equal(t, 3, res.Limit)
	}

	res := l.Allow("a")
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, time.Second, res.RetryAfter(c.Now()))

	assert.True(t, l.Allow("b").Allowed, "keys are independent")

	c.Advance(1500 * time.Millisecond)
	res = l.Allow("a")
	assert.True(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)

	c.Advance(time.Hour / 2)
	res = l.Allow("a")
	assert.True(t, res.Allowed)
	assert.Equal(t, 2, res.Remaining, "refill is capped at capacity")
}

func TestLimiter_DropsStaleBuckets(t *testing.T) {
	t.Parallel()

	c := newClock()
	l := newLimiter(t, c, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second})
	l.Allow("old")
	require.Equal(t, 1, l.Len())

	c.Advance(2 * time.Hour)
	l.Allow("new")
	assert.Equal(t, 1, l.Len())
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	c := newClock()
	l := newLimiter(t, c, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: 10 * time.Second})
	h := ratelimiter.Middleware(l, func(r *http.Request) string { return r.URL.Query().Get("key") }, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) }),
	)

	do := func(target string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		return rec
	}

	rec := do("/?key=a")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

	rec = do("/?key=a")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "10", rec.Header().Get("Retry-After"))

	for range 5 {
		assert.Equal(t, http.StatusNoContent, do("/").Code, "empty key bypasses the limiter")
	}
}

func TestMiddleware_CustomDenied(t *testing.T) {
	t.Parallel()

	l := newLimiter(t, newClock(), ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Minute})
	h := ratelimiter.Middleware(l,
		func(*http.Request) string { return "k" },
		func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) },
	)(http.NotFoundHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestLimiter_Concurrent(t *testing.T) {
	t.Parallel()

	l := newLimiter(t, newClock(), ratelimiter.Config{Capacity: 50, RefillRate: 1, RefillInterval: time.Hour})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("shared").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}
