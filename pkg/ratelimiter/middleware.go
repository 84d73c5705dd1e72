package ratelimiter

import (
	"math"
	"net/http"
	"strconv"
)

// KeyFunc derives the bucket key of a request. An empty key bypasses the
// limiter.
type KeyFunc func(r *http.Request) string

// Middleware rejects requests whose bucket is empty by calling denied, or
// answering 429 with a plain text body when denied is nil. Limited responses
// carry the X-RateLimit-Limit, X-RateLimit-Remaining and X-RateLimit-Reset
// headers. Rejections also set Retry-After.
func Middleware(l *Limiter, key KeyFunc, denied http.HandlerFunc) func(http.Handler) http.Handler {
	if denied == nil {
		denied = func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				next.ServeHTTP(w, r)
				return
			}

			res := l.Allow(k)
			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed {
				secs := int(math.Ceil(res.RetryAfter(l.now()).Seconds()))
				h.Set("Retry-After", strconv.Itoa(max(secs, 1)))
				denied(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
