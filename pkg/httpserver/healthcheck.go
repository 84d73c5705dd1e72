package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/namekit/pkg/logger"
)

// Check reports whether a dependency is usable.
type Check func(ctx context.Context) error

// HealthCheckHandler answers liveness and readiness probes. With no checks it
// always returns 200 "ALIVE". Otherwise it runs every check with the request
// context and returns 200 "READY", or 503 "NOT_READY" on the first failure.
func HealthCheckHandler(log *slog.Logger, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if len(checks) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
