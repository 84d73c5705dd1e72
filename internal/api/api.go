// Package api exposes the name generator over HTTP.
//
// Every route is GET and answers JSON, except /health which answers plain
// text. Filters are read from the query string: letter and origin may repeat
// or hold comma separated values; kind and gender take a single value or
// "any".
package api

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/namekit/pkg/clientip"
	"github.com/dmitrymomot/namekit/pkg/httpserver"
	"github.com/dmitrymomot/namekit/pkg/logger"
	"github.com/dmitrymomot/namekit/pkg/names"
	"github.com/dmitrymomot/namekit/pkg/ratelimiter"
	"github.com/dmitrymomot/namekit/pkg/requestid"
)

// MaxCount bounds the count query parameter.
const MaxCount = 100

type options struct {
	ds      *names.Dataset
	rand    names.Rand
	log     *slog.Logger
	limiter *ratelimiter.Limiter
}

// Option configures NewRouter.
type Option func(*options)

// WithDataset serves ds instead of the embedded dataset.
func WithDataset(ds *names.Dataset) Option {
	return func(o *options) {
		if ds != nil {
			o.ds = ds
		}
	}
}

// WithRand draws from r. Calls into r are serialized, so a plain
// *rand.Rand is fine.
func WithRand(r names.Rand) Option {
	return func(o *options) {
		if r != nil {
			o.rand = &lockedRand{r: r}
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithRateLimit limits the /names routes per client IP.
func WithRateLimit(l *ratelimiter.Limiter) Option {
	return func(o *options) { o.limiter = l }
}

// NewRouter returns the HTTP handler for every route.
func NewRouter(opts ...Option) http.Handler {
	o := options{rand: names.SharedRand(), log: logger.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ds == nil {
		o.ds = names.Load()
	}
	h := &handlers{ds: o.ds, rand: o.rand, log: o.log.With(logger.Component("api"))}

	r := chi.NewRouter()
	r.Use(requestid.Middleware())
	r.Use(requestLogger(h.log))
	r.Use(chimw.Recoverer)

	r.Get("/health", httpserver.HealthCheckHandler(h.log))
	r.Get("/origins", h.origins)
	r.Get("/stats", h.stats)
	r.Route("/names", func(r chi.Router) {
		if o.limiter != nil {
			r.Use(ratelimiter.Middleware(o.limiter, clientip.FromRequest, func(w http.ResponseWriter, _ *http.Request) {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			}))
		}
		r.Get("/", h.pick)
		r.Get("/full", h.full)
		r.Get("/count", h.count)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

type lockedRand struct {
	mu sync.Mutex
	r  names.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}
