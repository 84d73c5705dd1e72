package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// Header is the default header carrying the request id.
const Header = "X-Request-ID"

const maxIDLength = 128

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type options struct {
	header   string
	generate func() string
}

// Option configures Middleware.
type Option func(*options)

// WithHeader reads and writes the id under a different header name.
func WithHeader(name string) Option {
	return func(o *options) {
		if name != "" {
			o.header = name
		}
	}
}

// WithGenerator replaces the UUID generator.
func WithGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.generate = fn
		}
	}
}

// Middleware returns a handler wrapper that assigns every request an id.
// Client ids longer than 128 bytes or containing anything but letters,
// digits, '-' and '_' are replaced.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	o := options{header: Header, generate: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(o.header)
			if !Valid(id) {
				id = o.generate()
			}
			w.Header().Set(o.header, id)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
		})
	}
}

// Valid reports whether id may be reused as a request id.
func Valid(id string) bool {
	return id != "" && len(id) <= maxIDLength && validID.MatchString(id)
}
