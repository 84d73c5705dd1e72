// Package requestid tags HTTP requests with a correlation id.
//
// Middleware reuses a well-formed id sent by the client in the X-Request-ID
// header, or generates a UUID, stores it in the request context and echoes it
// in the response. LoggerExtractor copies the id into log records.
package requestid

import "context"

type contextKey struct{}

// WithContext returns a copy of ctx carrying id.
func WithContext(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the id stored in ctx, or "" if there is none.
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
