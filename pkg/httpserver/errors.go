package httpserver

import "errors"

var (
	// ErrStart indicates that the server could not bind or serve.
	ErrStart = errors.New("failed to start HTTP server")
	// ErrShutdown indicates that graceful shutdown did not complete.
	ErrShutdown = errors.New("failed to shutdown HTTP server gracefully")
)
