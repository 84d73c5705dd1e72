package httpserver

import (
	"log/slog"
	"time"
)

type options struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	log             *slog.Logger
	onStart         []func(log *slog.Logger, addr string)
	onStop          []func(log *slog.Logger)
}

func defaultOptions() *options {
	return &options{
		addr:            ":8080",
		readTimeout:     30 * time.Second,
		writeTimeout:    30 * time.Second,
		idleTimeout:     120 * time.Second,
		shutdownTimeout: 5 * time.Second,
	}
}

// Option configures a Server. Options panic on invalid arguments.
type Option func(*options)

// WithAddr sets the listen address. Port 0 picks a free port; see Server.Addr.
func WithAddr(addr string) Option {
	if addr == "" {
		panic("httpserver: WithAddr: empty address")
	}
	return func(o *options) { o.addr = addr }
}

func WithReadTimeout(d time.Duration) Option {
	mustPositive("WithReadTimeout", d)
	return func(o *options) { o.readTimeout = d }
}

func WithWriteTimeout(d time.Duration) Option {
	mustPositive("WithWriteTimeout", d)
	return func(o *options) { o.writeTimeout = d }
}

func WithIdleTimeout(d time.Duration) Option {
	mustPositive("WithIdleTimeout", d)
	return func(o *options) { o.idleTimeout = d }
}

// WithShutdownTimeout bounds how long in-flight requests may take to finish.
func WithShutdownTimeout(d time.Duration) Option {
	mustPositive("WithShutdownTimeout", d)
	return func(o *options) { o.shutdownTimeout = d }
}

// WithLogger sets the logger passed to hooks and used for server events.
// A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithStartHook runs h once the listener is bound, with the actual address.
func WithStartHook(h func(log *slog.Logger, addr string)) Option {
	if h == nil {
		panic("httpserver: WithStartHook: nil hook")
	}
	return func(o *options) { o.onStart = append(o.onStart, h) }
}

// WithStopHook runs h after shutdown completes.
func WithStopHook(h func(log *slog.Logger)) Option {
	if h == nil {
		panic("httpserver: WithStopHook: nil hook")
	}
	return func(o *options) { o.onStop = append(o.onStop, h) }
}

func mustPositive(name string, d time.Duration) {
	if d <= 0 {
		panic("httpserver: " + name + ": duration must be > 0")
	}
}
