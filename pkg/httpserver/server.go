// Package httpserver runs an http.Handler with graceful shutdown.
//
// Run binds the listener, serves until the context is cancelled or the
// process receives SIGINT or SIGTERM, then drains in-flight requests within
// the shutdown timeout.
package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrymomot/namekit/pkg/logger"
)

// Server is a single-use HTTP server.
type Server struct {
	opts *options

	mu   sync.Mutex
	srv  *http.Server
	addr string

	shutdownOnce sync.Once
	shutdownErr  error
}

// New returns a Server configured by opts.
func New(opts ...Option) *Server {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = logger.Discard()
	}
	return &Server{opts: o}
}

// Addr returns the bound address once Run has started listening, or "".
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Run serves handler and blocks until shutdown. A nil handler answers 404.
// Bind and serve failures are wrapped with ErrStart.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, errors.New("server already started"))
	}
	s.srv = &http.Server{
		Handler:      handler,
		ReadTimeout:  s.opts.readTimeout,
		WriteTimeout: s.opts.writeTimeout,
		IdleTimeout:  s.opts.idleTimeout,
		ErrorLog:     slog.NewLogLogger(s.opts.log.Handler(), slog.LevelError),
		BaseContext:  func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	srv := s.srv
	s.mu.Unlock()

	ln, err := net.Listen("tcp", s.opts.addr)
	if err != nil {
		return errors.Join(ErrStart, err)
	}
	s.mu.Lock()
	s.addr = ln.Addr().String()
	s.mu.Unlock()

	log := s.opts.log.With(logger.Component("httpserver"))
	for _, h := range s.opts.onStart {
		h(log, s.addr)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("shutting down", "reason", "context done")
	case got := <-sig:
		log.Info("shutting down", "reason", got.String())
	case serveErr = <-errCh:
		if !errors.Is(serveErr, http.ErrServerClosed) {
			return errors.Join(ErrStart, serveErr)
		}
		return s.shutdownResult()
	}

	if err := s.Shutdown(context.Background()); err != nil {
		return err
	}
	if serveErr = <-errCh; serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, serveErr)
	}
	return nil
}

// Shutdown stops the server. Only the first call has an effect; later calls
// return the same result. Calling it before Run is a no-op.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	s.shutdownOnce.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, s.opts.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			s.shutdownErr = errors.Join(ErrShutdown, err)
		}
		for _, h := range s.opts.onStop {
			h(s.opts.log)
		}
	})
	return s.shutdownErr
}

func (s *Server) shutdownResult() error {
	s.shutdownOnce.Do(func() {})
	return s.shutdownErr
}
