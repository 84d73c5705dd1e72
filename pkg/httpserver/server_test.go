package httpserver_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/namekit/pkg/httpserver"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
}

// start runs srv in the background and returns its bound address.
func start(t *testing.T, ctx context.Context, srv *httpserver.Server, h http.Handler) (string, <-chan error) {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, h) }()

	require.Eventually(t, func() bool { return srv.Addr() != "" }, 2*time.Second, 10*time.Millisecond)
	return srv.Addr(), done
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		require.FailNow(t, "Run did not return")
		return nil
	}
}

func TestRun_ServesUntilContextDone(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := httpserver.New(httpserver.WithAddr("127.0.0.1:0"), httpserver.WithShutdownTimeout(time.Second))
	addr, done := start(t, ctx, srv, okHandler())

	resp, err := http.Get("http://" + addr)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "ok", string(body))

	cancel()
	assert.NoError(t, waitDone(t, done))
}

func TestRun_ManualShutdown(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(httpserver.WithAddr("127.0.0.1:0"))
	_, done := start(t, context.Background(), srv, nil)

	require.NoError(t, srv.Shutdown(context.Background()))
	require.NoError(t, srv.Shutdown(context.Background()))
	assert.NoError(t, waitDone(t, done))
}

func TestRun_NilHandlerIsNotFound(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := httpserver.New(httpserver.WithAddr("127.0.0.1:0"))
	addr, done := start(t, ctx, srv, nil)

	resp, err := http.Get("http://" + addr + "/anything")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	cancel()
	assert.NoError(t, waitDone(t, done))
}

func TestRun_BindError(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := httpserver.New(httpserver.WithAddr(ln.Addr().String()))
	err = srv.Run(context.Background(), okHandler())
	assert.ErrorIs(t, err, httpserver.ErrStart)
}

func TestRun_AlreadyStarted(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := httpserver.New(httpserver.WithAddr("127.0.0.1:0"))
	_, done := start(t, ctx, srv, okHandler())

	assert.ErrorIs(t, srv.Run(ctx, okHandler()), httpserver.ErrStart)

	cancel()
	assert.NoError(t, waitDone(t, done))
}

func TestShutdown_BeforeRun(t *testing.T) {
	t.Parallel()

	assert.NoError(t, httpserver.New().Shutdown(context.Background()))
}

func TestHooks(t *testing.T) {
	t.Parallel()

	var started, stopped atomic.Int32
	var startedAddr atomic.Value

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := httpserver.New(
		httpserver.WithAddr("127.0.0.1:0"),
		httpserver.WithLogger(slog.New(slog.DiscardHandler)),
		httpserver.WithStartHook(func(_ *slog.Logger, addr string) {
			started.Add(1)
			startedAddr.Store(addr)
		}),
		httpserver.WithStopHook(func(*slog.Logger) { stopped.Add(1) }),
	)
	addr, done := start(t, ctx, srv, okHandler())

	cancel()
	require.NoError(t, waitDone(t, done))
	assert.Equal(t, int32(1), started.Load())
	assert.Equal(t, int32(1), stopped.Load())
	assert.Equal(t, addr, startedAddr.Load())
}

func TestOptionPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { httpserver.WithAddr("") })
	assert.Panics(t, func() { httpserver.WithReadTimeout(0) })
	assert.Panics(t, func() { httpserver.WithWriteTimeout(-time.Second) })
	assert.Panics(t, func() { httpserver.WithIdleTimeout(0) })
	assert.Panics(t, func() { httpserver.WithShutdownTimeout(0) })
	assert.Panics(t, func() { httpserver.WithStartHook(nil) })
	assert.Panics(t, func() { httpserver.WithStopHook(nil) })
}

func TestConfig_Options(t *testing.T) {
	t.Parallel()

	assert.Empty(t, httpserver.Config{}.Options())
	assert.Len(t, httpserver.Config{Addr: ":0", IdleTimeout: time.Second}.Options(), 2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := httpserver.NewFromConfig(httpserver.Config{Addr: ":9"}, httpserver.WithAddr("127.0.0.1:0"))
	_, done := start(t, ctx, srv, okHandler())
	cancel()
	assert.NoError(t, waitDone(t, done))
}

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		checks   []httpserver.Check
		wantCode int
		wantBody string
	}{
		{name: "liveness", wantCode: http.StatusOK, wantBody: "ALIVE"},
		{
			name:     "ready",
			checks:   []httpserver.Check{func(context.Context) error { return nil }},
			wantCode: http.StatusOK,
			wantBody: "READY",
		},
		{
			name: "not ready",
			checks: []httpserver.Check{
				func(context.Context) error { return nil },
				func(context.Context) error { return errors.New("dataset unavailable") },
			},
			wantCode: http.StatusServiceUnavailable,
			wantBody: "NOT_READY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			httpserver.HealthCheckHandler(nil, tt.checks...).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}
