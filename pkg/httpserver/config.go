package httpserver

import "time"

// Config is the environment form of the server options.
type Config struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Options converts the non-zero fields of cfg into options.
func (cfg Config) Options() []Option {
	opts := make([]Option, 0, 5)
	if cfg.Addr != "" {
		opts = append(opts, WithAddr(cfg.Addr))
	}
	if cfg.ReadTimeout > 0 {
		opts = append(opts, WithReadTimeout(cfg.ReadTimeout))
	}
	if cfg.WriteTimeout > 0 {
		opts = append(opts, WithWriteTimeout(cfg.WriteTimeout))
	}
	if cfg.IdleTimeout > 0 {
		opts = append(opts, WithIdleTimeout(cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout > 0 {
		opts = append(opts, WithShutdownTimeout(cfg.ShutdownTimeout))
	}
	return opts
}

// NewFromConfig is New(cfg.Options()..., opts...). Later options win.
func NewFromConfig(cfg Config, opts ...Option) *Server {
	return New(append(cfg.Options(), opts...)...)
}
