package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Format is the output encoding of a logger.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Environment names understood by WithEnvironment.
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Option configures New.
type Option func(*config)

type config struct {
	level      slog.Level
	format     Format
	output     io.Writer
	attrs      []slog.Attr
	extractors []ContextExtractor
}

func defaultConfig() *config {
	return &config{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
}

func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

// WithFormat sets the output format. It panics on unknown formats so that a
// misconfigured binary fails at startup.
func WithFormat(f Format) Option {
	switch f {
	case FormatJSON, FormatText:
	default:
		panic(fmt.Errorf("invalid log format %q: must be %q or %q", f, FormatJSON, FormatText))
	}
	return func(c *config) { c.format = f }
}

func WithTextFormatter() Option { return WithFormat(FormatText) }
func WithJSONFormatter() Option { return WithFormat(FormatJSON) }

// WithOutput sets the destination. A nil writer is ignored.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithAttr attaches static attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) { c.attrs = append(c.attrs, attrs...) }
}

// WithContextExtractors registers extractors run on every record. Nil
// extractors are skipped.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		for _, ex := range extractors {
			if ex != nil {
				c.extractors = append(c.extractors, ex)
			}
		}
	}
}

// WithContextValue logs ctx.Value(key) under name whenever it is set.
func WithContextValue(name string, key any) Option {
	return func(c *config) {
		if name == "" || key == nil {
			return
		}
		c.extractors = append(c.extractors, func(ctx context.Context) (slog.Attr, bool) {
			if v := ctx.Value(key); v != nil {
				return slog.Any(name, v), true
			}
			return slog.Attr{}, false
		})
	}
}

// WithDevelopment logs text at debug level.
func WithDevelopment(service string) Option {
	return withEnv(EnvDevelopment, service, slog.LevelDebug, FormatText)
}

// WithStaging logs JSON at info level.
func WithStaging(service string) Option {
	return withEnv(EnvStaging, service, slog.LevelInfo, FormatJSON)
}

// WithProduction logs JSON at info level.
func WithProduction(service string) Option {
	return withEnv(EnvProduction, service, slog.LevelInfo, FormatJSON)
}

// WithEnvironment picks the preset matching env. Short forms "prod" and
// "stage" are accepted; anything else means development.
func WithEnvironment(env, service string) Option {
	switch strings.ToLower(env) {
	case EnvProduction, "prod":
		return WithProduction(service)
	case EnvStaging, "stage":
		return WithStaging(service)
	default:
		return WithDevelopment(service)
	}
}

func withEnv(env, service string, level slog.Level, format Format) Option {
	return func(c *config) {
		c.level = level
		c.format = format
		c.attrs = append(c.attrs, slog.String("env", env))
		if service != "" {
			c.attrs = append(c.attrs, slog.String("service", service))
		}
	}
}

// ParseLevel accepts slog level names such as "debug", "INFO" or "warn+2".
// An empty string yields info.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, err
	}
	return l, nil
}

// New returns a logger configured by opts.
func New(opts ...Option) *slog.Logger {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level}
	var handler slog.Handler
	if cfg.format == FormatText {
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	}
	if len(cfg.attrs) > 0 {
		handler = handler.WithAttrs(cfg.attrs)
	}
	return slog.New(NewLogHandlerDecorator(handler, cfg.extractors...))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
