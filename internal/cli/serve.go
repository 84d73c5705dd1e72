package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/namekit/internal/api"
	"github.com/dmitrymomot/namekit/pkg/config"
	"github.com/dmitrymomot/namekit/pkg/httpserver"
	"github.com/dmitrymomot/namekit/pkg/logger"
	"github.com/dmitrymomot/namekit/pkg/names"
	"github.com/dmitrymomot/namekit/pkg/ratelimiter"
	"github.com/dmitrymomot/namekit/pkg/requestid"
)

type serveConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Service  string `env:"APP_SERVICE" envDefault:"namegen"`
	LogLevel string `env:"LOG_LEVEL"`

	// Seed makes the draw sequence reproducible across restarts. Zero means
	// unseeded.
	Seed uint64 `env:"NAMEGEN_SEED"`

	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"false"`
	RateLimit        ratelimiter.Config

	HTTP httpserver.Config
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the generator over HTTP",
		Long:  "Serve the generator over HTTP. Configuration is read from the environment and an optional .env file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg serveConfig
			if err := config.Load(&cfg); err != nil {
				return err
			}

			logOpts := []logger.Option{
				logger.WithOutput(cmd.ErrOrStderr()),
				logger.WithEnvironment(cfg.Env, cfg.Service),
				logger.WithContextExtractors(requestid.LoggerExtractor()),
			}
			if cfg.LogLevel != "" {
				level, err := logger.ParseLevel(cfg.LogLevel)
				if err != nil {
					return err
				}
				logOpts = append(logOpts, logger.WithLevel(level))
			}
			log := logger.New(logOpts...)

			ds := names.Load()
			apiOpts := []api.Option{api.WithDataset(ds), api.WithLogger(log)}
			if cfg.Seed != 0 {
				apiOpts = append(apiOpts, api.WithRand(seeded(cfg.Seed)))
			}
			if cfg.RateLimitEnabled {
				l, err := ratelimiter.New(cfg.RateLimit)
				if err != nil {
					return err
				}
				apiOpts = append(apiOpts, api.WithRateLimit(l))
			}

			srv := httpserver.NewFromConfig(cfg.HTTP,
				httpserver.WithLogger(log),
				httpserver.WithStartHook(func(l *slog.Logger, addr string) {
					l.Info("listening", slog.String("addr", addr), slog.Int("names", ds.Len()))
				}),
				httpserver.WithStopHook(func(l *slog.Logger) {
					l.Info("stopped")
				}),
			)
			return srv.Run(cmd.Context(), api.NewRouter(apiOpts...))
		},
	}
}
