// Package config fills tagged structs from environment variables.
//
// A .env file in the working directory is read once, on the first Load, and
// never overrides variables already present in the process environment.
// Each struct type is parsed once; later calls receive a copy of the cached
// value. Failed parses are not cached.
//
//	type Config struct {
//		Env  string `env:"APP_ENV" envDefault:"development"`
//		Seed uint64 `env:"NAMEGEN_SEED"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu     sync.Mutex
	loaded = make(map[reflect.Type]any)

	dotenvOnce sync.Once
)

// Load parses environment variables into v according to its `env` tags.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenvOnce.Do(func() {
		// A missing .env is normal outside local development.
		_ = godotenv.Load()
	})

	typ := reflect.TypeFor[T]()

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := loaded[typ]; ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	loaded[typ] = parsed
	*v = parsed
	return nil
}

// MustLoad is like Load but panics on error.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// LoadEnv reads the given .env files into the process environment, overriding
// existing variables. It does not touch cached configs; call ResetCache to
// re-parse them.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	if err := godotenv.Overload(paths...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// ResetCache drops every cached config so the next Load parses again.
func ResetCache() {
	mu.Lock()
	defer mu.Unlock()
	clear(loaded)
}
