package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/sonica/pkg/db"
	"github.com/dmitrymomot/sonica/pkg/logger"
	"github.com/dmitrymomot/sonica/pkg/redis"
)

// Environment tags understood by the scaffold.
const (
	EnvLocal      = "local"
	EnvStaging    = "staging"
	EnvProduction = "production"
)

var ErrInvalidEnvironment = errors.New("config: environment must be local, staging, or production")

// Config is the immutable settings snapshot, created once per process at
// startup and read-only afterwards. The database URL is a secret; nothing
// in the scaffold logs this struct.
type Config struct {
	AppName     string `env:"APP_NAME" envDefault:"sonica"`
	Version     string `env:"APP_VERSION" envDefault:"0.1.0"`
	Environment string `env:"ENVIRONMENT" envDefault:"local"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	// Debug turns on SQL echo and other noisy diagnostics.
	Debug bool `env:"DEBUG" envDefault:"false"`

	Logger   logger.Config
	Sentry   logger.SentryConfig
	Database db.Config
	Redis    redis.Config
}

// Load builds the snapshot: a .env file first if one exists (ignored when
// absent, env vars injected by orchestrators take precedence anyway), then
// the process environment, then field defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parsing environment: %w", err)
	}

	// Debug is a shorthand: it forces SQL echo and debug-level logs without
	// requiring the individual vars.
	if cfg.Debug {
		cfg.Database.Echo = true
		cfg.Logger.Level = "debug"
	}

	switch cfg.Environment {
	case EnvLocal, EnvStaging, EnvProduction:
	default:
		return nil, fmt.Errorf("%w: got %q", ErrInvalidEnvironment, cfg.Environment)
	}

	return cfg, nil
}

// IsProduction reports whether the process runs with the production tag.
// Gates HSTS and other production-only behavior.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}
