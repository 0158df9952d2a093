// Command server runs the HTTP service: settings snapshot, logger, session
// manager, middleware chain, health probes, graceful shutdown. This is the
// only place that knows about every component; each package below receives
// just the configuration it needs.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/sonica/config"
	"github.com/dmitrymomot/sonica/internal/server"
	"github.com/dmitrymomot/sonica/middlewares"
	"github.com/dmitrymomot/sonica/pkg/db"
	"github.com/dmitrymomot/sonica/pkg/health"
	"github.com/dmitrymomot/sonica/pkg/logger"
	"github.com/dmitrymomot/sonica/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.NewWithSentry(cfg.Logger, cfg.Sentry, middlewares.RequestIDExtractor())

	manager := db.NewManager(log)

	checks := health.Checks{
		"database": db.Healthcheck(manager),
	}

	startupHooks := []func(ctx context.Context) error{
		func(ctx context.Context) error {
			return manager.Init(ctx, cfg.Database)
		},
	}
	shutdownHooks := []func(ctx context.Context) error{
		func(ctx context.Context) error {
			manager.Close()
			return nil
		},
	}

	// Redis is optional; without a URL the service runs without it and no
	// readiness condition is registered.
	if cfg.Redis.URL != "" {
		var client goredis.UniversalClient
		startupHooks = append(startupHooks, func(ctx context.Context) error {
			c, err := redis.Open(ctx, cfg.Redis, log)
			if err != nil {
				return err
			}
			client = c
			return nil
		})
		shutdownHooks = append(shutdownHooks, func(ctx context.Context) error {
			if client == nil {
				return nil
			}
			return client.Close()
		})
		checks["redis"] = func(ctx context.Context) error {
			return redis.Healthcheck(client)(ctx)
		}
	}

	if cfg.Sentry.DSN != "" {
		shutdownHooks = append(shutdownHooks, func(ctx context.Context) error {
			sentry.Flush(2 * time.Second)
			return nil
		})
	}

	router := server.NewRouter(server.Config{
		Log:         log,
		AppName:     cfg.AppName,
		Version:     cfg.Version,
		Environment: cfg.Environment,
		Production:  cfg.IsProduction(),
		Checks:      checks,
	})

	log.Info("startup",
		slog.String("app", cfg.AppName),
		slog.String("version", cfg.Version),
		slog.String("environment", cfg.Environment),
	)

	if err := server.Run(server.RuntimeConfig{
		Handler:       router,
		Logger:        log,
		Addr:          cfg.HTTPAddr,
		StartupHooks:  startupHooks,
		ShutdownHooks: shutdownHooks,
	}); err != nil {
		log.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
}
