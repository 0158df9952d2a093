// Command cli provides operational tooling for the service: database
// connectivity checks and schema migrations. Exit codes: 0 on success,
// 1 for usage or configuration errors, 2 for infrastructure failures.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/sonica/config"
	"github.com/dmitrymomot/sonica/pkg/db"
	"github.com/dmitrymomot/sonica/pkg/logger"
)

// errInfra marks failures caused by unreachable or unhealthy infrastructure
// rather than by the operator. They map to exit code 2.
var errInfra = errors.New("infrastructure failure")

func main() {
	root := &cobra.Command{
		Use:           "sonica-cli",
		Short:         "Operational tooling for the sonica service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var timeout time.Duration
	root.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "overall command timeout")

	root.AddCommand(dbCheckCmd(&timeout))
	root.AddCommand(migrateCmd(&timeout))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, errInfra) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// setup loads configuration and opens a database session manager. The caller
// owns the returned manager and must Close it.
func setup(ctx context.Context) (*db.Manager, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	log := logger.New(cfg.Logger)

	manager := db.NewManager(log)
	if err := manager.Init(ctx, cfg.Database); err != nil {
		return nil, nil, errors.Join(errInfra, err)
	}
	return manager, log, nil
}

func dbCheckCmd(timeout *time.Duration) *cobra.Command {
	return &cobra.Command{
		Use:   "db-check",
		Short: "Verify database connectivity with a test query",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), *timeout)
			defer cancel()

			manager, log, err := setup(ctx)
			if err != nil {
				return err
			}
			defer manager.Close()

			if err := db.Healthcheck(manager)(ctx); err != nil {
				return errors.Join(errInfra, err)
			}

			log.Info("database connection OK")
			fmt.Fprintln(cmd.OutOrStdout(), "database connection OK")
			return nil
		},
	}
}

func migrateCmd(timeout *time.Duration) *cobra.Command {
	var (
		dir   string
		table string
	)
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(dir); err != nil {
				return fmt.Errorf("migrations directory %q: %w", dir, err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), *timeout)
			defer cancel()

			manager, log, err := setup(ctx)
			if err != nil {
				return err
			}
			defer manager.Close()

			if err := db.Migrate(ctx, manager, os.DirFS(dir), table, log); err != nil {
				return errors.Join(errInfra, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "migrations", "directory containing migration files")
	cmd.Flags().StringVar(&table, "table", "schema_migrations", "migrations version table")
	return cmd
}
