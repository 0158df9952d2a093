package db

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate applies all pending schema migrations from the given filesystem.
// Migration content is an external concern; this runs whatever the files
// say against the manager's configured database.
//
// Goose needs a database/sql handle, so the manager's pgx pool is bridged
// via stdlib.OpenDBFromPool. The bridge shares the pool's connections and
// must not be closed here, closing it would disrupt the shared pool.
func Migrate(ctx context.Context, m *Manager, migrations fs.FS, table string, log *slog.Logger) error {
	pool, err := m.PgxPool()
	if err != nil {
		return err
	}
	sqlDB := stdlib.OpenDBFromPool(pool)

	goose.SetBaseFS(migrations)
	goose.SetLogger(&gooseLogger{log})
	if table != "" {
		goose.SetTableName(table)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrSetDialect, err)
	}

	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}

	return nil
}

type gooseLogger struct {
	log *slog.Logger
}

func (g *gooseLogger) Printf(format string, args ...any) {
	g.log.Info(fmt.Sprintf(format, args...))
}

func (g *gooseLogger) Fatalf(format string, args ...any) {
	// Error level only; goose propagates the failure as a returned error
	// and os.Exit here would skip shutdown hooks.
	g.log.Error(fmt.Sprintf(format, args...))
}
