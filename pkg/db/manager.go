package db

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/sonica/pkg/retry"
)

// Pool is the subset of *pgxpool.Pool the session manager depends on.
// Tests substitute a fake via [WithPool].
type Pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Manager owns the connection pool and hands out scoped sessions.
//
// Lifecycle: uninitialized → initialized (Init) → closed (Close, back to
// uninitialized). There is one manager per process. Init is single-writer at
// startup and deliberately not guarded against concurrent calls; callers
// must not race Init against itself or against open sessions.
type Manager struct {
	pool    Pool
	pgxPool *pgxpool.Pool // set only when the manager dialed the pool itself
	log     *slog.Logger
}

// NewManager creates an uninitialized manager. A nil logger discards output.
func NewManager(log *slog.Logger) *Manager {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{log: log}
}

// InitOption configures Init.
type InitOption func(*initOptions)

type initOptions struct {
	pool Pool
}

// WithPool skips dialing and runs the manager on the given pool.
// Intended for tests; Config pool settings are ignored.
func WithPool(pool Pool) InitOption {
	return func(o *initOptions) {
		o.pool = pool
	}
}

// Init constructs the connection pool. It replaces any prior pool without
// draining sessions issued from it; call Close first if one exists.
func (m *Manager) Init(ctx context.Context, cfg Config, opts ...InitOption) error {
	var o initOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.pool != nil {
		m.pool = o.pool
		m.pgxPool = nil
		return nil
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return errors.Join(ErrFailedToParseConfig, err)
	}
	poolCfg.MinConns = cfg.PoolSize
	poolCfg.MaxConns = cfg.maxConns()
	poolCfg.HealthCheckPeriod = cfg.HealthCheckPeriod
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	if cfg.PrePing {
		// Validate each connection on checkout; a failed ping discards it
		// and the pool acquires a fresh one.
		poolCfg.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
			return conn.Ping(ctx) == nil
		}
	}

	if cfg.Echo {
		poolCfg.ConnConfig.Tracer = &queryTracer{log: m.log}
	}

	pool, err := retry.DoValue(ctx, func(ctx context.Context) (*pgxpool.Pool, error) {
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, retry.Transient(err)
		}
		// Ping here catches authentication and permission failures that
		// pool construction alone does not surface.
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, retry.Transient(err)
		}
		return pool, nil
	},
		retry.WithMaxAttempts(max(cfg.RetryAttempts, 1)),
		retry.WithBaseDelay(cfg.RetryInterval),
		retry.WithLogger(m.log),
	)
	if err != nil {
		return errors.Join(ErrFailedToConnect, err)
	}

	m.pool = pool
	m.pgxPool = pool
	return nil
}

// Close disposes the pool and resets the manager to uninitialized.
// Safe to call on a manager that was never initialized.
func (m *Manager) Close() {
	if m.pool == nil {
		return
	}
	m.pool.Close()
	m.pool = nil
	m.pgxPool = nil
}

// Initialized reports whether the manager currently holds a pool.
func (m *Manager) Initialized() bool {
	return m.pool != nil
}

// Session executes fn in a scoped unit of work: one pooled connection, one
// transaction. The transaction commits when fn returns nil, rolls back when
// fn returns an error or panics (the panic is re-raised), and the connection
// is always returned to the pool afterwards.
func (m *Manager) Session(ctx context.Context, fn func(tx pgx.Tx) error) error {
	if m.pool == nil {
		return ErrNotInitialized
	}

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return errors.Join(err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}

// Connection executes fn on a raw connection wrapped in an implicit
// transaction that commits on normal return. For administrative operations
// such as running schema changes; request handling should use Session.
func (m *Manager) Connection(ctx context.Context, fn func(conn *pgx.Conn) error) error {
	return m.Session(ctx, func(tx pgx.Tx) error {
		return fn(tx.Conn())
	})
}

// PgxPool exposes the raw pgx pool for collaborators that need the concrete
// type, such as the goose migrator. Returns ErrPoolUnavailable when the
// manager runs on an overridden pool.
func (m *Manager) PgxPool() (*pgxpool.Pool, error) {
	if m.pool == nil {
		return nil, ErrNotInitialized
	}
	if m.pgxPool == nil {
		return nil, ErrPoolUnavailable
	}
	return m.pgxPool, nil
}
