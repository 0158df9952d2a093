// Package db owns the database connection pool lifecycle and hands out
// scoped sessions.
//
// [Manager] wraps [github.com/jackc/pgx/v5/pgxpool] with an explicit
// init/close lifecycle: construct it once per process, call [Manager.Init]
// at startup and [Manager.Close] on shutdown. Every operation that needs
// the pool returns [ErrNotInitialized] outside the initialized state.
//
// # Scoped sessions
//
// [Manager.Session] is the unit-of-work primitive: one pooled connection,
// one transaction, committed when the closure returns nil and rolled back
// when it returns an error or panics. The connection always goes back to
// the pool. Use it per HTTP request or per batch task:
//
//	err := manager.Session(ctx, func(tx pgx.Tx) error {
//	    _, err := tx.Exec(ctx, "INSERT ...")
//	    return err
//	})
//
// [Manager.Connection] provides a raw connection inside an implicit
// transaction for administrative work, and [Migrate] runs goose migrations
// through the same configured pool.
//
// # Configuration
//
// [Config] is populated from environment variables:
//
//	DATABASE_URL                 - connection URL (required, secret)
//	DATABASE_POOL_SIZE           - persistent connections (default: 5)
//	DATABASE_POOL_OVERFLOW       - extra connections under load (default: 10)
//	DATABASE_PRE_PING            - ping connections on checkout (default: true)
//	DATABASE_ECHO                - log every SQL statement (default: false)
//	DATABASE_HEALTHCHECK_PERIOD  - pool health check interval (default: 1m)
//	DATABASE_MAX_CONN_IDLE_TIME  - idle connection refresh (default: 10m)
//	DATABASE_MAX_CONN_LIFETIME   - connection lifetime cap (default: 30m)
//	DATABASE_RETRY_ATTEMPTS      - startup dial attempts (default: 3)
//	DATABASE_RETRY_INTERVAL      - startup retry base interval (default: 5s)
//
// # Testing
//
// Init accepts [WithPool] to run the manager on a caller-supplied [Pool],
// letting tests exercise the full session contract without a server.
package db
