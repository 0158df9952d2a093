package db

import "errors"

var (
	// ErrNotInitialized is returned by operations that need a pool before
	// Init has been called, or after Close.
	ErrNotInitialized = errors.New("db: session manager is not initialized, call Init first")

	ErrFailedToParseConfig = errors.New("db: failed to parse connection URL")
	ErrFailedToConnect     = errors.New("db: failed to open database connection")
	ErrHealthcheckFailed   = errors.New("db: healthcheck failed")

	// ErrPoolUnavailable is returned when administrative access to the raw
	// pgx pool is requested but the manager runs on an overridden pool.
	ErrPoolUnavailable = errors.New("db: raw pgx pool is not available")

	ErrSetDialect      = errors.New("db migrator: failed to set dialect")
	ErrApplyMigrations = errors.New("db migrator: failed to apply migrations")
)
