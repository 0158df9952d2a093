// Package config loads the application's immutable settings snapshot.
//
// [Load] is called once in main: it reads an optional .env file, parses the
// process environment into [Config] with caarlos0/env, validates the
// environment tag, and returns a value that is read-only for the rest of
// the process lifetime. Components receive the sub-configs they need
// (db.Config, logger.Config, ...) explicitly; there is no global settings
// store.
package config
