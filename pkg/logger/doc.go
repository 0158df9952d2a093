// Package logger builds the application's slog loggers.
//
// [New] selects JSON or text output and the minimum level from [Config].
// [ContextExtractor] functions inject request-scoped attributes (such as the
// correlation ID bound by the request-id middleware) into every record at
// log time:
//
//	log := logger.New(cfg.Logger, middlewares.RequestIDExtractor())
//	log.InfoContext(r.Context(), "order created") // carries request_id
//
// [NewWithSentry] additionally fans warnings and errors out to Sentry when a
// DSN is configured, and degrades to stdout-only logging when it is not.
package logger
