// Package redis provides the optional Redis client for the scaffold.
//
// Redis is opt-in: when REDIS_URL is unset the server simply runs without
// it. When configured, [Open] dials with startup retry, [Healthcheck]
// contributes a readiness condition, and [Shutdown] hooks the client into
// graceful shutdown.
package redis
