// Package health provides HTTP handlers for liveness and readiness probes.
//
// [LivenessHandler] answers 200 whenever the process can respond at all.
// [ReadinessHandler] runs a caller-supplied set of [Checks] in parallel,
// bounds each one independently by a timeout (default 5s), and aggregates
// them: ready only if every condition passes, vacuously ready with none. A
// condition that fails, panics, or times out marks its entry false and is
// logged, never propagated.
//
// Register on the router:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "database": db.Healthcheck(manager),
//	    "redis":    redis.Healthcheck(client),
//	}, health.WithLogger(log)))
//
// Readiness body:
//
//	{"status": "ready", "checks": {"database": true, "redis": true}}
package health
