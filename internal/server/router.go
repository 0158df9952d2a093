package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/sonica/middlewares"
	"github.com/dmitrymomot/sonica/pkg/health"
)

// Config holds everything the router needs from the settings snapshot and
// the composition root.
type Config struct {
	Log *slog.Logger

	AppName     string
	Version     string
	Environment string

	// Production gates HSTS on the security headers.
	Production bool

	// Checks are the readiness conditions aggregated by /health/ready.
	Checks health.Checks

	// CheckTimeout bounds each readiness condition independently.
	// Zero means the health package default (5s).
	CheckTimeout time.Duration

	// SecurityHeaders customizes or removes default protective headers.
	SecurityHeaders []middlewares.SecurityHeadersOption
}

// NewRouter composes the middleware chain and the scaffold's HTTP surface.
//
// Chain order, outermost to innermost: correlation binding, security
// headers, access logging, catch-all, routing. The order fixes which
// wrapper a propagating failure meets first and makes the access-log
// duration span the full handling time.
//
// The returned router is open for extension: domain handlers register
// under /api/v1 before the server starts.
func NewRouter(cfg Config) chi.Router {
	log := cfg.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	headerOpts := cfg.SecurityHeaders
	if cfg.Production {
		headerOpts = append([]middlewares.SecurityHeadersOption{
			middlewares.WithStrictTransportSecurity(middlewares.DefaultHSTS),
		}, headerOpts...)
	}

	r := chi.NewRouter()
	r.Use(middlewares.RequestID())
	r.Use(middlewares.SecurityHeaders(headerOpts...))
	r.Use(middlewares.AccessLog(log))
	r.Use(middlewares.Recover(log, middlewares.WithRecoverRespond(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusInternalServerError, "Internal server error")
	})))

	// Routing failures share the uniform error body with every other class.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})

	healthOpts := []health.Option{health.WithLogger(log)}
	if cfg.CheckTimeout > 0 {
		healthOpts = append(healthOpts, health.WithTimeout(cfg.CheckTimeout))
	}
	r.Get("/health/live", health.LivenessHandler())
	r.Get("/health/ready", health.ReadinessHandler(cfg.Checks, healthOpts...))

	r.Get("/version", Wrap(log, versionHandler(cfg.AppName, cfg.Version, cfg.Environment)))

	// Domain routes mount here; the scaffold ships the group empty.
	r.Route("/api/v1", func(chi.Router) {})

	return r
}

// versionHandler reports what is deployed, for ops.
func versionHandler(app, version, environment string) HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		return respondJSON(w, http.StatusOK, map[string]string{
			"app":         app,
			"version":     version,
			"environment": environment,
		})
	}
}

// respondJSON writes a success payload.
func respondJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
