package health

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultTimeout = 5 * time.Second

const (
	// StatusAlive is reported by the liveness probe.
	StatusAlive = "alive"
	// StatusReady indicates every readiness condition passed.
	StatusReady = "ready"
	// StatusNotReady indicates at least one condition failed or timed out.
	StatusNotReady = "not_ready"
)

// Condition is a readiness check. A nil return means healthy.
// This matches the healthcheck closures exposed by the db and redis packages.
type Condition func(ctx context.Context) error

// Checks is a set of named readiness conditions.
type Checks map[string]Condition

// Response is the readiness probe body: the aggregate status plus a
// per-check boolean outcome.
type Response struct {
	Checks map[string]bool `json:"checks"`
	Status string          `json:"status"`
}

// Option configures check execution.
type Option func(*config)

type config struct {
	logger  *slog.Logger
	timeout time.Duration
}

// WithTimeout sets the per-check timeout. Each condition is bounded
// independently. Default: 5 seconds.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger for failed-check warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		timeout: defaultTimeout,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// runChecks executes all conditions in parallel, each with its own timeout,
// and aggregates the outcome. A failing or timed-out condition is recorded
// and logged, never propagated; with zero conditions the service is
// vacuously ready.
func runChecks(ctx context.Context, checks Checks, cfg *config) *Response {
	results := make(map[string]bool, len(checks))
	if len(checks) == 0 {
		return &Response{Status: StatusReady, Checks: results}
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)

	for name, check := range checks {
		g.Go(func() error {
			err := runCheck(ctx, check, cfg.timeout)
			if err != nil {
				cfg.logger.WarnContext(ctx, "readiness check failed",
					slog.String("check", name),
					slog.String("error", err.Error()),
				)
			}

			mu.Lock()
			results[name] = err == nil
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors; failures land in results

	status := StatusReady
	for _, ok := range results {
		if !ok {
			status = StatusNotReady
			break
		}
	}

	return &Response{Status: status, Checks: results}
}

// runCheck bounds a single condition by the timeout and contains panics.
// The timeout is a soft cancellation: an operation that cannot abort
// promptly must clean up after itself, the aggregator just stops waiting.
func runCheck(ctx context.Context, check Condition, timeout time.Duration) (err error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- fmt.Errorf("check panic: %v", p)
			}
		}()
		done <- check(ctx)
	}()

	select {
	case err = <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
