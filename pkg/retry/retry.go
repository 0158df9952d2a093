package retry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"
)

// Defaults follow the AWS guidance on contention avoidance: full jitter,
// stop after 3 attempts or 60 seconds, retry only explicitly transient
// failures.
const (
	defaultMaxAttempts = 3
	defaultMaxElapsed  = 60 * time.Second
	defaultBaseDelay   = 1 * time.Second
	defaultMaxDelay    = 10 * time.Second
)

// ErrTransient marks a failure category that is safe to retry.
// Infrastructure code wraps errors with [Transient] to opt them in.
var ErrTransient = errors.New("transient failure")

// Transient wraps err so that [IsTransient] (and the default retry
// predicate) classifies it as retryable. Wrapping nil returns nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrTransient, err)
}

// IsTransient reports whether err is marked transient.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

// Option configures retry behavior.
type Option func(*config)

type config struct {
	logger      *slog.Logger
	retryIf     func(error) bool
	maxAttempts int
	maxElapsed  time.Duration
	baseDelay   time.Duration
	maxDelay    time.Duration
}

// WithMaxAttempts caps the number of tries, including the first.
// Default: 3.
func WithMaxAttempts(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithMaxElapsedTime caps the total time spent retrying.
// Default: 60 seconds.
func WithMaxElapsedTime(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.maxElapsed = d
		}
	}
}

// WithBaseDelay sets the exponential backoff base. Default: 1 second.
func WithBaseDelay(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.baseDelay = d
		}
	}
}

// WithMaxDelay caps any single wait interval. Default: 10 seconds.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.maxDelay = d
		}
	}
}

// WithRetryIf replaces the default transient-only predicate.
func WithRetryIf(fn func(error) bool) Option {
	return func(c *config) {
		if fn != nil {
			c.retryIf = fn
		}
	}
}

// WithLogger sets the logger used for per-retry warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		maxAttempts: defaultMaxAttempts,
		maxElapsed:  defaultMaxElapsed,
		baseDelay:   defaultBaseDelay,
		maxDelay:    defaultMaxDelay,
		retryIf:     IsTransient,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Do runs op, retrying transient failures with exponential backoff and full
// jitter. It stops on the first success, on a non-retryable error, when the
// attempt cap or elapsed-time cap is reached, or when ctx is canceled.
// The last error seen is returned.
//
// Nothing applies Do automatically; call sites opt in per operation:
//
//	err := retry.Do(ctx, func(ctx context.Context) error {
//	    return client.Ping(ctx)
//	})
func Do(ctx context.Context, op func(ctx context.Context) error, opts ...Option) error {
	_, err := DoValue(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	}, opts...)
	return err
}

// DoValue is [Do] for operations that return a value alongside the error.
func DoValue[T any](ctx context.Context, op func(ctx context.Context) (T, error), opts ...Option) (T, error) {
	cfg := newConfig(opts...)
	deadline := time.Now().Add(cfg.maxElapsed)

	var zero T
	var lastErr error

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return zero, errors.Join(lastErr, err)
			}
			return zero, err
		}

		v, err := op(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if !cfg.retryIf(err) || attempt >= cfg.maxAttempts {
			return zero, lastErr
		}

		wait := backoff(cfg.baseDelay, cfg.maxDelay, attempt)
		if time.Now().Add(wait).After(deadline) {
			return zero, lastErr
		}

		cfg.logger.WarnContext(ctx, "retrying after transient failure",
			slog.Int("attempt", attempt),
			slog.Duration("wait", wait),
			slog.String("error", err.Error()),
		)

		select {
		case <-ctx.Done():
			return zero, errors.Join(lastErr, ctx.Err())
		case <-time.After(wait):
		}
	}
}

// backoff computes a full-jitter wait: uniform over [0, min(max, base*2^n)].
func backoff(base, maxWait time.Duration, attempt int) time.Duration {
	ceil := base << uint(attempt-1)
	if ceil <= 0 || ceil > maxWait {
		ceil = maxWait
	}
	return time.Duration(rand.Int64N(int64(ceil) + 1))
}
