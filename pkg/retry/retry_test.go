package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sonica/pkg/retry"
)

func TestDo(t *testing.T) {
	t.Parallel()

	t.Run("succeeds first try without waiting", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := retry.Do(context.Background(), func(ctx context.Context) error {
			calls++
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, 1, calls)
	})

	t.Run("retries transient failures up to the attempt cap", func(t *testing.T) {
		t.Parallel()

		calls := 0
		boom := retry.Transient(errors.New("connection refused"))
		err := retry.Do(context.Background(), func(ctx context.Context) error {
			calls++
			return boom
		}, retry.WithMaxAttempts(3), retry.WithBaseDelay(time.Millisecond), retry.WithMaxDelay(2*time.Millisecond))
		require.ErrorIs(t, err, retry.ErrTransient)
		require.Equal(t, 3, calls)
	})

	t.Run("non-transient failure returns after one attempt", func(t *testing.T) {
		t.Parallel()

		calls := 0
		boom := errors.New("constraint violation")
		err := retry.Do(context.Background(), func(ctx context.Context) error {
			calls++
			return boom
		}, retry.WithMaxAttempts(5))
		require.ErrorIs(t, err, boom)
		require.Equal(t, 1, calls)
	})

	t.Run("recovers after transient failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := retry.Do(context.Background(), func(ctx context.Context) error {
			calls++
			if calls < 3 {
				return retry.Transient(errors.New("not yet"))
			}
			return nil
		}, retry.WithMaxAttempts(5), retry.WithBaseDelay(time.Millisecond), retry.WithMaxDelay(2*time.Millisecond))
		require.NoError(t, err)
		require.Equal(t, 3, calls)
	})

	t.Run("elapsed-time cap stops retrying", func(t *testing.T) {
		t.Parallel()

		calls := 0
		err := retry.Do(context.Background(), func(ctx context.Context) error {
			calls++
			return retry.Transient(errors.New("slow"))
		},
			retry.WithMaxAttempts(100),
			retry.WithBaseDelay(50*time.Millisecond),
			retry.WithMaxElapsedTime(time.Nanosecond),
		)
		require.ErrorIs(t, err, retry.ErrTransient)
		require.Equal(t, 1, calls)
	})

	t.Run("context cancellation aborts the wait", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		done := make(chan error, 1)
		go func() {
			done <- retry.Do(ctx, func(ctx context.Context) error {
				calls++
				return retry.Transient(errors.New("busy"))
			}, retry.WithMaxAttempts(100), retry.WithBaseDelay(time.Hour), retry.WithMaxDelay(time.Hour))
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			require.ErrorIs(t, err, context.Canceled)
			require.Equal(t, 1, calls)
		case <-time.After(time.Second):
			t.Fatal("retry did not abort on cancellation")
		}
	})

	t.Run("custom predicate", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("flaky")
		calls := 0
		err := retry.Do(context.Background(), func(ctx context.Context) error {
			calls++
			if calls < 2 {
				return boom
			}
			return nil
		},
			retry.WithRetryIf(func(err error) bool { return errors.Is(err, boom) }),
			retry.WithBaseDelay(time.Millisecond),
			retry.WithMaxDelay(2*time.Millisecond),
		)
		require.NoError(t, err)
		require.Equal(t, 2, calls)
	})
}

func TestDoValue(t *testing.T) {
	t.Parallel()

	t.Run("returns the value on success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		v, err := retry.DoValue(context.Background(), func(ctx context.Context) (int, error) {
			calls++
			if calls < 2 {
				return 0, retry.Transient(errors.New("cold cache"))
			}
			return 42, nil
		}, retry.WithBaseDelay(time.Millisecond), retry.WithMaxDelay(2*time.Millisecond))
		require.NoError(t, err)
		require.Equal(t, 42, v)
	})

	t.Run("zero value on failure", func(t *testing.T) {
		t.Parallel()

		v, err := retry.DoValue(context.Background(), func(ctx context.Context) (string, error) {
			return "partial", errors.New("fatal")
		})
		require.Error(t, err)
		require.Empty(t, v)
	})
}

func TestTransient(t *testing.T) {
	t.Parallel()

	require.Nil(t, retry.Transient(nil))
	require.True(t, retry.IsTransient(retry.Transient(errors.New("x"))))
	require.False(t, retry.IsTransient(errors.New("x")))

	// Cause stays reachable through the marker.
	cause := errors.New("dial tcp: timeout")
	require.ErrorIs(t, retry.Transient(cause), cause)
}
