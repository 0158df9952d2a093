// Package retry provides a general-purpose retry combinator with
// exponential backoff and full jitter.
//
// The policy caps both the attempt count and the total elapsed time, and by
// default retries only failures explicitly marked transient via [Transient].
// Nothing in the scaffold applies it automatically; I/O call sites opt in:
//
//	err := retry.Do(ctx, func(ctx context.Context) error {
//	    if err := pool.Ping(ctx); err != nil {
//	        return retry.Transient(err)
//	    }
//	    return nil
//	}, retry.WithMaxAttempts(5))
//
// [DoValue] covers operations that produce a result:
//
//	user, err := retry.DoValue(ctx, func(ctx context.Context) (User, error) {
//	    return fetchUser(ctx, id)
//	}, retry.WithRetryIf(isTimeout))
package retry
