package pipeline

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/KWARC/llamapun/internal/annotate"
)

const MaxRetries = 3

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var retryErr *annotate.RetryableError
	return errors.As(err, &retryErr)
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

// retry calls fn up to MaxRetries times while it fails with a retryable
// error, sleeping backoff(attempt) in between. onRetry sees each error
// that leads to another attempt.
func retry[T any](ctx context.Context, backoff func(int) time.Duration, fn func() (T, error), onRetry func(attempt int, err error)) (T, error) {
	var (
		v   T
		err error
	)
	for attempt := range MaxRetries {
		v, err = fn()
		if err == nil || !IsRetryable(err) || attempt == MaxRetries-1 {
			break
		}
		if onRetry != nil {
			onRetry(attempt, err)
		}
		select {
		case <-time.After(backoff(attempt)):
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
	return v, err
}
