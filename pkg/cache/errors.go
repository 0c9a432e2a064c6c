package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound reports that a key has no entry.
	ErrNotFound = errors.New("not found")

	// ErrNetwork reports a backend connectivity failure, such as an
	// unreachable or timed-out Redis server.
	ErrNetwork = errors.New("network error")
)

// RetryableError marks an error as transient so RetryWithBackoff will
// attempt the operation again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err carries a RetryableError anywhere in
// its chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn up to three times, doubling the wait between
// attempts starting from one second. Only errors marked Retryable are
// retried; anything else returns immediately.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const attempts = 3

	var lastErr error
	wait := time.Second
	for i := 0; i < attempts; i++ {
		lastErr = fn()
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
			wait *= 2
		}
	}
	return lastErr
}
