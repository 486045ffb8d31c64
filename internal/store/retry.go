package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/preston-bernstein/squad-planner/internal/logging"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 100 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retrying wraps a networked KV with linear backoff retries.
type retrying struct {
	next        KV
	backend     string
	logger      *slog.Logger
	maxAttempts int
	backoffFn   backoffFunc
}

// WithRetry wraps kv with retries. If maxAttempts/backoff are <= 0, defaults
// are used. Misses and context errors are returned immediately.
func WithRetry(kv KV, backend string, logger *slog.Logger, maxAttempts int, backoff time.Duration) KV {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultBackoff
	}
	return &retrying{
		next:        kv,
		backend:     backend,
		logger:      logger,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retrying) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := r.do(ctx, "get", func() error {
		var err error
		data, err = r.next.Get(ctx, key)
		return err
	})
	return data, err
}

func (r *retrying) Set(ctx context.Context, key string, value []byte) error {
	return r.do(ctx, "set", func() error { return r.next.Set(ctx, key, value) })
}

func (r *retrying) Delete(ctx context.Context, key string) error {
	return r.do(ctx, "delete", func() error { return r.next.Delete(ctx, key) })
}

func (r *retrying) DeleteSession(ctx context.Context, session string) error {
	return r.do(ctx, "delete_session", func() error { return DeleteSession(ctx, r.next, session) })
}

// Ping is not retried so readiness reflects the backend as it is now.
func (r *retrying) Ping(ctx context.Context) error { return r.next.Ping(ctx) }

func (r *retrying) Close() error { return r.next.Close() }

func (r *retrying) do(ctx context.Context, op string, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err := fn()
		if err == nil || !retryable(err) {
			return err
		}
		lastErr = err

		if attempt == r.maxAttempts {
			break
		}

		logging.Warn(logging.FromContext(ctx, r.logger), "store retry",
			logging.FieldBackend, r.backend,
			"op", op,
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"err", err,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoffFn(attempt)):
		}
	}

	logging.Warn(logging.FromContext(ctx, r.logger), "store operation failed",
		logging.FieldBackend, r.backend,
		"op", op,
		"attempts", r.maxAttempts,
		"err", lastErr,
	)
	return lastErr
}

func retryable(err error) bool {
	return !errors.Is(err, ErrNotFound) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}
