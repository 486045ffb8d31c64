package store

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type flakyKV struct {
	*MemoryStore
	failures int
	calls    int
	err      error
}

func (f *flakyKV) Set(ctx context.Context, key string, value []byte) error {
	f.calls++
	if f.calls <= f.failures {
		return f.err
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func newFlaky(failures int) *flakyKV {
	return &flakyKV{MemoryStore: NewMemoryStore(), failures: failures, err: errors.New("connection reset")}
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	flaky := newFlaky(2)
	kv := WithRetry(flaky, BackendRedis, nil, 3, time.Millisecond)

	if err := kv.Set(context.Background(), "k", []byte("v")); err != nil {
		t.Fatalf("expected success on third attempt, got %v", err)
	}
	if flaky.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", flaky.calls)
	}
}

func TestRetryGivesUpAndLogs(t *testing.T) {
	flaky := newFlaky(5)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	kv := WithRetry(flaky, BackendPostgres, logger, 2, time.Millisecond)

	err := kv.Set(context.Background(), "k", []byte("v"))
	if err == nil || err.Error() != "connection reset" {
		t.Fatalf("expected last error returned, got %v", err)
	}
	if flaky.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", flaky.calls)
	}
	if !strings.Contains(buf.String(), "store retry") || !strings.Contains(buf.String(), "store operation failed") {
		t.Fatalf("expected retry logs, got %s", buf.String())
	}
}

func TestRetrySkipsMissesAndCancellation(t *testing.T) {
	kv := WithRetry(NewMemoryStore(), BackendRedis, nil, 3, time.Millisecond)
	if _, err := kv.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected miss passed through, got %v", err)
	}

	flaky := newFlaky(5)
	flaky.err = context.DeadlineExceeded
	kv = WithRetry(flaky, BackendRedis, nil, 3, time.Millisecond)
	if err := kv.Set(context.Background(), "k", nil); !errors.Is(err, context.DeadlineExceeded) || flaky.calls != 1 {
		t.Fatalf("expected deadline returned after one call, got %v calls=%d", err, flaky.calls)
	}
}

func TestRetryStopsWhenContextCancelledDuringBackoff(t *testing.T) {
	flaky := newFlaky(5)
	kv := WithRetry(flaky, BackendRedis, nil, 3, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	if err := kv.Set(ctx, "k", nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Fatalf("expected backoff to abort promptly")
	}
}

func TestRetryDeleteSessionUsesSessionDeleter(t *testing.T) {
	mem := NewMemoryStore()
	ctx := context.Background()
	_ = mem.Set(ctx, SessionKey("s", docPlayers), []byte("[]"))
	kv := WithRetry(mem, BackendRedis, nil, 0, 0)

	if err := DeleteSession(ctx, kv, "s"); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, err := mem.Get(ctx, SessionKey("s", docPlayers)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected players removed, got %v", err)
	}
}
