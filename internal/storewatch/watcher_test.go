package storewatch

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/preston-bernstein/squad-planner/internal/testutil"
)

type stubPinger struct {
	mu     sync.Mutex
	err    error
	calls  atomic.Int32
	notify chan struct{}
}

func (s *stubPinger) Ping(context.Context) error {
	if s.calls.Add(1) == 1 && s.notify != nil {
		close(s.notify)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *stubPinger) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func TestStatusIsReady(t *testing.T) {
	cases := []struct {
		name   string
		status Status
		want   bool
	}{
		{"never succeeded", Status{}, false},
		{"healthy", Status{LastSuccess: time.Now()}, true},
		{"flapping", Status{LastSuccess: time.Now(), ConsecutiveFailures: 2}, true},
		{"down", Status{LastSuccess: time.Now(), ConsecutiveFailures: 3}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.status.IsReady(); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestCheckOnceTracksFailuresAndRecovery(t *testing.T) {
	pinger := &stubPinger{err: errors.New("connection refused")}
	logger, buf := testutil.NewBufferLogger()
	w := New(pinger, logger, time.Minute)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return fixed }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		w.CheckOnce(ctx)
	}
	st := w.Status()
	if st.ConsecutiveFailures != 3 || st.LastError != "connection refused" || st.IsReady() {
		t.Fatalf("unexpected failing status %+v", st)
	}
	if !st.LastAttempt.Equal(fixed) {
		t.Fatalf("expected attempt time recorded")
	}

	pinger.setErr(nil)
	w.CheckOnce(ctx)
	st = w.Status()
	if !st.IsReady() || st.LastError != "" || !st.LastSuccess.Equal(fixed) {
		t.Fatalf("expected recovered status, got %+v", st)
	}
	if !containsAll(buf.String(), "store ping failed", "store recovered") {
		t.Fatalf("expected failure and recovery logs, got %s", buf.String())
	}
}

func TestStartChecksImmediatelyAndStops(t *testing.T) {
	pinger := &stubPinger{notify: make(chan struct{})}
	w := New(pinger, nil, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)
	w.Start(ctx)

	select {
	case <-pinger.notify:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for initial ping")
	}

	time.Sleep(30 * time.Millisecond)
	if err := w.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
	_ = w.Stop(context.Background())

	time.Sleep(10 * time.Millisecond)
	after := pinger.calls.Load()
	time.Sleep(30 * time.Millisecond)
	if pinger.calls.Load() != after {
		t.Fatalf("expected no pings after stop")
	}
	if after < 2 {
		t.Fatalf("expected ticker-driven pings, got %d", after)
	}
	if !w.Status().IsReady() {
		t.Fatalf("expected ready after successful pings")
	}
}

func TestStartStopsOnContextCancel(t *testing.T) {
	pinger := &stubPinger{notify: make(chan struct{})}
	w := New(pinger, nil, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	<-pinger.notify
	cancel()

	time.Sleep(20 * time.Millisecond)
	after := pinger.calls.Load()
	time.Sleep(30 * time.Millisecond)
	if pinger.calls.Load() != after {
		t.Fatalf("expected loop to exit on cancel")
	}
}

func TestNewDefaultsInterval(t *testing.T) {
	if w := New(&stubPinger{}, nil, 0); w.interval != defaultInterval {
		t.Fatalf("expected default interval, got %s", w.interval)
	}
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
