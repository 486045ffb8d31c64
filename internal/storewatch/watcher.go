// Package storewatch pings the session store in the background and keeps
// the latest health status for readiness checks.
package storewatch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/squad-planner/internal/logging"
)

const (
	defaultInterval = 15 * time.Second
	pingTimeout     = 2 * time.Second
	maxFailures     = 3
)

// Pinger is the store health probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Watcher pings the store on an interval.
type Watcher struct {
	store    Pinger
	logger   *slog.Logger
	interval time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the store.
type Status struct {
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastError           string    `json:"lastError,omitempty"`
	LastAttempt         time.Time `json:"lastAttempt"`
	LastSuccess         time.Time `json:"lastSuccess"`
}

// IsReady reports whether the store has answered at least once and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < maxFailures
}

// New constructs a Watcher with sane defaults.
func New(store Pinger, logger *slog.Logger, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Watcher{
		store:    store,
		logger:   logger,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins watching until the context is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	w.startMu.Lock()
	if w.started {
		w.startMu.Unlock()
		return
	}
	w.started = true
	w.startMu.Unlock()

	w.ticker = time.NewTicker(w.interval)

	go func() {
		logging.Info(w.logger, "store watcher started", slog.Int64(logging.FieldDurationMS, w.interval.Milliseconds()))
		w.CheckOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				w.ticker.Stop()
				logging.Info(w.logger, "store watcher stopped")
				return
			case <-w.done:
				w.ticker.Stop()
				logging.Info(w.logger, "store watcher stopped")
				return
			case <-w.ticker.C:
				w.CheckOnce(ctx)
			}
		}
	}()
}

// Stop halts the watch loop.
func (w *Watcher) Stop(context.Context) error {
	w.stopOnce.Do(func() {
		close(w.done)
	})
	return nil
}

// CheckOnce pings the store and records the outcome.
func (w *Watcher) CheckOnce(ctx context.Context) {
	start := w.now()
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	err := w.store.Ping(pingCtx)
	if err != nil {
		failures := w.recordFailure(err, start)
		logging.Warn(w.logger, "store ping failed",
			"err", err,
			"consecutive_failures", failures,
		)
		return
	}
	if w.recordSuccess(start) {
		logging.Info(w.logger, "store recovered")
	}
}

func (w *Watcher) recordSuccess(at time.Time) (recovered bool) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	recovered = w.status.ConsecutiveFailures >= maxFailures
	w.status.ConsecutiveFailures = 0
	w.status.LastError = ""
	w.status.LastAttempt = at
	w.status.LastSuccess = at
	return recovered
}

func (w *Watcher) recordFailure(err error, at time.Time) int {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.ConsecutiveFailures++
	w.status.LastError = err.Error()
	w.status.LastAttempt = at
	return w.status.ConsecutiveFailures
}

// Status returns a snapshot of the store's recent health.
func (w *Watcher) Status() Status {
	w.statusMu.RLock()
	defer w.statusMu.RUnlock()
	return w.status
}
