package metrics

import (
	"sync"
	"time"
)

type storeStats struct {
	calls       int
	errors      int
	lastLatency time.Duration
}

type analysisStats struct {
	runs        int
	blocked     int
	failures    int
	skipped     int
	lastLatency time.Duration
}

// Recorder captures lightweight in-memory metrics and forwards them to the
// OpenTelemetry instruments when telemetry is enabled.
type Recorder struct {
	mu       sync.Mutex
	stores   map[string]*storeStats
	analysis analysisStats
	otel     *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stores: make(map[string]*storeStats),
		otel:   otel,
	}
}

// RecordStoreOperation counts one backend call and stores its latency.
func (r *Recorder) RecordStoreOperation(backend, op string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.stores[backend]
	if !ok {
		stats = &storeStats{}
		r.stores[backend] = stats
	}
	stats.calls++
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStoreOperation(backend, op, duration, err)
	}
}

// RecordAnalysis tracks one analysis request. outcome is one of the
// Outcome* constants; skipped is the number of roster entries left out.
func (r *Recorder) RecordAnalysis(outcome string, duration time.Duration, skipped int) {
	if r == nil {
		return
	}

	r.mu.Lock()
	switch outcome {
	case OutcomeOK:
		r.analysis.runs++
		r.analysis.skipped += skipped
		r.analysis.lastLatency = duration
	case OutcomeBlocked:
		r.analysis.blocked++
	default:
		r.analysis.failures++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordAnalysis(outcome, duration, skipped)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// StoreCalls returns the total calls recorded for a backend.
func (r *Recorder) StoreCalls(backend string) int {
	return r.Snapshot(backend).Calls
}

// StoreErrors returns the failed calls recorded for a backend.
func (r *Recorder) StoreErrors(backend string) int {
	return r.Snapshot(backend).Errors
}

// Snapshot returns a copy of the current stats for a store backend.
type Snapshot struct {
	Calls       int
	Errors      int
	LastLatency time.Duration
}

func (r *Recorder) Snapshot(backend string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stores[backend]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:       stats.calls,
		Errors:      stats.errors,
		LastLatency: stats.lastLatency,
	}
}

// AnalysisSnapshot is a copy of the analysis counters.
type AnalysisSnapshot struct {
	Runs           int
	Blocked        int
	Failures       int
	SkippedPlayers int
	LastLatency    time.Duration
}

func (r *Recorder) Analysis() AnalysisSnapshot {
	if r == nil {
		return AnalysisSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return AnalysisSnapshot{
		Runs:           r.analysis.runs,
		Blocked:        r.analysis.blocked,
		Failures:       r.analysis.failures,
		SkippedPlayers: r.analysis.skipped,
		LastLatency:    r.analysis.lastLatency,
	}
}
