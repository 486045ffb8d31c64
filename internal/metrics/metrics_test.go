package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksStoreCallsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordStoreOperation("redis", "get", 10*time.Millisecond, nil)
	rec.RecordStoreOperation("redis", "set", 15*time.Millisecond, errors.New("boom"))

	if got := rec.StoreCalls("redis"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.StoreErrors("redis"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}

	snap := rec.Snapshot("redis")
	if snap.Calls != 2 || snap.Errors != 1 || snap.LastLatency != 15*time.Millisecond {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if other := rec.Snapshot("postgres"); other.Calls != 0 {
		t.Fatalf("expected backends tracked separately, got %+v", other)
	}
}

func TestRecorderTracksAnalysisOutcomes(t *testing.T) {
	rec := NewRecorder()
	rec.RecordAnalysis(OutcomeOK, 3*time.Millisecond, 2)
	rec.RecordAnalysis(OutcomeOK, 4*time.Millisecond, 1)
	rec.RecordAnalysis(OutcomeBlocked, 0, 0)
	rec.RecordAnalysis(OutcomeError, 0, 0)

	got := rec.Analysis()
	if got.Runs != 2 || got.Blocked != 1 || got.Failures != 1 || got.SkippedPlayers != 3 {
		t.Fatalf("unexpected analysis snapshot %+v", got)
	}
	if got.LastLatency != 4*time.Millisecond {
		t.Fatalf("expected last latency 4ms, got %s", got.LastLatency)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordStoreOperation("memory", "get", time.Millisecond, nil)
	rec.RecordAnalysis(OutcomeOK, time.Millisecond, 0)
	rec.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)
	if rec.StoreCalls("memory") != 0 || rec.Analysis().Runs != 0 {
		t.Fatalf("expected zero values from nil recorder")
	}
}
