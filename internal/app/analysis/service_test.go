package analysis_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/preston-bernstein/squad-planner/internal/app/analysis"

	apptactics "github.com/preston-bernstein/squad-planner/internal/app/tactics"
	"github.com/preston-bernstein/squad-planner/internal/domain/players"
	"github.com/preston-bernstein/squad-planner/internal/domain/positions"
	"github.com/preston-bernstein/squad-planner/internal/domain/tactics"
	"github.com/preston-bernstein/squad-planner/internal/engine"
	"github.com/preston-bernstein/squad-planner/internal/metrics"
	"github.com/preston-bernstein/squad-planner/internal/store"
	"github.com/preston-bernstein/squad-planner/internal/testutil"
)

func newService(t *testing.T) (*analysis.Service, *store.Repository, *apptactics.Service, *metrics.Recorder) {
	t.Helper()
	repo := store.NewRepository(store.NewMemoryStore())
	tac := apptactics.NewService(repo, nil)
	rec := metrics.NewRecorder()
	logger, _ := testutil.NewBufferLogger()
	return analysis.NewService(repo, tac, rec, logger), repo, tac, rec
}

func TestAnalyzeRequiresRoster(t *testing.T) {
	svc, _, _, rec := newService(t)
	_, err := svc.Analyze(context.Background(), "s")
	if !errors.Is(err, analysis.ErrNotReady) || !strings.Contains(err.Error(), "add players") {
		t.Fatalf("expected roster prerequisite error, got %v", err)
	}
	if rec.Analysis().Blocked != 1 {
		t.Fatalf("expected blocked analysis recorded")
	}
}

func TestAnalyzeRequiresCompleteTactics(t *testing.T) {
	svc, repo, tac, _ := newService(t)
	ctx := context.Background()
	_ = repo.SetPlayers(ctx, "s", testutil.SampleSquad())
	if _, err := tac.Decrement(ctx, "s", positions.ST); err != nil {
		t.Fatalf("decrement: %v", err)
	}

	_, err := svc.Analyze(ctx, "s")
	if !errors.Is(err, analysis.ErrNotReady) || !strings.Contains(err.Error(), "outfield") {
		t.Fatalf("expected outfield prerequisite error, got %v", err)
	}

	if _, err := tac.Decrement(ctx, "s", positions.GK); err != nil {
		t.Fatalf("decrement gk: %v", err)
	}
	if _, err := svc.Analyze(ctx, "s"); !errors.Is(err, analysis.ErrNotReady) || !strings.Contains(err.Error(), "goalkeeper") {
		t.Fatalf("expected goalkeeper prerequisite error, got %v", err)
	}
}

func TestAnalyzeFullSquad(t *testing.T) {
	svc, repo, _, rec := newService(t)
	ctx := context.Background()
	squad := testutil.SampleSquad()
	broken := testutil.SamplePlayer("broken", positions.Position("SW"), 70, 25)
	_ = repo.SetPlayers(ctx, "s", append(squad, broken))

	got, err := svc.Analyze(ctx, "s")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	// one pick per configured label: GK RB CB LB CM LM RM ST
	if len(got.BestXI) != 8 {
		t.Fatalf("expected 8 starters, got %d", len(got.BestXI))
	}
	if len(got.Skipped) != 1 || got.Skipped[0].PlayerID != "broken" {
		t.Fatalf("expected malformed player skipped, got %+v", got.Skipped)
	}
	snap := rec.Analysis()
	if snap.Runs != 1 || snap.SkippedPlayers != 1 {
		t.Fatalf("unexpected analysis metrics %+v", snap)
	}
}

func TestAnalyzeLogsSkippedPlayers(t *testing.T) {
	repo := store.NewRepository(store.NewMemoryStore())
	logger, buf := testutil.NewBufferLogger()
	svc := analysis.NewService(repo, apptactics.NewService(repo, nil), nil, logger)
	ctx := context.Background()
	bad := testutil.SamplePlayer("bad", positions.CB, 70, 25)
	bad.Attributes.Pace = 150
	_ = repo.SetPlayers(ctx, "s", append(testutil.SampleSquad(), bad))

	if _, err := svc.Analyze(ctx, "s"); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !strings.Contains(buf.String(), "analysis skipped players") || !strings.Contains(buf.String(), "session_id=s") {
		t.Fatalf("expected skip warning in logs, got %s", buf.String())
	}
}

func TestCategories(t *testing.T) {
	svc, repo, _, _ := newService(t)
	ctx := context.Background()
	_ = repo.SetPlayers(ctx, "s", []players.Player{
		testutil.SamplePlayer("kid", positions.ST, 80, 18),
		testutil.SamplePlayer("a", positions.CM, 60, 26),
		testutil.SamplePlayer("b", positions.CM, 60, 27),
		testutil.SamplePlayer("c", positions.CM, 60, 28),
	})
	cats, err := svc.Categories(ctx, "s")
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(cats.YoungStars) != 1 || cats.YoungStars[0].ID != "kid" {
		t.Fatalf("unexpected young stars %+v", cats.YoungStars)
	}
}

func TestRating(t *testing.T) {
	svc, repo, tac, _ := newService(t)
	ctx := context.Background()
	p := testutil.SamplePlayer("rb", positions.RB, 70, 25)
	_ = repo.SetPlayers(ctx, "s", []players.Player{p})

	main, err := svc.Rating(ctx, "s", "rb", "")
	if err != nil || main.Position != positions.RB {
		t.Fatalf("expected rating at main position, got %+v err=%v", main, err)
	}
	if want := engine.ScorePlayer(p, positions.RB, nil, nil); main.Rating != want {
		t.Fatalf("expected %v, got %v", want, main.Rating)
	}

	if _, err := tac.Toggle(ctx, "s", positions.RB); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	inverted, _ := svc.Rating(ctx, "s", "rb", positions.RB)
	if inverted.Rating >= main.Rating {
		t.Fatalf("expected right-footer to lose the bonus at an inverted RB")
	}

	if _, err := svc.Rating(ctx, "s", "rb", positions.Position("SW")); !errors.Is(err, tactics.ErrInvalidConfig) {
		t.Fatalf("expected unknown position rejected, got %v", err)
	}
	if _, err := svc.Rating(ctx, "s", "ghost", ""); !errors.Is(err, analysis.ErrUnknownPlayer) {
		t.Fatalf("expected ErrUnknownPlayer, got %v", err)
	}
}
