package testutil

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/squad-planner/internal/app/analysis"
	"github.com/preston-bernstein/squad-planner/internal/app/roster"
	"github.com/preston-bernstein/squad-planner/internal/app/sessions"
	"github.com/preston-bernstein/squad-planner/internal/app/tactics"
	"github.com/preston-bernstein/squad-planner/internal/app/teams"
	"github.com/preston-bernstein/squad-planner/internal/domain/players"
	"github.com/preston-bernstein/squad-planner/internal/metrics"
	"github.com/preston-bernstein/squad-planner/internal/store"
)

// Services bundles the app services over one in-memory repository.
type Services struct {
	Repo     *store.Repository
	Recorder *metrics.Recorder
	Roster   *roster.Service
	Tactics  *tactics.Service
	Teams    *teams.Service
	Analysis *analysis.Service
}

// NewServices wires every service against a fresh memory store.
func NewServices(logger *slog.Logger) Services {
	repo := store.NewRepository(store.NewMemoryStore())
	locks := sessions.NewLocks()
	rec := metrics.NewRecorder()
	tac := tactics.NewService(repo, locks)
	return Services{
		Repo:     repo,
		Recorder: rec,
		Roster:   roster.NewService(repo, locks),
		Tactics:  tac,
		Teams:    teams.NewService(repo, locks),
		Analysis: analysis.NewService(repo, tac, rec, logger),
	}
}

// SeedRoster replaces the session roster, panicking on failure.
func (s Services) SeedRoster(session string, list []players.Player) {
	if err := s.Repo.SetPlayers(context.Background(), session, list); err != nil {
		panic(err)
	}
}
