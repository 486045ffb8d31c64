package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/squad-planner/internal/domain/players"
	"github.com/preston-bernstein/squad-planner/internal/domain/positions"
	"github.com/preston-bernstein/squad-planner/internal/domain/tactics"
	"github.com/preston-bernstein/squad-planner/internal/engine"
	"github.com/preston-bernstein/squad-planner/internal/logging"
	"github.com/preston-bernstein/squad-planner/internal/metrics"
)

// ErrNotReady is returned when the session cannot produce a meaningful
// analysis yet. The wrapped message tells the user what to fix.
var ErrNotReady = errors.New("analysis prerequisites missing")

// ErrUnknownPlayer is returned by Rating for an id that is not on the roster.
var ErrUnknownPlayer = errors.New("player not found")

// RosterSource reads the session roster.
type RosterSource interface {
	Players(ctx context.Context, session string) ([]players.Player, error)
}

// TacticsSource reads the session tactics, defaulting when unset.
type TacticsSource interface {
	Get(ctx context.Context, session string) (tactics.Tactics, error)
}

// Rating is a single player scored at one position.
type Rating struct {
	PlayerID string             `json:"playerId"`
	Position positions.Position `json:"position"`
	Rating   float64            `json:"rating"`
}

// Service snapshots roster and tactics and hands them to the engine.
type Service struct {
	roster   RosterSource
	tactics  TacticsSource
	recorder *metrics.Recorder
	logger   *slog.Logger
}

func NewService(roster RosterSource, tac TacticsSource, recorder *metrics.Recorder, logger *slog.Logger) *Service {
	return &Service{roster: roster, tactics: tac, recorder: recorder, logger: logger}
}

// Analyze computes the full report for session. It fails with ErrNotReady
// when the roster is empty or the tactics do not field exactly eleven.
func (s *Service) Analyze(ctx context.Context, session string) (engine.Analysis, error) {
	roster, tac, err := s.snapshot(ctx, session)
	if err != nil {
		s.recorder.RecordAnalysis(metrics.OutcomeError, 0, 0)
		return engine.Analysis{}, err
	}
	if err := ready(roster, tac); err != nil {
		s.recorder.RecordAnalysis(metrics.OutcomeBlocked, 0, 0)
		return engine.Analysis{}, err
	}

	start := time.Now()
	result := engine.ComputeAnalysis(roster, tac)
	duration := time.Since(start)
	s.recorder.RecordAnalysis(metrics.OutcomeOK, duration, len(result.Skipped))

	logger := logging.FromContext(ctx, s.logger)
	if len(result.Skipped) > 0 {
		logging.Warn(logger, "analysis skipped players",
			logging.FieldSessionID, session,
			logging.FieldCount, len(result.Skipped),
		)
	}
	logging.Info(logger, "analysis computed",
		logging.FieldSessionID, session,
		"best_xi", len(result.BestXI),
		"bench", len(result.Bench),
		logging.FieldDurationMS, duration.Milliseconds(),
	)
	return result, nil
}

// Categories buckets the roster into veterans, aging players and young stars.
func (s *Service) Categories(ctx context.Context, session string) (engine.Categories, error) {
	roster, err := s.roster.Players(ctx, session)
	if err != nil {
		return engine.Categories{}, err
	}
	return engine.CategorizeRoster(roster), nil
}

// Rating scores one player at pos, or at their main position when pos is
// empty, using the session's priorities and toggles.
func (s *Service) Rating(ctx context.Context, session, playerID string, pos positions.Position) (Rating, error) {
	roster, tac, err := s.snapshot(ctx, session)
	if err != nil {
		return Rating{}, err
	}
	for _, p := range roster {
		if p.ID != playerID {
			continue
		}
		if pos == "" {
			pos = p.MainPosition
		}
		if !pos.Valid() {
			return Rating{}, fmt.Errorf("%w: unknown position %q", tactics.ErrInvalidConfig, pos)
		}
		return Rating{
			PlayerID: p.ID,
			Position: pos,
			Rating:   engine.ScorePlayer(p, pos, tac.Priorities, tac.ToggledSet()),
		}, nil
	}
	return Rating{}, ErrUnknownPlayer
}

func (s *Service) snapshot(ctx context.Context, session string) ([]players.Player, tactics.Tactics, error) {
	roster, err := s.roster.Players(ctx, session)
	if err != nil {
		return nil, tactics.Tactics{}, fmt.Errorf("load roster: %w", err)
	}
	tac, err := s.tactics.Get(ctx, session)
	if err != nil {
		return nil, tactics.Tactics{}, fmt.Errorf("load tactics: %w", err)
	}
	return roster, tac, nil
}

func ready(roster []players.Player, tac tactics.Tactics) error {
	if len(roster) == 0 {
		return fmt.Errorf("%w: add players to the roster first", ErrNotReady)
	}
	if gk := tac.Count(positions.GK); gk != tactics.MaxGoalkeepers {
		return fmt.Errorf("%w: configure exactly one goalkeeper (have %d)", ErrNotReady, gk)
	}
	if out := tac.OutfieldTotal(); out != tactics.MaxOutfieldSlots {
		return fmt.Errorf("%w: configure %d outfield slots (have %d)", ErrNotReady, tactics.MaxOutfieldSlots, out)
	}
	return nil
}
