package tactics

import (
	"context"
	"errors"
	"fmt"

	"github.com/preston-bernstein/squad-planner/internal/app/sessions"
	"github.com/preston-bernstein/squad-planner/internal/domain/positions"
	"github.com/preston-bernstein/squad-planner/internal/domain/tactics"
	"github.com/preston-bernstein/squad-planner/internal/store"
)

// Store defines the contract for persisting a session's tactics.
type Store interface {
	Tactics(ctx context.Context, session string) (tactics.Tactics, error)
	SetTactics(ctx context.Context, session string, t tactics.Tactics) error
}

// Service validates tactics mutations before they reach the store.
type Service struct {
	store Store
	locks *sessions.Locks
}

func NewService(store Store, locks *sessions.Locks) *Service {
	return &Service{store: store, locks: locks}
}

// Get returns the saved configuration, or the default one for a session
// that never saved any.
func (s *Service) Get(ctx context.Context, session string) (tactics.Tactics, error) {
	t, err := s.store.Tactics(ctx, session)
	if errors.Is(err, store.ErrNotFound) {
		return tactics.Default(), nil
	}
	if err != nil {
		return tactics.Tactics{}, err
	}
	if t.Counts == nil {
		t.Counts = map[positions.Position]int{}
	}
	return t, nil
}

// Increment adds a starter slot at pos.
func (s *Service) Increment(ctx context.Context, session string, pos positions.Position) (tactics.Tactics, error) {
	return s.mutate(ctx, session, func(t tactics.Tactics) (tactics.Tactics, error) {
		return t.Increment(pos)
	})
}

// Decrement removes a starter slot at pos.
func (s *Service) Decrement(ctx context.Context, session string, pos positions.Position) (tactics.Tactics, error) {
	return s.mutate(ctx, session, func(t tactics.Tactics) (tactics.Tactics, error) {
		return t.Decrement(pos)
	})
}

// SetPriorities replaces the ordered attribute priorities at pos.
func (s *Service) SetPriorities(ctx context.Context, session string, pos positions.Position, names []string) (tactics.Tactics, error) {
	return s.mutate(ctx, session, func(t tactics.Tactics) (tactics.Tactics, error) {
		return t.WithPriorities(pos, names)
	})
}

// Toggle flips the inverted-foot flag at a flank position.
func (s *Service) Toggle(ctx context.Context, session string, pos positions.Position) (tactics.Tactics, error) {
	return s.mutate(ctx, session, func(t tactics.Tactics) (tactics.Tactics, error) {
		return t.WithToggle(pos)
	})
}

// ApplyFormation replaces the slot counts with a formation template.
func (s *Service) ApplyFormation(ctx context.Context, session, name string) (tactics.Tactics, error) {
	return s.mutate(ctx, session, func(t tactics.Tactics) (tactics.Tactics, error) {
		return t.WithFormation(name)
	})
}

// mutate applies fn under the session lock. A rejected change returns the
// unchanged configuration together with the validation error.
func (s *Service) mutate(ctx context.Context, session string, fn func(tactics.Tactics) (tactics.Tactics, error)) (tactics.Tactics, error) {
	unlock := s.locks.Lock(session)
	defer unlock()

	current, err := s.Get(ctx, session)
	if err != nil {
		return tactics.Tactics{}, err
	}
	next, err := fn(current)
	if err != nil {
		return current, err
	}
	if err := s.store.SetTactics(ctx, session, next); err != nil {
		return current, fmt.Errorf("save tactics: %w", err)
	}
	return next, nil
}
