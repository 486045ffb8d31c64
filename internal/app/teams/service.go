package teams

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/preston-bernstein/squad-planner/internal/app/sessions"
	"github.com/preston-bernstein/squad-planner/internal/domain/players"
	"github.com/preston-bernstein/squad-planner/internal/domain/teams"
)

// ErrTeamNotFound is returned when an id is not in the session's registry.
var ErrTeamNotFound = errors.New("team not found")

// Store defines the contract for persisting teams, the selection, and
// clearing the roster when a new team is started.
type Store interface {
	Teams(ctx context.Context, session string) ([]teams.Team, error)
	SetTeams(ctx context.Context, session string, list []teams.Team) error
	SelectedTeam(ctx context.Context, session string) (string, error)
	SetSelectedTeam(ctx context.Context, session, id string) error
	SetPlayers(ctx context.Context, session string, list []players.Player) error
}

// Service coordinates team operations using a Store.
type Service struct {
	store Store
	locks *sessions.Locks
	newID func() string
}

// NewService constructs a Service with the provided Store.
func NewService(store Store, locks *sessions.Locks) *Service {
	return &Service{store: store, locks: locks, newID: uuid.NewString}
}

// Teams returns the registered teams.
func (s *Service) Teams(ctx context.Context, session string) ([]teams.Team, error) {
	return s.store.Teams(ctx, session)
}

// TeamByID returns a single team if present.
func (s *Service) TeamByID(ctx context.Context, session, id string) (teams.Team, error) {
	list, err := s.store.Teams(ctx, session)
	if err != nil {
		return teams.Team{}, err
	}
	for _, t := range list {
		if t.ID == id {
			return t, nil
		}
	}
	return teams.Team{}, ErrTeamNotFound
}

// Create registers a team, selects it and starts it with an empty roster.
func (s *Service) Create(ctx context.Context, session string, t teams.Team) (teams.Team, error) {
	if err := t.Validate(); err != nil {
		return teams.Team{}, err
	}
	t.ID = s.newID()

	unlock := s.locks.Lock(session)
	defer unlock()

	list, err := s.store.Teams(ctx, session)
	if err != nil {
		return teams.Team{}, err
	}
	if err := s.store.SetTeams(ctx, session, append(list, t)); err != nil {
		return teams.Team{}, fmt.Errorf("save teams: %w", err)
	}
	if err := s.store.SetSelectedTeam(ctx, session, t.ID); err != nil {
		return teams.Team{}, fmt.Errorf("select team: %w", err)
	}
	if err := s.store.SetPlayers(ctx, session, nil); err != nil {
		return teams.Team{}, fmt.Errorf("clear roster: %w", err)
	}
	return t, nil
}

// Delete removes a team; deleting the selected team clears the selection.
func (s *Service) Delete(ctx context.Context, session, id string) error {
	unlock := s.locks.Lock(session)
	defer unlock()

	list, err := s.store.Teams(ctx, session)
	if err != nil {
		return err
	}
	kept := list[:0]
	found := false
	for _, t := range list {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return ErrTeamNotFound
	}
	if err := s.store.SetTeams(ctx, session, kept); err != nil {
		return fmt.Errorf("save teams: %w", err)
	}

	selected, err := s.store.SelectedTeam(ctx, session)
	if err != nil {
		return err
	}
	if selected == id {
		return s.store.SetSelectedTeam(ctx, session, "")
	}
	return nil
}

// Selected returns the selected team; ok is false when none is selected.
func (s *Service) Selected(ctx context.Context, session string) (teams.Team, bool, error) {
	id, err := s.store.SelectedTeam(ctx, session)
	if err != nil || id == "" {
		return teams.Team{}, false, err
	}
	t, err := s.TeamByID(ctx, session, id)
	if errors.Is(err, ErrTeamNotFound) {
		return teams.Team{}, false, nil
	}
	return t, err == nil, err
}

// Select changes the selection; an empty id clears it.
func (s *Service) Select(ctx context.Context, session, id string) error {
	unlock := s.locks.Lock(session)
	defer unlock()

	if id != "" {
		if _, err := s.TeamByID(ctx, session, id); err != nil {
			return err
		}
	}
	return s.store.SetSelectedTeam(ctx, session, id)
}
