package store

import (
	"context"
	"errors"

	"github.com/preston-bernstein/squad-planner/internal/domain/players"
	"github.com/preston-bernstein/squad-planner/internal/domain/tactics"
	"github.com/preston-bernstein/squad-planner/internal/domain/teams"
)

// Repository maps session documents onto a KV backend. Every write is a
// full replacement of the document.
type Repository struct {
	kv KV
}

// NewRepository wraps kv.
func NewRepository(kv KV) *Repository {
	return &Repository{kv: kv}
}

// Ping reports backend health for readiness checks.
func (r *Repository) Ping(ctx context.Context) error {
	return r.kv.Ping(ctx)
}

// Players returns the session roster; a missing roster is empty.
func (r *Repository) Players(ctx context.Context, session string) ([]players.Player, error) {
	list := []players.Player{}
	err := GetJSON(ctx, r.kv, SessionKey(session, docPlayers), &list)
	if errors.Is(err, ErrNotFound) {
		return []players.Player{}, nil
	}
	return list, err
}

// SetPlayers replaces the session roster.
func (r *Repository) SetPlayers(ctx context.Context, session string, list []players.Player) error {
	if list == nil {
		list = []players.Player{}
	}
	return SetJSON(ctx, r.kv, SessionKey(session, docPlayers), list)
}

// Tactics returns ErrNotFound when the session never saved a configuration.
func (r *Repository) Tactics(ctx context.Context, session string) (tactics.Tactics, error) {
	var t tactics.Tactics
	if err := GetJSON(ctx, r.kv, SessionKey(session, docTactics), &t); err != nil {
		return tactics.Tactics{}, err
	}
	return t, nil
}

func (r *Repository) SetTactics(ctx context.Context, session string, t tactics.Tactics) error {
	return SetJSON(ctx, r.kv, SessionKey(session, docTactics), t)
}

// Teams returns the saved teams; none saved is an empty list.
func (r *Repository) Teams(ctx context.Context, session string) ([]teams.Team, error) {
	list := []teams.Team{}
	err := GetJSON(ctx, r.kv, SessionKey(session, docTeams), &list)
	if errors.Is(err, ErrNotFound) {
		return []teams.Team{}, nil
	}
	return list, err
}

func (r *Repository) SetTeams(ctx context.Context, session string, list []teams.Team) error {
	if list == nil {
		list = []teams.Team{}
	}
	return SetJSON(ctx, r.kv, SessionKey(session, docTeams), list)
}

// SelectedTeam returns the selected team id or "" when none is selected.
func (r *Repository) SelectedTeam(ctx context.Context, session string) (string, error) {
	var id string
	err := GetJSON(ctx, r.kv, SessionKey(session, docSelectedTeam), &id)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return id, err
}

// SetSelectedTeam stores id; an empty id clears the selection.
func (r *Repository) SetSelectedTeam(ctx context.Context, session, id string) error {
	key := SessionKey(session, docSelectedTeam)
	if id == "" {
		return r.kv.Delete(ctx, key)
	}
	return SetJSON(ctx, r.kv, key, id)
}

// ClearSession drops every document of session.
func (r *Repository) ClearSession(ctx context.Context, session string) error {
	return DeleteSession(ctx, r.kv, session)
}

// Session binds the repository to one session id.
func (r *Repository) Session(id string) Session {
	return Session{repo: r, id: id}
}

// Session is the roster and tactics provider for a single session.
type Session struct {
	repo *Repository
	id   string
}

func (s Session) ID() string { return s.id }

func (s Session) Players(ctx context.Context) ([]players.Player, error) {
	return s.repo.Players(ctx, s.id)
}

func (s Session) SetPlayers(ctx context.Context, list []players.Player) error {
	return s.repo.SetPlayers(ctx, s.id, list)
}

func (s Session) Tactics(ctx context.Context) (tactics.Tactics, error) {
	return s.repo.Tactics(ctx, s.id)
}

func (s Session) SetTactics(ctx context.Context, t tactics.Tactics) error {
	return s.repo.SetTactics(ctx, s.id, t)
}
