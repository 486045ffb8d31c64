package roster

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/preston-bernstein/squad-planner/internal/app/sessions"
	"github.com/preston-bernstein/squad-planner/internal/domain/players"
	"github.com/preston-bernstein/squad-planner/internal/domain/positions"
)

// ErrPlayerNotFound is returned when an id is not on the session roster.
var ErrPlayerNotFound = errors.New("player not found")

// Store defines the contract for persisting and retrieving a roster.
type Store interface {
	Players(ctx context.Context, session string) ([]players.Player, error)
	SetPlayers(ctx context.Context, session string, list []players.Player) error
}

// Summary is the roster header: rounded averages and squad size.
type Summary struct {
	AvgOverall    int                `json:"avgOverall"`
	AvgAge        int                `json:"avgAge"`
	AvgAttributes players.Attributes `json:"avgAttributes"`
	SquadSize     int                `json:"squadSize"`
}

// Roster is the player list together with its summary.
type Roster struct {
	Players []players.Player `json:"players"`
	Summary Summary          `json:"summary"`
}

// Direction selects which way a position cycles.
type Direction string

const (
	DirectionNext Direction = "next"
	DirectionPrev Direction = "prev"
)

// Service coordinates roster operations using a Store.
type Service struct {
	store Store
	locks *sessions.Locks
	newID func() string
}

// NewService constructs a Service with the provided Store. locks may be
// shared with other services touching the same session documents.
func NewService(store Store, locks *sessions.Locks) *Service {
	return &Service{store: store, locks: locks, newID: uuid.NewString}
}

// Players returns the current roster.
func (s *Service) Players(ctx context.Context, session string) ([]players.Player, error) {
	return s.store.Players(ctx, session)
}

// Roster returns the players in position table order plus their summary.
// Players sharing a main position keep their stored order.
func (s *Service) Roster(ctx context.Context, session string) (Roster, error) {
	list, err := s.store.Players(ctx, session)
	if err != nil {
		return Roster{}, err
	}
	sorted := make([]players.Player, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		return positionRank(sorted[i]) < positionRank(sorted[j])
	})
	return Roster{Players: sorted, Summary: Summarize(sorted)}, nil
}

// Unknown positions sort last.
func positionRank(p players.Player) int {
	if i := p.MainPosition.Index(); i >= 0 {
		return i
	}
	return len(positions.All())
}

// Summarize rounds the average overall, age and each attribute of list.
func Summarize(list []players.Player) Summary {
	if len(list) == 0 {
		return Summary{}
	}
	var overall, age float64
	var attrs [players.AttributeCount]float64
	for _, p := range list {
		overall += float64(p.Overall)
		age += float64(p.Age)
		for i, v := range p.Attributes.Values() {
			attrs[i] += float64(v)
		}
	}
	n := float64(len(list))
	avg := func(sum float64) int { return int(math.Round(sum / n)) }

	summary := Summary{
		AvgOverall: avg(overall),
		AvgAge:     avg(age),
		SquadSize:  len(list),
	}
	for i, attr := range players.AllAttributes() {
		summary.AvgAttributes = summary.AvgAttributes.With(attr, avg(attrs[i]))
	}
	return summary
}

// PlayerByID returns a single player if present.
func (s *Service) PlayerByID(ctx context.Context, session, id string) (players.Player, error) {
	list, err := s.store.Players(ctx, session)
	if err != nil {
		return players.Player{}, err
	}
	if i := indexOf(list, id); i >= 0 {
		return list[i], nil
	}
	return players.Player{}, ErrPlayerNotFound
}

// Create assigns a fresh id, applies creation defaults and appends p.
func (s *Service) Create(ctx context.Context, session string, p players.Player) (players.Player, error) {
	p.ID = s.newID()
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return players.Player{}, err
	}

	unlock := s.locks.Lock(session)
	defer unlock()

	list, err := s.store.Players(ctx, session)
	if err != nil {
		return players.Player{}, err
	}
	if err := s.store.SetPlayers(ctx, session, append(list, p)); err != nil {
		return players.Player{}, fmt.Errorf("save roster: %w", err)
	}
	return p, nil
}

// Replace overwrites the player with id, keeping the id stable.
func (s *Service) Replace(ctx context.Context, session, id string, p players.Player) (players.Player, error) {
	p.ID = id
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return players.Player{}, err
	}
	return s.update(ctx, session, id, func(players.Player) (players.Player, error) {
		return p, nil
	})
}

// Delete removes the player with id.
func (s *Service) Delete(ctx context.Context, session, id string) error {
	unlock := s.locks.Lock(session)
	defer unlock()

	list, err := s.store.Players(ctx, session)
	if err != nil {
		return err
	}
	i := indexOf(list, id)
	if i < 0 {
		return ErrPlayerNotFound
	}
	list = append(list[:i], list[i+1:]...)
	if err := s.store.SetPlayers(ctx, session, list); err != nil {
		return fmt.Errorf("save roster: %w", err)
	}
	return nil
}

// AdjustStat adds delta to goals or assists, never going below zero.
func (s *Service) AdjustStat(ctx context.Context, session, id, field string, delta int) (players.Player, error) {
	field = strings.ToLower(strings.TrimSpace(field))
	if field != "goals" && field != "assists" {
		return players.Player{}, fmt.Errorf("%w: unknown stat %q", players.ErrInvalidPlayer, field)
	}
	return s.update(ctx, session, id, func(p players.Player) (players.Player, error) {
		if field == "goals" {
			p.Stats.Goals = max(0, p.Stats.Goals+delta)
		} else {
			p.Stats.Assists = max(0, p.Stats.Assists+delta)
		}
		return p, nil
	})
}

// AdjustAttribute adds delta to one attribute, clamped to 0..99. Overall is
// left as is.
func (s *Service) AdjustAttribute(ctx context.Context, session, id, name string, delta int) (players.Player, error) {
	attr, ok := players.ParseAttribute(name)
	if !ok {
		return players.Player{}, fmt.Errorf("%w: unknown attribute %q", players.ErrInvalidPlayer, name)
	}
	return s.update(ctx, session, id, func(p players.Player) (players.Player, error) {
		current, _ := p.Attributes.Get(attr)
		p.Attributes = p.Attributes.With(attr, players.ClampAttribute(current+delta))
		return p, nil
	})
}

// CyclePosition moves the main position one step through the position table.
func (s *Service) CyclePosition(ctx context.Context, session, id string, dir Direction) (players.Player, error) {
	if dir != DirectionNext && dir != DirectionPrev {
		return players.Player{}, fmt.Errorf("%w: direction must be next or prev", players.ErrInvalidPlayer)
	}
	return s.update(ctx, session, id, func(p players.Player) (players.Player, error) {
		if dir == DirectionNext {
			p.MainPosition = p.MainPosition.Next()
		} else {
			p.MainPosition = p.MainPosition.Prev()
		}
		return p, nil
	})
}

// Clear empties the roster.
func (s *Service) Clear(ctx context.Context, session string) error {
	unlock := s.locks.Lock(session)
	defer unlock()
	return s.store.SetPlayers(ctx, session, nil)
}

func (s *Service) update(ctx context.Context, session, id string, fn func(players.Player) (players.Player, error)) (players.Player, error) {
	unlock := s.locks.Lock(session)
	defer unlock()

	list, err := s.store.Players(ctx, session)
	if err != nil {
		return players.Player{}, err
	}
	i := indexOf(list, id)
	if i < 0 {
		return players.Player{}, ErrPlayerNotFound
	}
	updated, err := fn(list[i])
	if err != nil {
		return players.Player{}, err
	}
	list[i] = updated
	if err := s.store.SetPlayers(ctx, session, list); err != nil {
		return players.Player{}, fmt.Errorf("save roster: %w", err)
	}
	return updated, nil
}

func indexOf(list []players.Player, id string) int {
	for i, p := range list {
		if p.ID == id {
			return i
		}
	}
	return -1
}
