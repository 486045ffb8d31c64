package tactics

import (
	"errors"
	"fmt"
	"sort"

	"github.com/preston-bernstein/squad-planner/internal/domain/players"
	"github.com/preston-bernstein/squad-planner/internal/domain/positions"
)

// ErrInvalidConfig is returned when a tactics mutation would break the slot rules.
var ErrInvalidConfig = errors.New("invalid tactics configuration")

const (
	// MaxOutfieldSlots leaves room for exactly one goalkeeper in an XI.
	MaxOutfieldSlots = 10
	MaxGoalkeepers   = 1
	MaxPriorities    = 3
)

// Tactics is the session-scoped configuration the engine reads.
type Tactics struct {
	Formation  string                                     `json:"formation"`
	Counts     map[positions.Position]int                 `json:"positionCounts"`
	Priorities map[positions.Position][]players.Attribute `json:"positionPriorities"`
	Toggled    []positions.Position                       `json:"toggledPositions"`
}

// Default returns the configuration used the first time a session opens tactics.
func Default() Tactics {
	t := Tactics{
		Counts:     map[positions.Position]int{},
		Priorities: map[positions.Position][]players.Attribute{},
		Toggled:    []positions.Position{},
	}
	applied, err := t.WithFormation(DefaultFormation)
	if err != nil {
		return t
	}
	return applied
}

// Clone deep-copies the maps and slices so mutations never alias a stored snapshot.
func (t Tactics) Clone() Tactics {
	out := Tactics{
		Formation:  t.Formation,
		Counts:     make(map[positions.Position]int, len(t.Counts)),
		Priorities: make(map[positions.Position][]players.Attribute, len(t.Priorities)),
		Toggled:    append([]positions.Position{}, t.Toggled...),
	}
	for p, n := range t.Counts {
		out.Counts[p] = n
	}
	for p, attrs := range t.Priorities {
		out.Priorities[p] = append([]players.Attribute{}, attrs...)
	}
	return out
}

// Count returns the configured starters for p.
func (t Tactics) Count(p positions.Position) int { return t.Counts[p] }

// PriorityFor returns the ordered priority attributes for p.
func (t Tactics) PriorityFor(p positions.Position) []players.Attribute { return t.Priorities[p] }

// ToggledSet returns the inverted flank positions as a set.
func (t Tactics) ToggledSet() map[positions.Position]bool {
	set := make(map[positions.Position]bool, len(t.Toggled))
	for _, p := range t.Toggled {
		set[p] = true
	}
	return set
}

// IsInverted reports whether the foot bonus is flipped for p.
func (t Tactics) IsInverted(p positions.Position) bool {
	for _, toggled := range t.Toggled {
		if toggled == p {
			return true
		}
	}
	return false
}

// OutfieldTotal sums the starter counts of every non-goalkeeper position.
func (t Tactics) OutfieldTotal() int {
	total := 0
	for p, n := range t.Counts {
		if !p.IsGoalkeeper() {
			total += n
		}
	}
	return total
}

// ConfiguredPositions returns positions with a non-zero count in table order.
func (t Tactics) ConfiguredPositions() []positions.Position {
	var out []positions.Position
	for _, p := range positions.All() {
		if t.Counts[p] > 0 {
			out = append(out, p)
		}
	}
	return out
}

// Complete is the precondition for a meaningful analysis: one goalkeeper and a
// full outfield.
func (t Tactics) Complete() bool {
	return t.Counts[positions.GK] == MaxGoalkeepers && t.OutfieldTotal() == MaxOutfieldSlots
}

// Validate checks slot limits, priority lists and toggle membership.
func (t Tactics) Validate() error {
	for p, n := range t.Counts {
		if !p.Valid() {
			return fmt.Errorf("%w: unknown position %q", ErrInvalidConfig, p)
		}
		if n < 0 {
			return fmt.Errorf("%w: negative count for %s", ErrInvalidConfig, p)
		}
	}
	if gk := t.Counts[positions.GK]; gk > MaxGoalkeepers {
		return fmt.Errorf("%w: goalkeeper count %d must be 0 or 1", ErrInvalidConfig, gk)
	}
	if total := t.OutfieldTotal(); total > MaxOutfieldSlots {
		return fmt.Errorf("%w: %d outfield slots exceeds %d", ErrInvalidConfig, total, MaxOutfieldSlots)
	}
	for p, attrs := range t.Priorities {
		if !p.Valid() {
			return fmt.Errorf("%w: unknown position %q", ErrInvalidConfig, p)
		}
		if len(attrs) > MaxPriorities {
			return fmt.Errorf("%w: %s has %d priorities, max %d", ErrInvalidConfig, p, len(attrs), MaxPriorities)
		}
	}
	for _, p := range t.Toggled {
		if !p.Togglable() {
			return fmt.Errorf("%w: %s cannot be inverted", ErrInvalidConfig, p)
		}
	}
	return nil
}

// WithCount returns a copy with p's count set to n, or an error when the
// result would be invalid.
func (t Tactics) WithCount(p positions.Position, n int) (Tactics, error) {
	if !p.Valid() {
		return t, fmt.Errorf("%w: unknown position %q", ErrInvalidConfig, p)
	}
	next := t.Clone()
	if n == 0 {
		delete(next.Counts, p)
	} else {
		next.Counts[p] = n
	}
	if err := next.Validate(); err != nil {
		return t, err
	}
	return next, nil
}

// Increment adds one starter slot at p.
func (t Tactics) Increment(p positions.Position) (Tactics, error) {
	return t.WithCount(p, t.Counts[p]+1)
}

// Decrement removes one starter slot at p.
func (t Tactics) Decrement(p positions.Position) (Tactics, error) {
	return t.WithCount(p, t.Counts[p]-1)
}

// WithPriorities replaces p's priority list. Names are matched
// case-insensitively; unknown names and duplicates are dropped.
func (t Tactics) WithPriorities(p positions.Position, names []string) (Tactics, error) {
	if !p.Valid() {
		return t, fmt.Errorf("%w: unknown position %q", ErrInvalidConfig, p)
	}
	if len(names) > MaxPriorities {
		return t, fmt.Errorf("%w: at most %d priorities per position", ErrInvalidConfig, MaxPriorities)
	}
	attrs := make([]players.Attribute, 0, len(names))
	seen := make(map[players.Attribute]bool, len(names))
	for _, name := range names {
		attr, ok := players.ParseAttribute(name)
		if !ok || seen[attr] {
			continue
		}
		seen[attr] = true
		attrs = append(attrs, attr)
	}
	next := t.Clone()
	if len(attrs) == 0 {
		delete(next.Priorities, p)
	} else {
		next.Priorities[p] = attrs
	}
	return next, nil
}

// WithToggle flips the inverted-foot flag for a flank position.
func (t Tactics) WithToggle(p positions.Position) (Tactics, error) {
	if !p.Togglable() {
		return t, fmt.Errorf("%w: %s cannot be inverted", ErrInvalidConfig, p)
	}
	next := t.Clone()
	set := next.ToggledSet()
	if set[p] {
		delete(set, p)
	} else {
		set[p] = true
	}
	next.Toggled = next.Toggled[:0]
	for toggled := range set {
		next.Toggled = append(next.Toggled, toggled)
	}
	sort.Slice(next.Toggled, func(i, j int) bool {
		return next.Toggled[i].Index() < next.Toggled[j].Index()
	})
	return next, nil
}

// WithFormation replaces the slot counts with a formation's template.
// Priorities and toggles are kept.
func (t Tactics) WithFormation(name string) (Tactics, error) {
	f, ok := FormationByName(name)
	if !ok {
		return t, fmt.Errorf("%w: unknown formation %q", ErrInvalidConfig, name)
	}
	next := t.Clone()
	next.Formation = f.Name
	next.Counts = make(map[positions.Position]int, len(f.Template))
	for p, n := range f.Template {
		next.Counts[p] = n
	}
	if err := next.Validate(); err != nil {
		return t, err
	}
	return next, nil
}
