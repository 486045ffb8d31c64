package players

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/preston-bernstein/squad-planner/internal/domain/positions"
)

// ErrInvalidPlayer is returned when a player payload fails validation.
var ErrInvalidPlayer = errors.New("invalid player")

const (
	MinAttribute = 0
	MaxAttribute = 99
	MinAge       = 15
	MaxAge       = 60
)

// Player is a roster entry with static attributes and running stats.
type Player struct {
	ID                 string               `json:"id"`
	Name               string               `json:"name"`
	ShortName          string               `json:"shortName"`
	Age                int                  `json:"age"`
	Nationality        string               `json:"nationality"`
	FifaCode           string               `json:"fifaCode"`
	MainPosition       positions.Position   `json:"mainPosition"`
	AlternatePositions []positions.Position `json:"alternatePositions"`
	Role               Role                 `json:"role"`
	Attributes         Attributes           `json:"attributes"`
	Overall            int                  `json:"overall"`
	Potential          int                  `json:"potential"`
	PreferredFoot      Foot                 `json:"preferredFoot"`
	Stats              Stats                `json:"stats"`
}

// Stats are match contributions, edited independently of attributes.
type Stats struct {
	Goals   int `json:"goals"`
	Assists int `json:"assists"`
}

// Foot is the player's preferred foot.
type Foot string

const (
	FootLeft  Foot = "Left"
	FootRight Foot = "Right"
)

// ParseFoot resolves a case-insensitive foot name.
func ParseFoot(raw string) (Foot, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "left", "l":
		return FootLeft, true
	case "right", "r":
		return FootRight, true
	}
	return "", false
}

// Valid reports whether f is Left or Right.
func (f Foot) Valid() bool { return f == FootLeft || f == FootRight }

// DeriveOverall returns the rounded mean of the six attributes.
func DeriveOverall(a Attributes) int {
	return int(math.Round(a.Mean()))
}

// Normalize applies creation defaults. A zero overall is derived from the
// attributes; any other value is kept as a fixed override.
func (p Player) Normalize() Player {
	if p.Overall == 0 {
		p.Overall = DeriveOverall(p.Attributes)
	}
	if p.ShortName == "" {
		p.ShortName = shortName(p.Name)
	}
	p.FifaCode = strings.ToUpper(strings.TrimSpace(p.FifaCode))
	if p.AlternatePositions == nil {
		p.AlternatePositions = []positions.Position{}
	}
	return p
}

func shortName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// Validate checks the structural invariants of a player record.
func (p Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPlayer)
	}
	if p.Age < MinAge || p.Age > MaxAge {
		return fmt.Errorf("%w: age %d outside %d..%d", ErrInvalidPlayer, p.Age, MinAge, MaxAge)
	}
	if err := p.RatingError(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPlayer, err)
	}
	for _, alt := range p.AlternatePositions {
		if !alt.Valid() {
			return fmt.Errorf("%w: unknown alternate position %q", ErrInvalidPlayer, alt)
		}
	}
	if !p.Role.Valid() {
		return fmt.Errorf("%w: unknown role", ErrInvalidPlayer)
	}
	if !p.PreferredFoot.Valid() {
		return fmt.Errorf("%w: preferred foot must be Left or Right", ErrInvalidPlayer)
	}
	if !inRange(p.Potential) {
		return fmt.Errorf("%w: potential %d outside %d..%d", ErrInvalidPlayer, p.Potential, MinAttribute, MaxAttribute)
	}
	if p.Stats.Goals < 0 || p.Stats.Assists < 0 {
		return fmt.Errorf("%w: stats must be non-negative", ErrInvalidPlayer)
	}
	return nil
}

// RatingError reports why p cannot be rated, or nil when every input to
// the rating formulas is usable. Validate applies the same rule.
func (p Player) RatingError() error {
	if !p.MainPosition.Valid() {
		return fmt.Errorf("unknown main position %q", p.MainPosition)
	}
	if p.Age < 0 {
		return fmt.Errorf("negative age %d", p.Age)
	}
	if err := p.Attributes.Validate(); err != nil {
		return err
	}
	if !inRange(p.Overall) {
		return fmt.Errorf("overall %d outside %d..%d", p.Overall, MinAttribute, MaxAttribute)
	}
	return nil
}

func inRange(v int) bool { return v >= MinAttribute && v <= MaxAttribute }

// ClampAttribute bounds v to the attribute scale.
func ClampAttribute(v int) int {
	if v < MinAttribute {
		return MinAttribute
	}
	if v > MaxAttribute {
		return MaxAttribute
	}
	return v
}
