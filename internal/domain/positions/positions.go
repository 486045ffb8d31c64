package positions

import "strings"

// Position is a pitch role a player can be registered at.
type Position string

const (
	GK  Position = "GK"
	RB  Position = "RB"
	RWB Position = "RWB"
	CB  Position = "CB"
	LB  Position = "LB"
	LWB Position = "LWB"
	CDM Position = "CDM"
	CM  Position = "CM"
	CAM Position = "CAM"
	LM  Position = "LM"
	RM  Position = "RM"
	LW  Position = "LW"
	RW  Position = "RW"
	LF  Position = "LF"
	RF  Position = "RF"
	ST  Position = "ST"
	CF  Position = "CF"
)

// Sector groups positions into the four lines of a team.
type Sector string

const (
	SectorGoalkeeper Sector = "Goalkeeper"
	SectorDefense    Sector = "Defense"
	SectorMidfield   Sector = "Midfield"
	SectorForward    Sector = "Forward"
)

// Category is the short formation bucket used by formation templates.
type Category string

const (
	CategoryGK  Category = "GK"
	CategoryDEF Category = "DEF"
	CategoryMID Category = "MID"
	CategoryFWD Category = "FWD"
)

// BenchCategory buckets backups so the bench covers every line.
type BenchCategory string

const (
	BenchGoalkeeper BenchCategory = "GK"
	BenchFullback   BenchCategory = "FB"
	BenchCenterBack BenchCategory = "CB"
	BenchMidfield   BenchCategory = "MID"
	BenchWinger     BenchCategory = "WING"
	BenchStriker    BenchCategory = "ST"
)

// Version identifies the membership of the position table below.
const Version = 2

type info struct {
	sector   Sector
	category Category
	bench    BenchCategory
	flank    flank
}

type flank int

const (
	flankNone flank = iota
	flankRight
	flankLeft
)

// all keeps the canonical table order; it drives assignment order and cycling.
var all = []Position{GK, RB, RWB, CB, LB, LWB, CDM, CM, CAM, LM, RM, LW, RW, LF, RF, ST, CF}

var table = map[Position]info{
	GK:  {SectorGoalkeeper, CategoryGK, BenchGoalkeeper, flankNone},
	RB:  {SectorDefense, CategoryDEF, BenchFullback, flankRight},
	RWB: {SectorDefense, CategoryDEF, BenchFullback, flankRight},
	CB:  {SectorDefense, CategoryDEF, BenchCenterBack, flankNone},
	LB:  {SectorDefense, CategoryDEF, BenchFullback, flankLeft},
	LWB: {SectorDefense, CategoryDEF, BenchFullback, flankLeft},
	CDM: {SectorMidfield, CategoryMID, BenchMidfield, flankNone},
	CM:  {SectorMidfield, CategoryMID, BenchMidfield, flankNone},
	CAM: {SectorMidfield, CategoryMID, BenchMidfield, flankNone},
	LM:  {SectorMidfield, CategoryMID, BenchMidfield, flankNone},
	RM:  {SectorMidfield, CategoryMID, BenchMidfield, flankNone},
	LW:  {SectorForward, CategoryFWD, BenchWinger, flankLeft},
	RW:  {SectorForward, CategoryFWD, BenchWinger, flankRight},
	LF:  {SectorForward, CategoryFWD, BenchStriker, flankNone},
	RF:  {SectorForward, CategoryFWD, BenchStriker, flankNone},
	ST:  {SectorForward, CategoryFWD, BenchStriker, flankNone},
	CF:  {SectorForward, CategoryFWD, BenchStriker, flankNone},
}

// All returns every position in table order.
func All() []Position {
	out := make([]Position, len(all))
	copy(out, all)
	return out
}

// Sectors returns the sectors from back to front.
func Sectors() []Sector {
	return []Sector{SectorGoalkeeper, SectorDefense, SectorMidfield, SectorForward}
}

// BenchCategories returns the bench buckets from back to front.
func BenchCategories() []BenchCategory {
	return []BenchCategory{BenchGoalkeeper, BenchFullback, BenchCenterBack, BenchMidfield, BenchWinger, BenchStriker}
}

// Parse resolves a case-insensitive position code.
func Parse(raw string) (Position, bool) {
	p := Position(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := table[p]; !ok {
		return "", false
	}
	return p, true
}

// Valid reports whether p is a member of the position table.
func (p Position) Valid() bool {
	_, ok := table[p]
	return ok
}

func (p Position) String() string { return string(p) }

// IsGoalkeeper reports whether p is the goalkeeper slot.
func (p Position) IsGoalkeeper() bool { return p == GK }

// Sector returns the line p belongs to, or "" for unknown positions.
func (p Position) Sector() Sector { return table[p].sector }

// Category returns the formation bucket for p.
func (p Position) Category() Category { return table[p].category }

// BenchCategory returns the bench bucket for p.
func (p Position) BenchCategory() BenchCategory { return table[p].bench }

// Togglable reports whether the inverted-foot flag applies to p.
func (p Position) Togglable() bool { return table[p].flank != flankNone }

// RightSide reports whether p is a right-flank togglable position.
func (p Position) RightSide() bool { return table[p].flank == flankRight }

// Next returns the position after p in table order, wrapping around.
func (p Position) Next() Position { return p.step(1) }

// Prev returns the position before p in table order, wrapping around.
func (p Position) Prev() Position { return p.step(-1) }

func (p Position) step(delta int) Position {
	idx := indexOf(p)
	if idx < 0 {
		return all[0]
	}
	n := len(all)
	return all[((idx+delta)%n+n)%n]
}

func indexOf(p Position) int {
	for i, candidate := range all {
		if candidate == p {
			return i
		}
	}
	return -1
}

// Index returns p's position in table order, or -1 when unknown.
func (p Position) Index() int { return indexOf(p) }
