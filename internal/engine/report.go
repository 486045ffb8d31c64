package engine

import (
	"github.com/preston-bernstein/squad-planner/internal/domain/players"
	"github.com/preston-bernstein/squad-planner/internal/domain/positions"
)

const (
	weakSectorBelow   = 3
	strongSectorAbove = 8
	thinAgingCount    = 2
)

// Sector strength levels.
const (
	LevelWeak   = "weak"
	LevelOK     = "ok"
	LevelStrong = "strong"
)

// Position advisory messages.
const (
	MsgNoPlayers     = "no players here"
	MsgNeedProspects = "need prospects"
	MsgOnlyProspects = "only prospects"
	MsgAgingRoster   = "aging roster at this position"

	MsgSectorWeak   = "weak: fewer than 3 players"
	MsgSectorStrong = "strong: more than 8 players"
)

// PositionStrength summarizes depth at one configured position.
type PositionStrength struct {
	Count       int    `json:"count"`
	HasProspect bool   `json:"hasProspect"`
	HasVeteran  bool   `json:"hasVeteran"`
	HasAging    bool   `json:"hasAging"`
	HasNormal   bool   `json:"hasNormal"`
	Message     string `json:"message,omitempty"`
}

// SectorStrength is the roster count for one line of the team.
type SectorStrength struct {
	Count   int    `json:"count"`
	Level   string `json:"level"`
	Message string `json:"message,omitempty"`
}

type sectorRule struct {
	below, above int
	weak, strong string
}

var sectorRules = map[positions.Sector]sectorRule{
	positions.SectorGoalkeeper: {weakSectorBelow, strongSectorAbove, MsgSectorWeak, MsgSectorStrong},
	positions.SectorDefense:    {weakSectorBelow, strongSectorAbove, MsgSectorWeak, MsgSectorStrong},
	positions.SectorMidfield:   {weakSectorBelow, strongSectorAbove, MsgSectorWeak, MsgSectorStrong},
	positions.SectorForward:    {weakSectorBelow, strongSectorAbove, MsgSectorWeak, MsgSectorStrong},
}

// Skipped records a roster entry left out of the analysis.
type Skipped struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Reason   string `json:"reason"`
}

// Analysis is the full derived report for one roster and configuration.
type Analysis struct {
	BestXI            []Candidate                             `json:"bestXI"`
	Bench             []BenchEntry                            `json:"bench"`
	Aging             []players.Player                        `json:"aging"`
	Veterans          []players.Player                        `json:"veterans"`
	YoungStars        []players.Player                        `json:"youngStars"`
	PositionStrengths map[positions.Position]PositionStrength `json:"positionStrengths"`
	SectorStrengths   map[positions.Sector]SectorStrength     `json:"sectorStrengths"`
	Squad             SquadStats                              `json:"squad"`
	Skipped           []Skipped                               `json:"skipped"`
}

func positionStrengths(roster []players.Player, configured []positions.Position, cats Categories) map[positions.Position]PositionStrength {
	veterans := idSet(cats.Veterans)
	aging := idSet(cats.Aging)

	out := make(map[positions.Position]PositionStrength, len(configured))
	for _, pos := range configured {
		var s PositionStrength
		prospects := 0
		for _, p := range roster {
			if p.MainPosition != pos {
				continue
			}
			s.Count++
			switch {
			case p.Role == players.RoleProspect:
				s.HasProspect = true
				prospects++
			case veterans[p.ID]:
				s.HasVeteran = true
			case aging[p.ID]:
				s.HasAging = true
			default:
				s.HasNormal = true
			}
		}
		switch {
		case s.Count == 0:
			s.Message = MsgNoPlayers
		case !s.HasProspect:
			s.Message = MsgNeedProspects
		case prospects == s.Count:
			s.Message = MsgOnlyProspects
		case s.HasAging && s.Count <= thinAgingCount:
			s.Message = MsgAgingRoster
		}
		out[pos] = s
	}
	return out
}

func sectorStrengths(roster []players.Player) map[positions.Sector]SectorStrength {
	counts := make(map[positions.Sector]int, len(sectorRules))
	for _, p := range roster {
		counts[p.MainPosition.Sector()]++
	}
	out := make(map[positions.Sector]SectorStrength, len(sectorRules))
	for _, sector := range positions.Sectors() {
		rule := sectorRules[sector]
		s := SectorStrength{Count: counts[sector], Level: LevelOK}
		switch {
		case s.Count < rule.below:
			s.Level, s.Message = LevelWeak, rule.weak
		case s.Count > rule.above:
			s.Level, s.Message = LevelStrong, rule.strong
		}
		out[sector] = s
	}
	return out
}

func idSet(list []players.Player) map[string]bool {
	out := make(map[string]bool, len(list))
	for _, p := range list {
		out[p.ID] = true
	}
	return out
}
