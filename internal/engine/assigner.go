package engine

import (
	"sort"

	"github.com/preston-bernstein/squad-planner/internal/domain/players"
	"github.com/preston-bernstein/squad-planner/internal/domain/positions"
)

const (
	maxStarters = 11
	// BenchCap is one reserve per bench category.
	BenchCap = 6
)

// Candidate is a player rated at one position.
type Candidate struct {
	Player   players.Player     `json:"player"`
	Position positions.Position `json:"position"`
	Rating   float64            `json:"rating"`
}

// BenchEntry is a reserve with the backup category it covers.
type BenchEntry struct {
	Candidate
	Category positions.BenchCategory `json:"category"`
}

// RankCandidates rates every player at their main position and sorts the
// result best first.
func RankCandidates(roster []players.Player, priorities Priorities, toggled Toggles) []Candidate {
	out := make([]Candidate, 0, len(roster))
	for _, p := range roster {
		out = append(out, Candidate{
			Player:   p,
			Position: p.MainPosition,
			Rating:   ScorePlayer(p, p.MainPosition, priorities, toggled),
		})
	}
	sortCandidates(out)
	return out
}

func sortCandidates(c []Candidate) {
	sort.SliceStable(c, func(i, j int) bool { return better(c[i], c[j]) })
}

func better(a, b Candidate) bool {
	if a.Rating != b.Rating {
		return a.Rating > b.Rating
	}
	if a.Player.Overall != b.Player.Overall {
		return a.Player.Overall > b.Player.Overall
	}
	return a.Player.ID < b.Player.ID
}

// AssignSlots picks the best candidate for each configured position and
// fills the bench with the best leftover per bench category. ranked must be
// sorted best first, as returned by RankCandidates.
func AssignSlots(ranked []Candidate, configured []positions.Position) ([]Candidate, []BenchEntry) {
	bestXI := make([]Candidate, 0, len(configured))
	picked := make(map[string]bool, len(configured))

	for _, pos := range configured {
		if len(bestXI) == maxStarters {
			break
		}
		for _, c := range ranked {
			if c.Position != pos || picked[c.Player.ID] {
				continue
			}
			bestXI = append(bestXI, c)
			picked[c.Player.ID] = true
			break
		}
	}

	bench := make([]BenchEntry, 0, BenchCap)
	covered := make(map[positions.BenchCategory]bool, BenchCap)
	for _, c := range ranked {
		if len(bench) == BenchCap {
			break
		}
		if picked[c.Player.ID] {
			continue
		}
		cat := c.Position.BenchCategory()
		if cat == "" || covered[cat] {
			continue
		}
		covered[cat] = true
		picked[c.Player.ID] = true
		bench = append(bench, BenchEntry{Candidate: c, Category: cat})
	}
	return bestXI, bench
}
