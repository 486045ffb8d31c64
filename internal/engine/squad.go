package engine

import (
	"math"

	"github.com/preston-bernstein/squad-planner/internal/domain/players"
)

const veteranAge = 30

// SquadStats are the roster-wide aggregates used for categorization.
type SquadStats struct {
	Size          int     `json:"size"`
	AvgAge        float64 `json:"avgAge"`
	AvgOverall    float64 `json:"avgOverall"`
	AgeStdDev     float64 `json:"ageStdDev"`
	OverallStdDev float64 `json:"overallStdDev"`
}

// Categories holds the disjoint age/quality buckets of a roster.
type Categories struct {
	Aging      []players.Player `json:"aging"`
	Veterans   []players.Player `json:"veterans"`
	YoungStars []players.Player `json:"youngStars"`
}

// Summarize computes means and population standard deviations. ok is false
// for an empty roster.
func Summarize(roster []players.Player) (SquadStats, bool) {
	n := len(roster)
	if n == 0 {
		return SquadStats{}, false
	}

	var ageSum, overallSum float64
	for _, p := range roster {
		ageSum += float64(p.Age)
		overallSum += float64(p.Overall)
	}
	stats := SquadStats{
		Size:       n,
		AvgAge:     ageSum / float64(n),
		AvgOverall: overallSum / float64(n),
	}

	var ageVar, overallVar float64
	for _, p := range roster {
		da := float64(p.Age) - stats.AvgAge
		do := float64(p.Overall) - stats.AvgOverall
		ageVar += da * da
		overallVar += do * do
	}
	stats.AgeStdDev = math.Sqrt(ageVar / float64(n))
	stats.OverallStdDev = math.Sqrt(overallVar / float64(n))
	return stats, true
}

// CategorizeRoster buckets players into veterans, aging and young stars.
// Veteran takes precedence over aging; each list keeps roster order.
// Entries that cannot be rated are left out, as in ComputeAnalysis.
func CategorizeRoster(roster []players.Player) Categories {
	out := emptyCategories()
	valid, _ := partition(roster)
	stats, ok := Summarize(valid)
	if !ok {
		return out
	}
	categorizeWith(stats, valid, &out)
	return out
}

func emptyCategories() Categories {
	return Categories{
		Aging:      []players.Player{},
		Veterans:   []players.Player{},
		YoungStars: []players.Player{},
	}
}

func categorizeWith(stats SquadStats, roster []players.Player, out *Categories) {
	oldCutoff := stats.AvgAge + stats.AgeStdDev
	youngCutoff := stats.AvgAge - stats.AgeStdDev
	for _, p := range roster {
		aboveAverage := float64(p.Overall) > stats.AvgOverall
		age := float64(p.Age)
		switch {
		case p.Age > veteranAge && aboveAverage:
			out.Veterans = append(out.Veterans, p)
		case age > oldCutoff:
			out.Aging = append(out.Aging, p)
		case age < youngCutoff && aboveAverage:
			out.YoungStars = append(out.YoungStars, p)
		}
	}
}
