// Package engine rates players against positions and builds the squad
// analysis: best XI, bench, age categories and depth diagnostics. Every
// function here is pure and never fails; malformed roster entries are
// skipped and reported.
package engine

import (
	"github.com/preston-bernstein/squad-planner/internal/domain/players"
	"github.com/preston-bernstein/squad-planner/internal/domain/tactics"
)

// ComputeAnalysis builds the full report for roster under tac.
func ComputeAnalysis(roster []players.Player, tac tactics.Tactics) Analysis {
	valid, skipped := partition(roster)
	configured := tac.ConfiguredPositions()

	cats := emptyCategories()
	var stats SquadStats
	if summary, ok := Summarize(valid); ok {
		stats = summary
		categorizeWith(stats, valid, &cats)
	}

	analysis := Analysis{
		Aging:             cats.Aging,
		Veterans:          cats.Veterans,
		YoungStars:        cats.YoungStars,
		PositionStrengths: positionStrengths(valid, configured, cats),
		SectorStrengths:   sectorStrengths(valid),
		Squad:             stats,
		Skipped:           skipped,
	}

	ranked := RankCandidates(valid, tac.Priorities, tac.ToggledSet())
	analysis.BestXI, analysis.Bench = AssignSlots(ranked, configured)
	return analysis
}

func partition(roster []players.Player) ([]players.Player, []Skipped) {
	valid := make([]players.Player, 0, len(roster))
	skipped := []Skipped{}
	for _, p := range roster {
		if reason := skipReason(p); reason != "" {
			skipped = append(skipped, Skipped{PlayerID: p.ID, Name: p.Name, Reason: reason})
			continue
		}
		valid = append(valid, p)
	}
	return valid, skipped
}

func skipReason(p players.Player) string {
	if err := p.RatingError(); err != nil {
		return err.Error()
	}
	return ""
}
