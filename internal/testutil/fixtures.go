package testutil

import (
	"fmt"

	"github.com/preston-bernstein/squad-planner/internal/domain/players"
	"github.com/preston-bernstein/squad-planner/internal/domain/positions"
	"github.com/preston-bernstein/squad-planner/internal/domain/teams"
)

// SamplePlayer returns a valid player with every attribute set to overall.
func SamplePlayer(id string, pos positions.Position, overall, age int) players.Player {
	return players.Player{
		ID:                 id,
		Name:               "Player " + id,
		ShortName:          id,
		Age:                age,
		Nationality:        "England",
		FifaCode:           "ENG",
		MainPosition:       pos,
		AlternatePositions: []positions.Position{},
		Role:               players.RoleRotation,
		Attributes: players.Attributes{
			Pace: overall, Shooting: overall, Passing: overall,
			Dribbling: overall, Defending: overall, Physical: overall,
		},
		Overall:       overall,
		Potential:     overall,
		PreferredFoot: players.FootRight,
	}
}

// FourFourTwoPositions lists one entry per starter of the default formation.
var FourFourTwoPositions = []positions.Position{
	positions.GK,
	positions.RB, positions.CB, positions.CB, positions.LB,
	positions.LM, positions.CM, positions.CM, positions.RM,
	positions.ST, positions.ST,
}

// SampleSquad returns eleven players covering the default 4-4-2.
func SampleSquad() []players.Player {
	out := make([]players.Player, 0, len(FourFourTwoPositions))
	for i, pos := range FourFourTwoPositions {
		out = append(out, SamplePlayer(fmt.Sprintf("p%02d", i+1), pos, 60+i, 20+i))
	}
	return out
}

// SampleTeam returns a valid team fixture with the provided id.
func SampleTeam(id string) teams.Team {
	return teams.Team{ID: id, Name: "Team " + id, Country: "England"}
}
