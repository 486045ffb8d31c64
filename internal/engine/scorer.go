package engine

import (
	"math"

	"github.com/preston-bernstein/squad-planner/internal/domain/players"
	"github.com/preston-bernstein/squad-planner/internal/domain/positions"
)

// Priorities is the per-position priority configuration.
type Priorities map[positions.Position][]players.Attribute

// Toggles is the set of flank positions with the foot bonus inverted.
type Toggles map[positions.Position]bool

const (
	outfieldOverallWeight = 0.3
	outfieldAttrWeight    = 0.4
	outfieldAgeWeight     = 0.15
	outfieldRoleWeight    = 0.15

	keeperOverallWeight = 0.5
	keeperAgeWeight     = 0.25
	keeperRoleWeight    = 0.25

	footBonus = 0.5

	peakAge      = 25
	ageDecayRate = 0.05

	unknownRoleWeight = 0.2
)

var roleWeights = map[players.Role]float64{
	players.RoleCrucial:   1.0,
	players.RoleImportant: 0.8,
	players.RoleRotation:  0.6,
	players.RoleSquad:     0.4,
	players.RoleProspect:  0.2,
}

// AgeRating peaks at 25 and decays linearly by 0.05 per year, floored at 0.
func AgeRating(age int) float64 {
	return math.Max(0, 1-ageDecayRate*math.Abs(float64(age-peakAge)))
}

// RoleWeight maps a squad role to its multiplier; unknown roles get 0.2.
func RoleWeight(role players.Role) float64 {
	if w, ok := roleWeights[role]; ok {
		return w
	}
	return unknownRoleWeight
}

// FootBonus returns 0.5 when the player's foot suits the flank at pos.
// Inverting a position flips which foot is rewarded there.
func FootBonus(foot players.Foot, pos positions.Position, toggled Toggles) float64 {
	if !pos.Togglable() {
		return 0
	}
	rightFooted := foot == players.FootRight
	if rightFooted == (pos.RightSide() != toggled[pos]) {
		return footBonus
	}
	return 0
}

// ScorePlayer rates p at pos. It is pure: the result depends only on its
// arguments.
func ScorePlayer(p players.Player, pos positions.Position, priorities Priorities, toggled Toggles) float64 {
	age := AgeRating(p.Age)
	role := RoleWeight(p.Role)
	overall := float64(p.Overall)

	if pos.IsGoalkeeper() {
		return overall*keeperOverallWeight + age*keeperAgeWeight + role*keeperRoleWeight
	}

	attrScore := WeightedAttributeScore(p.Attributes, priorities[pos])
	rating := overall*outfieldOverallWeight +
		attrScore*outfieldAttrWeight +
		age*outfieldAgeWeight +
		role*outfieldRoleWeight
	return rating + FootBonus(p.PreferredFoot, pos, toggled)
}
