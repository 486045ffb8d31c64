package tactics

import "github.com/preston-bernstein/squad-planner/internal/domain/positions"

// DefaultFormation is applied when a session first opens its tactics.
const DefaultFormation = "4-4-2"

// Formation maps a named shape to per-category counts and a default
// per-position template.
type Formation struct {
	Name     string                     `json:"name"`
	Slots    map[positions.Category]int `json:"slots"`
	Template map[positions.Position]int `json:"template"`
}

var formations = []Formation{
	{
		Name:  "4-4-2",
		Slots: map[positions.Category]int{positions.CategoryGK: 1, positions.CategoryDEF: 4, positions.CategoryMID: 4, positions.CategoryFWD: 2},
		Template: map[positions.Position]int{
			positions.GK: 1, positions.RB: 1, positions.CB: 2, positions.LB: 1,
			positions.RM: 1, positions.CM: 2, positions.LM: 1, positions.ST: 2,
		},
	},
	{
		Name:  "4-3-3",
		Slots: map[positions.Category]int{positions.CategoryGK: 1, positions.CategoryDEF: 4, positions.CategoryMID: 3, positions.CategoryFWD: 3},
		Template: map[positions.Position]int{
			positions.GK: 1, positions.RB: 1, positions.CB: 2, positions.LB: 1,
			positions.CDM: 1, positions.CM: 2, positions.RW: 1, positions.ST: 1, positions.LW: 1,
		},
	},
	{
		Name:  "4-2-3-1",
		Slots: map[positions.Category]int{positions.CategoryGK: 1, positions.CategoryDEF: 4, positions.CategoryMID: 5, positions.CategoryFWD: 1},
		Template: map[positions.Position]int{
			positions.GK: 1, positions.RB: 1, positions.CB: 2, positions.LB: 1,
			positions.CDM: 2, positions.RM: 1, positions.CAM: 1, positions.LM: 1, positions.ST: 1,
		},
	},
	{
		Name:  "3-5-2",
		Slots: map[positions.Category]int{positions.CategoryGK: 1, positions.CategoryDEF: 3, positions.CategoryMID: 5, positions.CategoryFWD: 2},
		Template: map[positions.Position]int{
			positions.GK: 1, positions.CB: 3,
			positions.RWB: 1, positions.CM: 2, positions.CAM: 1, positions.LWB: 1, positions.ST: 2,
		},
	},
	{
		Name:  "5-3-2",
		Slots: map[positions.Category]int{positions.CategoryGK: 1, positions.CategoryDEF: 5, positions.CategoryMID: 3, positions.CategoryFWD: 2},
		Template: map[positions.Position]int{
			positions.GK: 1, positions.RWB: 1, positions.CB: 3, positions.LWB: 1,
			positions.CM: 3, positions.ST: 2,
		},
	},
}

// Formations returns the formation reference table.
func Formations() []Formation {
	out := make([]Formation, len(formations))
	copy(out, formations)
	return out
}

// FormationByName looks up a formation by its display name.
func FormationByName(name string) (Formation, bool) {
	for _, f := range formations {
		if f.Name == name {
			return f, true
		}
	}
	return Formation{}, false
}
