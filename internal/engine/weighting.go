package engine

import "github.com/preston-bernstein/squad-planner/internal/domain/players"

const (
	topPriorityWeight = 1.0
	priorityStep      = 0.2
	defaultWeight     = 0.2
)

// Weights maps each attribute to its multiplier for one position.
type Weights map[players.Attribute]float64

// AttributeWeights converts an ordered priority list into per-attribute
// weights: 1.0, 0.8, 0.6 for the listed attributes and 0.2 for the rest.
// Names are matched case-insensitively; unknown names are skipped without
// consuming a rank. The bool is false when nothing usable was listed, in
// which case callers fall back to the plain mean.
func AttributeWeights(priorities []players.Attribute) (Weights, bool) {
	weights := make(Weights, players.AttributeCount)
	for _, attr := range players.AllAttributes() {
		weights[attr] = defaultWeight
	}

	rank := 0
	seen := make(map[players.Attribute]bool, len(priorities))
	for _, raw := range priorities {
		attr, ok := players.ParseAttribute(string(raw))
		if !ok || seen[attr] {
			continue
		}
		seen[attr] = true
		weights[attr] = topPriorityWeight - priorityStep*float64(rank)
		rank++
		if rank == 3 {
			break
		}
	}
	return weights, rank > 0
}

// WeightedAttributeScore is Σ value·weight divided by the attribute count.
// With no usable priorities it is the unweighted mean.
func WeightedAttributeScore(attrs players.Attributes, priorities []players.Attribute) float64 {
	weights, weighted := AttributeWeights(priorities)
	if !weighted {
		return attrs.Mean()
	}
	sum := 0.0
	for _, attr := range players.AllAttributes() {
		v, _ := attrs.Get(attr)
		sum += float64(v) * weights[attr]
	}
	return sum / players.AttributeCount
}
