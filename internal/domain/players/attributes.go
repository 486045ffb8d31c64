package players

import (
	"fmt"
	"strings"
)

// Attribute names one of the six rated skills.
type Attribute string

const (
	Pace      Attribute = "pace"
	Shooting  Attribute = "shooting"
	Passing   Attribute = "passing"
	Dribbling Attribute = "dribbling"
	Defending Attribute = "defending"
	Physical  Attribute = "physical"
)

// AttributeCount is the number of rated skills.
const AttributeCount = 6

var attributeOrder = [AttributeCount]Attribute{Pace, Shooting, Passing, Dribbling, Defending, Physical}

// AllAttributes returns the canonical attribute keys in display order.
func AllAttributes() []Attribute {
	out := make([]Attribute, AttributeCount)
	copy(out, attributeOrder[:])
	return out
}

// ParseAttribute matches a name case-insensitively against the canonical keys.
func ParseAttribute(raw string) (Attribute, bool) {
	a := Attribute(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range attributeOrder {
		if a == known {
			return a, true
		}
	}
	return "", false
}

// Attributes is the rated skill set, each value in [0,99].
type Attributes struct {
	Pace      int `json:"pace"`
	Shooting  int `json:"shooting"`
	Passing   int `json:"passing"`
	Dribbling int `json:"dribbling"`
	Defending int `json:"defending"`
	Physical  int `json:"physical"`
}

// Get returns the value for a canonical attribute key.
func (a Attributes) Get(attr Attribute) (int, bool) {
	switch attr {
	case Pace:
		return a.Pace, true
	case Shooting:
		return a.Shooting, true
	case Passing:
		return a.Passing, true
	case Dribbling:
		return a.Dribbling, true
	case Defending:
		return a.Defending, true
	case Physical:
		return a.Physical, true
	}
	return 0, false
}

// With returns a copy with attr set to value. Unknown keys leave a unchanged.
func (a Attributes) With(attr Attribute, value int) Attributes {
	switch attr {
	case Pace:
		a.Pace = value
	case Shooting:
		a.Shooting = value
	case Passing:
		a.Passing = value
	case Dribbling:
		a.Dribbling = value
	case Defending:
		a.Defending = value
	case Physical:
		a.Physical = value
	}
	return a
}

// Values returns the attribute values in canonical order.
func (a Attributes) Values() [AttributeCount]int {
	return [AttributeCount]int{a.Pace, a.Shooting, a.Passing, a.Dribbling, a.Defending, a.Physical}
}

// Mean is the unweighted arithmetic mean of all six attributes.
func (a Attributes) Mean() float64 {
	sum := 0
	for _, v := range a.Values() {
		sum += v
	}
	return float64(sum) / AttributeCount
}

// Validate ensures every attribute is on the 0..99 scale.
func (a Attributes) Validate() error {
	for i, v := range a.Values() {
		if !inRange(v) {
			return fmt.Errorf("attribute %s=%d outside %d..%d", attributeOrder[i], v, MinAttribute, MaxAttribute)
		}
	}
	return nil
}
