package catan

import (
	"fmt"
	"strings"
)

// Resource is a resource card type. Desert is a terrain only and never
// appears in a hand or in the bank.
type Resource int

const (
	Wood Resource = iota
	Brick
	Sheep
	Wheat
	Ore
	Desert
)

// NumResources is the number of tradeable resource types.
const NumResources = 5

var resourceNames = [...]string{"wood", "brick", "sheep", "wheat", "ore", "desert"}

func (r Resource) String() string {
	if r < 0 || int(r) >= len(resourceNames) {
		return fmt.Sprintf("resource(%d)", int(r))
	}
	return resourceNames[r]
}

// Valid reports whether r is a card resource (not desert).
func (r Resource) Valid() bool {
	return r >= Wood && r <= Ore
}

// AllResources returns the five card resources in canonical order.
func AllResources() []Resource {
	return []Resource{Wood, Brick, Sheep, Wheat, Ore}
}

// ParseResource converts a resource name (case-insensitive) to a Resource.
func ParseResource(s string) (Resource, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range resourceNames[:NumResources] {
		if s == name {
			return Resource(i), nil
		}
	}
	return 0, fmt.Errorf("unknown resource %q", s)
}

// Resources is a count per card resource. It is a value type, so copying it
// copies the counts.
type Resources [NumResources]int

// Total returns the number of cards.
func (rs Resources) Total() int {
	n := 0
	for _, c := range rs {
		n += c
	}
	return n
}

func (rs Resources) nonNegative() bool {
	for _, c := range rs {
		if c < 0 {
			return false
		}
	}
	return true
}

// Covers reports whether rs holds at least as many of every resource as cost.
func (rs Resources) Covers(cost Resources) bool {
	for i := range rs {
		if rs[i] < cost[i] {
			return false
		}
	}
	return true
}

// Add returns rs + o.
func (rs Resources) Add(o Resources) Resources {
	for i := range rs {
		rs[i] += o[i]
	}
	return rs
}

// Sub returns rs - o. Callers check Covers first.
func (rs Resources) Sub(o Resources) Resources {
	for i := range rs {
		rs[i] -= o[i]
	}
	return rs
}

// Max returns the resource with the highest count, ties going to the earlier
// resource in canonical order.
func (rs Resources) Max() Resource {
	best := Wood
	for r := Brick; r <= Ore; r++ {
		if rs[r] > rs[best] {
			best = r
		}
	}
	return best
}

func (rs Resources) String() string {
	var parts []string
	for r, c := range rs {
		if c > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c, Resource(r)))
		}
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, ", ")
}

// Build costs.
var (
	RoadCost       = Resources{Wood: 1, Brick: 1}
	SettlementCost = Resources{Wood: 1, Brick: 1, Sheep: 1, Wheat: 1}
	CityCost       = Resources{Wheat: 2, Ore: 3}
	DevCardCost    = Resources{Sheep: 1, Wheat: 1, Ore: 1}
)

// One returns a Resources with a single card of r.
func One(r Resource) Resources {
	var rs Resources
	rs[r] = 1
	return rs
}
