// Package catalog holds the immutable rule tables of a match: unit archetypes,
// building costs and the units each production building unlocks.
//
// A Catalog is built once and shared read-only. Tests that need custom units
// construct their own instance with New.
package catalog

import (
	"errors"
	"fmt"

	"github.com/agnivade/levenshtein"
)

var (
	ErrUnknownUnit     = errors.New("unknown unit type")
	ErrUnknownBuilding = errors.New("unknown building")
)

// Catalog maps unit names to archetypes and buildings to unlock rosters.
type Catalog struct {
	units   map[TypeID]UnitType
	order   []TypeID
	rosters [NumBuildings][MaxLevel][]TypeID
	trainer map[TypeID]Building
}

// Default returns a catalog with the stock roster.
func Default() *Catalog {
	c, err := New(stockUnits, stockRosters)
	if err != nil {
		panic(fmt.Sprintf("catalog: stock tables are inconsistent: %v", err))
	}
	return c
}

// New validates and freezes a unit table and its rosters.
// Every roster entry must name a unit in types, and a unit may be trained by
// at most one building.
func New(types []UnitType, rosters []Roster) (*Catalog, error) {
	c := &Catalog{
		units:   make(map[TypeID]UnitType, len(types)),
		trainer: make(map[TypeID]Building),
	}
	for _, t := range types {
		if t.ID == "" {
			return nil, errors.New("catalog: unit type without a name")
		}
		if t.DefaultSize <= 0 {
			return nil, fmt.Errorf("catalog: %s: default size must be positive", t.ID)
		}
		if _, dup := c.units[t.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate unit type %q", t.ID)
		}
		c.units[t.ID] = t
		c.order = append(c.order, t.ID)
	}
	for _, r := range rosters {
		if !r.Building.Produces() {
			return nil, fmt.Errorf("catalog: %s does not train units", r.Building)
		}
		for tier, ids := range r.Tiers {
			for _, id := range ids {
				if _, ok := c.units[id]; !ok {
					return nil, fmt.Errorf("catalog: roster %s: %w: %q", r.Building, ErrUnknownUnit, id)
				}
				if prev, taken := c.trainer[id]; taken {
					return nil, fmt.Errorf("catalog: %q trained by both %s and %s", id, prev, r.Building)
				}
				c.trainer[id] = r.Building
			}
			c.rosters[r.Building][tier] = append([]TypeID(nil), ids...)
		}
	}
	return c, nil
}

// Lookup returns the archetype registered under id.
func (c *Catalog) Lookup(id TypeID) (UnitType, bool) {
	t, ok := c.units[id]
	return t, ok
}

// Resolve looks a unit up by its display name, suggesting the closest match on failure.
func (c *Catalog) Resolve(name string) (UnitType, error) {
	if t, ok := c.units[TypeID(name)]; ok {
		return t, nil
	}
	for _, id := range c.order {
		if normalize(string(id)) == normalize(name) {
			return c.units[id], nil
		}
	}
	names := make([]string, len(c.order))
	for i, id := range c.order {
		names[i] = string(id)
	}
	return UnitType{}, unknownName(ErrUnknownUnit, name, names)
}

// Types returns every archetype in registration order.
func (c *Catalog) Types() []UnitType {
	out := make([]UnitType, len(c.order))
	for i, id := range c.order {
		out[i] = c.units[id]
	}
	return out
}

// UnitsFor returns the units b unlocks at the given level, lower tiers first.
// Level 0 unlocks nothing.
func (c *Catalog) UnitsFor(b Building, level int) []TypeID {
	if !b.Produces() {
		return nil
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	var out []TypeID
	for tier := 0; tier < level; tier++ {
		out = append(out, c.rosters[b][tier]...)
	}
	return out
}

// BuildingFor reports which production building trains id.
func (c *Catalog) BuildingFor(id TypeID) (Building, bool) {
	b, ok := c.trainer[id]
	return b, ok
}

// BestUnit returns the most expensive unit b unlocks at level.
// Ties keep the earlier roster entry.
func (c *Catalog) BestUnit(b Building, level int) (UnitType, bool) {
	var best UnitType
	found := false
	for _, id := range c.UnitsFor(b, level) {
		t := c.units[id]
		if !found || t.RecruitmentCost() > best.RecruitmentCost() {
			best, found = t, true
		}
	}
	return best, found
}

// unknownName wraps sentinel with the closest candidate when one is near enough.
func unknownName(sentinel error, name string, candidates []string) error {
	if best, ok := Suggest(name, candidates); ok {
		return fmt.Errorf("%w %q (did you mean %q?)", sentinel, name, best)
	}
	return fmt.Errorf("%w %q", sentinel, name)
}

// Suggest returns the candidate closest to name by edit distance, ignoring
// case and spacing, when it is close enough to be a plausible typo.
func Suggest(name string, candidates []string) (string, bool) {
	best, bestDist := "", -1
	for _, cand := range candidates {
		d := levenshtein.ComputeDistance(normalize(name), normalize(cand))
		if bestDist < 0 || d < bestDist {
			best, bestDist = cand, d
		}
	}
	if bestDist < 0 || bestDist > maxSuggestDistance(name) {
		return "", false
	}
	return best, true
}

func maxSuggestDistance(name string) int {
	if d := len(name) / 3; d > 2 {
		return d
	}
	return 2
}
