package catalog

import (
	"fmt"
	"strings"
)

// Building identifies one of the five settlement buildings.
type Building uint8

const (
	Barracks Building = iota
	ArcheryRange
	Stables
	Farm
	Market

	NumBuildings = 5
)

// MaxLevel is the level cap shared by every building.
const MaxLevel = 3

var buildingNames = [NumBuildings]string{
	Barracks:     "Barracks",
	ArcheryRange: "ArcheryRange",
	Stables:      "Stables",
	Farm:         "Farm",
	Market:       "Market",
}

var buildingCosts = [NumBuildings]int{
	Barracks:     600,
	ArcheryRange: 650,
	Stables:      700,
	Farm:         400,
	Market:       600,
}

// String returns the building name.
func (b Building) String() string {
	if !b.Valid() {
		return fmt.Sprintf("Building(%d)", uint8(b))
	}
	return buildingNames[b]
}

// Valid reports whether b is a known building.
func (b Building) Valid() bool {
	return b < NumBuildings
}

// Cost returns the gold cost of one upgrade of b.
func (b Building) Cost() int {
	if !b.Valid() {
		return 0
	}
	return buildingCosts[b]
}

// Produces reports whether b trains units.
func (b Building) Produces() bool {
	return b == Barracks || b == ArcheryRange || b == Stables
}

// AllBuildings returns every building in enumeration order.
func AllBuildings() []Building {
	return []Building{Barracks, ArcheryRange, Stables, Farm, Market}
}

// ProductionBuildings returns the unit-producing buildings in recruit precedence order.
func ProductionBuildings() []Building {
	return []Building{Barracks, ArcheryRange, Stables}
}

// ParseBuilding resolves a building by name, ignoring case and spaces.
func ParseBuilding(name string) (Building, error) {
	key := normalize(name)
	for _, b := range AllBuildings() {
		if normalize(b.String()) == key {
			return b, nil
		}
	}
	candidates := make([]string, 0, NumBuildings)
	for _, b := range AllBuildings() {
		candidates = append(candidates, b.String())
	}
	return 0, unknownName(ErrUnknownBuilding, name, candidates)
}

func normalize(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}
