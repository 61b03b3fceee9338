package sim

import (
	"fmt"

	"github.com/vovakirdan/tui-skirmish/internal/catalog"
)

// DefaultArmyMovement is the per-turn movement budget of a fresh army.
const DefaultArmyMovement = 5

// Army is a mobile stack container anchored to a tile.
type Army struct {
	*Container

	ID          int
	owner       *Faction
	tile        *Tile
	maxMovement int
	remaining   int
}

func newArmy(id int, owner *Faction, cat *catalog.Catalog, capacity, movement int) *Army {
	return &Army{
		Container:   NewContainer(cat, capacity),
		ID:          id,
		owner:       owner,
		maxMovement: movement,
		remaining:   movement,
	}
}

// Name returns a display label.
func (a *Army) Name() string {
	return fmt.Sprintf("Army %d", a.ID)
}

// Owner returns the faction the army belongs to.
func (a *Army) Owner() *Faction { return a.owner }

// Tile returns the tile the army stands on, or nil once it left the field.
func (a *Army) Tile() *Tile { return a.tile }

// MaxMovement returns the per-turn movement budget.
func (a *Army) MaxMovement() int { return a.maxMovement }

// RemainingMovement returns what is left of this turn's budget.
func (a *Army) RemainingMovement() int { return a.remaining }

// ResetMovement restores the full budget.
func (a *Army) ResetMovement() { a.remaining = a.maxMovement }

func (a *Army) spendMovement(n int) {
	a.remaining -= n
	if a.remaining < 0 {
		a.remaining = 0
	}
}

// Garrison is a settlement's stationary stack container.
type Garrison struct {
	*Container
}

func newGarrison(cat *catalog.Catalog, capacity int) *Garrison {
	return &Garrison{Container: NewContainer(cat, capacity)}
}
