package sim_test

import (
	"testing"

	"github.com/vovakirdan/tui-skirmish/internal/catalog"
	"github.com/vovakirdan/tui-skirmish/internal/sim"
)

type fixture struct {
	world *sim.World
	human *sim.Faction
	opp   *sim.Faction
	home  *sim.Settlement
	enemy *sim.Settlement
}

// newFixture builds a 10x10 grassland world with one settlement per side:
// the human one at (1,1), the opponent one at (8,8).
func newFixture(t *testing.T) *fixture {
	t.Helper()
	w, err := sim.NewWorld(sim.Options{Grid: sim.NewGrid(10, 10, nil), Rules: sim.DefaultRules(), Seed: 7})
	if err != nil {
		t.Fatalf("NewWorld() failed: %v", err)
	}
	fx := &fixture{world: w}
	if fx.human, err = w.AddFaction(sim.Human, "Player", true, 300); err != nil {
		t.Fatalf("AddFaction() failed: %v", err)
	}
	if fx.opp, err = w.AddFaction(sim.Opponent, "AI", false, 300); err != nil {
		t.Fatalf("AddFaction() failed: %v", err)
	}
	if fx.home, err = w.FoundSettlement(fx.human, "Alpha", sim.C(1, 1)); err != nil {
		t.Fatalf("FoundSettlement() failed: %v", err)
	}
	if fx.enemy, err = w.FoundSettlement(fx.opp, "Omega", sim.C(8, 8)); err != nil {
		t.Fatalf("FoundSettlement() failed: %v", err)
	}
	return fx
}

func (fx *fixture) start(t *testing.T) {
	t.Helper()
	if _, err := fx.world.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
}

func (fx *fixture) army(t *testing.T, f *sim.Faction, x, y int, stacks ...sim.StackSpec) *sim.Army {
	t.Helper()
	a, err := fx.world.RaiseArmy(f, sim.C(x, y), stacks)
	if err != nil {
		t.Fatalf("RaiseArmy(%d,%d) failed: %v", x, y, err)
	}
	return a
}

func (fx *fixture) tile(x, y int) *sim.Tile {
	return fx.world.Grid.TileAt(x, y)
}

func spear(size int) sim.StackSpec {
	return sim.StackSpec{Unit: catalog.MilitiaSpearman, Size: size}
}

func archer(size int) sim.StackSpec {
	return sim.StackSpec{Unit: catalog.MilitiaArcher, Size: size}
}

func sizes(c *sim.Container) []int {
	var out []int
	for _, s := range c.Stacks() {
		out = append(out, s.Size)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
