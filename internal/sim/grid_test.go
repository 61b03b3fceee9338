package sim_test

import (
	"testing"

	"github.com/vovakirdan/tui-skirmish/internal/sim"
)

func TestTileAtBounds(t *testing.T) {
	g := sim.NewGrid(4, 3, nil)
	testCases := []struct {
		x, y int
		ok   bool
	}{
		{0, 0, true},
		{3, 2, true},
		{4, 0, false},
		{0, 3, false},
		{-1, 1, false},
	}
	for _, tc := range testCases {
		tile := g.TileAt(tc.x, tc.y)
		if (tile != nil) != tc.ok {
			t.Errorf("TileAt(%d,%d): expected present=%v", tc.x, tc.y, tc.ok)
		}
		if tile != nil && tile.Pos != sim.C(tc.x, tc.y) {
			t.Errorf("TileAt(%d,%d) returned tile at %v", tc.x, tc.y, tile.Pos)
		}
	}
}

func TestAdjacentTilesOrderAndClipping(t *testing.T) {
	g := sim.NewGrid(5, 5, nil)
	center := g.TileAt(2, 2)

	want := []sim.Coord{
		sim.C(3, 2), sim.C(1, 2), sim.C(2, 3), sim.C(2, 1),
		sim.C(3, 3), sim.C(1, 3), sim.C(3, 1), sim.C(1, 1),
	}
	got := g.AdjacentTiles(center, true)
	if len(got) != len(want) {
		t.Fatalf("expected %d neighbors, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Pos != want[i] {
			t.Errorf("neighbor %d: expected %v, got %v", i, want[i], got[i].Pos)
		}
	}

	if n := len(g.AdjacentTiles(center, false)); n != 4 {
		t.Errorf("expected 4 orthogonal neighbors, got %d", n)
	}
	if n := len(g.AdjacentTiles(g.TileAt(0, 0), true)); n != 3 {
		t.Errorf("corner: expected 3 neighbors, got %d", n)
	}
}

func TestTilesInRangeZeroIsOrigin(t *testing.T) {
	g := sim.NewGrid(5, 5, nil)
	origin := g.TileAt(2, 2)
	got := g.TilesInRange(origin, 0, true)
	if len(got) != 1 || got[0] != origin {
		t.Fatalf("expected exactly the origin, got %d tiles", len(got))
	}
}

func TestTilesInRangeIsChebyshevSquare(t *testing.T) {
	g := sim.NewGrid(12, 12, nil)
	testCases := []struct {
		x, y, r int
	}{
		{6, 6, 1},
		{6, 6, 3},
		{0, 0, 2},
		{11, 5, 4},
	}
	for _, tc := range testCases {
		origin := g.TileAt(tc.x, tc.y)
		got := g.TilesInRange(origin, tc.r, true)

		seen := make(map[sim.Coord]bool)
		for _, tile := range got {
			if seen[tile.Pos] {
				t.Errorf("r=%d from %v: duplicate %v", tc.r, origin.Pos, tile.Pos)
			}
			seen[tile.Pos] = true
			if d := tile.Pos.Chebyshev(origin.Pos); d > tc.r {
				t.Errorf("r=%d from %v: %v at distance %d", tc.r, origin.Pos, tile.Pos, d)
			}
		}
		want := 0
		for _, tile := range g.Tiles() {
			if tile.Pos.Chebyshev(origin.Pos) <= tc.r {
				want++
			}
		}
		if len(got) != want {
			t.Errorf("r=%d from %v: expected %d tiles, got %d", tc.r, origin.Pos, want, len(got))
		}
	}
}

func TestTilesInRangeOrthogonalIsDiamond(t *testing.T) {
	g := sim.NewGrid(9, 9, nil)
	got := g.TilesInRange(g.TileAt(4, 4), 2, false)
	if len(got) != 13 {
		t.Errorf("expected 13 tiles in a radius-2 diamond, got %d", len(got))
	}
}

func TestTerrainCodes(t *testing.T) {
	testCases := []struct {
		code     byte
		terrain  sim.Terrain
		passable bool
		modifier float64
	}{
		{'G', sim.Grassland, true, 1.00},
		{'A', sim.Water, false, 1.00},
		{'D', sim.Desert, true, 1.00},
		{'H', sim.Hills, true, 1.15},
		{'M', sim.Mountains, true, 1.25},
		{'W', sim.Woodland, true, 1.05},
		{'T', sim.HighMountains, false, 1.30},
		{'S', sim.Snow, true, 1.00},
	}
	for _, tc := range testCases {
		got, ok := sim.TerrainFromCode(tc.code)
		if !ok || got != tc.terrain {
			t.Errorf("code %c: expected %v, got %v (ok=%v)", tc.code, tc.terrain, got, ok)
		}
		if got.Passable() != tc.passable {
			t.Errorf("%v: expected passable=%v", got, tc.passable)
		}
		if got.DefenceModifier() != tc.modifier {
			t.Errorf("%v: expected modifier %.2f, got %.2f", got, tc.modifier, got.DefenceModifier())
		}
		if got.Code() != tc.code {
			t.Errorf("%v: expected code %c, got %c", got, tc.code, got.Code())
		}
	}
	if _, ok := sim.TerrainFromCode('X'); ok {
		t.Error("unknown code should not resolve")
	}
}

func TestStepToward(t *testing.T) {
	testCases := []struct {
		from, to, want sim.Coord
	}{
		{sim.C(0, 0), sim.C(5, 3), sim.C(1, 1)},
		{sim.C(5, 5), sim.C(5, 0), sim.C(5, 4)},
		{sim.C(5, 5), sim.C(1, 9), sim.C(4, 6)},
	}
	for _, tc := range testCases {
		if got := tc.from.StepToward(tc.to); got != tc.want {
			t.Errorf("%v toward %v: expected %v, got %v", tc.from, tc.to, tc.want, got)
		}
	}
}
