package sim_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-skirmish/internal/catalog"
	"github.com/vovakirdan/tui-skirmish/internal/sim"
)

func container(t *testing.T, specs ...sim.StackSpec) *sim.Container {
	t.Helper()
	c := sim.NewContainer(catalog.Default(), sim.DefaultCapacity)
	fill(t, c, specs...)
	return c
}

func TestAssessBattleIsDeterministic(t *testing.T) {
	att := container(t, spear(120), archer(60))
	def := container(t, spear(90), archer(80))
	first := sim.AssessBattle(att, def, sim.Woodland)
	for i := 0; i < 5; i++ {
		if got := sim.AssessBattle(att, def, sim.Woodland); got != first {
			t.Fatalf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
	if sizes(att)[0] != 120 || sizes(def)[0] != 90 {
		t.Error("assessment mutated the forces")
	}
}

func TestAssessBattleTieFavorsAttacker(t *testing.T) {
	r := sim.AssessBattle(container(t, spear(120)), container(t, spear(120)), sim.Grassland)
	if r.AttackerPower != r.DefenderPower {
		t.Fatalf("expected equal powers, got %.0f vs %.0f", r.AttackerPower, r.DefenderPower)
	}
	if !r.AttackerWon {
		t.Error("tie should favor the attacker")
	}
	if r.AttackerLossRatio != 0.6 {
		t.Errorf("expected loss ratio 0.6, got %f", r.AttackerLossRatio)
	}
}

func TestAssessBattleTerrain(t *testing.T) {
	testCases := []struct {
		terrain sim.Terrain
		won     bool
	}{
		{sim.Grassland, true},
		{sim.Woodland, true},
		{sim.Hills, false},
		{sim.Mountains, false},
	}
	// 1200 attacking against 1100 base defence.
	for _, tc := range testCases {
		r := sim.AssessBattle(container(t, spear(120)), container(t, spear(110)), tc.terrain)
		if r.AttackerWon != tc.won {
			t.Errorf("%v: expected attacker won=%v (%.0f vs %.0f)", tc.terrain, tc.won, r.AttackerPower, r.DefenderPower)
		}
	}
}

func TestAssessSiegeEmptyGarrison(t *testing.T) {
	r := sim.AssessSiege(container(t, spear(10)), container(t))
	if !r.AttackerWon || r.AttackerLossRatio != 0 {
		t.Errorf("empty garrison: expected free win, got %+v", r)
	}
}

func TestResolveBattleAttackerWins(t *testing.T) {
	fx := newFixture(t)
	att := fx.army(t, fx.human, 4, 4, spear(120), spear(120))
	def := fx.army(t, fx.opp, 5, 5, spear(120))
	fx.start(t)

	r, err := fx.world.ResolveBattle(att, def, fx.tile(4, 4), fx.tile(5, 5))
	if err != nil {
		t.Fatalf("ResolveBattle() failed: %v", err)
	}
	if !r.AttackerWon || r.AttackerLossRatio != 0.3 {
		t.Fatalf("unexpected report: %+v", r)
	}
	if got := sizes(att.Container); !equalInts(got, []int{84, 84}) {
		t.Errorf("expected survivors [84 84], got %v", got)
	}
	if r.AttackerLosses != 72 || r.DefenderLosses != 120 {
		t.Errorf("expected losses 72/120, got %d/%d", r.AttackerLosses, r.DefenderLosses)
	}
	if fx.tile(5, 5).Army != att || att.Tile() != fx.tile(5, 5) || fx.tile(4, 4).Army != nil {
		t.Error("attacker should occupy the destination")
	}
	if len(fx.opp.Armies()) != 0 || def.Tile() != nil {
		t.Error("defender should be removed")
	}
}

func TestResolveBattleDefenderWins(t *testing.T) {
	fx := newFixture(t)
	fx.world.Grid.TileAt(5, 5).Terrain = sim.Hills
	att := fx.army(t, fx.human, 4, 4, spear(120))
	def := fx.army(t, fx.opp, 5, 5, spear(110))
	fx.start(t)

	r, err := fx.world.ResolveBattle(att, def, fx.tile(4, 4), fx.tile(5, 5))
	if err != nil {
		t.Fatalf("ResolveBattle() failed: %v", err)
	}
	if r.AttackerWon {
		t.Fatalf("hills should hold: %+v", r)
	}
	// 1200 / (1100*1.15) * 0.4 of 110 rounds to 42.
	if got := sizes(def.Container); !equalInts(got, []int{68}) {
		t.Errorf("expected defender survivors [68], got %v", got)
	}
	if len(fx.human.Armies()) != 0 || att.Tile() != nil || fx.tile(4, 4).Army != nil {
		t.Error("attacker should be removed from roster and grid")
	}
	if fx.tile(5, 5).Army != def {
		t.Error("defender should hold its tile")
	}
}

func TestResolveSiegeCapture(t *testing.T) {
	fx := newFixture(t)
	fx.world.Garrison(fx.enemy, []sim.StackSpec{spear(100)})
	second, err := fx.world.FoundSettlement(fx.opp, "Omega2", sim.C(8, 1))
	if err != nil {
		t.Fatal(err)
	}
	att := fx.army(t, fx.human, 7, 7, spear(120), spear(120), spear(120))
	fx.start(t)

	r, err := fx.world.ResolveSiege(att, fx.enemy, fx.tile(7, 7), fx.tile(8, 8))
	if err != nil {
		t.Fatalf("ResolveSiege() failed: %v", err)
	}
	if !r.AttackerWon || r.DefenderPower != 1750 {
		t.Fatalf("unexpected report: %+v", r)
	}
	if fx.enemy.Owner() != fx.human {
		t.Fatal("ownership did not transfer")
	}
	if len(fx.human.Settlements()) != 2 || len(fx.opp.Settlements()) != 1 || fx.opp.Settlements()[0] != second {
		t.Error("settlement lists not updated")
	}
	// 1750/3600*0.7 of 120 rounds to 41.
	if got := sizes(fx.enemy.Garrison.Container); !equalInts(got, []int{79, 79, 79}) {
		t.Errorf("expected attacker survivors as garrison, got %v", got)
	}
	if len(fx.human.Armies()) != 0 || fx.tile(7, 7).Army != nil || fx.tile(8, 8).Army != nil {
		t.Error("attacking army should leave the field")
	}
	if fx.world.Outcome() != sim.Ongoing {
		t.Errorf("opponent still holds a settlement, got %v", fx.world.Outcome())
	}
}

func TestResolveSiegeRepelled(t *testing.T) {
	fx := newFixture(t)
	fx.world.Garrison(fx.enemy, []sim.StackSpec{spear(120)})
	att := fx.army(t, fx.human, 7, 7, spear(120))
	fx.start(t)

	r, err := fx.world.ResolveSiege(att, fx.enemy, fx.tile(7, 7), fx.tile(8, 8))
	if err != nil {
		t.Fatalf("ResolveSiege() failed: %v", err)
	}
	if r.AttackerWon {
		t.Fatal("1200 should not beat a fortified 2100")
	}
	if fx.enemy.Owner() != fx.opp {
		t.Error("settlement changed hands after a failed siege")
	}
	// 1200/2100*0.5 of 120 rounds to 34.
	if got := sizes(fx.enemy.Garrison.Container); !equalInts(got, []int{86}) {
		t.Errorf("expected garrison [86], got %v", got)
	}
	if len(fx.human.Armies()) != 0 {
		t.Error("failed siege should remove the attacker")
	}
}

func TestLastSiegeDecidesMatch(t *testing.T) {
	fx := newFixture(t)
	att := fx.army(t, fx.human, 7, 7, spear(120))
	fx.start(t)
	if _, err := fx.world.ResolveSiege(att, fx.enemy, fx.tile(7, 7), fx.tile(8, 8)); err != nil {
		t.Fatal(err)
	}
	if fx.world.Outcome() != sim.Victory {
		t.Errorf("expected victory, got %v", fx.world.Outcome())
	}
	if _, err := fx.world.EndTurn(); !errors.Is(err, sim.ErrGameOver) {
		t.Errorf("expected ErrGameOver, got %v", err)
	}
}
