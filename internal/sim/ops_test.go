package sim_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-skirmish/internal/catalog"
	"github.com/vovakirdan/tui-skirmish/internal/sim"
)

func TestMoveArmyPlain(t *testing.T) {
	fx := newFixture(t)
	a := fx.army(t, fx.human, 4, 4, spear(100))
	fx.start(t)

	res, err := fx.world.MoveArmy(a, fx.tile(4, 4), fx.tile(6, 5))
	if err != nil {
		t.Fatalf("MoveArmy() failed: %v", err)
	}
	if res.Kind != sim.MovePlain || res.Distance != 2 {
		t.Errorf("unexpected result %+v", res)
	}
	if a.RemainingMovement() != sim.DefaultArmyMovement-2 {
		t.Errorf("expected %d movement left, got %d", sim.DefaultArmyMovement-2, a.RemainingMovement())
	}
	if fx.tile(4, 4).Army != nil || fx.tile(6, 5).Army != a || a.Tile() != fx.tile(6, 5) {
		t.Error("tile references not updated")
	}
}

func TestMoveArmyRefusals(t *testing.T) {
	fx := newFixture(t)
	a := fx.army(t, fx.human, 2, 4, spear(100))
	foe := fx.army(t, fx.opp, 6, 6, spear(100))
	fx.world.Grid.TileAt(3, 4).Terrain = sim.Water
	fx.start(t)

	testCases := []struct {
		name     string
		army     *sim.Army
		from, to *sim.Tile
		want     error
	}{
		{"too far", a, fx.tile(2, 4), fx.tile(8, 4), sim.ErrInvalidTarget},
		{"outside grid", a, fx.tile(2, 4), fx.tile(2, 10), sim.ErrInvalidTarget},
		{"same tile", a, fx.tile(2, 4), fx.tile(2, 4), sim.ErrInvalidTarget},
		{"wrong origin", a, fx.tile(2, 5), fx.tile(2, 6), sim.ErrInvalidTarget},
		{"impassable", a, fx.tile(2, 4), fx.tile(3, 4), sim.ErrInvalidTarget},
		{"not its turn", foe, fx.tile(6, 6), fx.tile(6, 5), sim.ErrInvalidTarget},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := fx.world.MoveArmy(tc.army, tc.from, tc.to); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
	if a.Tile() != fx.tile(2, 4) || a.RemainingMovement() != sim.DefaultArmyMovement {
		t.Error("refused moves changed the army")
	}
}

func TestMoveArmyDispatch(t *testing.T) {
	fx := newFixture(t)
	fx.world.Garrison(fx.enemy, []sim.StackSpec{spear(10)})
	attacker := fx.army(t, fx.human, 3, 3, spear(120), spear(120))
	fx.army(t, fx.opp, 4, 4, spear(20))
	fx.start(t)

	res, err := fx.world.MoveArmy(attacker, fx.tile(3, 3), fx.tile(4, 4))
	if err != nil || res.Kind != sim.MoveBattle || res.Battle == nil || !res.Battle.AttackerWon {
		t.Fatalf("expected won battle, got %+v, %v", res, err)
	}
	res, err = fx.world.MoveArmy(attacker, fx.tile(4, 4), fx.tile(8, 8))
	if err != nil || res.Kind != sim.MoveSiege {
		t.Fatalf("expected siege, got %+v, %v", res, err)
	}
	if fx.enemy.Owner() != fx.human {
		t.Error("siege should have captured Omega")
	}
}

func TestMoveIntoOwnSettlement(t *testing.T) {
	fx := newFixture(t)
	a := fx.army(t, fx.human, 2, 2, spear(60), spear(60))
	fx.start(t)

	res, err := fx.world.MoveArmy(a, fx.tile(2, 2), fx.tile(1, 1))
	if err != nil {
		t.Fatalf("MoveArmy() failed: %v", err)
	}
	if res.Kind != sim.MoveEnterSettlement || !res.Absorbed {
		t.Errorf("expected full absorption, got %+v", res)
	}
	if got := sizes(fx.home.Garrison.Container); !equalInts(got, []int{120}) {
		t.Errorf("expected garrison [120], got %v", got)
	}
	if len(fx.human.Armies()) != 0 || fx.tile(2, 2).Army != nil || fx.tile(1, 1).Army != nil {
		t.Error("absorbed army should be disbanded")
	}
}

func TestEnterSettlementPartially(t *testing.T) {
	fx := newFixture(t)
	full := make([]sim.StackSpec, sim.DefaultCapacity-1)
	for i := range full {
		full[i] = spear(120)
	}
	fx.world.Garrison(fx.home, full)
	a := fx.army(t, fx.human, 2, 2, archer(80), archer(80))
	fx.start(t)

	res, err := fx.world.MoveArmy(a, fx.tile(2, 2), fx.tile(1, 1))
	if err != nil {
		t.Fatalf("MoveArmy() failed: %v", err)
	}
	if res.Absorbed {
		t.Fatal("garrison had room for one stack only")
	}
	if fx.home.Garrison.Len() != sim.DefaultCapacity || a.Len() != 1 {
		t.Errorf("expected 15/1 stacks, got %d/%d", fx.home.Garrison.Len(), a.Len())
	}
	if a.Tile() != fx.tile(2, 2) {
		t.Error("leftover army should stay on its origin tile")
	}
}

func TestMoveMergesFriendlyArmies(t *testing.T) {
	fx := newFixture(t)
	full := make([]sim.StackSpec, sim.DefaultCapacity-1)
	for i := range full {
		full[i] = spear(120)
	}
	stationary := fx.army(t, fx.human, 5, 5, full...)
	moving := fx.army(t, fx.human, 4, 4, archer(80), archer(80), archer(30))
	fx.start(t)

	res, err := fx.world.MoveArmy(moving, fx.tile(4, 4), fx.tile(5, 5))
	if err != nil || res.Kind != sim.MoveMergeArmies {
		t.Fatalf("expected merge, got %+v, %v", res, err)
	}
	if res.Absorbed {
		t.Error("stationary army could take one stack only")
	}
	if stationary.Len() != sim.DefaultCapacity {
		t.Errorf("expected stationary army full, got %d", stationary.Len())
	}
	if got := sizes(moving.Container); !equalInts(got, []int{80, 30}) {
		t.Errorf("expected leftovers [80 30], got %v", got)
	}
	if moving.Tile() != fx.tile(4, 4) {
		t.Error("leftover army should stay on its origin tile")
	}
}

func TestCreateArmyFromGarrison(t *testing.T) {
	fx := newFixture(t)
	fx.world.Garrison(fx.home, []sim.StackSpec{spear(120), archer(80), spear(50)})
	fx.world.Grid.TileAt(2, 1).Terrain = sim.Water
	fx.start(t)

	stacks := fx.home.Garrison.Stacks()
	a, err := fx.world.CreateArmyFromGarrison(fx.home, fx.human, stacks[:2])
	if err != nil {
		t.Fatalf("CreateArmyFromGarrison() failed: %v", err)
	}
	if a.Tile() != fx.tile(0, 1) {
		t.Errorf("expected spawn at (0,1) after water at (2,1), got %v", a.Tile().Pos)
	}
	if got := sizes(a.Container); !equalInts(got, []int{120, 80}) {
		t.Errorf("expected army [120 80], got %v", got)
	}
	if got := sizes(fx.home.Garrison.Container); !equalInts(got, []int{50}) {
		t.Errorf("expected garrison [50], got %v", got)
	}
	if a.RemainingMovement() != sim.DefaultArmyMovement {
		t.Errorf("fresh army should have full movement, got %d", a.RemainingMovement())
	}

	rest := fx.home.Garrison.Stacks()
	if _, err := fx.world.CreateArmyFromGarrison(fx.home, fx.human, rest); !errors.Is(err, sim.ErrCapacityExceeded) {
		t.Errorf("army cap: expected ErrCapacityExceeded, got %v", err)
	}
	if _, err := fx.world.CreateArmyFromGarrison(fx.home, fx.human, stacks[:1]); !errors.Is(err, sim.ErrInvalidTarget) {
		t.Errorf("stack already moved out: expected ErrInvalidTarget, got %v", err)
	}
	if _, err := fx.world.CreateArmyFromGarrison(fx.enemy, fx.human, nil); !errors.Is(err, sim.ErrInvalidTarget) {
		t.Errorf("foreign settlement: expected ErrInvalidTarget, got %v", err)
	}
}

func TestCreateArmyNeedsFreeTile(t *testing.T) {
	fx := newFixture(t)
	fx.world.Garrison(fx.home, []sim.StackSpec{spear(120)})
	for _, nb := range fx.world.Grid.AdjacentTiles(fx.tile(1, 1), true) {
		nb.Terrain = sim.HighMountains
	}
	fx.start(t)
	if _, err := fx.world.CreateArmyFromGarrison(fx.home, fx.human, fx.home.Garrison.Stacks()); err == nil {
		t.Error("expected refusal with no free neighbor")
	}
	if fx.home.Garrison.Len() != 1 {
		t.Error("refused spawn changed the garrison")
	}
}

func TestDisbandStack(t *testing.T) {
	fx := newFixture(t)
	a := fx.army(t, fx.human, 4, 4, spear(40), archer(20))
	fx.start(t)

	stacks := a.Stacks()
	if err := fx.world.DisbandStack(a.Container, stacks[0]); err != nil {
		t.Fatalf("DisbandStack() failed: %v", err)
	}
	if len(fx.human.Armies()) != 1 {
		t.Fatal("army with stacks left should remain")
	}
	if err := fx.world.DisbandStack(a.Container, stacks[1]); err != nil {
		t.Fatalf("DisbandStack() failed: %v", err)
	}
	if len(fx.human.Armies()) != 0 || fx.tile(4, 4).Army != nil {
		t.Error("empty army should be disbanded")
	}
}

func TestMergeUnitsConservesBelowCapacity(t *testing.T) {
	fx := newFixture(t)
	specs := make([]sim.StackSpec, 0, sim.DefaultCapacity)
	for i := 0; i < sim.DefaultCapacity; i++ {
		specs = append(specs, spear(119))
	}
	fx.world.Garrison(fx.home, specs)
	fx.start(t)

	// 15*119 = 1785 = 14 full stacks and 105 more, which fits exactly.
	dropped, err := fx.world.MergeUnits(fx.home.Garrison.Container)
	if err != nil || dropped != 0 {
		t.Fatalf("expected lossless merge, got %d, %v", dropped, err)
	}
	if fx.home.Garrison.Soldiers() != 1785 || fx.home.Garrison.Len() != 15 {
		t.Errorf("expected 1785 soldiers in 15 stacks, got %d in %d", fx.home.Garrison.Soldiers(), fx.home.Garrison.Len())
	}
}

func TestCapacityLossIsRecorded(t *testing.T) {
	fx := newFixture(t)
	specs := make([]sim.StackSpec, 0, sim.DefaultCapacity)
	for i := 0; i < sim.DefaultCapacity-1; i++ {
		specs = append(specs, spear(120))
	}
	// An oversized stack needs three slots once merged.
	specs = append(specs, archer(200))
	a := fx.army(t, fx.human, 5, 5, specs...)
	fx.start(t)

	dropped, err := fx.world.MergeUnits(a.Container)
	if err != nil || dropped != 120 {
		t.Fatalf("expected 120 dropped, got %d, %v", dropped, err)
	}
	if a.Len() != sim.DefaultCapacity || a.Soldiers() != 14*120+80 {
		t.Errorf("unexpected army after merge: %d stacks, %d soldiers", a.Len(), a.Soldiers())
	}
	found := false
	for _, ev := range fx.world.Events() {
		if ev.Kind == sim.EventCapacityLoss && ev.Amount == 120 {
			found = true
		}
	}
	if !found {
		t.Error("capacity loss not recorded in the event log")
	}
}

func TestOperationsBeforeStart(t *testing.T) {
	fx := newFixture(t)
	if err := fx.world.StartConstruction(fx.home, catalog.Farm); !errors.Is(err, sim.ErrNotStarted) {
		t.Errorf("expected ErrNotStarted, got %v", err)
	}
	if _, err := fx.world.EndTurn(); !errors.Is(err, sim.ErrNotStarted) {
		t.Errorf("expected ErrNotStarted, got %v", err)
	}
}

func TestEnqueueRecruitByName(t *testing.T) {
	fx := newFixture(t)
	fx.start(t)
	if err := fx.world.EnqueueRecruitByName(fx.home, "Paladin"); !errors.Is(err, sim.ErrInvalidTarget) {
		t.Errorf("locked unit: expected ErrInvalidTarget, got %v", err)
	}
	if err := fx.world.EnqueueRecruitByName(fx.home, "Militia Spearmen"); !errors.Is(err, catalog.ErrUnknownUnit) {
		t.Errorf("misspelled unit: expected ErrUnknownUnit, got %v", err)
	}
	if err := fx.world.EnqueueRecruitByName(fx.home, "militia spearman"); err != nil {
		t.Errorf("EnqueueRecruitByName() failed: %v", err)
	}
	if err := fx.world.StartConstructionByName(fx.home, "Fram"); !errors.Is(err, catalog.ErrUnknownBuilding) {
		t.Errorf("expected ErrUnknownBuilding, got %v", err)
	}
}
