package sim_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-skirmish/internal/catalog"
	"github.com/vovakirdan/tui-skirmish/internal/sim"
)

func fill(t *testing.T, c *sim.Container, specs ...sim.StackSpec) {
	t.Helper()
	for _, s := range specs {
		if _, err := c.AddStack(s.Unit, s.Size); err != nil {
			t.Fatalf("AddStack(%s, %d) failed: %v", s.Unit, s.Size, err)
		}
	}
}

func TestAddStackRefusals(t *testing.T) {
	c := sim.NewContainer(catalog.Default(), 2)
	fill(t, c, spear(10), spear(10))

	if _, err := c.AddStack(catalog.MilitiaSpearman, 10); !errors.Is(err, sim.ErrCapacityExceeded) {
		t.Errorf("expected ErrCapacityExceeded, got %v", err)
	}
	c2 := sim.NewContainer(catalog.Default(), 2)
	if _, err := c2.AddStack("Dragon", 10); !errors.Is(err, sim.ErrInvalidTarget) {
		t.Errorf("expected ErrInvalidTarget, got %v", err)
	}
	if c.Len() != 2 || c2.Len() != 0 {
		t.Errorf("refused adds changed the containers: %d, %d", c.Len(), c2.Len())
	}
}

func TestRemoveStackSignalsEmpty(t *testing.T) {
	c := sim.NewContainer(catalog.Default(), sim.DefaultCapacity)
	fill(t, c, spear(10), archer(20))
	stacks := c.Stacks()

	empty, err := c.RemoveStack(stacks[0])
	if err != nil || empty {
		t.Fatalf("first remove: empty=%v err=%v", empty, err)
	}
	if _, err := c.RemoveStack(stacks[0]); !errors.Is(err, sim.ErrInvalidTarget) {
		t.Errorf("removing twice: expected ErrInvalidTarget, got %v", err)
	}
	empty, err = c.RemoveStack(stacks[1])
	if err != nil || !empty {
		t.Errorf("last remove: empty=%v err=%v", empty, err)
	}
}

func TestMerge(t *testing.T) {
	testCases := []struct {
		name    string
		in      []sim.StackSpec
		want    []int
		dropped int
	}{
		{"full plus remainder", []sim.StackSpec{spear(120), spear(120), spear(10)}, []int{120, 120, 10}, 0},
		{"partials combine", []sim.StackSpec{spear(100), spear(100), spear(100)}, []int{120, 120, 60}, 0},
		{"first appearance order", []sim.StackSpec{archer(50), spear(60), archer(50), spear(60)}, []int{80, 20, 120}, 0},
		{"empty", nil, nil, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := sim.NewContainer(catalog.Default(), sim.DefaultCapacity)
			fill(t, c, tc.in...)
			before := c.Soldiers()
			if dropped := c.Merge(); dropped != tc.dropped {
				t.Errorf("expected %d dropped, got %d", tc.dropped, dropped)
			}
			if got := sizes(c); !equalInts(got, tc.want) {
				t.Errorf("expected sizes %v, got %v", tc.want, got)
			}
			if c.Soldiers() != before {
				t.Errorf("soldiers not conserved: %d -> %d", before, c.Soldiers())
			}
		})
	}
}

func TestMergeOverCapacityDropsAndReports(t *testing.T) {
	c2 := sim.NewContainer(catalog.Default(), 3)
	// 360 spearmen fill all three slots, leaving no room for the archers.
	fill(t, c2, spear(200), spear(160), archer(80))

	dropped := c2.Merge()
	if dropped != 80 {
		t.Errorf("expected 80 archers dropped, got %d", dropped)
	}
	if got := sizes(c2); !equalInts(got, []int{120, 120, 120}) {
		t.Errorf("expected three full spear stacks, got %v", got)
	}
	if c2.Len() > c2.Capacity() {
		t.Errorf("merge exceeded capacity: %d", c2.Len())
	}
}

func TestMergeIsIdempotent(t *testing.T) {
	c := sim.NewContainer(catalog.Default(), 4)
	fill(t, c, spear(250), archer(170), spear(15), archer(3))
	c.Merge()
	once := sizes(c)
	soldiers := c.Soldiers()
	if dropped := c.Merge(); dropped != 0 {
		t.Errorf("second merge dropped %d", dropped)
	}
	if got := sizes(c); !equalInts(got, once) || c.Soldiers() != soldiers {
		t.Errorf("second merge changed %v into %v", once, got)
	}
}

func TestContainerPower(t *testing.T) {
	c := sim.NewContainer(catalog.Default(), sim.DefaultCapacity)
	fill(t, c, spear(120), archer(80))
	// Militia Spearman: 5+2+3 per soldier; Militia Archer: 4+1+4.
	want := float64(10*120 + 9*80)
	if got := c.Power(); got != want {
		t.Errorf("expected power %.0f, got %.0f", want, got)
	}
}
