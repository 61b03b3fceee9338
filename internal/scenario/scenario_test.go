package scenario_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-skirmish/internal/maps"
	"github.com/vovakirdan/tui-skirmish/internal/scenario"
	"github.com/vovakirdan/tui-skirmish/internal/sim"
)

const tiny = `
name: tiny
factions:
  - {id: human, name: Blue, human: true}
  - {id: opponent, name: Red}
settlements:
  - name: Blueton
    owner: human
    at: [0, 0]
    garrison:
      - {unit: militia spearman}
      - {unit: Militia Spearmn, size: 10}
  - name: Redton
    owner: opponent
    at: [4, 4]
armies:
  - owner: opponent
    at: [9, 9]
    stacks:
      - {unit: Militia Archer, size: 40}
`

func quiet() *log.Logger { return log.New(io.Discard) }

func TestBuiltins(t *testing.T) {
	var names []string
	for _, info := range scenario.List() {
		names = append(names, info.Name)
		if info.Title == "" || info.Description == "" {
			t.Errorf("%s: missing title or description", info.Name)
		}
	}
	if strings.Join(names, ",") != "classic,frontier" {
		t.Errorf("unexpected built-ins %v", names)
	}
}

func TestLookupSuggests(t *testing.T) {
	_, err := scenario.Lookup("clasic")
	if !errors.Is(err, scenario.ErrUnknownScenario) {
		t.Fatalf("expected ErrUnknownScenario, got %v", err)
	}
	if !strings.Contains(err.Error(), `did you mean "classic"`) {
		t.Errorf("expected a suggestion, got %v", err)
	}
}

func TestBuildClassic(t *testing.T) {
	sc, err := scenario.Lookup("classic")
	if err != nil {
		t.Fatal(err)
	}
	w, err := scenario.Build(sc, scenario.Options{Rules: sim.DefaultRules(), Logger: quiet()})
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if w.Grid.W != 12 || w.Grid.H != 18 {
		t.Errorf("expected the 12x18 classic map, got %dx%d", w.Grid.W, w.Grid.H)
	}
	human, opp := w.Faction(sim.Human), w.Faction(sim.Opponent)
	if !human.Human() || opp.Human() {
		t.Error("wrong human flags")
	}
	if len(human.Settlements()) != 2 || len(opp.Settlements()) != 2 {
		t.Errorf("expected 2 settlements each, got %d and %d", len(human.Settlements()), len(opp.Settlements()))
	}
	if len(human.Armies()) != 2 || len(opp.Armies()) != 1 {
		t.Errorf("expected 2 and 1 armies, got %d and %d", len(human.Armies()), len(opp.Armies()))
	}
	first := w.Grid.TileAt(1, 1).Settlement
	if first == nil || first.Name != "Firsttown" {
		t.Fatalf("expected Firsttown at (1,1), got %v", first)
	}
	if first.Garrison.Soldiers() != 150 {
		t.Errorf("expected 150 soldiers in Firsttown, got %d", first.Garrison.Soldiers())
	}
	if a := w.Grid.TileAt(5, 3).Army; a == nil || a.Owner() != opp || a.Soldiers() != 300 {
		t.Errorf("expected the opponent army of 300 at (5,3), got %v", a)
	}
	if human.Gold() != 300 || opp.Gold() != 300 {
		t.Errorf("expected starting gold 300, got %d and %d", human.Gold(), opp.Gold())
	}
}

func TestBuildSkipsOffGridEntities(t *testing.T) {
	sc, err := scenario.Lookup("classic")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	w, err := scenario.Build(sc, scenario.Options{Grid: maps.Fallback(), Logger: log.New(&buf)})
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if n := len(w.Faction(sim.Opponent).Settlements()); n != 1 {
		t.Errorf("expected Enemytown2 skipped, opponent has %d settlements", n)
	}
	if !strings.Contains(buf.String(), "settlement skipped") {
		t.Errorf("expected a warning, log was %q", buf.String())
	}
}

func TestBuildOptions(t *testing.T) {
	sc, err := scenario.Parse(strings.NewReader(tiny))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	w, err := scenario.Build(sc, scenario.Options{Logger: quiet(), Autoplay: true, OpponentGold: 500})
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if w.Grid.W != maps.FallbackSize {
		t.Errorf("expected the fallback grid, got width %d", w.Grid.W)
	}
	for _, f := range w.Factions() {
		if f.Human() {
			t.Errorf("%s should be computer-driven under autoplay", f.Name)
		}
	}
	if got := w.Faction(sim.Opponent).Gold(); got != 800 {
		t.Errorf("expected 800 opponent gold, got %d", got)
	}
	blue := w.Grid.TileAt(0, 0).Settlement
	if blue.Garrison.Len() != 1 || blue.Garrison.Soldiers() != 120 {
		t.Errorf("expected one default-size stack, got %d stacks of %d soldiers", blue.Garrison.Len(), blue.Garrison.Soldiers())
	}
}

func TestBuildGeneratedMap(t *testing.T) {
	sc, err := scenario.Lookup("frontier")
	if err != nil {
		t.Fatal(err)
	}
	for seed := int64(1); seed <= 5; seed++ {
		w, err := scenario.Build(sc, scenario.Options{Logger: quiet(), Seed: seed})
		if err != nil {
			t.Fatalf("seed %d: Build() failed: %v", seed, err)
		}
		if len(w.Settlements()) != 2 || len(w.Armies()) != 2 {
			t.Errorf("seed %d: expected every entity placed, got %d settlements %d armies",
				seed, len(w.Settlements()), len(w.Armies()))
		}
		if got := w.Faction(sim.Opponent).Gold(); got != 600 {
			t.Errorf("seed %d: expected the scenario's 600 gold, got %d", seed, got)
		}
	}
}

func TestParseRejects(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{"not yaml", "name: [x"},
		{"one faction", "name: x\nfactions:\n  - {id: human}\n"},
		{"unknown faction", "name: x\nfactions:\n  - {id: human}\n  - {id: elves}\n"},
		{"duplicate faction", "name: x\nfactions:\n  - {id: human}\n  - {id: player}\n"},
		{"undeclared owner", "name: x\nfactions:\n  - {id: human}\n  - {id: ai}\nsettlements:\n  - {name: y, owner: elves, at: [0, 0]}\n"},
		{"bad generated size", "name: x\ngenerate: {width: 0, height: 3}\nfactions:\n  - {id: human}\n  - {id: ai}\n"},
	}
	for _, tc := range testCases {
		if _, err := scenario.Parse(strings.NewReader(tc.src)); !errors.Is(err, scenario.ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", tc.name, err)
		}
	}
}

func TestResolveFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "tiny.yaml")
	if err := os.WriteFile(p, []byte(tiny), 0o644); err != nil {
		t.Fatal(err)
	}
	sc, err := scenario.Resolve(p)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if sc.Name != "tiny" || len(sc.Settlements) != 2 {
		t.Errorf("unexpected scenario %+v", sc)
	}
	if _, err := scenario.Resolve("nowhere"); !errors.Is(err, scenario.ErrUnknownScenario) {
		t.Errorf("expected ErrUnknownScenario, got %v", err)
	}
}
