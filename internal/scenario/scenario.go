// Package scenario describes starting positions in YAML and turns them into
// a ready-to-start sim.World.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-skirmish/internal/catalog"
	"github.com/vovakirdan/tui-skirmish/internal/maps"
	"github.com/vovakirdan/tui-skirmish/internal/sim"
)

var (
	ErrUnknownScenario = errors.New("unknown scenario")
	ErrInvalid         = errors.New("invalid scenario")
)

// Scenario is a parsed scenario file.
type Scenario struct {
	Name        string           `yaml:"name"`
	Title       string           `yaml:"title"`
	Description string           `yaml:"description"`
	Map         string           `yaml:"map,omitempty"`
	Generate    *GenerateSpec    `yaml:"generate,omitempty"`
	Factions    []FactionSpec    `yaml:"factions"`
	Settlements []SettlementSpec `yaml:"settlements"`
	Armies      []ArmySpec       `yaml:"armies"`
}

// GenerateSpec asks for a noise map instead of a map file.
type GenerateSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// FactionSpec declares a side. ID is "human" or "opponent".
type FactionSpec struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Human bool   `yaml:"human"`
	// Gold overrides the rules' starting gold when set.
	Gold *int `yaml:"gold,omitempty"`
}

// Position is an [x, y] pair.
type Position [2]int

// Coord converts p to a grid coordinate.
func (p Position) Coord() sim.Coord { return sim.C(p[0], p[1]) }

type StackSpec struct {
	Unit string `yaml:"unit"`
	Size int    `yaml:"size"`
}

type SettlementSpec struct {
	Name     string      `yaml:"name"`
	Owner    string      `yaml:"owner"`
	At       Position    `yaml:"at,flow"`
	Garrison []StackSpec `yaml:"garrison,omitempty"`
}

type ArmySpec struct {
	Owner  string      `yaml:"owner"`
	At     Position    `yaml:"at,flow"`
	Stacks []StackSpec `yaml:"stacks"`
}

// Parse decodes and validates a scenario.
func Parse(r io.Reader) (Scenario, error) {
	var sc Scenario
	if err := yaml.NewDecoder(r).Decode(&sc); err != nil {
		return Scenario{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// LoadFile reads a scenario from disk.
func LoadFile(path string) (Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	defer f.Close()
	sc, err := Parse(f)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// Validate checks faction references. Placement problems are only known
// once the grid exists and are handled by Build.
func (sc Scenario) Validate() error {
	if sc.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalid)
	}
	if len(sc.Factions) < 2 {
		return fmt.Errorf("%w: %s needs two factions, has %d", ErrInvalid, sc.Name, len(sc.Factions))
	}
	seen := make(map[sim.FactionID]bool)
	for _, f := range sc.Factions {
		id, err := parseFaction(f.ID)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalid, sc.Name, err)
		}
		if seen[id] {
			return fmt.Errorf("%w: %s: faction %q declared twice", ErrInvalid, sc.Name, f.ID)
		}
		seen[id] = true
	}
	owners := make([]string, 0, len(sc.Settlements)+len(sc.Armies))
	for _, s := range sc.Settlements {
		owners = append(owners, s.Owner)
	}
	for _, a := range sc.Armies {
		owners = append(owners, a.Owner)
	}
	for _, o := range owners {
		id, err := parseFaction(o)
		if err != nil || !seen[id] {
			return fmt.Errorf("%w: %s: owner %q is not a declared faction", ErrInvalid, sc.Name, o)
		}
	}
	if g := sc.Generate; g != nil && (g.Width <= 0 || g.Height <= 0) {
		return fmt.Errorf("%w: %s: generated map needs a positive size", ErrInvalid, sc.Name)
	}
	return nil
}

func parseFaction(s string) (sim.FactionID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "human", "player":
		return sim.Human, nil
	case "opponent", "ai":
		return sim.Opponent, nil
	}
	return 0, fmt.Errorf("unknown faction %q", s)
}

// Options tune Build.
type Options struct {
	// Rules default to sim.DefaultRules when left zero.
	Rules      sim.Rules
	Catalog    *catalog.Catalog
	Logger     *log.Logger
	Seed       int64
	Controller sim.Controller
	Observer   func(sim.Event)
	// Grid replaces the scenario's own map.
	Grid *sim.Grid
	// Autoplay hands every faction to the controller.
	Autoplay bool
	// OpponentGold is added to the opponent's starting gold.
	OpponentGold int
}

// Build creates the world for sc. Entities that do not fit the grid are
// logged and skipped.
func Build(sc Scenario, opts Options) (*sim.World, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}

	if opts.Rules == (sim.Rules{}) {
		opts.Rules = sim.DefaultRules()
	}
	grid := opts.Grid
	if grid == nil {
		grid = sc.grid(opts.Seed, logger)
	}
	w, err := sim.NewWorld(sim.Options{
		Catalog:    cat,
		Grid:       grid,
		Rules:      opts.Rules,
		Logger:     logger,
		Seed:       opts.Seed,
		Controller: opts.Controller,
		Observer:   opts.Observer,
	})
	if err != nil {
		return nil, err
	}

	for _, fs := range sc.Factions {
		id, _ := parseFaction(fs.ID)
		name := fs.Name
		if name == "" {
			name = id.String()
		}
		gold := w.Rules.StartingGold
		if fs.Gold != nil {
			gold = *fs.Gold
		}
		if id == sim.Opponent {
			gold += opts.OpponentGold
		}
		if _, err := w.AddFaction(id, name, fs.Human && !opts.Autoplay, gold); err != nil {
			return nil, err
		}
	}

	for _, ss := range sc.Settlements {
		id, _ := parseFaction(ss.Owner)
		s, err := w.FoundSettlement(w.Faction(id), ss.Name, ss.At.Coord())
		if err != nil {
			logger.Warn("settlement skipped", "scenario", sc.Name, "name", ss.Name, "err", err)
			continue
		}
		w.Garrison(s, stacks(cat, logger, ss.Name, ss.Garrison))
	}
	for _, as := range sc.Armies {
		id, _ := parseFaction(as.Owner)
		if _, err := w.RaiseArmy(w.Faction(id), as.At.Coord(), stacks(cat, logger, "army", as.Stacks)); err != nil {
			logger.Warn("army skipped", "scenario", sc.Name, "owner", as.Owner, "err", err)
		}
	}
	return w, nil
}

func (sc Scenario) grid(seed int64, logger *log.Logger) *sim.Grid {
	if g := sc.Generate; g != nil {
		return maps.Generate(seed, g.Width, g.Height, sc.positions()...)
	}
	if sc.Map == "" {
		logger.Warn("scenario has no map, using fallback", "scenario", sc.Name)
		return maps.Fallback()
	}
	return maps.Load(sc.Map, logger)
}

func (sc Scenario) positions() []sim.Coord {
	var out []sim.Coord
	for _, s := range sc.Settlements {
		out = append(out, s.At.Coord())
	}
	for _, a := range sc.Armies {
		out = append(out, a.At.Coord())
	}
	return out
}

// stacks resolves unit names loosely. Unknown names are logged and dropped,
// a zero size means the unit's default size.
func stacks(cat *catalog.Catalog, logger *log.Logger, holder string, in []StackSpec) []sim.StackSpec {
	out := make([]sim.StackSpec, 0, len(in))
	for _, st := range in {
		t, err := cat.Resolve(st.Unit)
		if err != nil {
			logger.Warn("stack skipped", "holder", holder, "err", err)
			continue
		}
		size := st.Size
		if size == 0 {
			size = t.DefaultSize
		}
		out = append(out, sim.StackSpec{Unit: t.ID, Size: size})
	}
	return out
}
