// Package config loads the match rules: economy and army constants,
// opponent doctrine, difficulty presets and optional unit overrides.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-skirmish/internal/catalog"
	"github.com/vovakirdan/tui-skirmish/internal/opponent"
	"github.com/vovakirdan/tui-skirmish/internal/sim"
)

// RulesConfig is the whole rules file.
type RulesConfig struct {
	Economy   EconomyConfig     `yaml:"economy"`
	Armies    ArmyConfig        `yaml:"armies"`
	Buildings BuildingConfig    `yaml:"buildings"`
	Opponent  opponent.Doctrine `yaml:"opponent"`
	// OpponentGold is added to the opponent's starting gold. Set by presets.
	OpponentGold int `yaml:"opponent_gold"`
	// Units replace stock archetypes with the same name; new names are added
	// to the catalog but no building trains them.
	Units []catalog.UnitType `yaml:"units,omitempty"`
}

// EconomyConfig defines gold and population constants.
type EconomyConfig struct {
	StartingGold  int `yaml:"starting_gold"`
	Population    int `yaml:"population"`
	IncomePerPop  int `yaml:"income_per_pop"`
	MarketIncome  int `yaml:"market_income"`
	FarmIncome    int `yaml:"farm_income"`
	GrowthBase    int `yaml:"growth_base"`
	GrowthPerFarm int `yaml:"growth_per_farm"`
}

// ArmyConfig defines movement and container limits.
type ArmyConfig struct {
	Movement      int `yaml:"movement"`
	StackCapacity int `yaml:"stack_capacity"`
	QueueCapacity int `yaml:"queue_capacity"`
}

// BuildingConfig defines construction time and each new settlement's levels.
type BuildingConfig struct {
	BuildTurns  int            `yaml:"build_turns"`
	StartLevels map[string]int `yaml:"start_levels"`
}

// SimRules converts the file into engine rules.
func (c RulesConfig) SimRules() (sim.Rules, error) {
	r := sim.Rules{
		StartingGold:  c.Economy.StartingGold,
		ArmyMovement:  c.Armies.Movement,
		StackCapacity: c.Armies.StackCapacity,
		QueueCapacity: c.Armies.QueueCapacity,
		BuildTurns:    c.Buildings.BuildTurns,
		Population:    c.Economy.Population,
		IncomePerPop:  c.Economy.IncomePerPop,
		MarketIncome:  c.Economy.MarketIncome,
		FarmIncome:    c.Economy.FarmIncome,
		GrowthBase:    c.Economy.GrowthBase,
		GrowthPerFarm: c.Economy.GrowthPerFarm,
	}
	for name, lvl := range c.Buildings.StartLevels {
		b, err := catalog.ParseBuilding(name)
		if err != nil {
			return sim.Rules{}, fmt.Errorf("start_levels: %w", err)
		}
		if lvl < 0 || lvl > catalog.MaxLevel {
			return sim.Rules{}, fmt.Errorf("start_levels: %s level %d outside 0..%d", b, lvl, catalog.MaxLevel)
		}
		r.StartLevels[b] = lvl
	}
	return r, nil
}

// Catalog builds the unit catalog, applying any unit overrides.
func (c RulesConfig) Catalog() (*catalog.Catalog, error) {
	if len(c.Units) == 0 {
		return catalog.Default(), nil
	}
	units := catalog.StockUnits()
	index := make(map[catalog.TypeID]int, len(units))
	for i, u := range units {
		index[u.ID] = i
	}
	for _, u := range c.Units {
		if i, ok := index[u.ID]; ok {
			units[i] = u
			continue
		}
		index[u.ID] = len(units)
		units = append(units, u)
	}
	cat, err := catalog.New(units, catalog.StockRosters())
	if err != nil {
		return nil, fmt.Errorf("units: %w", err)
	}
	return cat, nil
}
