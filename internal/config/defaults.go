package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-skirmish/internal/opponent"
)

//go:embed defaults/rules.yaml
var defaultRulesYAML []byte

// DefaultRulesConfig returns the default rules.
func DefaultRulesConfig() RulesConfig {
	return RulesConfig{
		Economy: EconomyConfig{
			StartingGold:  300,
			Population:    100,
			IncomePerPop:  10,
			MarketIncome:  500,
			FarmIncome:    200,
			GrowthBase:    30,
			GrowthPerFarm: 50,
		},
		Armies: ArmyConfig{
			Movement:      5,
			StackCapacity: 15,
			QueueCapacity: 1,
		},
		Buildings: BuildingConfig{
			BuildTurns: 2,
			StartLevels: map[string]int{
				"Barracks":     1,
				"ArcheryRange": 1,
				"Stables":      1,
			},
		},
		Opponent: opponent.DefaultDoctrine(),
	}
}
