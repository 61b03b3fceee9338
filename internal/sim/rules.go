package sim

import "github.com/vovakirdan/tui-skirmish/internal/catalog"

// Rules are the tunable economy and capacity constants of a match.
type Rules struct {
	StartingGold  int
	ArmyMovement  int
	StackCapacity int
	QueueCapacity int
	BuildTurns    int
	Population    int
	StartLevels   [catalog.NumBuildings]int
	IncomePerPop  int
	MarketIncome  int
	FarmIncome    int
	GrowthBase    int
	GrowthPerFarm int
}

// DefaultRules returns the standard skirmish constants.
func DefaultRules() Rules {
	r := Rules{
		StartingGold:  300,
		ArmyMovement:  DefaultArmyMovement,
		StackCapacity: DefaultCapacity,
		QueueCapacity: 1,
		BuildTurns:    2,
		Population:    100,
		IncomePerPop:  10,
		MarketIncome:  500,
		FarmIncome:    200,
		GrowthBase:    30,
		GrowthPerFarm: 50,
	}
	r.StartLevels[catalog.Barracks] = 1
	r.StartLevels[catalog.ArcheryRange] = 1
	r.StartLevels[catalog.Stables] = 1
	return r
}

// normalized fills zero capacity, economy and population fields from the
// defaults. Start levels are taken as given: all zero means nothing is built.
func (r Rules) normalized() Rules {
	d := DefaultRules()
	if r.Population <= 0 {
		r.Population = d.Population
	}
	if r.IncomePerPop <= 0 {
		r.IncomePerPop = d.IncomePerPop
	}
	if r.MarketIncome <= 0 {
		r.MarketIncome = d.MarketIncome
	}
	if r.FarmIncome <= 0 {
		r.FarmIncome = d.FarmIncome
	}
	if r.GrowthBase <= 0 {
		r.GrowthBase = d.GrowthBase
	}
	if r.GrowthPerFarm <= 0 {
		r.GrowthPerFarm = d.GrowthPerFarm
	}
	if r.ArmyMovement <= 0 {
		r.ArmyMovement = d.ArmyMovement
	}
	if r.StackCapacity <= 0 {
		r.StackCapacity = d.StackCapacity
	}
	if r.QueueCapacity <= 0 {
		r.QueueCapacity = d.QueueCapacity
	}
	if r.BuildTurns <= 0 {
		r.BuildTurns = d.BuildTurns
	}
	if r.StartingGold < 0 {
		r.StartingGold = 0
	}
	for b, lvl := range r.StartLevels {
		r.StartLevels[b] = min(max(lvl, 0), catalog.MaxLevel)
	}
	return r
}
