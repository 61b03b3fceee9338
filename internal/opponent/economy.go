package opponent

import (
	"sort"

	"github.com/vovakirdan/tui-skirmish/internal/catalog"
	"github.com/vovakirdan/tui-skirmish/internal/sim"
)

// step asks for Building while its level is below Below.
type step struct {
	Building catalog.Building
	Below    int
}

var (
	bootstrapPlan = []step{
		{catalog.Farm, 1},
		{catalog.Market, 1},
	}
	threatenedPlan = []step{
		{catalog.Barracks, 1},
		{catalog.ArcheryRange, 1},
		{catalog.Stables, 2},
		{catalog.Barracks, 3},
		{catalog.ArcheryRange, 3},
		{catalog.Stables, 3},
	}
	advantagedPlan = []step{
		{catalog.Farm, 2},
		{catalog.Market, 2},
		{catalog.Farm, 3},
		{catalog.Market, 3},
		{catalog.Barracks, 2},
	}
	economyPlan = []step{
		{catalog.Farm, 2},
		{catalog.Market, 2},
		{catalog.Farm, 3},
		{catalog.Market, 3},
		{catalog.Barracks, 3},
		{catalog.ArcheryRange, 3},
		{catalog.Stables, 3},
	}
	militaryPlan = []step{
		{catalog.Barracks, 2},
		{catalog.ArcheryRange, 2},
		{catalog.Stables, 2},
		{catalog.Barracks, 3},
		{catalog.ArcheryRange, 3},
		{catalog.Stables, 3},
	}
)

// ConstructionChoice returns the building the planner would start in s, if
// any. The settlement must be idle.
func ConstructionChoice(s *sim.Settlement, posture Posture) (catalog.Building, bool) {
	if s.Construction().Active() || s.Owner() == nil {
		return 0, false
	}
	plans := [][]step{bootstrapPlan}
	switch posture {
	case Threatened:
		plans = append(plans, threatenedPlan)
	case Advantaged:
		plans = append(plans, advantagedPlan)
	default:
		if s.TotalLevels()%2 == 0 {
			plans = append(plans, economyPlan)
		}
		plans = append(plans, militaryPlan)
	}
	gold := s.Owner().Gold()
	for _, plan := range plans {
		for _, st := range plan {
			if s.Level(st.Building) < st.Below && gold >= st.Building.Cost() {
				return st.Building, true
			}
		}
	}
	return 0, false
}

func (c *Controller) build(w *sim.World, s *sim.Settlement, posture Posture) {
	b, ok := ConstructionChoice(s, posture)
	if !ok {
		return
	}
	if err := w.StartConstruction(s, b); err != nil {
		c.log.Debug("construction refused", "settlement", s.Name, "building", b, "err", err)
		return
	}
	c.log.Info("construction ordered", "settlement", s.Name, "building", b, "posture", posture)
}

// RecruitChoice picks the unit s should queue to move its garrison toward
// the target composition. Missing production falls back to the next most
// needed building and finally to a random unlocked unit drawn from w.Rand().
func (c *Controller) RecruitChoice(w *sim.World, s *sim.Settlement) (catalog.UnitType, bool) {
	prod := catalog.ProductionBuildings()
	counts := make([]int, len(prod))
	total := 0
	tally := func(id catalog.TypeID) {
		b, ok := w.Catalog.BuildingFor(id)
		if !ok {
			return
		}
		for i, p := range prod {
			if p == b {
				counts[i]++
				total++
			}
		}
	}
	for _, st := range s.Garrison.Stacks() {
		tally(st.Type.ID)
	}
	for _, t := range s.Queue() {
		tally(t.ID)
	}

	type need struct {
		building catalog.Building
		score    float64
	}
	needs := make([]need, len(prod))
	for i, b := range prod {
		share := 0.0
		if total > 0 {
			share = float64(counts[i]) / float64(total)
		}
		target := 0.0
		if i < len(c.doctrine.Composition) {
			target = c.doctrine.Composition[i]
		}
		needs[i] = need{b, target - share}
	}
	sort.SliceStable(needs, func(i, j int) bool { return needs[i].score > needs[j].score })

	for _, n := range needs {
		if t, ok := w.Catalog.BestUnit(n.building, s.Level(n.building)); ok {
			return t, true
		}
	}
	avail := s.AvailableUnits()
	if len(avail) == 0 {
		return catalog.UnitType{}, false
	}
	return w.Catalog.Lookup(avail[w.Rand().Intn(len(avail))])
}

func (c *Controller) recruit(w *sim.World, s *sim.Settlement) {
	if len(s.Queue()) >= s.QueueCapacity() {
		return
	}
	t, ok := c.RecruitChoice(w, s)
	if !ok {
		c.log.Debug("nothing to recruit", "settlement", s.Name)
		return
	}
	if err := w.EnqueueRecruit(s, t.ID); err != nil {
		c.log.Debug("recruit refused", "settlement", s.Name, "unit", t.ID, "err", err)
		return
	}
	c.log.Info("recruit queued", "settlement", s.Name, "unit", t.ID, "cost", t.RecruitmentCost())
}
