package sim

import (
	"fmt"

	"github.com/vovakirdan/tui-skirmish/internal/catalog"
)

// Construction is the settlement's single build slot. The zero value is idle.
type Construction struct {
	Building       catalog.Building
	TurnsRemaining int
	active         bool
}

// Active reports whether something is being built.
func (c Construction) Active() bool { return c.active }

// Settlement is a faction-owned production node.
type Settlement struct {
	ID         int
	Name       string
	Pos        Coord
	Population int
	Garrison   *Garrison

	owner         *Faction
	rules         *Rules
	cat           *catalog.Catalog
	levels        [catalog.NumBuildings]int
	construction  Construction
	queue         []catalog.UnitType
	queueCapacity int
}

func newSettlement(id int, name string, pos Coord, owner *Faction, rules *Rules, cat *catalog.Catalog) *Settlement {
	return &Settlement{
		ID:            id,
		Name:          name,
		Pos:           pos,
		Population:    rules.Population,
		Garrison:      newGarrison(cat, rules.StackCapacity),
		owner:         owner,
		rules:         rules,
		cat:           cat,
		levels:        rules.StartLevels,
		queueCapacity: rules.QueueCapacity,
	}
}

// Owner returns the owning faction.
func (s *Settlement) Owner() *Faction { return s.owner }

// Level returns the current level of b.
func (s *Settlement) Level(b catalog.Building) int {
	if !b.Valid() {
		return 0
	}
	return s.levels[b]
}

// TotalLevels sums every building level.
func (s *Settlement) TotalLevels() int {
	n := 0
	for _, l := range s.levels {
		n += l
	}
	return n
}

// Construction returns the build slot state.
func (s *Settlement) Construction() Construction { return s.construction }

// Income returns the gold the settlement yields per turn.
func (s *Settlement) Income() int {
	return s.Population*s.rules.IncomePerPop +
		s.levels[catalog.Market]*s.rules.MarketIncome +
		s.levels[catalog.Farm]*s.rules.FarmIncome
}

// Grow adds one turn of population growth.
func (s *Settlement) Grow() {
	s.Population += s.rules.GrowthBase + s.levels[catalog.Farm]*s.rules.GrowthPerFarm
}

// CanStartConstruction checks every precondition of StartConstruction
// without changing anything.
func (s *Settlement) CanStartConstruction(b catalog.Building) error {
	if !b.Valid() {
		return fmt.Errorf("%s: %w: %s", s.Name, ErrInvalidTarget, b)
	}
	if s.construction.active {
		return fmt.Errorf("%s: %w: building %s", s.Name, ErrAlreadyInProgress, s.construction.Building)
	}
	if s.levels[b] >= catalog.MaxLevel {
		return fmt.Errorf("%s: %w: %s at max level", s.Name, ErrCapacityExceeded, b)
	}
	if s.owner == nil || s.owner.Gold() < b.Cost() {
		return fmt.Errorf("%s: %w: %s costs %d", s.Name, ErrInsufficientFunds, b, b.Cost())
	}
	return nil
}

// StartConstruction debits the owner and occupies the build slot in one step.
func (s *Settlement) StartConstruction(b catalog.Building) error {
	if err := s.CanStartConstruction(b); err != nil {
		return err
	}
	if err := s.owner.Spend(b.Cost()); err != nil {
		return err
	}
	s.construction = Construction{Building: b, TurnsRemaining: s.rules.BuildTurns, active: true}
	return nil
}

// AdvanceConstruction counts one turn down. When the counter reaches zero the
// building gains a level and the slot is freed; the completed building is
// returned with done set.
func (s *Settlement) AdvanceConstruction() (completed catalog.Building, done bool) {
	if !s.construction.active {
		return 0, false
	}
	s.construction.TurnsRemaining--
	if s.construction.TurnsRemaining > 0 {
		return 0, false
	}
	b := s.construction.Building
	s.applyUpgrade(b)
	s.construction = Construction{}
	return b, true
}

func (s *Settlement) applyUpgrade(b catalog.Building) {
	if s.levels[b] < catalog.MaxLevel {
		s.levels[b]++
	}
}

// AvailableUnits lists every unit the current production levels unlock.
func (s *Settlement) AvailableUnits() []catalog.TypeID {
	var out []catalog.TypeID
	for _, b := range catalog.ProductionBuildings() {
		out = append(out, s.cat.UnitsFor(b, s.levels[b])...)
	}
	return out
}

// Unlocked reports whether id can be recruited here.
func (s *Settlement) Unlocked(id catalog.TypeID) bool {
	for _, have := range s.AvailableUnits() {
		if have == id {
			return true
		}
	}
	return false
}

// Queue returns the pending recruits.
func (s *Settlement) Queue() []catalog.UnitType {
	return append([]catalog.UnitType(nil), s.queue...)
}

// QueueCapacity returns the maximum queue length.
func (s *Settlement) QueueCapacity() int { return s.queueCapacity }

// CanEnqueue checks every precondition of Enqueue without changing anything.
func (s *Settlement) CanEnqueue(t catalog.UnitType) error {
	if len(s.queue) >= s.queueCapacity {
		return fmt.Errorf("%s: %w: recruitment queue full", s.Name, ErrAlreadyInProgress)
	}
	if s.Garrison.Len()+len(s.queue) >= s.Garrison.Capacity() {
		return fmt.Errorf("%s: %w: garrison full", s.Name, ErrCapacityExceeded)
	}
	if s.owner == nil || s.owner.Gold() < t.RecruitmentCost() {
		return fmt.Errorf("%s: %w: %s costs %d", s.Name, ErrInsufficientFunds, t.ID, t.RecruitmentCost())
	}
	return nil
}

// Enqueue pays for t and queues it. The stack joins the garrison at the end
// of the owner's turn.
func (s *Settlement) Enqueue(t catalog.UnitType) error {
	if err := s.CanEnqueue(t); err != nil {
		return err
	}
	if err := s.owner.Spend(t.RecruitmentCost()); err != nil {
		return err
	}
	s.queue = append(s.queue, t)
	return nil
}

// FlushQueue adds one default-size stack per queued type to the garrison and
// clears the queue. Entries that no longer fit are discarded without refund
// and returned as lost.
func (s *Settlement) FlushQueue() (added []catalog.UnitType, lost []catalog.UnitType) {
	for i, t := range s.queue {
		if _, err := s.Garrison.AddStack(t.ID, t.DefaultSize); err != nil {
			lost = append(lost, s.queue[i:]...)
			break
		}
		added = append(added, t)
	}
	s.queue = nil
	return added, lost
}
