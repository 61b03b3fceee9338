package sim

import (
	"fmt"

	"github.com/vovakirdan/tui-skirmish/internal/catalog"
)

// FactionID identifies a side of the match.
type FactionID uint8

const (
	Human FactionID = iota + 1
	Opponent
)

func (id FactionID) String() string {
	switch id {
	case Human:
		return "Human"
	case Opponent:
		return "Opponent"
	}
	return fmt.Sprintf("Faction(%d)", uint8(id))
}

// Faction owns settlements, armies and a gold balance that never goes negative.
type Faction struct {
	ID   FactionID
	Name string

	human       bool
	gold        int
	settlements []*Settlement
	armies      []*Army
}

// NewFaction returns a faction holding gold. Negative balances are clamped to zero.
func NewFaction(id FactionID, name string, human bool, gold int) *Faction {
	return &Faction{ID: id, Name: name, human: human, gold: max(gold, 0)}
}

// Human reports whether the faction is driven by a person.
func (f *Faction) Human() bool { return f.human }

// Gold returns the current balance.
func (f *Faction) Gold() int { return f.gold }

// CanAfford reports whether amount can be spent.
func (f *Faction) CanAfford(amount int) bool {
	return amount >= 0 && amount <= f.gold
}

// Spend debits amount, refusing anything that would overdraw the balance.
func (f *Faction) Spend(amount int) error {
	if amount < 0 {
		return fmt.Errorf("%s: %w: negative spend %d", f.Name, ErrInvalidTarget, amount)
	}
	if amount > f.gold {
		return fmt.Errorf("%s: %w: need %d, have %d", f.Name, ErrInsufficientFunds, amount, f.gold)
	}
	f.gold -= amount
	return nil
}

// Earn credits amount. Non-positive amounts are ignored.
func (f *Faction) Earn(amount int) {
	if amount > 0 {
		f.gold += amount
	}
}

// Settlements returns the owned settlements.
func (f *Faction) Settlements() []*Settlement {
	return append([]*Settlement(nil), f.settlements...)
}

// Armies returns the owned armies.
func (f *Faction) Armies() []*Army {
	return append([]*Army(nil), f.armies...)
}

// Income sums the income of every owned settlement.
func (f *Faction) Income() int {
	n := 0
	for _, s := range f.settlements {
		n += s.Income()
	}
	return n
}

// MilitaryPower sums the power of every owned army and garrison.
func (f *Faction) MilitaryPower() float64 {
	p := 0.0
	for _, a := range f.armies {
		p += a.Power()
	}
	for _, s := range f.settlements {
		p += s.Garrison.Power()
	}
	return p
}

// Soldiers counts every soldier in owned armies and garrisons.
func (f *Faction) Soldiers() int {
	n := 0
	for _, a := range f.armies {
		n += a.Soldiers()
	}
	for _, s := range f.settlements {
		n += s.Garrison.Soldiers()
	}
	return n
}

// ArmyCapReached reports whether the faction fields as many armies as it owns settlements.
func (f *Faction) ArmyCapReached() bool {
	return len(f.armies) >= len(f.settlements)
}

// Defeated reports whether the faction has no settlement left.
func (f *Faction) Defeated() bool {
	return len(f.settlements) == 0
}

func (f *Faction) addSettlement(s *Settlement) {
	s.owner = f
	f.settlements = append(f.settlements, s)
}

func (f *Faction) removeSettlement(s *Settlement) {
	for i, have := range f.settlements {
		if have == s {
			f.settlements = append(f.settlements[:i], f.settlements[i+1:]...)
			return
		}
	}
}

func (f *Faction) addArmy(a *Army) {
	a.owner = f
	f.armies = append(f.armies, a)
}

func (f *Faction) removeArmy(a *Army) {
	for i, have := range f.armies {
		if have == a {
			f.armies = append(f.armies[:i], f.armies[i+1:]...)
			return
		}
	}
}

func (f *Faction) owns(a *Army) bool {
	for _, have := range f.armies {
		if have == a {
			return true
		}
	}
	return false
}

// Completion records a building that finished during BeginTurn.
type Completion struct {
	Settlement *Settlement
	Building   catalog.Building
	Level      int
}

// TurnStart summarises what BeginTurn changed.
type TurnStart struct {
	Income    int
	Completed []Completion
}

// BeginTurn collects income, advances construction and growth in every owned
// settlement, then restores the movement budget of every owned army.
func (f *Faction) BeginTurn() TurnStart {
	var ts TurnStart
	ts.Income = f.Income()
	f.Earn(ts.Income)
	for _, s := range f.settlements {
		if b, done := s.AdvanceConstruction(); done {
			ts.Completed = append(ts.Completed, Completion{Settlement: s, Building: b, Level: s.Level(b)})
		}
		s.Grow()
	}
	for _, a := range f.armies {
		a.ResetMovement()
	}
	return ts
}
