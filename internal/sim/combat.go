package sim

import "fmt"

// Combat constants.
const (
	FortificationBonus = 1.75

	fieldWinnerLoss  = 0.6
	fieldDefendLoss  = 0.4
	siegeWinnerLoss  = 0.7
	siegeGarrisonHit = 0.9
	siegeRepelLoss   = 0.8
	siegeRepelHit    = 0.5
)

// BattleKind distinguishes the two resolution shapes.
type BattleKind uint8

const (
	FieldBattle BattleKind = iota
	Siege
)

func (k BattleKind) String() string {
	if k == Siege {
		return "siege"
	}
	return "battle"
}

// BattleReport is the outcome of one engagement. DefenderPower already
// includes the terrain modifier or fortification bonus.
type BattleReport struct {
	Kind              BattleKind
	Attacker          FactionID
	Defender          FactionID
	Location          Coord
	Terrain           Terrain
	Modifier          float64
	AttackerPower     float64
	DefenderPower     float64
	AttackerWon       bool
	AttackerLossRatio float64
	DefenderLossRatio float64
	AttackerLosses    int
	DefenderLosses    int
	Settlement        string
}

func (r BattleReport) String() string {
	winner := r.Defender
	if r.AttackerWon {
		winner = r.Attacker
	}
	where := r.Location.String()
	if r.Settlement != "" {
		where = r.Settlement
	}
	return fmt.Sprintf("%s at %s: %.0f vs %.0f, %s wins (losses %d/%d)",
		r.Kind, where, r.AttackerPower, r.DefenderPower, winner, r.AttackerLosses, r.DefenderLosses)
}

// AssessBattle scores an open-field engagement on terrain without changing
// either force. The attacker wins ties.
func AssessBattle(attacker, defender *Container, terrain Terrain) BattleReport {
	r := BattleReport{
		Kind:          FieldBattle,
		Terrain:       terrain,
		Modifier:      terrain.DefenceModifier(),
		AttackerPower: attacker.Power(),
	}
	r.DefenderPower = defender.Power() * r.Modifier
	r.AttackerWon = r.AttackerPower >= r.DefenderPower
	if r.AttackerWon {
		r.AttackerLossRatio = lossRatio(r.DefenderPower, r.AttackerPower, fieldWinnerLoss)
		r.DefenderLossRatio = 1
	} else {
		r.AttackerLossRatio = 1
		r.DefenderLossRatio = lossRatio(r.AttackerPower, r.DefenderPower, fieldDefendLoss)
	}
	return r
}

// AssessSiege scores an assault on garrison without changing either force.
func AssessSiege(attacker, garrison *Container) BattleReport {
	r := BattleReport{
		Kind:          Siege,
		Modifier:      FortificationBonus,
		AttackerPower: attacker.Power(),
	}
	r.DefenderPower = garrison.Power() * FortificationBonus
	r.AttackerWon = r.AttackerPower >= r.DefenderPower
	if r.AttackerWon {
		r.AttackerLossRatio = lossRatio(r.DefenderPower, r.AttackerPower, siegeWinnerLoss)
		r.DefenderLossRatio = lossRatio(r.AttackerPower, r.DefenderPower, siegeGarrisonHit)
	} else {
		r.AttackerLossRatio = lossRatio(r.DefenderPower, r.AttackerPower, siegeRepelLoss)
		r.DefenderLossRatio = lossRatio(r.AttackerPower, r.DefenderPower, siegeRepelHit)
	}
	return r
}

// lossRatio returns clamp01(num/den*k). A zero denominator means the other
// side had nothing to lose against: zero if num is zero too, otherwise total.
func lossRatio(num, den, k float64) float64 {
	if den <= 0 {
		if num <= 0 {
			return 0
		}
		return 1
	}
	return clamp01(num / den * k)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// ResolveBattle fights an open-field battle between attacker on from and
// defender on to. The loser leaves the field; a surviving attacker occupies to.
func (w *World) ResolveBattle(attacker, defender *Army, from, to *Tile) (BattleReport, error) {
	if err := w.checkEngagement(attacker, from, to); err != nil {
		return BattleReport{}, err
	}
	if defender == nil || defender.tile != to || defender.owner == attacker.owner {
		return BattleReport{}, fmt.Errorf("battle: %w: no enemy army at %v", ErrInvalidTarget, to.Pos)
	}

	r := AssessBattle(attacker.Container, defender.Container, to.Terrain)
	r.Attacker, r.Defender, r.Location = attacker.owner.ID, defender.owner.ID, to.Pos

	if r.AttackerWon {
		r.AttackerLosses = attacker.applyLosses(r.AttackerLossRatio)
		r.DefenderLosses = defender.Soldiers()
		defender.takeAll()
		w.emitBattle(r)
		w.disband(defender, "destroyed")
		if attacker.Empty() {
			w.disband(attacker, "wiped out in victory")
		} else {
			attacker.spendMovement(from.Pos.Chebyshev(to.Pos))
			w.place(attacker, to)
		}
		return r, nil
	}

	r.DefenderLosses = defender.applyLosses(r.DefenderLossRatio)
	r.AttackerLosses = attacker.Soldiers()
	attacker.takeAll()
	w.emitBattle(r)
	w.disband(attacker, "routed")
	if defender.Empty() {
		w.disband(defender, "wiped out in victory")
	}
	return r, nil
}

// ResolveSiege assaults settlement s from an adjacent or reachable tile. A
// successful assault transfers s to the attacker and turns the attacking
// army into its garrison; a failed one destroys the attacking army.
func (w *World) ResolveSiege(attacker *Army, s *Settlement, from, to *Tile) (BattleReport, error) {
	if err := w.checkEngagement(attacker, from, to); err != nil {
		return BattleReport{}, err
	}
	if s == nil || to.Settlement != s || s.owner == attacker.owner {
		return BattleReport{}, fmt.Errorf("siege: %w: no enemy settlement at %v", ErrInvalidTarget, to.Pos)
	}

	r := AssessSiege(attacker.Container, s.Garrison.Container)
	r.Attacker, r.Defender, r.Location, r.Settlement = attacker.owner.ID, s.owner.ID, to.Pos, s.Name
	r.Terrain = to.Terrain

	if r.AttackerWon {
		r.AttackerLosses = attacker.applyLosses(r.AttackerLossRatio)
		before := s.Garrison.Soldiers()
		s.Garrison.applyLosses(r.DefenderLossRatio)
		r.DefenderLosses = before
		s.Garrison.takeAll()
		w.emitBattle(r)

		loser := s.owner
		loser.removeSettlement(s)
		attacker.owner.addSettlement(s)
		s.queue = nil
		attacker.transferTo(s.Garrison.Container)
		w.disband(attacker, "garrisoned "+s.Name)
		w.log.Info("settlement captured", "settlement", s.Name, "by", s.owner.Name, "from", loser.Name)
		w.checkOutcome()
		return r, nil
	}

	r.DefenderLosses = s.Garrison.applyLosses(r.DefenderLossRatio)
	r.AttackerLosses = attacker.Soldiers()
	attacker.takeAll()
	w.emitBattle(r)
	w.disband(attacker, "repulsed at "+s.Name)
	return r, nil
}

func (w *World) checkEngagement(attacker *Army, from, to *Tile) error {
	switch {
	case attacker == nil || attacker.owner == nil:
		return fmt.Errorf("engage: %w: no attacking army", ErrInvalidTarget)
	case from == nil || to == nil:
		return fmt.Errorf("engage: %w: missing tile", ErrInvalidTarget)
	case attacker.tile != from:
		return fmt.Errorf("engage: %w: %s is not at %v", ErrInvalidTarget, attacker.Name(), from.Pos)
	}
	return nil
}

func (w *World) emitBattle(r BattleReport) {
	kind := EventBattle
	if r.Kind == Siege {
		kind = EventSiege
	}
	w.log.Info(r.Kind.String(), "at", r.Location, "attacker", r.Attacker, "power", int(r.AttackerPower),
		"defender", r.Defender, "defence", int(r.DefenderPower), "attacker_won", r.AttackerWon)
	rep := r
	w.emit(Event{Faction: r.Attacker, Kind: kind, Message: r.String(), Amount: r.AttackerLosses + r.DefenderLosses, Battle: &rep})
}

// EnterFriendlySettlement moves army's stacks into the garrison of its own
// settlement until the garrison is full. The army is disbanded only when
// nothing is left of it; otherwise it stays where it was.
func (w *World) EnterFriendlySettlement(a *Army, s *Settlement, from *Tile) (absorbed bool, err error) {
	if a == nil || s == nil || from == nil || a.tile != from || a.owner != s.owner {
		return false, fmt.Errorf("enter settlement: %w", ErrInvalidTarget)
	}
	w.merge(s.Name, s.owner, s.Garrison.Container)
	w.merge(a.Name(), a.owner, a.Container)
	moved := a.transferTo(s.Garrison.Container)
	w.merge(s.Name, s.owner, s.Garrison.Container)
	w.emit(Event{Faction: s.owner.ID, Kind: EventGarrisonReinforced,
		Message: fmt.Sprintf("%s moved %d stacks into %s", a.Name(), moved, s.Name), Amount: moved})
	if a.Empty() {
		w.disband(a, "absorbed into "+s.Name)
		return true, nil
	}
	w.merge(a.Name(), a.owner, a.Container)
	return false, nil
}

// MergeArmies moves stacks from moving into stationary until it is full.
// The moving army is disbanded only when fully absorbed.
func (w *World) MergeArmies(moving, stationary *Army, from *Tile) (absorbed bool, err error) {
	if moving == nil || stationary == nil || moving == stationary || from == nil ||
		moving.tile != from || moving.owner != stationary.owner {
		return false, fmt.Errorf("merge armies: %w", ErrInvalidTarget)
	}
	moved := moving.transferTo(stationary.Container)
	w.merge(stationary.Name(), stationary.owner, stationary.Container)
	w.emit(Event{Faction: stationary.owner.ID, Kind: EventArmiesMerged,
		Message: fmt.Sprintf("%s joined %s with %d stacks", moving.Name(), stationary.Name(), moved), Amount: moved})
	if moving.Empty() {
		w.disband(moving, "merged into "+stationary.Name())
		return true, nil
	}
	w.merge(moving.Name(), moving.owner, moving.Container)
	return false, nil
}
