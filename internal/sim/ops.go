package sim

import (
	"fmt"

	"github.com/vovakirdan/tui-skirmish/internal/catalog"
)

// MoveKind tells which resolution a move dispatched to.
type MoveKind uint8

const (
	MovePlain MoveKind = iota
	MoveBattle
	MoveSiege
	MoveMergeArmies
	MoveEnterSettlement
)

func (k MoveKind) String() string {
	switch k {
	case MoveBattle:
		return "battle"
	case MoveSiege:
		return "siege"
	case MoveMergeArmies:
		return "merge"
	case MoveEnterSettlement:
		return "enter"
	}
	return "move"
}

// MoveResult describes what MoveArmy did.
type MoveResult struct {
	Kind     MoveKind
	Distance int
	// Battle is set for MoveBattle and MoveSiege.
	Battle *BattleReport
	// Absorbed reports that a merge or settlement entry consumed the whole army.
	Absorbed bool
}

// requireTurn refuses operations outside f's own turn.
func (w *World) requireTurn(f *Faction) error {
	if w.engine == nil {
		return ErrNotStarted
	}
	if w.engine.Outcome() != Ongoing {
		return ErrGameOver
	}
	if f == nil || f != w.engine.Current() {
		return fmt.Errorf("%w: not this faction's turn", ErrInvalidTarget)
	}
	return nil
}

// StartConstruction begins an upgrade of b in s, paid by its owner.
func (w *World) StartConstruction(s *Settlement, b catalog.Building) error {
	if s == nil {
		return fmt.Errorf("start construction: %w: no settlement", ErrInvalidTarget)
	}
	if err := w.requireTurn(s.owner); err != nil {
		return err
	}
	if err := s.StartConstruction(b); err != nil {
		return err
	}
	w.log.Debug("construction started", "settlement", s.Name, "building", b, "cost", b.Cost())
	w.emit(Event{Faction: s.owner.ID, Kind: EventConstructionStarted,
		Message: fmt.Sprintf("%s started %s (level %d)", s.Name, b, s.Level(b)+1), Amount: b.Cost()})
	return nil
}

// StartConstructionByName resolves a building name and starts it.
func (w *World) StartConstructionByName(s *Settlement, name string) error {
	b, err := catalog.ParseBuilding(name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTarget, err)
	}
	return w.StartConstruction(s, b)
}

// EnqueueRecruit pays for one stack of id and queues it in s. The unit must
// be unlocked by the settlement's production buildings.
func (w *World) EnqueueRecruit(s *Settlement, id catalog.TypeID) error {
	if s == nil {
		return fmt.Errorf("recruit: %w: no settlement", ErrInvalidTarget)
	}
	t, ok := w.Catalog.Lookup(id)
	if !ok {
		return fmt.Errorf("recruit: %w: %w %q", ErrInvalidTarget, catalog.ErrUnknownUnit, id)
	}
	if !s.Unlocked(id) {
		return fmt.Errorf("recruit: %w: %s not unlocked in %s", ErrInvalidTarget, id, s.Name)
	}
	if err := w.requireTurn(s.owner); err != nil {
		return err
	}
	if err := s.Enqueue(t); err != nil {
		return err
	}
	w.emit(Event{Faction: s.owner.ID, Kind: EventRecruitQueued,
		Message: fmt.Sprintf("%s queued %s", s.Name, id), Amount: t.RecruitmentCost()})
	return nil
}

// EnqueueRecruitByName resolves a unit name and queues it.
func (w *World) EnqueueRecruitByName(s *Settlement, name string) error {
	t, err := w.Catalog.Resolve(name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTarget, err)
	}
	return w.EnqueueRecruit(s, t.ID)
}

// MergeUnits normalises an army or garrison and returns the soldiers dropped
// over capacity.
func (w *World) MergeUnits(c *Container) (int, error) {
	if c == nil {
		return 0, fmt.Errorf("merge: %w", ErrInvalidTarget)
	}
	holder, owner := w.holderOf(c)
	if owner == nil {
		return 0, fmt.Errorf("merge: %w: container not in play", ErrInvalidTarget)
	}
	if err := w.requireTurn(owner); err != nil {
		return 0, err
	}
	return w.merge(holder, owner, c), nil
}

// DisbandStack removes s from c. An army left empty is disbanded.
func (w *World) DisbandStack(c *Container, s *Stack) error {
	if c == nil || s == nil {
		return fmt.Errorf("disband: %w", ErrInvalidTarget)
	}
	holder, owner := w.holderOf(c)
	if owner == nil {
		return fmt.Errorf("disband: %w: container not in play", ErrInvalidTarget)
	}
	if err := w.requireTurn(owner); err != nil {
		return err
	}
	empty, err := c.RemoveStack(s)
	if err != nil {
		return err
	}
	w.emit(Event{Faction: owner.ID, Kind: EventStackDisbanded,
		Message: fmt.Sprintf("%s disbanded %s", holder, s), Amount: s.Size})
	if empty {
		if a := w.armyOf(c); a != nil {
			w.disband(a, "has no stacks left")
		}
	}
	return nil
}

// holderOf names the army or settlement that owns c.
func (w *World) holderOf(c *Container) (string, *Faction) {
	if a := w.armyOf(c); a != nil {
		return a.Name(), a.owner
	}
	for _, s := range w.Settlements() {
		if s.Garrison.Container == c {
			return s.Name, s.owner
		}
	}
	return "", nil
}

func (w *World) armyOf(c *Container) *Army {
	for _, a := range w.Armies() {
		if a.Container == c {
			return a
		}
	}
	return nil
}

// SpawnTile returns the first free neighbor of s in the fixed neighbor
// order, or nil.
func (w *World) SpawnTile(s *Settlement) *Tile {
	origin := w.Grid.At(s.Pos)
	for _, t := range w.Grid.AdjacentTiles(origin, true) {
		if t.Empty() && t.Passable() {
			return t
		}
	}
	return nil
}

// CreateArmyFromGarrison moves stacks out of s's garrison into a new army
// on the first free neighboring tile.
func (w *World) CreateArmyFromGarrison(s *Settlement, f *Faction, stacks []*Stack) (*Army, error) {
	if s == nil || f == nil || s.owner != f {
		return nil, fmt.Errorf("create army: %w: settlement not owned", ErrInvalidTarget)
	}
	if err := w.requireTurn(f); err != nil {
		return nil, err
	}
	if len(stacks) == 0 {
		return nil, fmt.Errorf("create army: %w: no stacks selected", ErrInvalidTarget)
	}
	seen := make(map[*Stack]bool, len(stacks))
	for _, st := range stacks {
		if seen[st] || !s.Garrison.Contains(st) {
			return nil, fmt.Errorf("create army: %w: stack not in %s garrison", ErrInvalidTarget, s.Name)
		}
		seen[st] = true
	}
	if f.ArmyCapReached() {
		return nil, fmt.Errorf("create army: %w: %d armies for %d settlements", ErrCapacityExceeded, len(f.armies), len(f.settlements))
	}
	spawn := w.SpawnTile(s)
	if spawn == nil {
		return nil, fmt.Errorf("create army: %w: no free tile around %s", ErrCapacityExceeded, s.Name)
	}

	a := w.newArmy(f)
	for _, st := range stacks {
		if _, err := s.Garrison.RemoveStack(st); err != nil {
			return nil, err
		}
		a.stacks = append(a.stacks, st)
	}
	f.addArmy(a)
	w.place(a, spawn)
	w.emit(Event{Faction: f.ID, Kind: EventArmyCreated,
		Message: fmt.Sprintf("%s marched out of %s to %v", a.Name(), s.Name, spawn.Pos), Amount: a.Soldiers()})
	return a, nil
}

// MoveArmy moves a from one tile to another, dispatching in order to a
// battle against an enemy army, a merge with a friendly army, a siege of an
// enemy settlement, an entry into an own settlement, or a plain move.
func (w *World) MoveArmy(a *Army, from, to *Tile) (MoveResult, error) {
	if a == nil {
		return MoveResult{}, fmt.Errorf("move: %w: no army", ErrInvalidTarget)
	}
	if err := w.requireTurn(a.owner); err != nil {
		return MoveResult{}, err
	}
	if from == nil || to == nil {
		return MoveResult{}, fmt.Errorf("move %s: %w: tile outside grid", a.Name(), ErrInvalidTarget)
	}
	if a.tile != from {
		return MoveResult{}, fmt.Errorf("move %s: %w: army is not at %v", a.Name(), ErrInvalidTarget, from.Pos)
	}
	dist := from.Pos.Chebyshev(to.Pos)
	if dist == 0 {
		return MoveResult{}, fmt.Errorf("move %s: %w: already at %v", a.Name(), ErrInvalidTarget, to.Pos)
	}
	if dist > a.remaining {
		return MoveResult{}, fmt.Errorf("move %s: %w: distance %d exceeds remaining movement %d",
			a.Name(), ErrInvalidTarget, dist, a.remaining)
	}

	res := MoveResult{Distance: dist}
	switch {
	case to.Army != nil && to.Army.owner != a.owner:
		res.Kind = MoveBattle
		r, err := w.ResolveBattle(a, to.Army, from, to)
		if err != nil {
			return MoveResult{}, err
		}
		res.Battle = &r
	case to.Army != nil:
		res.Kind = MoveMergeArmies
		absorbed, err := w.MergeArmies(a, to.Army, from)
		if err != nil {
			return MoveResult{}, err
		}
		res.Absorbed = absorbed
	case to.Settlement != nil && to.Settlement.owner != a.owner:
		res.Kind = MoveSiege
		r, err := w.ResolveSiege(a, to.Settlement, from, to)
		if err != nil {
			return MoveResult{}, err
		}
		res.Battle = &r
	case to.Settlement != nil:
		res.Kind = MoveEnterSettlement
		absorbed, err := w.EnterFriendlySettlement(a, to.Settlement, from)
		if err != nil {
			return MoveResult{}, err
		}
		res.Absorbed = absorbed
	default:
		if !to.Passable() {
			return MoveResult{}, fmt.Errorf("move %s: %w: %v is %s", a.Name(), ErrInvalidTarget, to.Pos, to.Terrain)
		}
		res.Kind = MovePlain
		a.spendMovement(dist)
		w.place(a, to)
		w.emit(Event{Faction: a.owner.ID, Kind: EventArmyMoved,
			Message: fmt.Sprintf("%s moved %v -> %v", a.Name(), from.Pos, to.Pos), Amount: dist})
	}
	return res, nil
}
