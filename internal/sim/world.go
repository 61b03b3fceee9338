// Package sim is the deterministic core of a two-faction skirmish: the grid,
// factions, settlements, stack containers, combat resolution and turn order.
//
// All state hangs off a World. Nothing here renders, reads files or keeps
// globals; collaborators call World operations and re-read state afterwards.
package sim

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-skirmish/internal/catalog"
)

// Controller plays the turns of factions that are not driven by a person.
type Controller interface {
	PlayTurn(w *World, f *Faction)
}

// Options configures NewWorld.
type Options struct {
	Catalog    *catalog.Catalog
	Grid       *Grid
	Rules      Rules
	Logger     *log.Logger
	Seed       int64
	Controller Controller
	// Observer is called for every event after it is appended to the log.
	Observer func(Event)
}

// StackSpec describes a stack to place during setup.
type StackSpec struct {
	Unit catalog.TypeID
	Size int
}

// World is the simulation context. Setup (factions, settlements, armies)
// happens before Start; after Start only the turn operations apply.
type World struct {
	Catalog *catalog.Catalog
	Grid    *Grid
	Rules   Rules

	log        *log.Logger
	rng        *rand.Rand
	controller Controller
	observer   func(Event)
	factions   []*Faction
	engine     *TurnEngine
	events     []Event
	nextID     int
}

// NewWorld builds an empty world on grid.
func NewWorld(opts Options) (*World, error) {
	if opts.Grid == nil || opts.Grid.W == 0 || opts.Grid.H == 0 {
		return nil, fmt.Errorf("new world: %w: empty grid", ErrInvalidTarget)
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &World{
		Catalog:    opts.Catalog,
		Grid:       opts.Grid,
		Rules:      opts.Rules.normalized(),
		log:        opts.Logger,
		rng:        rand.New(rand.NewSource(opts.Seed)),
		controller: opts.Controller,
		observer:   opts.Observer,
	}, nil
}

// Log returns the world's logger.
func (w *World) Log() *log.Logger { return w.log }

// Rand returns the world's seeded random source.
func (w *World) Rand() *rand.Rand { return w.rng }

// SetController replaces the controller of computer factions.
func (w *World) SetController(c Controller) { w.controller = c }

// SetObserver replaces the event observer.
func (w *World) SetObserver(fn func(Event)) { w.observer = fn }

// AddFaction registers a faction holding gold. Turn order follows
// registration order.
func (w *World) AddFaction(id FactionID, name string, human bool, gold int) (*Faction, error) {
	if w.engine != nil {
		return nil, fmt.Errorf("add faction %s: %w", name, ErrAlreadyInProgress)
	}
	if w.Faction(id) != nil {
		return nil, fmt.Errorf("add faction %s: %w: duplicate id %s", name, ErrInvalidTarget, id)
	}
	f := NewFaction(id, name, human, gold)
	w.factions = append(w.factions, f)
	return f, nil
}

// Faction returns the faction with id, or nil.
func (w *World) Faction(id FactionID) *Faction {
	for _, f := range w.factions {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// Factions returns every faction in turn order.
func (w *World) Factions() []*Faction {
	return append([]*Faction(nil), w.factions...)
}

// Rivals returns every faction other than f.
func (w *World) Rivals(f *Faction) []*Faction {
	var out []*Faction
	for _, other := range w.factions {
		if other != f {
			out = append(out, other)
		}
	}
	return out
}

// FoundSettlement places a new settlement owned by owner at pos.
func (w *World) FoundSettlement(owner *Faction, name string, pos Coord) (*Settlement, error) {
	t := w.Grid.At(pos)
	switch {
	case owner == nil:
		return nil, fmt.Errorf("found %s: %w: no owner", name, ErrInvalidTarget)
	case t == nil:
		return nil, fmt.Errorf("found %s: %w: %v outside grid", name, ErrInvalidTarget, pos)
	case !t.Empty():
		return nil, fmt.Errorf("found %s: %w: %v occupied", name, ErrInvalidTarget, pos)
	case !t.Passable():
		return nil, fmt.Errorf("found %s: %w: %v is %s", name, ErrInvalidTarget, pos, t.Terrain)
	}
	w.nextID++
	s := newSettlement(w.nextID, name, pos, owner, &w.Rules, w.Catalog)
	owner.addSettlement(s)
	t.Settlement = s
	return s, nil
}

// Garrison adds stacks to a settlement's garrison during setup. Stacks that
// do not fit or name unknown units are skipped and logged.
func (w *World) Garrison(s *Settlement, stacks []StackSpec) {
	for _, spec := range stacks {
		w.addStack(s.Name, s.Garrison.Container, spec)
	}
}

// RaiseArmy places a new army for owner at pos during setup.
func (w *World) RaiseArmy(owner *Faction, pos Coord, stacks []StackSpec) (*Army, error) {
	t := w.Grid.At(pos)
	switch {
	case owner == nil:
		return nil, fmt.Errorf("raise army: %w: no owner", ErrInvalidTarget)
	case t == nil:
		return nil, fmt.Errorf("raise army: %w: %v outside grid", ErrInvalidTarget, pos)
	case !t.Empty():
		return nil, fmt.Errorf("raise army: %w: %v occupied", ErrInvalidTarget, pos)
	case !t.Passable():
		return nil, fmt.Errorf("raise army: %w: %v is %s", ErrInvalidTarget, pos, t.Terrain)
	}
	a := w.newArmy(owner)
	for _, spec := range stacks {
		w.addStack(a.Name(), a.Container, spec)
	}
	owner.addArmy(a)
	w.place(a, t)
	return a, nil
}

func (w *World) newArmy(owner *Faction) *Army {
	w.nextID++
	return newArmy(w.nextID, owner, w.Catalog, w.Rules.StackCapacity, w.Rules.ArmyMovement)
}

func (w *World) addStack(holder string, c *Container, spec StackSpec) {
	if _, err := c.AddStack(spec.Unit, spec.Size); err != nil {
		w.log.Warn("stack not added", "holder", holder, "unit", spec.Unit, "size", spec.Size, "err", err)
	}
}

// place puts a on t, clearing its previous tile.
func (w *World) place(a *Army, t *Tile) {
	if a.tile != nil && a.tile.Army == a {
		a.tile.Army = nil
	}
	a.tile = t
	if t != nil {
		t.Army = a
	}
}

// disband removes a from its owner and the grid.
func (w *World) disband(a *Army, reason string) {
	if a.owner != nil {
		a.owner.removeArmy(a)
	}
	w.place(a, nil)
	w.emit(Event{Faction: ownerID(a.owner), Kind: EventArmyDisbanded, Message: fmt.Sprintf("%s %s", a.Name(), reason)})
}

// Armies returns every army on the map, in faction then creation order.
func (w *World) Armies() []*Army {
	var out []*Army
	for _, f := range w.factions {
		out = append(out, f.armies...)
	}
	return out
}

// Settlements returns every settlement, in faction order.
func (w *World) Settlements() []*Settlement {
	var out []*Settlement
	for _, f := range w.factions {
		out = append(out, f.settlements...)
	}
	return out
}

// Events returns the event log.
func (w *World) Events() []Event {
	return append([]Event(nil), w.events...)
}

// EventsSince returns the events appended after the first n.
func (w *World) EventsSince(n int) []Event {
	if n >= len(w.events) {
		return nil
	}
	return append([]Event(nil), w.events[max(n, 0):]...)
}

func (w *World) emit(ev Event) {
	if w.engine != nil {
		ev.Turn = w.engine.Turn()
	}
	w.events = append(w.events, ev)
	if w.observer != nil {
		w.observer(ev)
	}
}

// merge normalises c and records any capacity loss.
func (w *World) merge(holder string, owner *Faction, c *Container) int {
	dropped := c.Merge()
	if dropped > 0 {
		w.log.Warn("capacity loss", "holder", holder, "dropped", dropped)
		w.emit(Event{
			Faction: ownerID(owner),
			Kind:    EventCapacityLoss,
			Message: fmt.Sprintf("%s dropped %d soldiers over the %d-stack limit", holder, dropped, c.Capacity()),
			Amount:  dropped,
		})
	}
	return dropped
}

func ownerID(f *Faction) FactionID {
	if f == nil {
		return 0
	}
	return f.ID
}
