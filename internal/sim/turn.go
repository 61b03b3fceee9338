package sim

import "fmt"

// Outcome is the state of the match from the human faction's side.
type Outcome uint8

const (
	Ongoing Outcome = iota
	Victory
	Defeat
	Draw
)

func (o Outcome) String() string {
	switch o {
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	case Draw:
		return "draw"
	}
	return "ongoing"
}

// TurnEngine holds turn order. It is built once by World.Start from the
// factions registered during setup.
type TurnEngine struct {
	order   []*Faction
	current int
	turn    int
	outcome Outcome
}

// NewTurnEngine starts turn 1 with the first faction in order.
func NewTurnEngine(order []*Faction) *TurnEngine {
	return &TurnEngine{order: append([]*Faction(nil), order...), turn: 1}
}

// Current returns the faction whose turn it is.
func (e *TurnEngine) Current() *Faction { return e.order[e.current] }

// Turn returns the round number, starting at 1.
func (e *TurnEngine) Turn() int { return e.turn }

// Outcome returns the recorded match outcome.
func (e *TurnEngine) Outcome() Outcome { return e.outcome }

// advance hands the turn to the next faction, starting a new round on wrap.
func (e *TurnEngine) advance() *Faction {
	e.current = (e.current + 1) % len(e.order)
	if e.current == 0 {
		e.turn++
	}
	return e.Current()
}

// Judge derives the outcome from settlement ownership: the Human faction
// against everyone else.
func Judge(factions []*Faction) Outcome {
	humanAlive, rivalsAlive := false, false
	for _, f := range factions {
		if f.Defeated() {
			continue
		}
		if f.ID == Human {
			humanAlive = true
		} else {
			rivalsAlive = true
		}
	}
	switch {
	case !humanAlive && !rivalsAlive:
		return Draw
	case !humanAlive:
		return Defeat
	case !rivalsAlive:
		return Victory
	}
	return Ongoing
}

// TurnReport summarises an EndTurn call.
type TurnReport struct {
	Turn    int
	Current *Faction
	Outcome Outcome
	Events  []Event
}

// Start freezes setup, builds the turn engine and begins the first
// faction's turn. Computer factions that come first play immediately.
func (w *World) Start() (TurnReport, error) {
	if w.engine != nil {
		return TurnReport{}, fmt.Errorf("start: %w", ErrAlreadyInProgress)
	}
	if len(w.factions) < 2 {
		return TurnReport{}, fmt.Errorf("start: %w: need two factions, have %d", ErrInvalidTarget, len(w.factions))
	}
	mark := len(w.events)
	w.engine = NewTurnEngine(w.factions)
	if w.checkOutcome() == Ongoing {
		first := w.engine.Current()
		w.beginTurn(first)
		if !first.Human() {
			w.computerTurn(first)
			if w.engine.Outcome() == Ongoing && w.anyHuman() {
				w.playComputerTurns()
			}
		}
	}
	return w.report(mark), nil
}

// EndTurn flushes the current faction's recruitment queues and passes the
// turn on, playing computer factions until a human one is active again or
// the match ends.
func (w *World) EndTurn() (TurnReport, error) {
	if w.engine == nil {
		return TurnReport{}, ErrNotStarted
	}
	if w.engine.Outcome() != Ongoing {
		return TurnReport{}, ErrGameOver
	}
	mark := len(w.events)
	w.flushQueues(w.engine.Current())
	w.playComputerTurns()
	return w.report(mark), nil
}

// playComputerTurns advances through factions. It stops when a human
// faction's turn begins, when the match is decided, or after one computer
// turn if nobody is human.
func (w *World) playComputerTurns() {
	for {
		next := w.engine.advance()
		if w.checkOutcome() != Ongoing {
			return
		}
		w.beginTurn(next)
		if next.Human() {
			return
		}
		w.computerTurn(next)
		if w.engine.Outcome() != Ongoing || !w.anyHuman() {
			return
		}
	}
}

func (w *World) computerTurn(f *Faction) {
	if w.controller != nil {
		w.controller.PlayTurn(w, f)
	}
	if w.engine.Outcome() == Ongoing {
		w.flushQueues(f)
	}
}

func (w *World) anyHuman() bool {
	for _, f := range w.factions {
		if f.Human() {
			return true
		}
	}
	return false
}

func (w *World) beginTurn(f *Faction) {
	ts := f.BeginTurn()
	w.emit(Event{Faction: f.ID, Kind: EventTurnBegan,
		Message: fmt.Sprintf("%s collects %d gold", f.Name, ts.Income), Amount: ts.Income})
	for _, c := range ts.Completed {
		w.log.Info("construction complete", "settlement", c.Settlement.Name, "building", c.Building, "level", c.Level)
		w.emit(Event{Faction: f.ID, Kind: EventConstructionCompleted,
			Message: fmt.Sprintf("%s finished %s level %d", c.Settlement.Name, c.Building, c.Level), Amount: c.Level})
	}
}

func (w *World) flushQueues(f *Faction) {
	for _, s := range f.settlements {
		added, lost := s.FlushQueue()
		for _, t := range added {
			w.emit(Event{Faction: f.ID, Kind: EventRecruited,
				Message: fmt.Sprintf("%s recruited %s", s.Name, t.ID), Amount: t.DefaultSize})
		}
		for _, t := range lost {
			w.log.Warn("recruit lost", "settlement", s.Name, "unit", t.ID, "reason", "garrison full")
			w.emit(Event{Faction: f.ID, Kind: EventRecruitLost,
				Message: fmt.Sprintf("%s lost queued %s: garrison full", s.Name, t.ID), Amount: t.DefaultSize})
		}
	}
}

// checkOutcome records and announces a decided match.
func (w *World) checkOutcome() Outcome {
	if w.engine == nil {
		return Ongoing
	}
	if w.engine.outcome != Ongoing {
		return w.engine.outcome
	}
	o := Judge(w.factions)
	if o != Ongoing {
		w.engine.outcome = o
		w.log.Info("match over", "outcome", o, "turn", w.engine.Turn())
		w.emit(Event{Kind: EventMatchOver, Message: "match ended in " + o.String()})
	}
	return o
}

func (w *World) report(mark int) TurnReport {
	return TurnReport{
		Turn:    w.engine.Turn(),
		Current: w.engine.Current(),
		Outcome: w.engine.Outcome(),
		Events:  w.EventsSince(mark),
	}
}

// Started reports whether Start has run.
func (w *World) Started() bool { return w.engine != nil }

// Turn returns the round number, or 0 before Start.
func (w *World) Turn() int {
	if w.engine == nil {
		return 0
	}
	return w.engine.Turn()
}

// Current returns the active faction, or nil before Start.
func (w *World) Current() *Faction {
	if w.engine == nil {
		return nil
	}
	return w.engine.Current()
}

// Outcome returns the match outcome so far.
func (w *World) Outcome() Outcome {
	if w.engine == nil {
		return Ongoing
	}
	return w.engine.Outcome()
}
