// Package tui provides the Bubble Tea front end for a skirmish. The model
// calls World operations on key presses and re-renders from world state.
package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-skirmish/internal/catalog"
	"github.com/vovakirdan/tui-skirmish/internal/sim"
)

// logLines is how many recent events the side panel shows.
const logLines = 8

// Model is the Bubble Tea model for playing a match as the human faction.
type Model struct {
	world    *sim.World
	player   *sim.Faction
	log      *log.Logger
	keys     KeyMap
	help     help.Model
	cursor   sim.Coord
	selected *sim.Army
	reach    map[sim.Coord]bool
	unitIdx  int
	status   string
	width    int
	height   int
	quitting bool
}

// NewModel creates a model over a started world. The cursor starts on the
// player's first settlement.
func NewModel(w *sim.World, logger *log.Logger) Model {
	m := Model{
		world:  w,
		player: w.Faction(sim.Human),
		log:    logger,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	if m.player != nil {
		if own := m.player.Settlements(); len(own) > 0 {
			m.cursor = own[0].Pos
		}
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

// Cursor returns the highlighted tile.
func (m Model) Cursor() sim.Coord { return m.cursor }

// Selected returns the army picked for movement, if any.
func (m Model) Selected() *sim.Army { return m.selected }

// InReach reports whether c lies within the selected army's remaining movement.
func (m Model) InReach(c sim.Coord) bool { return m.reach[c] }

// Status returns the last feedback line.
func (m Model) Status() string { return m.status }

// Quitting reports whether the player asked to leave.
func (m Model) Quitting() bool { return m.quitting }

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1, 0)
	case m.world.Outcome() != sim.Ongoing:
		m.status = "The match is over. Press q to leave."
	case key.Matches(msg, m.keys.Cancel):
		m.selectArmy(nil)
		m.status = ""
	case key.Matches(msg, m.keys.Select):
		m.selectOrMove()
	case key.Matches(msg, m.keys.Build):
		if b, ok := buildingForKey(msg.String()); ok {
			m.build(b)
		}
	case key.Matches(msg, m.keys.NextUnit):
		m.unitIdx++
		if s := m.ownSettlement(); s != nil {
			if units := s.AvailableUnits(); len(units) > 0 {
				m.status = fmt.Sprintf("Recruit choice: %s", units[m.unitIdx%len(units)])
			}
		}
	case key.Matches(msg, m.keys.Recruit):
		m.recruit()
	case key.Matches(msg, m.keys.Spawn):
		m.spawn()
	case key.Matches(msg, m.keys.Merge):
		m.merge()
	case key.Matches(msg, m.keys.Disband):
		m.disband()
	case key.Matches(msg, m.keys.EndTurn):
		m.endTurn()
	}
	return m, nil
}

func (m *Model) moveCursor(dx, dy int) {
	next := m.cursor.Add(dx, dy)
	if m.world.Grid.InBounds(next) {
		m.cursor = next
	}
}

// ownSettlement returns the player's settlement under the cursor.
func (m *Model) ownSettlement() *sim.Settlement {
	t := m.world.Grid.At(m.cursor)
	if t == nil || t.Settlement == nil || t.Settlement.Owner() != m.player {
		return nil
	}
	return t.Settlement
}

// container returns the stacks the cursor addresses: the selected army,
// else an own army or garrison under the cursor.
func (m *Model) container() (string, *sim.Container) {
	if m.selected != nil && m.selected.Tile() != nil {
		return m.selected.Name(), m.selected.Container
	}
	t := m.world.Grid.At(m.cursor)
	switch {
	case t == nil:
		return "", nil
	case t.Army != nil && t.Army.Owner() == m.player:
		return t.Army.Name(), t.Army.Container
	case t.Settlement != nil && t.Settlement.Owner() == m.player:
		return t.Settlement.Name, t.Settlement.Garrison.Container
	}
	return "", nil
}

func (m *Model) selectOrMove() {
	t := m.world.Grid.At(m.cursor)
	if t == nil {
		return
	}
	if m.selected == nil || m.selected.Tile() == nil {
		m.selectArmy(nil)
		if t.Army != nil && t.Army.Owner() == m.player {
			m.selectArmy(t.Army)
			m.status = fmt.Sprintf("%s selected, %d movement left", t.Army.Name(), t.Army.RemainingMovement())
		}
		return
	}
	a := m.selected
	if t == a.Tile() {
		m.selectArmy(nil)
		m.status = ""
		return
	}
	res, err := m.world.MoveArmy(a, a.Tile(), t)
	if err != nil {
		m.fail(err)
		return
	}
	m.status = describeMove(a, res)
	if res.Kind != sim.MovePlain || a.Tile() == nil {
		m.selectArmy(nil)
		return
	}
	m.selectArmy(a)
}

// selectArmy picks a for movement and records the tiles its remaining
// movement reaches. A nil army clears both.
func (m *Model) selectArmy(a *sim.Army) {
	m.selected, m.reach = a, nil
	if a == nil || a.Tile() == nil {
		m.selected = nil
		return
	}
	m.reach = make(map[sim.Coord]bool)
	for _, t := range m.world.Grid.TilesInRange(a.Tile(), a.RemainingMovement(), true) {
		m.reach[t.Pos] = true
	}
}

func describeMove(a *sim.Army, res sim.MoveResult) string {
	switch res.Kind {
	case sim.MoveBattle, sim.MoveSiege:
		return res.Battle.String()
	case sim.MoveMergeArmies, sim.MoveEnterSettlement:
		if res.Absorbed {
			return fmt.Sprintf("%s absorbed (%s)", a.Name(), res.Kind)
		}
		return fmt.Sprintf("%s partly absorbed (%s)", a.Name(), res.Kind)
	}
	return fmt.Sprintf("%s moved %d, %d left", a.Name(), res.Distance, a.RemainingMovement())
}

func (m *Model) build(b catalog.Building) {
	s := m.ownSettlement()
	if s == nil {
		m.status = "Place the cursor on one of your settlements to build."
		return
	}
	if err := m.world.StartConstruction(s, b); err != nil {
		m.fail(err)
		return
	}
	m.status = fmt.Sprintf("%s: building %s level %d", s.Name, b, s.Level(b)+1)
}

func (m *Model) recruit() {
	s := m.ownSettlement()
	if s == nil {
		m.status = "Place the cursor on one of your settlements to recruit."
		return
	}
	units := s.AvailableUnits()
	if len(units) == 0 {
		m.status = s.Name + " trains nothing yet."
		return
	}
	id := units[m.unitIdx%len(units)]
	if err := m.world.EnqueueRecruit(s, id); err != nil {
		m.fail(err)
		return
	}
	m.status = fmt.Sprintf("%s: %s queued", s.Name, id)
}

func (m *Model) spawn() {
	s := m.ownSettlement()
	if s == nil {
		m.status = "Place the cursor on one of your settlements to raise an army."
		return
	}
	a, err := m.world.CreateArmyFromGarrison(s, m.player, s.Garrison.Stacks())
	if err != nil {
		m.fail(err)
		return
	}
	m.selectArmy(a)
	m.cursor = a.Tile().Pos
	m.status = fmt.Sprintf("%s raised with %d soldiers", a.Name(), a.Soldiers())
}

func (m *Model) merge() {
	name, c := m.container()
	if c == nil {
		m.status = "Nothing of yours to merge here."
		return
	}
	dropped, err := m.world.MergeUnits(c)
	if err != nil {
		m.fail(err)
		return
	}
	m.status = fmt.Sprintf("%s merged into %d stacks", name, c.Len())
	if dropped > 0 {
		m.status += fmt.Sprintf(", %d soldiers lost to capacity", dropped)
	}
}

func (m *Model) disband() {
	name, c := m.container()
	if c == nil || c.Empty() {
		m.status = "Nothing of yours to disband here."
		return
	}
	stacks := c.Stacks()
	last := stacks[len(stacks)-1]
	if err := m.world.DisbandStack(c, last); err != nil {
		m.fail(err)
		return
	}
	m.status = fmt.Sprintf("%s disbanded %s", name, last)
	if m.selected != nil && m.selected.Tile() == nil {
		m.selectArmy(nil)
	}
}

func (m *Model) endTurn() {
	report, err := m.world.EndTurn()
	if err != nil {
		m.fail(err)
		return
	}
	m.selectArmy(nil)
	if report.Outcome != sim.Ongoing {
		m.status = fmt.Sprintf("Match over: %s", report.Outcome)
		return
	}
	m.status = fmt.Sprintf("Turn %d, %d events", report.Turn, len(report.Events))
}

func (m *Model) fail(err error) {
	m.status = "Refused: " + err.Error()
	if m.log != nil && !refusal(err) {
		m.log.Error("operation failed", "err", err)
	}
}

// refusal reports whether err is an ordinary rule refusal.
func refusal(err error) bool {
	for _, target := range []error{
		sim.ErrInsufficientFunds, sim.ErrCapacityExceeded, sim.ErrInvalidTarget,
		sim.ErrAlreadyInProgress, sim.ErrGameOver,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// View renders the map, the side panel and the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// Run starts the Bubble Tea program on w and returns once the player quits.
func Run(w *sim.World, logger *log.Logger) error {
	p := tea.NewProgram(NewModel(w, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
