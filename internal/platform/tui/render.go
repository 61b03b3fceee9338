package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-skirmish/internal/catalog"
	"github.com/vovakirdan/tui-skirmish/internal/sim"
)

// terrainStyles colours tiles by terrain, indexed by sim.Terrain.
var terrainStyles = [...]lipgloss.Style{
	sim.Grassland:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	sim.Water:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	sim.Desert:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	sim.Hills:         lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	sim.Mountains:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	sim.Woodland:      lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
	sim.HighMountains: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	sim.Snow:          lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
}

var (
	playerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	rivalStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	selectedStyle = lipgloss.NewStyle().Underline(true)
	reachStyle    = lipgloss.NewStyle().Background(lipgloss.Color("236"))
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	panelStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

func (m Model) render() string {
	board := panelStyle.Render(m.renderGrid())
	side := panelStyle.Render(m.renderPanel())
	body := lipgloss.JoinHorizontal(lipgloss.Top, board, side)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Turn %d", m.world.Turn())))
	if o := m.world.Outcome(); o != sim.Ongoing {
		sb.WriteString("  " + titleStyle.Render(strings.ToUpper(o.String())))
	}
	sb.WriteString("\n")
	sb.WriteString(body)
	sb.WriteString("\n")
	sb.WriteString(m.status)
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

// cellStyle identifies how a tile is drawn. Adjacent tiles with equal
// cellStyle share one styled run.
type cellStyle struct {
	terrain  sim.Terrain
	owner    int // 0 terrain, 1 player, 2 rival
	cursor   bool
	selected bool
	reach    bool
}

func (c cellStyle) style() lipgloss.Style {
	var st lipgloss.Style
	switch c.owner {
	case 1:
		st = playerStyle
	case 2:
		st = rivalStyle
	default:
		st = lipgloss.NewStyle()
		if int(c.terrain) < len(terrainStyles) {
			st = terrainStyles[c.terrain]
		}
	}
	if c.reach {
		st = st.Inherit(reachStyle)
	}
	if c.selected {
		st = st.Inherit(selectedStyle)
	}
	if c.cursor {
		st = st.Inherit(cursorStyle)
	}
	return st
}

// renderGrid draws one row per y with two cells per tile, grouping runs of
// equally styled tiles to keep escape sequences down.
func (m Model) renderGrid() string {
	g := m.world.Grid
	var sb strings.Builder
	sb.Grow(g.W*g.H*2 + g.H)
	for y := 0; y < g.H; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		x := 0
		for x < g.W {
			_, start := m.cell(g.TileAt(x, y))
			var run strings.Builder
			for x < g.W {
				glyph, cs := m.cell(g.TileAt(x, y))
				if cs != start {
					break
				}
				run.WriteString(glyph)
				x++
			}
			sb.WriteString(start.style().Render(run.String()))
		}
	}
	return sb.String()
}

// cell picks what a tile shows: an army over a settlement over terrain.
func (m Model) cell(t *sim.Tile) (string, cellStyle) {
	cs := cellStyle{
		terrain:  t.Terrain,
		cursor:   t.Pos == m.cursor,
		selected: m.selected != nil && t.Army == m.selected,
		reach:    m.reach[t.Pos],
	}
	owner := func(f *sim.Faction) int {
		if f == m.player {
			return 1
		}
		return 2
	}
	switch {
	case t.Army != nil:
		cs.owner, cs.terrain = owner(t.Army.Owner()), 0
		return "@ ", cs
	case t.Settlement != nil:
		cs.owner, cs.terrain = owner(t.Settlement.Owner()), 0
		return "# ", cs
	}
	return string(t.Terrain.Code()) + " ", cs
}

func (m Model) renderPanel() string {
	var lines []string
	for _, f := range m.world.Factions() {
		style := rivalStyle
		if f == m.player {
			style = playerStyle
		}
		lines = append(lines, style.Render(f.Name)+fmt.Sprintf("  gold %s  +%s/turn  %s soldiers",
			humanize.Comma(int64(f.Gold())), humanize.Comma(int64(f.Income())), humanize.Comma(int64(f.Soldiers()))))
	}
	lines = append(lines, "")
	lines = append(lines, m.describeTile()...)
	lines = append(lines, "", titleStyle.Render("Events"))
	events := m.world.Events()
	if len(events) > logLines {
		events = events[len(events)-logLines:]
	}
	for _, ev := range events {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("t%d", ev.Turn))+" "+ev.Message)
	}
	return strings.Join(lines, "\n")
}

// describeTile lists what sits under the cursor.
func (m Model) describeTile() []string {
	t := m.world.Grid.At(m.cursor)
	if t == nil {
		return nil
	}
	lines := []string{titleStyle.Render(fmt.Sprintf("%v %s", t.Pos, t.Terrain))}
	if s := t.Settlement; s != nil {
		lines = append(lines, fmt.Sprintf("%s (%s) pop %s, income %s",
			s.Name, s.Owner().Name, humanize.Comma(int64(s.Population)), humanize.Comma(int64(s.Income()))))
		var levels []string
		for i, b := range catalog.AllBuildings() {
			levels = append(levels, fmt.Sprintf("%d:%s %d", i+1, b, s.Level(b)))
		}
		lines = append(lines, strings.Join(levels, "  "))
		if c := s.Construction(); c.Active() {
			lines = append(lines, fmt.Sprintf("building %s, %d turns left", c.Building, c.TurnsRemaining))
		}
		for _, u := range s.Queue() {
			lines = append(lines, "queued "+string(u.ID))
		}
		if s.Owner() == m.player {
			if units := s.AvailableUnits(); len(units) > 0 {
				lines = append(lines, fmt.Sprintf("recruit choice: %s", units[m.unitIdx%len(units)]))
			}
		}
		lines = append(lines, stackLines("garrison", s.Garrison.Container)...)
	}
	if a := t.Army; a != nil {
		lines = append(lines, fmt.Sprintf("%s (%s) movement %d/%d", a.Name(), a.Owner().Name, a.RemainingMovement(), a.MaxMovement()))
		lines = append(lines, stackLines("stacks", a.Container)...)
	}
	return lines
}

func stackLines(label string, c *sim.Container) []string {
	lines := []string{fmt.Sprintf("%s %d/%d, %s soldiers", label, c.Len(), c.Capacity(), humanize.Comma(int64(c.Soldiers())))}
	for _, st := range c.Stacks() {
		lines = append(lines, "  "+st.String())
	}
	return lines
}
