package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-skirmish/internal/storage"
)

// History layout constants
const (
	maxMatches    = 100 // Max matches to load
	battlePreview = 10  // Battles listed under the table
)

// HistoryKeyMap defines the key bindings for the history browser.
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Quit}}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "previous match"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next match"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel browses recorded matches and their battles.
type HistoryModel struct {
	store    *storage.Store
	matches  []storage.Match
	battles  []storage.Battle
	loadErr  error
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	quitting bool
}

// NewHistoryModel loads the most recent matches from store.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	m := HistoryModel{
		store:  store,
		keys:   DefaultHistoryKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.matches, m.loadErr = store.RecentMatches(maxMatches)
	m.updateTableRows()
	m.loadBattles()
	return m
}

func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Started", Width: 16},
		{Title: "Scenario", Width: 12},
		{Title: "Turns", Width: 6},
		{Title: "Outcome", Width: 10},
		{Title: "Seed", Width: 12},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-battlePreview-8, 5)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.matches))
	for i, mt := range m.matches {
		rows[i] = table.Row{
			mt.StartedAt.Format("Jan 02 15:04"),
			mt.Scenario,
			fmt.Sprintf("%d", mt.Turns),
			mt.Outcome,
			fmt.Sprintf("%d", mt.Seed),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// loadBattles fetches the battles of the highlighted match.
func (m *HistoryModel) loadBattles() {
	m.battles = nil
	i := m.table.Cursor()
	if i < 0 || i >= len(m.matches) {
		return
	}
	battles, err := m.store.Battles(m.matches[i].ID)
	if err != nil {
		m.loadErr = err
		return
	}
	m.battles = battles
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			m.loadBattles()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("MATCH HISTORY"))
	b.WriteString("\n\n")

	switch {
	case m.loadErr != nil:
		b.WriteString(rivalStyle.Render("Error: " + m.loadErr.Error()))
	case len(m.matches) == 0:
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(emptyStyle.Render("No matches recorded yet.\nPlay or simulate one first."))
	default:
		b.WriteString(panelStyle.Render(m.table.View()))
		b.WriteString("\n")
		b.WriteString(m.renderBattles())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m HistoryModel) renderBattles() string {
	if len(m.battles) == 0 {
		return dimStyle.Render("No battles in this match.")
	}
	lines := []string{fmt.Sprintf("%d battles", len(m.battles))}
	for i, bt := range m.battles {
		if i == battlePreview {
			lines = append(lines, dimStyle.Render(fmt.Sprintf("... %d more", len(m.battles)-battlePreview)))
			break
		}
		result := "held"
		if bt.AttackerWon {
			result = "won"
		}
		lines = append(lines, fmt.Sprintf("t%-3d %-6s %-12s %s vs %s: attacker %s, losses %s/%s",
			bt.Turn, bt.Kind, bt.Location, bt.Attacker, bt.Defender, result,
			humanize.Comma(int64(bt.AttackerLosses)), humanize.Comma(int64(bt.DefenderLosses))))
	}
	return strings.Join(lines, "\n")
}

// RunHistory runs the history browser until the user quits.
func RunHistory(store *storage.Store, width, height int) error {
	p := tea.NewProgram(NewHistoryModel(store, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
