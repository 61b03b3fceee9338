package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/vovakirdan/tui-skirmish/internal/catalog"
)

// KeyMap defines the key bindings of the map screen.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Select   key.Binding
	Cancel   key.Binding
	Build    key.Binding
	NextUnit key.Binding
	Recruit  key.Binding
	Spawn    key.Binding
	Merge    key.Binding
	Disband  key.Binding
	EndTurn  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Build, k.Recruit, k.Spawn, k.EndTurn, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.Cancel, k.Merge, k.Disband},
		{k.Build, k.NextUnit, k.Recruit, k.Spawn},
		{k.EndTurn, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "north"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "south"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "west"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "east"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select/move"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "deselect"),
		),
		Build: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "build"),
		),
		NextUnit: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next unit"),
		),
		Recruit: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "recruit"),
		),
		Spawn: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "raise army"),
		),
		Merge: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "merge stacks"),
		),
		Disband: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "disband stack"),
		),
		EndTurn: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "end turn"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// buildingForKey maps the digit keys of the Build binding to buildings in
// enumeration order.
func buildingForKey(k string) (catalog.Building, bool) {
	if len(k) != 1 || k[0] < '1' || k[0] > '5' {
		return 0, false
	}
	return catalog.AllBuildings()[k[0]-'1'], true
}
