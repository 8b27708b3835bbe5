package pager

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit         key.Binding
	Down         key.Binding
	Up           key.Binding
	HalfPageDown key.Binding
	HalfPageUp   key.Binding
	PageDown     key.Binding
	PageUp       key.Binding
	Top          key.Binding
	Bottom       key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	HalfPageDown: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "half page down"),
	),
	HalfPageUp: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "half page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys(" ", "pgdown", "f"),
		key.WithHelp("space/f", "page down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "b"),
		key.WithHelp("b", "page up"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
}

// shortHelp is the key summary shown in the status bar.
func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.PageDown, k.PageUp, k.Quit}
}
