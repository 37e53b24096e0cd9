package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the console.
type keyMap struct {
	Quit key.Binding
	Help key.Binding

	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	Toggle        key.Binding
	BarTaller     key.Binding
	BarShorter    key.Binding
	ToggleMedia   key.Binding
	ConfigChanged key.Binding
	ToggleDump    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("k/↑", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("j/↓", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "First flag"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "Last flag"),
		),

		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "Toggle flag / cycle bar state"),
		),
		BarTaller: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Bar height +8px"),
		),
		BarShorter: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Bar height -8px"),
		),
		ToggleMedia: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Toggle keyguard media"),
		),
		ConfigChanged: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Display configuration changed"),
		),
		ToggleDump: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Toggle state dump"),
		),
	}
}

// helpItems lists the bindings shown in the help overlay, in order.
func (k keyMap) helpItems() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Top, k.Bottom,
		k.Toggle, k.BarTaller, k.BarShorter, k.ToggleMedia, k.ConfigChanged,
		k.ToggleDump, k.Help, k.Quit,
	}
}
