package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the console.
type Styles struct {
	Title    lipgloss.Style
	Section  lipgloss.Style
	Cursor   lipgloss.Style
	Name     lipgloss.Style
	On       lipgloss.Style
	Off      lipgloss.Style
	Value    lipgloss.Style
	Muted    lipgloss.Style
	Changed  lipgloss.Style
	Error    lipgloss.Style
	Panel    lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
}

// DefaultStyles returns the console styles.
func DefaultStyles() Styles {
	border := lipgloss.Color("#44475a")
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#bd93f9")),
		Section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8be9fd")),
		Cursor:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff79c6")),
		Name:    lipgloss.NewStyle().Foreground(lipgloss.Color("#f8f8f2")),
		On:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#50fa7b")),
		Off:     lipgloss.NewStyle().Foreground(lipgloss.Color("#6272a4")),
		Value:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f1fa8c")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6272a4")),
		Changed: lipgloss.NewStyle().Foreground(lipgloss.Color("#ffb86c")),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff5555")),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		HelpKey:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8be9fd")),
		HelpDesc: lipgloss.NewStyle().Foreground(lipgloss.Color("#f8f8f2")),
	}
}
