// Package theme holds the dashboard colours (Catppuccin Mocha) and the few
// styles shared across views.
package theme

import "github.com/charmbracelet/lipgloss"

var (
	Mantle   = lipgloss.Color("#181825")
	Surface1 = lipgloss.Color("#45475a")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Lavender = lipgloss.Color("#b4befe")
	Sapphire = lipgloss.Color("#74c7ec")
	Green    = lipgloss.Color("#a6e3a1")
	Peach    = lipgloss.Color("#fab387")
	Red      = lipgloss.Color("#f38ba8")
)

var (
	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	// PaneActive frames the focus pane while blocking is on.
	PaneActive = Pane.BorderForeground(Green)

	Bar   = lipgloss.NewStyle().Background(Mantle)
	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	On    = lipgloss.NewStyle().Foreground(Green).Bold(true)
	Off   = lipgloss.NewStyle().Foreground(Red).Bold(true)
)
