package formatter

import (
	"github.com/EfeTurkel/simpofocus/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PhaseStyle returns the style used for a session phase.
func PhaseStyle(phase domain.SessionPhase) lipgloss.Style {
	switch phase {
	case domain.PhaseFocus:
		return StyleRed
	case domain.PhaseShortBreak:
		return StyleGreen
	case domain.PhaseLongBreak:
		return StyleBlue
	default:
		return StyleDim
	}
}

// PhaseLabel returns a short human label for a phase.
func PhaseLabel(phase domain.SessionPhase) string {
	switch phase {
	case domain.PhaseFocus:
		return "FOCUS"
	case domain.PhaseShortBreak:
		return "SHORT BREAK"
	case domain.PhaseLongBreak:
		return "LONG BREAK"
	default:
		return "IDLE"
	}
}
