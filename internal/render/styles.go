package render

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#10B981")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	// Built-in backbone types
	BuiltinStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	// Script-declared types
	DeclaredStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	BranchStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Italic(true)

	MatchStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	NoMatchStyle = lipgloss.NewStyle().
			Foreground(colorError)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)
