package tui

import "github.com/charmbracelet/lipgloss"

// Color Palette
// This is the single source of truth for all TUI colors.
var (
	salmonPink  = lipgloss.Color("#FFB3BA") // Soft pastel salmon pink - primary accent
	coralPink   = lipgloss.Color("#FFCCCB") // Lighter coral accent - secondary
	mintGreen   = lipgloss.Color("#A8E6CF") // Soft mint green - visible/ready states
	mutedGray   = lipgloss.Color("#6B7280") // Muted gray - secondary text
	brightWhite = lipgloss.Color("#F9FAFB") // Bright white - primary text
	errorRed    = lipgloss.Color("203")
	darkGray    = lipgloss.Color("#1F2937")
)

// Common Styles
var (
	// Menu bar
	menuOnStyle = lipgloss.NewStyle().
			Foreground(mintGreen)

	menuOffStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	// Pane headers
	headerStyle = lipgloss.NewStyle().
			Foreground(salmonPink).
			Bold(true)

	selectedHeaderStyle = lipgloss.NewStyle().
				Foreground(darkGray).
				Background(salmonPink).
				Bold(true)

	dragSourceStyle = lipgloss.NewStyle().
			Foreground(darkGray).
			Background(coralPink).
			Bold(true)

	dropTargetStyle = lipgloss.NewStyle().
			Foreground(darkGray).
			Background(mintGreen).
			Bold(true)

	domainStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Italic(true)

	// Pane body
	readyStyle = lipgloss.NewStyle().
			Foreground(mintGreen)

	pendingStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Italic(true)

	failedStyle = lipgloss.NewStyle().
			Foreground(errorRed)

	sourceStyle = lipgloss.NewStyle().
			Foreground(brightWhite)

	splitterStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	// Container Styles
	statusBarStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Padding(0, 1)

	dialogTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(salmonPink)

	dialogHelpStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Italic(true)
)
