package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
const (
	colorPrimary = "#5A9BD4"
	colorSuccess = "#04B575"
	colorError   = "#FF5F5F"
	colorWarn    = "#D7AF5F"
	colorInfo    = "#626262"
)

// Styles for the terminal UI
var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorPrimary)).
		MarginTop(1).
		MarginBottom(1)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorSuccess))

	errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorError))

	warnStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorWarn))

	infoStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorInfo))

	summaryStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colorPrimary)).
		Padding(0, 2)
)
