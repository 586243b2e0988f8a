package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("#7AA2F7")
	dimColor    = lipgloss.Color("#565F89")
	errorColor  = lipgloss.Color("#F7768E")

	spinnerStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	lineStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)
)
