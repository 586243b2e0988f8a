package render

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette - cool, beamline-hutch blues with warning accents
	tripColor    = lipgloss.Color("#7AA2F7") // steel blue
	siteColor    = lipgloss.Color("#7DCFFF") // sky
	puckColor    = lipgloss.Color("#BB9AF7") // violet
	pinColor     = lipgloss.Color("#C0CAF5") // pale lavender
	okColor      = lipgloss.Color("#9ECE6A") // green
	missingColor = lipgloss.Color("#F7768E") // red
	extraColor   = lipgloss.Color("#E0AF68") // amber
	guideColor   = lipgloss.Color("#565F89") // muted slate

	tripStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(tripColor)

	siteStyle = lipgloss.NewStyle().
			Foreground(siteColor)

	puckStyle = lipgloss.NewStyle().
			Foreground(puckColor)

	pinStyle = lipgloss.NewStyle().
			Foreground(pinColor)

	collectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(okColor)

	okStyle = lipgloss.NewStyle().
			Foreground(okColor)

	missingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(missingColor)

	extraStyle = lipgloss.NewStyle().
			Foreground(extraColor)

	guideStyle = lipgloss.NewStyle().
			Foreground(guideColor)

	verdictOKStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(okColor)

	verdictBadStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(missingColor)
)
