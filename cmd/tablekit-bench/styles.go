package main

import "github.com/charmbracelet/lipgloss"

// Adapted from aster's internal/ui/styles.go palette, trimmed to the
// handful of styles this dashboard actually draws with.
var (
	colorAccent = lipgloss.Color("#9b59b6")
	colorWhite  = lipgloss.Color("#e8e8f0")
	colorGray   = lipgloss.Color("#888899")
	colorRed    = lipgloss.Color("#e74c3c")

	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			Background(colorAccent).
			Padding(0, 2)

	styleDim = lipgloss.NewStyle().Foreground(colorGray)

	styleErr = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)
