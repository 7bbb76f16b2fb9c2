package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Brand colors; the progress bar blends from accent to success.
const (
	accentColor  = "#F45436"
	successColor = "#04B575"
	errorColor   = "#FF4D4D"
	warnColor    = "#FFA500"
	mutedColor   = "#626262"
)

var styles = NewPalette(accentColor, successColor, errorColor, warnColor, mutedColor)

// Palette holds the named [lipgloss.Style] values the views render with.
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
	label lipgloss.Style
}

// NewPalette builds a Palette from foreground colors for titles, success, errors, warnings and muted text.
func NewPalette(title, ok, err, warn, muted string) *Palette {
	return &Palette{
		title: lipgloss.NewStyle().Foreground(lipgloss.Color(title)).Bold(true).MarginBottom(1),
		ok:    lipgloss.NewStyle().Foreground(lipgloss.Color(ok)).Bold(true),
		err:   lipgloss.NewStyle().Foreground(lipgloss.Color(err)).Bold(true),
		warn:  lipgloss.NewStyle().Foreground(lipgloss.Color(warn)),
		help:  lipgloss.NewStyle().Foreground(lipgloss.Color(muted)).Italic(true),
		label: lipgloss.NewStyle().Foreground(lipgloss.Color(muted)).Bold(true),
	}
}
