package report

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette shared by the report and the interactive UI.
const (
	ColorAccent = lipgloss.Color("#FF8C42")
	ColorWarm   = lipgloss.Color("#FFB84D")
	ColorMuted  = lipgloss.Color("#6B7280")
	ColorError  = lipgloss.Color("#FF4757")
)

type styles struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Border  lipgloss.Style
	Header  lipgloss.Style
	Cell    lipgloss.Style
}

// newStyles binds the palette to a renderer so colors follow the output
// writer rather than stdout.
func newStyles(r *lipgloss.Renderer, noColor bool) styles {
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		Title:   r.NewStyle().Bold(true).Foreground(ColorAccent),
		Heading: r.NewStyle().Bold(true).Foreground(ColorWarm).MarginTop(1),
		Muted:   r.NewStyle().Foreground(ColorMuted),
		Success: r.NewStyle().Bold(true).Foreground(ColorWarm),
		Warning: r.NewStyle().Foreground(ColorAccent),
		Error:   r.NewStyle().Bold(true).Foreground(ColorError),
		Border:  r.NewStyle().Foreground(ColorMuted),
		Header:  r.NewStyle().Bold(true).Foreground(ColorAccent).Padding(0, 1),
		Cell:    r.NewStyle().Padding(0, 1),
	}
}
