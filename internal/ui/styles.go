package ui

import (
	"github.com/nconklindev/xlsxprobe/internal/report"

	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(report.ColorAccent).
			MarginTop(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(report.ColorMuted).
			MarginBottom(1)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(report.ColorAccent)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(report.ColorMuted).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(report.ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(report.ColorError).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(report.ColorWarm).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(report.ColorMuted).
			MarginTop(1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(report.ColorAccent).
			Padding(1, 2)
)
