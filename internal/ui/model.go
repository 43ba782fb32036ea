package ui

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nconklindev/xlsxprobe/internal/config"
	"github.com/nconklindev/xlsxprobe/internal/probe"
	"github.com/nconklindev/xlsxprobe/internal/report"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type state int

const (
	stateFilePicker state = iota
	stateLoading
	stateReport
	stateError
)

// chrome is the number of lines taken by the title and status bar around
// the report viewport.
const chrome = 6

type Model struct {
	state        state
	cfg          *config.Config
	filepicker   filepicker.Model
	spinner      spinner.Model
	viewport     viewport.Model
	selectedFile string
	outcome      *probe.Outcome
	err          error
	width        int
	height       int
}

type reportMsg struct {
	content string
	outcome *probe.Outcome
	err     error
}

// InitialModel starts in the file picker, opened on the directory of the
// configured input when it exists.
func InitialModel(cfg *config.Config) Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".xlsx", ".xlsm", ".xltx", ".xltm", ".csv"}
	fp.CurrentDirectory = startDirectory(cfg.InputPath)

	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(report.ColorAccent)
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(report.ColorWarm)
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(report.ColorWarm)
	fp.Styles.File = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	fp.Styles.Permission = lipgloss.NewStyle().Foreground(report.ColorMuted)
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(report.ColorAccent).Bold(true)
	fp.Styles.FileSize = lipgloss.NewStyle().Foreground(report.ColorMuted)

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(SpinnerStyle))

	return Model{
		state:      stateFilePicker,
		cfg:        cfg,
		filepicker: fp,
		spinner:    sp,
		viewport:   viewport.New(80, 20),
	}
}

func startDirectory(inputPath string) string {
	if inputPath != "" {
		dir := filepath.Dir(inputPath)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	wd, _ := os.Getwd()
	return wd
}

func (m Model) Init() tea.Cmd {
	return m.filepicker.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		height := msg.Height - 14
		if height < 5 {
			height = 5
		}
		m.filepicker.SetHeight(height)
		m.resizeViewport()

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}

		switch m.state {
		case stateFilePicker, stateLoading:
			if msg.String() == "q" {
				return m, tea.Quit
			}

		case stateReport:
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "esc", "b":
				m.state = stateFilePicker
				return m, nil
			}
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd

		case stateError:
			switch msg.String() {
			case "q", "enter":
				return m, tea.Quit
			case "esc", "b":
				m.err = nil
				m.state = stateFilePicker
				return m, nil
			}
		}

	case reportMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.outcome = msg.outcome
		m.viewport.SetContent(msg.content)
		m.viewport.GotoTop()
		m.state = stateReport
		return m, nil

	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.state == stateReport {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.state == stateFilePicker {
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)

		if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
			m.selectedFile = path
			m.state = stateLoading
			return m, tea.Batch(m.spinner.Tick, m.runProbe(path))
		}

		return m, cmd
	}

	return m, nil
}

func (m *Model) resizeViewport() {
	width := m.width
	if width < 20 {
		width = 20
	}
	height := m.height - chrome
	if height < 5 {
		height = 5
	}
	m.viewport.Width = width
	m.viewport.Height = height
}

// runProbe inspects path with the current settings and captures the report
// for the viewport. The sample file is written as in a normal run.
func (m Model) runProbe(path string) tea.Cmd {
	cfg := *m.cfg
	cfg.InputPath = path
	return func() tea.Msg {
		var buf bytes.Buffer
		outcome, err := probe.Run(context.Background(), &cfg, &buf)
		if err != nil {
			return reportMsg{err: err}
		}
		return reportMsg{content: buf.String(), outcome: outcome}
	}
}

func (m Model) View() string {
	switch m.state {
	case stateFilePicker:
		return m.viewFilePicker()
	case stateLoading:
		return m.viewLoading()
	case stateReport:
		return m.viewReport()
	case stateError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	title := TitleStyle.Render("xlsxprobe - Spreadsheet Inspector")
	subtitle := SubtitleStyle.Render("Select a spreadsheet (XLSX or CSV) to inspect")

	s.WriteString(lipgloss.JoinVertical(lipgloss.Left, title, subtitle))
	s.WriteString("\n\n")
	s.WriteString(m.filepicker.View())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press q to quit"))

	return s.String()
}

func (m Model) viewLoading() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Inspecting..."))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("%s Reading %s", m.spinner.View(), filepath.Base(m.selectedFile)))

	return BoxStyle.Render(s.String())
}

func (m Model) viewReport() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render(filepath.Base(m.selectedFile)))
	s.WriteString("\n")
	s.WriteString(m.viewport.View())
	s.WriteString("\n")

	status := fmt.Sprintf("%3.f%% • ↑/↓ scroll • b: back • q: quit", m.viewport.ScrollPercent()*100)
	if m.outcome != nil && m.outcome.Summary != nil && m.outcome.Summary.Presence.AllPresent() {
		status = SuccessStyle.Render("all required fields present") + "  " + status
	}
	s.WriteString(StatusBarStyle.Render(status))

	return s.String()
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(ErrorStyle.Render("✗ Error"))
	s.WriteString("\n\n")
	s.WriteString(probe.ErrorMessage(m.err))
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("b: choose another file • q: quit"))

	return BoxStyle.Render(s.String())
}
