// Package tui shows a spinner with streaming progress lines while a
// traversal runs in the background. It is purely observational; the
// traversal result is carried back on the DoneMsg.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type (
	// ProgressMsg carries one builder progress line.
	ProgressMsg string

	// DoneMsg signals that the traversal finished, successfully or not.
	DoneMsg struct {
		Err error
	}
)

// Model renders the scanning phase of a traversal.
type Model struct {
	Root     string
	Err      error
	Canceled bool

	spinner  spinner.Model
	lines    int
	lastLine string
	done     bool
}

func NewModel(root string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle
	return Model{Root: root, spinner: s}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.Canceled = true
			return m, tea.Quit
		}
		return m, nil

	case ProgressMsg:
		m.lines++
		m.lastLine = strings.TrimSpace(string(msg))
		return m, nil

	case DoneMsg:
		m.done = true
		m.Err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.done {
		if m.Err != nil {
			return errorStyle.Render("Scan failed.") + "\n"
		}
		return ""
	}
	var b strings.Builder
	b.WriteString(m.spinner.View())
	b.WriteString(titleStyle.Render(" Scanning "))
	b.WriteString(m.Root)
	b.WriteString("\n")
	if m.lastLine != "" {
		b.WriteString(lineStyle.Render(fmt.Sprintf("  %s (%d steps)", m.lastLine, m.lines)))
		b.WriteString("\n")
	}
	return b.String()
}
