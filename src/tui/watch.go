// Package tui implements the live watch display for an in-flight
// verification.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"cigate/src/gate"
)

// ProgressMsg carries one poll observation into the model.
type ProgressMsg gate.Progress

// DoneMsg carries the final report once the gate finishes.
type DoneMsg struct {
	Report   string
	ExitCode int
}

// WatchModel renders a spinner and the latest poll observation while the
// gate runs, then the final report.
type WatchModel struct {
	repo     string
	target   string
	spinner  spinner.Model
	styles   *StyleConfig
	width    int
	latest   *gate.Progress
	done     bool
	report   string
	exitCode int
}

// NewWatchModel creates the watch display for one verification.
// target describes the selector, e.g. "branch main" or "run 123".
func NewWatchModel(repo, target string) WatchModel {
	styles := DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = sp.Style.Foreground(styles.Accent)

	return WatchModel{
		repo:     repo,
		target:   target,
		spinner:  sp,
		styles:   styles,
		width:    80,
		exitCode: gate.ExitFailure,
	}
}

// ExitCode returns the process exit code once the model has finished.
func (m WatchModel) ExitCode() int {
	return m.exitCode
}

// Done reports whether the final report has arrived.
func (m WatchModel) Done() bool {
	return m.done
}

func (m WatchModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil

	case ProgressMsg:
		p := gate.Progress(msg)
		m.latest = &p
		return m, nil

	case DoneMsg:
		m.done = true
		m.report = msg.Report
		m.exitCode = msg.ExitCode
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m WatchModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("cigate %s (%s)", m.repo, m.target)
	b.WriteString(m.styles.TitleStyle().Render(Truncate(title, m.width, true)))
	b.WriteString("\n\n")

	if m.done {
		b.WriteString(m.styles.VerdictStyle(m.exitCode).Render(m.report))
		b.WriteString("\n")
		return b.String()
	}

	line := "resolving run..."
	if m.latest != nil {
		line = gate.ProgressLine(*m.latest)
	}
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(m.styles.WaitingStyle().Render(Truncate(line, m.width-2, true)))
	b.WriteString("\n")

	return b.String()
}
