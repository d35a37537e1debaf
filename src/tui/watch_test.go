package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cigate/src/gate"
)

func TestWatchModel_ProgressUpdatesView(t *testing.T) {
	m := NewWatchModel("o/r", "branch main")

	updated, _ := m.Update(ProgressMsg{
		RunID:   42,
		Status:  "in_progress",
		Elapsed: 40 * time.Second,
	})
	m = updated.(WatchModel)

	view := m.View()
	if !strings.Contains(view, "run_id=42") {
		t.Errorf("view missing progress line:\n%s", view)
	}
	if !strings.Contains(view, "o/r") {
		t.Errorf("view missing repo:\n%s", view)
	}
}

func TestWatchModel_DoneQuitsWithReport(t *testing.T) {
	m := NewWatchModel("o/r", "run 42")

	updated, cmd := m.Update(DoneMsg{
		Report:   "OK: CI is green and all required jobs succeeded.",
		ExitCode: gate.ExitGreen,
	})
	m = updated.(WatchModel)

	if !m.Done() {
		t.Error("Done() = false after DoneMsg")
	}
	if m.ExitCode() != gate.ExitGreen {
		t.Errorf("ExitCode() = %d, want 0", m.ExitCode())
	}
	if cmd == nil {
		t.Fatal("DoneMsg should produce a quit command")
	}
	if !strings.Contains(m.View(), "OK: CI is green") {
		t.Errorf("view missing report:\n%s", m.View())
	}
}

func TestWatchModel_QuitKey(t *testing.T) {
	m := NewWatchModel("o/r", "run 42")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
}

func TestWatchModel_BeforeFirstProgress(t *testing.T) {
	m := NewWatchModel("o/r", "branch main")
	if !strings.Contains(m.View(), "resolving run") {
		t.Errorf("initial view should show the resolving placeholder:\n%s", m.View())
	}
}
