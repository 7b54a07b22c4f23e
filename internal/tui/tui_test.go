package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"SWR/internal/swr"
)

func newModel(t *testing.T) Model {
	t.Helper()
	c, err := swr.NewCompositor(swr.Config{
		VSWR:           []swr.VSWR{swr.Infinite, 3, 1},
		Wave:           swr.WaveParams{Amplitude: 1, Frequency: 1, Wavelength: 1},
		XMin:           0,
		XMax:           2,
		Samples:        50,
		WarmupFrames:   4,
		FramesPerCycle: 10,
	})
	if err != nil {
		t.Fatalf("NewCompositor: %v", err)
	}
	return New(c, 20, 2)
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm, cmd
}

func TestTickAdvancesCompositor(t *testing.T) {
	m := newModel(t)
	if !strings.Contains(m.View(), "starting") {
		t.Errorf("initial view = %q", m.View())
	}
	var cmd tea.Cmd
	for i := 0; i < 6; i++ {
		m, cmd = step(t, m, tickMsg(time.Now()))
		if cmd == nil {
			t.Fatal("tick did not schedule the next tick")
		}
	}
	if m.Frame().Tick.Index != 5 || m.Frame().Tick.Phase != swr.PhaseDisplay {
		t.Errorf("after 6 ticks frame = %+v", m.Frame().Tick)
	}
	view := m.View()
	if !strings.Contains(view, "DISPLAY") || !strings.Contains(view, "VSWR = ∞") {
		t.Errorf("view missing status or title:\n%s", view)
	}
}

func TestPauseStopsTicks(t *testing.T) {
	m := newModel(t)
	m, _ = step(t, m, tickMsg(time.Now()))
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeySpace})
	before := m.Frame().Tick.Index
	m, _ = step(t, m, tickMsg(time.Now()))
	if m.Frame().Tick.Index != before {
		t.Errorf("paused model advanced to %d", m.Frame().Tick.Index)
	}
	if !strings.Contains(m.View(), "paused") {
		t.Error("view does not show pause")
	}
}

func TestPanelCycling(t *testing.T) {
	m := newModel(t)
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Selected() != 2 {
		t.Fatalf("Selected() = %d, want 2", m.Selected())
	}
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Selected() != 0 {
		t.Fatalf("Selected() = %d after wrap, want 0", m.Selected())
	}
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Selected() != 2 {
		t.Fatalf("Selected() = %d after left, want 2", m.Selected())
	}
}

func TestQuit(t *testing.T) {
	m := newModel(t)
	_, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestTickErrorQuits(t *testing.T) {
	m := New(&swr.Compositor{}, 20, 2)
	m, cmd := step(t, m, tickMsg(time.Now()))
	if m.Err() == nil {
		t.Fatal("expected error from unconfigured compositor")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("error did not quit")
	}
	if !strings.Contains(m.View(), "error") {
		t.Errorf("view = %q", m.View())
	}
}
