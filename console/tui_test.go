package console

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"surfacewave/pond"
	"surfacewave/water"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	sc, err := pond.NewScene(pond.DefaultSettings())
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	m, _ := NewModel(sc).Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	return m.(Model)
}

func press(t *testing.T, m Model, k tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(k)
	return next.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelCursorStaysOnStrip(t *testing.T) {
	m := newTestModel(t)
	if m.cursor != 5 {
		t.Fatalf("cursor = %v, want 5", m.cursor)
	}
	for i := 0; i < 100; i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	}
	if m.cursor != 0 {
		t.Fatalf("cursor = %v, want clamped to 0", m.cursor)
	}
	m = press(t, m, runes("l"))
	if m.cursor != cursorStep {
		t.Fatalf("cursor = %v, want %v", m.cursor, cursorStep)
	}
}

func TestModelDropAndTick(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if n := len(m.scene.Bodies()); n != 1 {
		t.Fatalf("bodies = %d, want 1", n)
	}
	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("tick did not schedule the next tick")
	}
	if m.scene.Field().Tick() != 1 {
		t.Fatalf("field tick = %d, want 1", m.scene.Field().Tick())
	}
	if m.scene.Bodies()[0].Vel.Y >= 0 {
		t.Fatalf("body did not start falling")
	}
}

func TestModelPauseAndStep(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("p"))
	next, _ := m.Update(tickMsg(time.Now()))
	m = next.(Model)
	if m.scene.Field().Tick() != 0 {
		t.Fatalf("paused model stepped")
	}
	m = press(t, m, runes("n"))
	next, _ = m.Update(tickMsg(time.Now()))
	m = next.(Model)
	next, _ = m.Update(tickMsg(time.Now()))
	m = next.(Model)
	if m.scene.Field().Tick() != 1 {
		t.Fatalf("single step ran %d ticks, want 1", m.scene.Field().Tick())
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("quit returned no command")
	}
	if v := next.(Model).View(); v != "" {
		t.Fatalf("view after quit = %q", v)
	}
}

func TestModelViewShowsSurface(t *testing.T) {
	m := newTestModel(t)
	m.scene.Drop(5, dropHeight, 0)
	view := m.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 20 {
		t.Fatalf("view has %d lines, want 20", len(lines))
	}
	for _, want := range []string{"~", "░", "v", "▼", "tick 0"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestGridPlacesSurfaceAtRestLine(t *testing.T) {
	m := newTestModel(t)
	g := m.grid(10, 9)
	for c := 0; c < 10; c++ {
		if g[6][c] != glyphSurface || g[5][c] != glyphAir || g[7][c] != glyphWater {
			t.Fatalf("column %d = %q/%q/%q", c, g[5][c], g[6][c], g[7][c])
		}
	}
}

func TestRunTUIRejectsBadSettings(t *testing.T) {
	s := pond.DefaultSettings()
	s.Water.Width = 0
	if err := RunTUI(s); !errors.Is(err, water.ErrConfig) {
		t.Fatalf("error = %v, want ErrConfig", err)
	}
}
