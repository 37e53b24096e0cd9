package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mj1618/statusbar-window/internal/controller"
	"github.com/mj1618/statusbar-window/internal/model"
	"github.com/mj1618/statusbar-window/internal/platform"
	"github.com/mj1618/statusbar-window/internal/platform/sim"
)

func newTestModel(t *testing.T) (Model, *controller.Controller) {
	t.Helper()
	p := sim.NewProvider(platform.Options{})
	ctrl, err := controller.New(p, controller.Options{
		BarHeight: 72,
		Resources: controller.Resources{BlurSupported: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(ctrl.Close)
	return New(Options{Controller: ctrl}), ctrl
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestToggleFlag(t *testing.T) {
	m, ctrl := newTestModel(t)
	if m.rows[0] != "keyguardShowing" {
		t.Fatalf("first row: got %q", m.rows[0])
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !ctrl.State().KeyguardShowing {
		t.Fatal("space should toggle keyguardShowing on")
	}
	if m.last == nil || len(m.last.result.Changes) == 0 {
		t.Fatalf("expected applied changes to be recorded: %+v", m.last)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if ctrl.State().KeyguardShowing {
		t.Error("enter should toggle keyguardShowing back off")
	}
}

func TestCursorMovement(t *testing.T) {
	m, ctrl := newTestModel(t)
	m = press(t, m, runes("j"), runes("j"), runes("k"))
	if m.cursor != 1 {
		t.Fatalf("cursor: got %d, want 1", m.cursor)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if !ctrl.State().KeyguardOccluded {
		t.Error("second row should be keyguardOccluded")
	}

	m = press(t, m, runes("k"), runes("k"), runes("k"))
	if m.cursor != 0 {
		t.Errorf("cursor should stop at 0, got %d", m.cursor)
	}
	m = press(t, m, runes("G"))
	if m.cursor != len(m.rows)-1 {
		t.Errorf("G should move to the last row, got %d", m.cursor)
	}
}

func TestCycleBarState(t *testing.T) {
	m, ctrl := newTestModel(t)
	for i, name := range m.rows {
		if name == "statusBarState" {
			m.cursor = i
		}
	}
	want := []model.BarState{model.BarStateKeyguard, model.BarStateShadeLocked, model.BarStateShade}
	for _, w := range want {
		m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
		if got := ctrl.State().StatusBarState; got != w {
			t.Fatalf("statusBarState: got %v, want %v", got, w)
		}
	}
}

func TestBarHeightKeys(t *testing.T) {
	m, ctrl := newTestModel(t)
	m = press(t, m, runes("+"))
	if got := ctrl.Configuration().Layout.Height; got != 80 {
		t.Errorf("height after +: got %d, want 80", got)
	}
	m = press(t, m, runes("-"), runes("-"))
	if got := ctrl.Configuration().Layout.Height; got != 64 {
		t.Errorf("height after --: got %d, want 64", got)
	}

	ctrl.SetPanelVisible(true)
	m = press(t, m, runes("+"))
	if m.last == nil || m.last.err != nil {
		t.Fatalf("resizing an expanded window should succeed: %+v", m.last)
	}
	if got := ctrl.BarHeight(); got != 72 {
		t.Errorf("collapsed height while expanded: got %d, want 72", got)
	}
	if !ctrl.Configuration().Layout.Expanded() {
		t.Error("window should stay expanded")
	}
	ctrl.SetPanelVisible(false)
	if got := ctrl.Configuration().Layout.Height; got != 72 {
		t.Errorf("height after collapse: got %d, want 72", got)
	}
}

func TestMediaAndHelp(t *testing.T) {
	m, ctrl := newTestModel(t)
	m = press(t, m, runes("m"))
	if !ctrl.Prefs().ShowingMedia {
		t.Error("m should toggle showingMedia")
	}

	m = press(t, m, runes("?"))
	if !m.showHelp || !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatal("? should open help")
	}
	m = press(t, m, runes("x"))
	if m.showHelp {
		t.Error("any key should close help")
	}
}

func TestViewShowsConfiguration(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace}, runes("d"))
	view := m.View()
	for _, want := range []string{"keyguardShowing", "match_parent", "hasTopUi", model.DumpHeader} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
