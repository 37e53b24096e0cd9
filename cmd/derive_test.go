package cmd

import (
	"testing"

	"github.com/mj1618/statusbar-window/internal/model"
)

func TestBuildState(t *testing.T) {
	s, err := buildState([]string{"keyguardShowing=true", " statusBarState = shade-locked ", "bouncerShowing=1"})
	if err != nil {
		t.Fatal(err)
	}
	want := model.State{KeyguardShowing: true, StatusBarState: model.BarStateShadeLocked, BouncerShowing: true}
	if s != want {
		t.Errorf("got %+v, want %+v", s, want)
	}
}

func TestBuildState_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"no equals", "keyguardShowing"},
		{"empty name", "=true"},
		{"unknown field", "bogus=true"},
		{"bad bool", "qsExpanded=perhaps"},
		{"bad state", "statusBarState=asleep"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := buildState([]string{tt.in}); err == nil {
				t.Errorf("buildState(%q): expected error", tt.in)
			}
		})
	}
}

func TestBuildState_MatchesController(t *testing.T) {
	assignments := []string{"panelVisible=true", "panelExpanded=true", "forceWindowCollapsed=true"}
	s, err := buildState(assignments)
	if err != nil {
		t.Fatal(err)
	}

	ctrl, _ := newTestController(t)
	for _, a := range assignments {
		name, value, _ := parseAssignment(a)
		if _, err := ctrl.Set(name, value); err != nil {
			t.Fatalf("Set(%q): %v", a, err)
		}
	}
	if got := ctrl.State(); got != s {
		t.Fatalf("state mismatch:\nderive     %+v\ncontroller %+v", s, got)
	}

	in := model.Inputs{BarHeight: 72}
	if got, want := model.Derive(s, in).Layout.Focus, model.FocusWithIMEAlt; got != want {
		t.Errorf("focus: got %s, want %s", got, want)
	}
	if got := ctrl.Configuration().Layout.Focus; got != model.FocusWithIMEAlt {
		t.Errorf("controller focus: got %s", got)
	}
}
