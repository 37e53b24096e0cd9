package model

import (
	"testing"
	"time"
)

func testInputs() Inputs {
	return Inputs{
		BarHeight:      72,
		DozeBrightness: 1.0 / 255,
		AwakeInterval:  DefaultAwakeInterval,
	}
}

// allStates enumerates every bool combination of the fields that feed
// Expanded, plus a few others, so properties can be checked exhaustively.
func allStates() []State {
	var states []State
	for mask := 0; mask < 1<<8; mask++ {
		bit := func(i int) bool { return mask&(1<<i) != 0 }
		states = append(states, State{
			KeyguardShowing:    bit(0),
			KeyguardOccluded:   bit(1),
			PanelVisible:       bit(2),
			KeyguardFadingAway: bit(3),
			BouncerShowing:     bit(4),
			HeadsUpShowing:     bit(5),
			ForceCollapsed:     bit(6),
			RemoteInputActive:  bit(7),
		})
	}
	return states
}

func TestDerive_ZeroStateMatchesBaseLayout(t *testing.T) {
	in := testInputs()
	cfg := Derive(State{}, in)
	if diffs := DiffLayout(BaseLayout(in.BarHeight), cfg.Layout); diffs != nil {
		t.Errorf("zero state should derive the base layout, got diffs %v", diffs)
	}
	if !cfg.FitsSystemWindows {
		t.Error("fitsSystemWindows should be true when the keyguard is not showing")
	}
	if cfg.HasTopUI {
		t.Error("hasTopUi should be false for the zero state")
	}
}

func TestDerive_HasTopUIEqualsExpanded(t *testing.T) {
	in := testInputs()
	for _, s := range allStates() {
		cfg := Derive(s, in)
		if cfg.HasTopUI != Expanded(s) {
			t.Fatalf("state %+v: hasTopUi=%v expanded=%v", s, cfg.HasTopUI, Expanded(s))
		}
		if cfg.Layout.Expanded() != Expanded(s) {
			t.Fatalf("state %+v: height %d does not match expanded=%v", s, cfg.Layout.Height, Expanded(s))
		}
	}
}

func TestDerive_ForceCollapsedWins(t *testing.T) {
	s := State{
		KeyguardShowing:    true,
		PanelVisible:       true,
		KeyguardFadingAway: true,
		BouncerShowing:     true,
		HeadsUpShowing:     true,
		ForceCollapsed:     true,
	}
	cfg := Derive(s, testInputs())
	if cfg.Layout.Height != 72 {
		t.Errorf("height: got %d, want bar height 72", cfg.Layout.Height)
	}
	if cfg.HasTopUI {
		t.Error("hasTopUi should be false when force collapsed")
	}
}

func TestDerive_PanelVisibleExpands(t *testing.T) {
	cfg := Derive(State{PanelVisible: true, StatusBarFocusable: true}, testInputs())
	if cfg.Layout.Height != HeightMatchParent {
		t.Errorf("height: got %d, want match parent", cfg.Layout.Height)
	}
}

func TestDerive_Focusability(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  Focusability
	}{
		{"zero", State{}, FocusNone},
		{"remote input without keyguard", State{RemoteInputActive: true}, FocusFull},
		{"remote input beats occluded keyguard", State{RemoteInputActive: true, KeyguardShowing: true, KeyguardOccluded: true}, FocusFull},
		{"bouncer needs input", State{KeyguardShowing: true, KeyguardNeedsInput: true, BouncerShowing: true}, FocusFull},
		{"bouncer without input", State{KeyguardShowing: true, BouncerShowing: true}, FocusWithIMEAlt},
		{"keyguard showing", State{KeyguardShowing: true}, FocusWithIMEAlt},
		{"keyguard occluded", State{KeyguardShowing: true, KeyguardOccluded: true}, FocusNone},
		{"panel focusable and expanded", State{StatusBarFocusable: true, PanelExpanded: true}, FocusWithIMEAlt},
		{"panel expanded only", State{PanelExpanded: true}, FocusNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Derive(tt.state, testInputs()).Layout.Focus
			if got != tt.want {
				t.Errorf("focus: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDerive_RemoteInputAlwaysFullyFocusable(t *testing.T) {
	in := testInputs()
	for _, s := range allStates() {
		if !s.RemoteInputActive || s.KeyguardShowing {
			continue
		}
		s.StatusBarFocusable = true
		s.PanelExpanded = true
		if got := Derive(s, in).Layout.Focus; got != FocusFull {
			t.Fatalf("state %+v: focus %q, want full", s, got)
		}
	}
}

func TestDerive_Orientation(t *testing.T) {
	in := testInputs()
	s := State{KeyguardShowing: true}

	in.KeyguardScreenRotation = true
	if got := Derive(s, in).Layout.Orientation; got != OrientationUser {
		t.Errorf("rotation enabled: got %q, want user", got)
	}

	in.KeyguardScreenRotation = false
	if got := Derive(s, in).Layout.Orientation; got != OrientationNoSensor {
		t.Errorf("rotation disabled: got %q, want nosensor", got)
	}

	s.KeyguardOccluded = true
	for _, rot := range []bool{true, false} {
		in.KeyguardScreenRotation = rot
		if got := Derive(s, in).Layout.Orientation; got != OrientationUnspecified {
			t.Errorf("occluded rotation=%v: got %q, want unspecified", rot, got)
		}
	}
}

func TestDerive_WallpaperBackdropOverride(t *testing.T) {
	in := testInputs()
	in.KeyguardBlurEnabled = true
	in.ShowingMedia = false

	cfg := Derive(State{KeyguardShowing: true}, in)
	if !cfg.Layout.ShowWallpaper {
		t.Error("showWallpaper should be true when keyguard showing without backdrop, even with blur enabled")
	}
	if !cfg.Layout.Keyguard {
		t.Error("keyguard flag should be set")
	}

	in.KeyguardBlurEnabled = false
	cfg = Derive(State{KeyguardShowing: true, BackdropShowing: true}, in)
	if cfg.Layout.ShowWallpaper {
		t.Error("showWallpaper should be false while the backdrop is showing")
	}

	cfg = Derive(State{}, in)
	if cfg.Layout.ShowWallpaper || cfg.Layout.Keyguard {
		t.Error("keyguard and wallpaper flags should be clear when the keyguard is hidden")
	}
}

func TestDerive_UserActivity(t *testing.T) {
	in := testInputs()
	in.AwakeInterval = 7 * time.Second
	s := State{KeyguardShowing: true, StatusBarState: BarStateKeyguard}

	lp := Derive(s, in).Layout
	if lp.UserActivityTimeoutMS != 7000 {
		t.Errorf("timeout: got %d, want 7000", lp.UserActivityTimeoutMS)
	}
	if !lp.DisableUserActivity {
		t.Error("user activity should be disabled on the keyguard")
	}

	s.ForceUserActivity = true
	lp = Derive(s, in).Layout
	if lp.UserActivityTimeoutMS != 7000 {
		t.Errorf("forceUserActivity should not affect the timeout, got %d", lp.UserActivityTimeoutMS)
	}
	if lp.DisableUserActivity {
		t.Error("forceUserActivity should re-enable user activity")
	}

	for name, st := range map[string]State{
		"qs expanded":  {KeyguardShowing: true, StatusBarState: BarStateKeyguard, QsExpanded: true},
		"shade state":  {KeyguardShowing: true, StatusBarState: BarStateShade},
		"shade locked": {KeyguardShowing: true, StatusBarState: BarStateShadeLocked},
		"occluded":     {KeyguardShowing: true, KeyguardOccluded: true, StatusBarState: BarStateKeyguard},
	} {
		lp := Derive(st, in).Layout
		if lp.UserActivityTimeoutMS != NoTimeoutOverride || lp.DisableUserActivity {
			t.Errorf("%s: got timeout=%d disable=%v, want no override", name, lp.UserActivityTimeoutMS, lp.DisableUserActivity)
		}
	}
}

func TestDerive_ModalBrightnessAndFits(t *testing.T) {
	in := testInputs()

	cfg := Derive(State{HeadsUpShowing: true, ForceDozeBrightness: true, ForceStatusBarVisible: true}, in)
	if !cfg.Layout.NotTouchModal {
		t.Error("heads-up should make the window not touch modal")
	}
	if cfg.Layout.Brightness != in.DozeBrightness {
		t.Errorf("brightness: got %v, want %v", cfg.Layout.Brightness, in.DozeBrightness)
	}
	if !cfg.Layout.ForceStatusBarVisible {
		t.Error("forceStatusBarVisible should map to the layout flag")
	}

	cfg = Derive(State{KeyguardShowing: true}, in)
	if cfg.FitsSystemWindows {
		t.Error("fitsSystemWindows should be false while the keyguard is showing and not occluded")
	}
	if cfg.Layout.Brightness != BrightnessOverrideNone {
		t.Errorf("brightness: got %v, want override none", cfg.Layout.Brightness)
	}
}

func TestDerive_NoStaleFields(t *testing.T) {
	in := testInputs()
	busy := State{
		KeyguardShowing:     true,
		KeyguardNeedsInput:  true,
		BouncerShowing:      true,
		HeadsUpShowing:      true,
		ForceDozeBrightness: true,
		StatusBarState:      BarStateKeyguard,
	}
	_ = Derive(busy, in)
	if diffs := DiffLayout(BaseLayout(in.BarHeight), Derive(State{}, in).Layout); diffs != nil {
		t.Errorf("deriving after a busy state left fields behind: %v", diffs)
	}
}

func TestShouldShowBlur(t *testing.T) {
	in := Inputs{KeyguardBlurEnabled: true}
	if !ShouldShowBlur(State{KeyguardShowing: true}, in) {
		t.Error("blur should show on an unoccluded keyguard")
	}
	if ShouldShowBlur(State{KeyguardShowing: true, KeyguardOccluded: true}, in) {
		t.Error("blur should hide when occluded")
	}
	in.ShowingMedia = true
	if ShouldShowBlur(State{KeyguardShowing: true}, in) {
		t.Error("blur should hide while media is showing")
	}
	if ShouldShowBlur(State{KeyguardShowing: true}, Inputs{}) {
		t.Error("blur should hide when disabled")
	}
}
