package model

import "time"

// Inputs holds everything besides State that derivation reads.
type Inputs struct {
	BarHeight              int
	KeyguardScreenRotation bool
	KeyguardBlurEnabled    bool
	ShowingMedia           bool
	DozeBrightness         float32
	AwakeInterval          time.Duration
}

// DefaultAwakeInterval is the keyguard user activity timeout.
const DefaultAwakeInterval = 10 * time.Second

// Derive computes the full configuration for s. Every field is computed on
// each call, starting from BaseLayout, so nothing carries over between calls.
func Derive(s State, in Inputs) Configuration {
	lp := BaseLayout(in.BarHeight)

	applyKeyguardFlags(&lp, s, in)
	lp.ForceStatusBarVisible = s.ForceStatusBarVisible
	lp.Focus = focusability(s)
	lp.Orientation = orientation(s, in)
	if Expanded(s) {
		lp.Height = HeightMatchParent
	}
	if keyguardAwake(s) {
		lp.UserActivityTimeoutMS = in.AwakeInterval.Milliseconds()
	}
	lp.DisableUserActivity = keyguardAwake(s) && !s.ForceUserActivity
	lp.NotTouchModal = s.HeadsUpShowing
	if s.ForceDozeBrightness {
		lp.Brightness = in.DozeBrightness
	}

	return Configuration{
		Layout:            lp,
		FitsSystemWindows: !s.KeyguardShowingAndNotOccluded(),
		HasTopUI:          hasTopUI(s),
	}
}

// Expanded reports whether the window should cover the whole display.
func Expanded(s State) bool {
	return !s.ForceCollapsed && (s.KeyguardShowingAndNotOccluded() ||
		s.PanelVisible || s.KeyguardFadingAway || s.BouncerShowing || s.HeadsUpShowing)
}

// hasTopUI currently follows Expanded.
func hasTopUI(s State) bool {
	return Expanded(s)
}

// ShouldShowBlur reports whether the keyguard blur overlay should be visible.
func ShouldShowBlur(s State, in Inputs) bool {
	return in.KeyguardBlurEnabled && !in.ShowingMedia && s.KeyguardShowing && !s.KeyguardOccluded
}

// applyKeyguardFlags sets the keyguard and wallpaper flags. The backdrop rule
// runs last and decides the final wallpaper value.
func applyKeyguardFlags(lp *Layout, s State, in Inputs) {
	lp.Keyguard = s.KeyguardShowing
	if s.KeyguardShowing && (!in.KeyguardBlurEnabled || in.ShowingMedia) {
		lp.ShowWallpaper = true
	}

	lp.ShowWallpaper = s.KeyguardShowing && !s.BackdropShowing
}

func focusability(s State) Focusability {
	panelFocusable := s.StatusBarFocusable && s.PanelExpanded
	switch {
	case (s.KeyguardShowing && s.KeyguardNeedsInput && s.BouncerShowing) || s.RemoteInputActive:
		return FocusFull
	case s.KeyguardShowingAndNotOccluded() || panelFocusable:
		return FocusWithIMEAlt
	default:
		return FocusNone
	}
}

func orientation(s State, in Inputs) Orientation {
	if !s.KeyguardShowingAndNotOccluded() {
		return OrientationUnspecified
	}
	if in.KeyguardScreenRotation {
		return OrientationUser
	}
	return OrientationNoSensor
}

// keyguardAwake is the guard shared by the activity timeout and input rules.
func keyguardAwake(s State) bool {
	return s.KeyguardShowingAndNotOccluded() && s.StatusBarState == BarStateKeyguard && !s.QsExpanded
}
