package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// BarState is the status bar mode reported by the shade.
type BarState int

const (
	BarStateShade BarState = iota
	BarStateKeyguard
	BarStateShadeLocked
)

// ErrUnknownBarState is returned when a bar state name cannot be parsed.
var ErrUnknownBarState = errors.New("unknown status bar state")

func (b BarState) String() string {
	switch b {
	case BarStateShade:
		return "shade"
	case BarStateKeyguard:
		return "keyguard"
	case BarStateShadeLocked:
		return "shade-locked"
	default:
		return fmt.Sprintf("BarState(%d)", int(b))
	}
}

// ParseBarState accepts the names printed by String as well as the numeric values.
func ParseBarState(s string) (BarState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shade", "0":
		return BarStateShade, nil
	case "keyguard", "1":
		return BarStateKeyguard, nil
	case "shade-locked", "shade_locked", "2":
		return BarStateShadeLocked, nil
	default:
		return BarStateShade, fmt.Errorf("%w: %q (expected shade, keyguard, or shade-locked)", ErrUnknownBarState, s)
	}
}

// MarshalText encodes the state by name in YAML and JSON output.
func (b BarState) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *BarState) UnmarshalText(text []byte) error {
	v, err := ParseBarState(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// State is the set of flags the window configuration is derived from.
// Field order matches the dump order.
type State struct {
	KeyguardShowing       bool     `yaml:"keyguardShowing"       json:"keyguardShowing"`
	KeyguardOccluded      bool     `yaml:"keyguardOccluded"      json:"keyguardOccluded"`
	KeyguardNeedsInput    bool     `yaml:"keyguardNeedsInput"    json:"keyguardNeedsInput"`
	PanelVisible          bool     `yaml:"panelVisible"          json:"panelVisible"`
	PanelExpanded         bool     `yaml:"panelExpanded"         json:"panelExpanded"`
	StatusBarFocusable    bool     `yaml:"statusBarFocusable"    json:"statusBarFocusable"`
	BouncerShowing        bool     `yaml:"bouncerShowing"        json:"bouncerShowing"`
	KeyguardFadingAway    bool     `yaml:"keyguardFadingAway"    json:"keyguardFadingAway"`
	QsExpanded            bool     `yaml:"qsExpanded"            json:"qsExpanded"`
	HeadsUpShowing        bool     `yaml:"headsUpShowing"        json:"headsUpShowing"`
	ForceStatusBarVisible bool     `yaml:"forceStatusBarVisible" json:"forceStatusBarVisible"`
	ForceCollapsed        bool     `yaml:"forceCollapsed"        json:"forceCollapsed"`
	ForceDozeBrightness   bool     `yaml:"forceDozeBrightness"   json:"forceDozeBrightness"`
	ForceUserActivity     bool     `yaml:"forceUserActivity"     json:"forceUserActivity"`
	BackdropShowing       bool     `yaml:"backdropShowing"       json:"backdropShowing"`
	StatusBarState        BarState `yaml:"statusBarState"        json:"statusBarState"`
	RemoteInputActive     bool     `yaml:"remoteInputActive"     json:"remoteInputActive"`
}

// KeyguardShowingAndNotOccluded is recomputed on every call.
func (s State) KeyguardShowingAndNotOccluded() bool {
	return s.KeyguardShowing && !s.KeyguardOccluded
}

// Field is one named State value.
type Field struct {
	Name  string
	Value string
}

// Fields lists every State field in declaration order.
func (s State) Fields() []Field {
	b := strconv.FormatBool
	return []Field{
		{"keyguardShowing", b(s.KeyguardShowing)},
		{"keyguardOccluded", b(s.KeyguardOccluded)},
		{"keyguardNeedsInput", b(s.KeyguardNeedsInput)},
		{"panelVisible", b(s.PanelVisible)},
		{"panelExpanded", b(s.PanelExpanded)},
		{"statusBarFocusable", b(s.StatusBarFocusable)},
		{"bouncerShowing", b(s.BouncerShowing)},
		{"keyguardFadingAway", b(s.KeyguardFadingAway)},
		{"qsExpanded", b(s.QsExpanded)},
		{"headsUpShowing", b(s.HeadsUpShowing)},
		{"forceStatusBarVisible", b(s.ForceStatusBarVisible)},
		{"forceCollapsed", b(s.ForceCollapsed)},
		{"forceDozeBrightness", b(s.ForceDozeBrightness)},
		{"forceUserActivity", b(s.ForceUserActivity)},
		{"backdropShowing", b(s.BackdropShowing)},
		{"statusBarState", strconv.Itoa(int(s.StatusBarState))},
		{"remoteInputActive", b(s.RemoteInputActive)},
	}
}

// FieldNames returns the State field names in declaration order.
func FieldNames() []string {
	fields := State{}.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// ErrUnknownField is returned by SetField for names that are not State fields.
var ErrUnknownField = errors.New("unknown state field")

// SetField assigns a field by its dump name. Boolean fields accept anything
// strconv.ParseBool accepts; statusBarState accepts ParseBarState input.
// Setting panelVisible also sets statusBarFocusable, and forceWindowCollapsed
// is accepted for forceCollapsed.
func (s *State) SetField(name, value string) error {
	if name == "statusBarState" {
		bs, err := ParseBarState(value)
		if err != nil {
			return err
		}
		s.StatusBarState = bs
		return nil
	}

	target := s.boolField(name)
	if target == nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	v, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("field %s: invalid boolean %q", name, value)
	}
	*target = v
	if name == "panelVisible" {
		s.StatusBarFocusable = v
	}
	return nil
}

func (s *State) boolField(name string) *bool {
	switch name {
	case "keyguardShowing":
		return &s.KeyguardShowing
	case "keyguardOccluded":
		return &s.KeyguardOccluded
	case "keyguardNeedsInput":
		return &s.KeyguardNeedsInput
	case "panelVisible":
		return &s.PanelVisible
	case "panelExpanded":
		return &s.PanelExpanded
	case "statusBarFocusable":
		return &s.StatusBarFocusable
	case "bouncerShowing":
		return &s.BouncerShowing
	case "keyguardFadingAway":
		return &s.KeyguardFadingAway
	case "qsExpanded":
		return &s.QsExpanded
	case "headsUpShowing":
		return &s.HeadsUpShowing
	case "forceStatusBarVisible":
		return &s.ForceStatusBarVisible
	case "forceCollapsed", "forceWindowCollapsed":
		return &s.ForceCollapsed
	case "forceDozeBrightness":
		return &s.ForceDozeBrightness
	case "forceUserActivity":
		return &s.ForceUserActivity
	case "backdropShowing":
		return &s.BackdropShowing
	case "remoteInputActive":
		return &s.RemoteInputActive
	}
	return nil
}
