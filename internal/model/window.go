package model

// Focusability is how the window takes key input.
type Focusability string

const (
	// FocusNone marks the window not focusable.
	FocusNone Focusability = "none"
	// FocusWithIMEAlt makes the window focusable but keeps the input method
	// attached to whatever is behind it.
	FocusWithIMEAlt Focusability = "ime-alt"
	// FocusFull makes the window focusable and the input method target.
	FocusFull Focusability = "full"
)

// Orientation is the screen orientation policy requested by the window.
type Orientation string

const (
	OrientationUnspecified Orientation = "unspecified"
	OrientationUser        Orientation = "user"
	OrientationNoSensor    Orientation = "nosensor"
)

const (
	// HeightMatchParent makes the window fill the display.
	HeightMatchParent = -1
	// NoTimeoutOverride leaves the user activity timeout to the system.
	NoTimeoutOverride int64 = -1
	// BrightnessOverrideNone leaves the screen brightness to the system.
	BrightnessOverrideNone float32 = -1
)

// Fixed attributes of the status bar window.
const (
	WindowType    = "status_bar"
	WindowTitle   = "StatusBar"
	WindowGravity = "top"
)

// Layout is the set of window attributes pushed to the surface host.
type Layout struct {
	Type                  string       `yaml:"type"                    json:"type"`
	Title                 string       `yaml:"title"                   json:"title"`
	Gravity               string       `yaml:"gravity"                 json:"gravity"`
	SoftInputAdjustResize bool         `yaml:"softInputAdjustResize"   json:"softInputAdjustResize"`
	Height                int          `yaml:"height"                  json:"height"`
	Focus                 Focusability `yaml:"focus"                   json:"focus"`
	Keyguard              bool         `yaml:"keyguard"                json:"keyguard"`
	ForceStatusBarVisible bool         `yaml:"forceStatusBarVisible"   json:"forceStatusBarVisible"`
	ShowWallpaper         bool         `yaml:"showWallpaper"           json:"showWallpaper"`
	Orientation           Orientation  `yaml:"orientation"             json:"orientation"`
	UserActivityTimeoutMS int64        `yaml:"userActivityTimeoutMs"   json:"userActivityTimeoutMs"`
	DisableUserActivity   bool         `yaml:"disableUserActivity"     json:"disableUserActivity"`
	NotTouchModal         bool         `yaml:"notTouchModal"           json:"notTouchModal"`
	Brightness            float32      `yaml:"brightness"              json:"brightness"`
}

// BaseLayout returns the layout used when the window is first added.
func BaseLayout(barHeight int) Layout {
	return Layout{
		Type:                  WindowType,
		Title:                 WindowTitle,
		Gravity:               WindowGravity,
		SoftInputAdjustResize: true,
		Height:                barHeight,
		Focus:                 FocusNone,
		Orientation:           OrientationUnspecified,
		UserActivityTimeoutMS: NoTimeoutOverride,
		Brightness:            BrightnessOverrideNone,
	}
}

// Expanded reports whether the layout fills the display.
func (l Layout) Expanded() bool {
	return l.Height == HeightMatchParent
}

// Configuration is everything derived from a State.
type Configuration struct {
	Layout            Layout `yaml:"layout"            json:"layout"`
	FitsSystemWindows bool   `yaml:"fitsSystemWindows" json:"fitsSystemWindows"`
	HasTopUI          bool   `yaml:"hasTopUi"          json:"hasTopUi"`
}
