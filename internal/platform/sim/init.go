package sim

import "github.com/mj1618/statusbar-window/internal/platform"

// DefaultDisplaySize is used when Options.Display is unset.
var DefaultDisplaySize = platform.Size{Width: 1080, Height: 1920}

func init() {
	platform.NewProviderFunc = func(opts platform.Options) (*platform.Provider, error) {
		return NewProvider(opts), nil
	}
}

// NewProvider builds a Provider from fresh simulated collaborators.
func NewProvider(opts platform.Options) *platform.Provider {
	size := opts.Display
	if size.Width <= 0 || size.Height <= 0 {
		size = DefaultDisplaySize
	}
	var prefs platform.Preferences = NewPreferences()
	if opts.Preferences != nil {
		prefs = opts.Preferences
	}
	vis := NewVisibility()
	vis.SetDown(opts.VisibilityDown)
	return &platform.Provider{
		Surface:     NewSurface(),
		Visibility:  vis,
		Preferences: prefs,
		BlurOverlay: NewBlurOverlay(),
		Display:     NewDisplay(size),
	}
}
