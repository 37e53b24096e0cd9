package platform

import "github.com/mj1618/statusbar-window/internal/model"

// Surface hosts the status bar window and accepts layout updates.
type Surface interface {
	// AddSurface creates the window with its initial layout.
	AddSurface(lp model.Layout) (Handle, error)

	// UpdateSurface pushes a new layout. It reports whether any attribute
	// differed from what the host had and was applied.
	UpdateSurface(h Handle, lp model.Layout) bool

	// SetFitsSystemWindows toggles inset handling on the window's root view.
	SetFitsSystemWindows(h Handle, fits bool)
}

// Visibility tells the host that this process owns top-level UI.
type Visibility interface {
	// SetForegroundUI returns an error wrapping ErrRemoteUnavailable when
	// the host process cannot be reached.
	SetForegroundUI(hasTopUI bool) error
}

// Preferences is a synchronous key/value preference source with change
// notification. Keys are namespaced, e.g. "system:accelerometer_rotation".
type Preferences interface {
	GetBool(key string, def bool) bool

	// Watch registers fn to be called with the key of every changed
	// preference. The returned func removes the registration.
	Watch(fn func(key string)) (cancel func())
}

// BlurOverlay is the keyguard blur layer. All methods are idempotent.
type BlurOverlay interface {
	Show()
	Hide()
	Resize(width, height int)
}

// Display reports display geometry.
type Display interface {
	RealSize() (width, height int)
}
