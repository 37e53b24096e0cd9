package platform

import (
	"errors"
	"fmt"
	"runtime"
)

// Provider bundles all collaborator backends the controller needs.
type Provider struct {
	Surface     Surface
	Visibility  Visibility
	Preferences Preferences
	BlurOverlay BlurOverlay
	Display     Display
}

// ErrUnsupported is returned when no backend has registered itself.
var ErrUnsupported = fmt.Errorf("sbwin has no window backend on %s/%s; import internal/platform/sim", runtime.GOOS, runtime.GOARCH)

// ErrRemoteUnavailable is wrapped by Visibility implementations when the
// host process cannot be reached.
var ErrRemoteUnavailable = errors.New("remote host unavailable")

// NewProviderFunc is set by backend packages via init().
// See internal/platform/sim/init.go for the simulated registration.
var NewProviderFunc func(opts Options) (*Provider, error)

// NewProvider returns a Provider from the registered backend.
func NewProvider(opts Options) (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc(opts)
}
