package sim

import (
	"fmt"
	"sync"

	"github.com/mj1618/statusbar-window/internal/platform"
)

// Visibility records foreground UI signals. While down, every call fails
// with platform.ErrRemoteUnavailable.
type Visibility struct {
	mu    sync.Mutex
	down  bool
	calls []bool
	value bool
}

func NewVisibility() *Visibility {
	return &Visibility{}
}

func (v *Visibility) SetForegroundUI(hasTopUI bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls = append(v.calls, hasTopUI)
	if v.down {
		return fmt.Errorf("set foreground ui %v: %w", hasTopUI, platform.ErrRemoteUnavailable)
	}
	v.value = hasTopUI
	return nil
}

// SetDown makes the host unreachable (true) or reachable again (false).
func (v *Visibility) SetDown(down bool) {
	v.mu.Lock()
	v.down = down
	v.mu.Unlock()
}

// Calls returns every value passed to SetForegroundUI, including failed calls.
func (v *Visibility) Calls() []bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]bool(nil), v.calls...)
}

// Value is the last value the host accepted.
func (v *Visibility) Value() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.value
}
