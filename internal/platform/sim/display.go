package sim

import (
	"sync"

	"github.com/mj1618/statusbar-window/internal/platform"
)

// Display reports a configurable real size.
type Display struct {
	mu   sync.Mutex
	size platform.Size
}

func NewDisplay(size platform.Size) *Display {
	return &Display{size: size}
}

func (d *Display) RealSize() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.size.Width, d.size.Height
}

// SetSize changes the size, e.g. to simulate a rotation.
func (d *Display) SetSize(size platform.Size) {
	d.mu.Lock()
	d.size = size
	d.mu.Unlock()
}
