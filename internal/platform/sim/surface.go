package sim

import (
	"fmt"
	"sync"

	"github.com/mj1618/statusbar-window/internal/model"
	"github.com/mj1618/statusbar-window/internal/platform"
)

// Surface records every layout pushed to it.
type Surface struct {
	mu      sync.Mutex
	next    platform.Handle
	layouts map[platform.Handle]model.Layout
	fits    map[platform.Handle]bool
	updates []model.Layout
	fitsLog []bool
}

// NewSurface returns an empty surface host.
func NewSurface() *Surface {
	return &Surface{
		layouts: make(map[platform.Handle]model.Layout),
		fits:    make(map[platform.Handle]bool),
	}
}

func (s *Surface) AddSurface(lp model.Layout) (platform.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lp.Height == 0 {
		return 0, fmt.Errorf("add surface: height must be set")
	}
	s.next++
	s.layouts[s.next] = lp
	return s.next, nil
}

func (s *Surface) UpdateSurface(h platform.Handle, lp model.Layout) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.layouts[h]
	if !ok {
		return false
	}
	s.updates = append(s.updates, lp)
	if model.DiffLayout(prev, lp) == nil {
		return false
	}
	s.layouts[h] = lp
	return true
}

func (s *Surface) SetFitsSystemWindows(h platform.Handle, fits bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.layouts[h]; !ok {
		return
	}
	s.fits[h] = fits
	s.fitsLog = append(s.fitsLog, fits)
}

// Layout returns the layout currently held for h.
func (s *Surface) Layout(h platform.Handle) (model.Layout, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lp, ok := s.layouts[h]
	return lp, ok
}

// Fits returns the last fits-system-windows value set for h.
func (s *Surface) Fits(h platform.Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fits[h]
}

// UpdateCount is the number of UpdateSurface calls received.
func (s *Surface) UpdateCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.updates)
}

// FitsCalls returns every value passed to SetFitsSystemWindows, in order.
func (s *Surface) FitsCalls() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bool(nil), s.fitsLog...)
}
