package broadcast

import (
	"github.com/mj1618/statusbar-window/internal/model"
	"github.com/mj1618/statusbar-window/internal/platform"
)

// LayoutChangedData is the payload of "layout_changed".
type LayoutChangedData struct {
	Handle  platform.Handle `json:"handle"`
	Changed bool            `json:"changed"`
	Layout  model.Layout    `json:"layout"`
}

// FitsChangedData is the payload of "fits_changed".
type FitsChangedData struct {
	Handle platform.Handle `json:"handle"`
	Fits   bool            `json:"fitsSystemWindows"`
}

// TopUIChangedData is the payload of "top_ui_changed".
type TopUIChangedData struct {
	HasTopUI bool   `json:"hasTopUi"`
	Error    string `json:"error,omitempty"`
}

// Surface wraps a platform.Surface and publishes every update it forwards.
type Surface struct {
	platform.Surface
	hub *Hub
}

// WrapSurface returns s decorated to publish on hub.
func WrapSurface(s platform.Surface, hub *Hub) *Surface {
	return &Surface{Surface: s, hub: hub}
}

func (s *Surface) UpdateSurface(h platform.Handle, lp model.Layout) bool {
	changed := s.Surface.UpdateSurface(h, lp)
	s.hub.Publish(TypeLayoutChanged, LayoutChangedData{Handle: h, Changed: changed, Layout: lp})
	return changed
}

func (s *Surface) SetFitsSystemWindows(h platform.Handle, fits bool) {
	s.Surface.SetFitsSystemWindows(h, fits)
	s.hub.Publish(TypeFitsChanged, FitsChangedData{Handle: h, Fits: fits})
}

// Visibility wraps a platform.Visibility and publishes every signal,
// including failed ones.
type Visibility struct {
	platform.Visibility
	hub *Hub
}

// WrapVisibility returns v decorated to publish on hub.
func WrapVisibility(v platform.Visibility, hub *Hub) *Visibility {
	return &Visibility{Visibility: v, hub: hub}
}

func (v *Visibility) SetForegroundUI(hasTopUI bool) error {
	err := v.Visibility.SetForegroundUI(hasTopUI)
	data := TopUIChangedData{HasTopUI: hasTopUI}
	if err != nil {
		data.Error = err.Error()
	}
	v.hub.Publish(TypeTopUIChanged, data)
	return err
}

// Wrap decorates the surface and visibility collaborators of p in place.
func Wrap(p *platform.Provider, hub *Hub) {
	p.Surface = WrapSurface(p.Surface, hub)
	p.Visibility = WrapVisibility(p.Visibility, hub)
}
