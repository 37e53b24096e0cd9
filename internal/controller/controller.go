// Package controller owns the status bar window state. Every mutation
// re-derives the full window configuration and applies only what changed.
package controller

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/mj1618/statusbar-window/internal/model"
	"github.com/mj1618/statusbar-window/internal/platform"
)

// Resources are device capabilities fixed for the lifetime of the window.
type Resources struct {
	LockscreenRotation bool // device allows the keyguard to rotate
	RotationOverride   bool // force keyguard rotation regardless of preferences
	BlurSupported      bool // device can render the keyguard blur layer
}

// Options configures a Controller.
type Options struct {
	BarHeight      int
	AwakeInterval  time.Duration // zero = model.DefaultAwakeInterval
	DozeBrightness float32
	Resources      Resources
	Logger         *slog.Logger // nil = discard
}

// ApplyResult describes the side effects of one recomputation.
type ApplyResult struct {
	Changes        []model.LayoutChange `yaml:"changes,omitempty"    json:"changes,omitempty"`
	SurfaceUpdated bool                 `yaml:"surfaceUpdated"       json:"surfaceUpdated"`
	FitsChanged    bool                 `yaml:"fitsChanged"          json:"fitsChanged"`
	TopUISignalled bool                 `yaml:"topUiSignalled"       json:"topUiSignalled"`
	TopUIErr       error                `yaml:"-"                    json:"-"`
}

// PrefsSnapshot is the preference-derived input cache.
type PrefsSnapshot struct {
	KeyguardScreenRotation bool `yaml:"keyguardScreenRotation" json:"keyguardScreenRotation"`
	KeyguardBlurEnabled    bool `yaml:"keyguardBlurEnabled"    json:"keyguardBlurEnabled"`
	ShowingMedia           bool `yaml:"showingMedia"           json:"showingMedia"`
}

// Controller serializes all mutations behind one mutex, so each
// derive+apply sequence runs to completion before the next starts.
type Controller struct {
	mu  sync.Mutex
	log *slog.Logger

	surface    platform.Surface
	visibility platform.Visibility
	prefs      platform.Preferences
	blur       platform.BlurOverlay // nil when blur is unsupported
	display    platform.Display
	res        Resources
	handle     platform.Handle

	state       model.State
	inputs      model.Inputs
	applied     model.Layout
	appliedFits bool
	hasTopUI    bool

	stopWatch func()
}

// New adds the status bar surface and starts watching preferences.
func New(p *platform.Provider, opts Options) (*Controller, error) {
	if p == nil || p.Surface == nil || p.Visibility == nil || p.Preferences == nil {
		return nil, errors.New("controller: provider needs a surface, visibility and preferences")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	awake := opts.AwakeInterval
	if awake == 0 {
		awake = model.DefaultAwakeInterval
	}

	c := &Controller{
		log:        logger,
		surface:    p.Surface,
		visibility: p.Visibility,
		prefs:      p.Preferences,
		display:    p.Display,
		res:        opts.Resources,
		inputs: model.Inputs{
			BarHeight:      opts.BarHeight,
			DozeBrightness: opts.DozeBrightness,
			AwakeInterval:  awake,
		},
	}
	c.inputs.KeyguardScreenRotation = c.keyguardScreenRotation()

	base := model.BaseLayout(opts.BarHeight)
	h, err := c.surface.AddSurface(base)
	if err != nil {
		return nil, fmt.Errorf("add status bar surface: %w", err)
	}
	c.handle = h
	c.applied = base
	c.appliedFits = true
	c.surface.SetFitsSystemWindows(h, true)

	if opts.Resources.BlurSupported && p.BlurOverlay != nil {
		c.blur = p.BlurOverlay
		if c.display != nil {
			c.blur.Resize(c.display.RealSize())
		}
		c.inputs.KeyguardBlurEnabled = c.keyguardBlurEnabled()
	}

	c.stopWatch = c.prefs.Watch(c.OnPreferenceChanged)
	c.log.Debug("status bar surface added", "handle", int(h), "barHeight", opts.BarHeight, "blur", c.blur != nil)
	return c, nil
}

// Close stops watching preferences.
func (c *Controller) Close() {
	c.mu.Lock()
	stop := c.stopWatch
	c.stopWatch = nil
	c.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// apply must be called with c.mu held.
func (c *Controller) apply() ApplyResult {
	cfg := model.Derive(c.state, c.inputs)
	var res ApplyResult

	if !c.state.KeyguardShowing && c.inputs.KeyguardBlurEnabled && c.blur != nil {
		c.blur.Hide()
	}

	if diffs := model.DiffLayout(c.applied, cfg.Layout); diffs != nil {
		res.Changes = model.SortedChanges(diffs)
		res.SurfaceUpdated = c.surface.UpdateSurface(c.handle, cfg.Layout)
		c.applied = cfg.Layout
		c.log.Debug("layout applied", "changes", len(res.Changes))
	}

	if cfg.FitsSystemWindows != c.appliedFits {
		c.surface.SetFitsSystemWindows(c.handle, cfg.FitsSystemWindows)
		c.appliedFits = cfg.FitsSystemWindows
		res.FitsChanged = true
	}

	if cfg.HasTopUI != c.hasTopUI {
		res.TopUISignalled = true
		if err := c.visibility.SetForegroundUI(cfg.HasTopUI); err != nil {
			res.TopUIErr = err
			c.log.Error("failed to signal foreground ui", "hasTopUi", cfg.HasTopUI, "error", err)
		}
		c.hasTopUI = cfg.HasTopUI
	}
	return res
}

func (c *Controller) update(fn func(s *model.State)) ApplyResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
	return c.apply()
}

func (c *Controller) SetKeyguardShowing(v bool) ApplyResult {
	return c.update(func(s *model.State) { s.KeyguardShowing = v })
}

// SetKeyguardOccluded also rechecks the blur overlay when the value flips.
func (c *Controller) SetKeyguardOccluded(v bool) ApplyResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	old := c.state.KeyguardOccluded
	c.state.KeyguardOccluded = v
	if old != v {
		c.showKeyguardBlur()
	}
	return c.apply()
}

func (c *Controller) SetKeyguardNeedsInput(v bool) ApplyResult {
	return c.update(func(s *model.State) { s.KeyguardNeedsInput = v })
}

// SetPanelVisible sets statusBarFocusable to the same value.
func (c *Controller) SetPanelVisible(v bool) ApplyResult {
	return c.update(func(s *model.State) {
		s.PanelVisible = v
		s.StatusBarFocusable = v
	})
}

func (c *Controller) SetStatusBarFocusable(v bool) ApplyResult {
	return c.update(func(s *model.State) { s.StatusBarFocusable = v })
}

func (c *Controller) SetBouncerShowing(v bool) ApplyResult {
	return c.update(func(s *model.State) { s.BouncerShowing = v })
}

func (c *Controller) SetBackdropShowing(v bool) ApplyResult {
	return c.update(func(s *model.State) { s.BackdropShowing = v })
}

func (c *Controller) SetKeyguardFadingAway(v bool) ApplyResult {
	return c.update(func(s *model.State) { s.KeyguardFadingAway = v })
}

func (c *Controller) SetQsExpanded(v bool) ApplyResult {
	return c.update(func(s *model.State) { s.QsExpanded = v })
}

func (c *Controller) SetForceUserActivity(v bool) ApplyResult {
	return c.update(func(s *model.State) { s.ForceUserActivity = v })
}

func (c *Controller) SetHeadsUpShowing(v bool) ApplyResult {
	return c.update(func(s *model.State) { s.HeadsUpShowing = v })
}

func (c *Controller) SetStatusBarState(v model.BarState) ApplyResult {
	return c.update(func(s *model.State) { s.StatusBarState = v })
}

func (c *Controller) SetForceStatusBarVisible(v bool) ApplyResult {
	return c.update(func(s *model.State) { s.ForceStatusBarVisible = v })
}

// SetForceWindowCollapsed keeps the window at bar height while set.
func (c *Controller) SetForceWindowCollapsed(v bool) ApplyResult {
	return c.update(func(s *model.State) { s.ForceCollapsed = v })
}

func (c *Controller) SetPanelExpanded(v bool) ApplyResult {
	return c.update(func(s *model.State) { s.PanelExpanded = v })
}

func (c *Controller) SetRemoteInputActive(v bool) ApplyResult {
	return c.update(func(s *model.State) { s.RemoteInputActive = v })
}

func (c *Controller) SetForceDozeBrightness(v bool) ApplyResult {
	return c.update(func(s *model.State) { s.ForceDozeBrightness = v })
}

// SetBarHeight changes the collapsed window height.
func (c *Controller) SetBarHeight(px int) ApplyResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inputs.BarHeight = px
	return c.apply()
}

// SetShowingMedia records whether media artwork is on the keyguard and
// rechecks the blur overlay. It does not reapply the layout.
func (c *Controller) SetShowingMedia(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inputs.ShowingMedia = v
	c.showKeyguardBlur()
}

// OnKeyguardChanged rechecks the blur overlay.
func (c *Controller) OnKeyguardChanged() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.showKeyguardBlur()
}

// OnConfigurationChanged resizes the blur overlay to the display's real size.
func (c *Controller) OnConfigurationChanged() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.blur == nil || c.display == nil {
		return
	}
	w, h := c.display.RealSize()
	c.blur.Resize(w, h)
	c.log.Debug("blur overlay resized", "width", w, "height", h)
}

// showKeyguardBlur must be called with c.mu held.
func (c *Controller) showKeyguardBlur() {
	if c.blur == nil {
		return
	}
	if model.ShouldShowBlur(c.state, c.inputs) {
		c.blur.Show()
	} else {
		c.blur.Hide()
	}
}

// IsShowingWallpaper reports whether the wallpaper is visible behind the keyguard.
func (c *Controller) IsShowingWallpaper() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.state.BackdropShowing
}

// Dump writes the current state in the "Window State { ... }" format.
func (c *Controller) Dump(w io.Writer) error {
	c.mu.Lock()
	s := c.state
	c.mu.Unlock()
	return model.WriteDump(w, s)
}

// State returns a copy of the current state.
func (c *Controller) State() model.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Configuration returns the last applied configuration.
func (c *Controller) Configuration() model.Configuration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return model.Configuration{
		Layout:            c.applied,
		FitsSystemWindows: c.appliedFits,
		HasTopUI:          c.hasTopUI,
	}
}

// Prefs returns the preference-derived inputs.
func (c *Controller) Prefs() PrefsSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return PrefsSnapshot{
		KeyguardScreenRotation: c.inputs.KeyguardScreenRotation,
		KeyguardBlurEnabled:    c.inputs.KeyguardBlurEnabled,
		ShowingMedia:           c.inputs.ShowingMedia,
	}
}

// BarHeight returns the collapsed window height, which is kept while the
// window is expanded.
func (c *Controller) BarHeight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inputs.BarHeight
}

// Handle returns the surface handle returned by AddSurface.
func (c *Controller) Handle() platform.Handle {
	return c.handle
}
