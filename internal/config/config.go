// Package config loads the device and runtime configuration for sbwin.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/statusbar-window/internal/controller"
	"github.com/mj1618/statusbar-window/internal/platform"
)

// Config is the top-level YAML configuration.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Resources ResourcesConfig `yaml:"resources"`
	Display   DisplayConfig   `yaml:"display"`
	Prefs     PrefsConfig     `yaml:"prefs"`
	Broadcast BroadcastConfig `yaml:"broadcast"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type WindowConfig struct {
	BarHeight       int `yaml:"bar_height"`
	AwakeIntervalMS int `yaml:"awake_interval_ms"`
	// DozeBrightness is on the 0..255 backlight scale.
	DozeBrightness int `yaml:"doze_brightness"`
}

type ResourcesConfig struct {
	LockscreenRotation bool `yaml:"lockscreen_rotation"`
	RotationOverride   bool `yaml:"rotation_override"`
	BlurSupported      bool `yaml:"blur_supported"`
}

type DisplayConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type PrefsConfig struct {
	Path   string `yaml:"path"`
	PollMS int    `yaml:"poll_ms"` // 0 disables file watching
}

type BroadcastConfig struct {
	Listen string `yaml:"listen"` // empty disables the websocket broadcast
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a fully-populated Config with defaults.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			BarHeight:       72,
			AwakeIntervalMS: 10000,
			DozeBrightness:  1,
		},
		Resources: ResourcesConfig{
			BlurSupported: true,
		},
		Display: DisplayConfig{
			Width:  1080,
			Height: 1920,
		},
		Prefs: PrefsConfig{
			Path:   "~/.config/sbwin/prefs.toml",
			PollMS: 1000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFile reads a YAML config file over DefaultConfig. Unknown fields are
// rejected and only a single document is allowed.
func LoadFile(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("config path is empty")
	}
	b, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config yaml: %w", err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config yaml: unexpected trailing document")
	}

	return cfg, nil
}

// FlagOverrides carries CLI flag values. Nil pointers are ignored; non-nil
// pointers are applied even when they hold a zero value.
type FlagOverrides struct {
	BarHeight       *int
	AwakeIntervalMS *int
	DozeBrightness  *int

	LockscreenRotation *bool
	RotationOverride   *bool
	BlurSupported      *bool

	Display *platform.Size

	PrefsPath   *string
	PrefsPollMS *int

	BroadcastListen *string

	LogLevel *string
}

// Apply merges the overrides into cfg.
func (o FlagOverrides) Apply(cfg *Config) {
	if cfg == nil {
		return
	}
	if o.BarHeight != nil {
		cfg.Window.BarHeight = *o.BarHeight
	}
	if o.AwakeIntervalMS != nil {
		cfg.Window.AwakeIntervalMS = *o.AwakeIntervalMS
	}
	if o.DozeBrightness != nil {
		cfg.Window.DozeBrightness = *o.DozeBrightness
	}

	if o.LockscreenRotation != nil {
		cfg.Resources.LockscreenRotation = *o.LockscreenRotation
	}
	if o.RotationOverride != nil {
		cfg.Resources.RotationOverride = *o.RotationOverride
	}
	if o.BlurSupported != nil {
		cfg.Resources.BlurSupported = *o.BlurSupported
	}

	if o.Display != nil {
		cfg.Display.Width = o.Display.Width
		cfg.Display.Height = o.Display.Height
	}

	if o.PrefsPath != nil {
		cfg.Prefs.Path = *o.PrefsPath
	}
	if o.PrefsPollMS != nil {
		cfg.Prefs.PollMS = *o.PrefsPollMS
	}

	if o.BroadcastListen != nil {
		cfg.Broadcast.Listen = *o.BroadcastListen
	}

	if o.LogLevel != nil {
		cfg.Logging.Level = *o.LogLevel
	}
}

// Validate checks config invariants and returns a user-friendly error.
// Call it after defaults, file and overrides are applied.
func (c *Config) Validate() error {
	if c.Window.BarHeight <= 0 {
		return errors.New("window.bar_height must be > 0")
	}
	if c.Window.AwakeIntervalMS <= 0 {
		return errors.New("window.awake_interval_ms must be > 0")
	}
	if c.Window.DozeBrightness < 0 || c.Window.DozeBrightness > 255 {
		return errors.New("window.doze_brightness must be between 0 and 255")
	}

	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return errors.New("display.width and display.height must be > 0")
	}

	if c.Prefs.PollMS < 0 {
		return errors.New("prefs.poll_ms must be >= 0")
	}

	if c.Logging.Level == "" {
		return errors.New("logging.level must not be empty")
	}
	if _, err := ParseLogLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}

	return nil
}

// ControllerOptions converts the window and resources sections into
// controller options. The logger is left for the caller to set.
func (c *Config) ControllerOptions() controller.Options {
	return controller.Options{
		BarHeight:      c.Window.BarHeight,
		AwakeInterval:  time.Duration(c.Window.AwakeIntervalMS) * time.Millisecond,
		DozeBrightness: float32(c.Window.DozeBrightness) / 255,
		Resources: controller.Resources{
			LockscreenRotation: c.Resources.LockscreenRotation,
			RotationOverride:   c.Resources.RotationOverride,
			BlurSupported:      c.Resources.BlurSupported,
		},
	}
}

// DisplaySize returns the configured real display size.
func (c *Config) DisplaySize() platform.Size {
	return platform.Size{Width: c.Display.Width, Height: c.Display.Height}
}

// PollInterval returns the preference file polling interval, or 0 when disabled.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Prefs.PollMS) * time.Millisecond
}

// ExpandPath expands a leading "~" in a path using $HOME.
func ExpandPath(p string) string {
	if p == "" {
		return p
	}
	if p[0] != '~' {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	if len(p) >= 2 && (p[1] == '/' || p[1] == '\\') {
		return filepath.Join(home, p[2:])
	}
	return p
}
