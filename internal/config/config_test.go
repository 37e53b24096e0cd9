package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mj1618/statusbar-window/internal/platform"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sbwin.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadFile_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
window:
  bar_height: 96
resources:
  lockscreen_rotation: true
logging:
  level: debug
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.BarHeight != 96 {
		t.Errorf("bar_height: got %d", cfg.Window.BarHeight)
	}
	if !cfg.Resources.LockscreenRotation {
		t.Error("lockscreen_rotation not loaded")
	}
	if cfg.Window.AwakeIntervalMS != 10000 {
		t.Errorf("awake_interval_ms default lost: %d", cfg.Window.AwakeIntervalMS)
	}
	if !cfg.Resources.BlurSupported {
		t.Error("blur_supported default lost")
	}
}

func TestLoadFile_RejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "window:\n  bar_hieght: 96\n")
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoadFile_RejectsTrailingDocument(t *testing.T) {
	path := writeConfig(t, "window:\n  bar_height: 96\n---\nwindow:\n  bar_height: 10\n")
	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "trailing document") {
		t.Fatalf("expected trailing document error, got %v", err)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(""); err == nil {
		t.Error("expected error for empty path")
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFlagOverrides_Apply(t *testing.T) {
	cfg := DefaultConfig()
	zero := 0
	blur := false
	level := "warn"
	FlagOverrides{
		PrefsPollMS:   &zero,
		BlurSupported: &blur,
		Display:       &platform.Size{Width: 720, Height: 1280},
		LogLevel:      &level,
	}.Apply(&cfg)

	if cfg.Prefs.PollMS != 0 {
		t.Error("zero override should be applied")
	}
	if cfg.Resources.BlurSupported {
		t.Error("blur override not applied")
	}
	if cfg.Display.Width != 720 || cfg.Display.Height != 1280 {
		t.Errorf("display override not applied: %+v", cfg.Display)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("log level: %q", cfg.Logging.Level)
	}
	if cfg.Window.BarHeight != 72 {
		t.Error("nil override should leave bar height alone")
	}

	FlagOverrides{}.Apply(nil)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bar height", func(c *Config) { c.Window.BarHeight = 0 }},
		{"awake interval", func(c *Config) { c.Window.AwakeIntervalMS = -1 }},
		{"doze brightness", func(c *Config) { c.Window.DozeBrightness = 300 }},
		{"display", func(c *Config) { c.Display.Height = 0 }},
		{"poll", func(c *Config) { c.Prefs.PollMS = -5 }},
		{"empty level", func(c *Config) { c.Logging.Level = "" }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestControllerOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window.DozeBrightness = 51
	cfg.Resources.RotationOverride = true
	opts := cfg.ControllerOptions()

	if opts.BarHeight != 72 {
		t.Errorf("bar height: %d", opts.BarHeight)
	}
	if opts.AwakeInterval != 10*time.Second {
		t.Errorf("awake interval: %v", opts.AwakeInterval)
	}
	if opts.DozeBrightness != 0.2 {
		t.Errorf("doze brightness: %v", opts.DozeBrightness)
	}
	if !opts.Resources.RotationOverride || !opts.Resources.BlurSupported {
		t.Errorf("resources: %+v", opts.Resources)
	}
	if cfg.DisplaySize() != (platform.Size{Width: 1080, Height: 1920}) {
		t.Errorf("display size: %v", cfg.DisplaySize())
	}
	if cfg.PollInterval() != time.Second {
		t.Errorf("poll interval: %v", cfg.PollInterval())
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	if got := ExpandPath("~/x/prefs.toml"); got != filepath.Join("/home/tester", "x/prefs.toml") {
		t.Errorf("got %q", got)
	}
	if got := ExpandPath("~"); got != "/home/tester" {
		t.Errorf("got %q", got)
	}
	if got := ExpandPath("/etc/sbwin.yaml"); got != "/etc/sbwin.yaml" {
		t.Errorf("got %q", got)
	}
	if got := ExpandPath(""); got != "" {
		t.Errorf("got %q", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	for in, want := range map[string]LogLevel{
		"error":   LogLevelError,
		"WARN":    LogLevelWarn,
		"warning": LogLevelWarn,
		"info":    LogLevelInfo,
		"Debug":   LogLevelDebug,
	} {
		got, err := ParseLogLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLogLevel(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseLogLevel("verbose"); err == nil {
		t.Error("expected error")
	}
}

func TestNewLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogLevelWarn)
	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info should be filtered at warn level:\n%s", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "key=value") {
		t.Errorf("warn line missing:\n%s", out)
	}
}
