package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mj1618/statusbar-window/internal/model"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := []string{"derive", "do", "dump", "prefs", "serve", "tui"}
	commands := rootCmd.Commands()

	found := make(map[string]bool)
	for _, c := range commands {
		found[c.Name()] = true
	}

	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("root command version should be set")
	}
}

func executeRoot(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("sbwin %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestDumpCommand(t *testing.T) {
	prefsPath := filepath.Join(t.TempDir(), "prefs.toml")
	out := executeRoot(t, "dump", "--prefs", prefsPath,
		"--set", "keyguardShowing=true", "--set", "statusBarState=keyguard")

	if !strings.HasPrefix(out, model.DumpHeader) {
		t.Fatalf("dump should start with the header:\n%s", out)
	}
	for _, want := range []string{"  keyguardShowing: true", "  statusBarState: 1", "  remoteInputActive: false"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
	if appConfig.Prefs.Path != prefsPath {
		t.Errorf("prefs path override not applied: %q", appConfig.Prefs.Path)
	}
}

func TestPrefsSetCommand(t *testing.T) {
	prefsPath := filepath.Join(t.TempDir(), "sbwin", "prefs.toml")
	executeRoot(t, "prefs", "set", "--prefs", prefsPath, "cmsystem:lockscreen_rotation", "true")

	b, err := os.ReadFile(prefsPath)
	if err != nil {
		t.Fatalf("prefs file not written: %v", err)
	}
	if !strings.Contains(string(b), "[cmsystem]") || !strings.Contains(string(b), "lockscreen_rotation = true") {
		t.Errorf("unexpected prefs file:\n%s", b)
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sbwin.yaml")
	if err := os.WriteFile(path, []byte("window:\n  bar_height: 96\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	pf := rootCmd.PersistentFlags()
	if err := pf.Set("config", path); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = pf.Set("config", "") })

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.BarHeight != 96 {
		t.Errorf("bar height: got %d, want 96", cfg.Window.BarHeight)
	}
}

func TestLoadConfig_AwakeIntervalFlag(t *testing.T) {
	pf := rootCmd.PersistentFlags()
	if err := pf.Set("awake-interval-ms", "4500"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = pf.Set("awake-interval-ms", "0")
		pf.Lookup("awake-interval-ms").Changed = false
	})

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.AwakeIntervalMS != 4500 {
		t.Errorf("awake interval: got %d, want 4500", cfg.Window.AwakeIntervalMS)
	}
	if got := cfg.ControllerOptions().AwakeInterval; got != 4500*time.Millisecond {
		t.Errorf("controller awake interval: got %v", got)
	}
}
