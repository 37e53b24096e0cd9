package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/statusbar-window/internal/config"
	"github.com/mj1618/statusbar-window/internal/output"
	"github.com/mj1618/statusbar-window/internal/platform"
	"github.com/mj1618/statusbar-window/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "sbwin",
	Short: "Derive and apply status bar window layouts",
	Long: `sbwin owns the status bar window of a simulated display. Every state flag
change re-derives the full window configuration (height, focusability,
keyguard and wallpaper flags, orientation, user activity, touch modality,
brightness) and applies only what changed.

Device resources and defaults come from a YAML config file (--config) and
can be overridden per run with flags. Preferences are read from a TOML file.`,
	SilenceUsage: true,
}

// appConfig and logger are set by PersistentPreRunE before any RunE runs.
var (
	appConfig = config.DefaultConfig()
	logger    = slog.New(slog.DiscardHandler)
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)

	pf := rootCmd.PersistentFlags()
	pf.String("format", "yaml", "Output format: yaml, json")
	pf.Bool("pretty", false, "Indent JSON output")
	pf.String("config", "", "Path to the YAML config file")
	pf.String("log-level", "", "Log level: error, warn, info, debug")
	pf.Int("bar-height", 0, "Collapsed status bar height in pixels")
	pf.Int("awake-interval-ms", 0, "Keyguard user activity timeout in milliseconds")
	pf.Int("doze-brightness", 0, "Doze screen brightness on the 0..255 scale")
	pf.Bool("lockscreen-rotation", false, "Device allows the keyguard to rotate")
	pf.Bool("rotation-override", false, "Force keyguard rotation regardless of preferences")
	pf.Bool("blur", true, "Device supports the keyguard blur overlay")
	pf.String("display", "", "Real display size as WxH, e.g. 1080x1920")
	pf.String("prefs", "", "Path to the TOML preferences file")
	pf.Int("prefs-poll-ms", 0, "Preferences file poll interval in milliseconds (0 disables)")
	pf.String("broadcast", "", "Websocket listen address for layout updates, e.g. 127.0.0.1:7790")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		if pretty, err := rootCmd.PersistentFlags().GetBool("pretty"); err == nil && pretty {
			output.PrettyOutput = true
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		level, _ := config.ParseLogLevel(cfg.Logging.Level)
		appConfig = cfg
		logger = config.NewLogger(os.Stderr, level)
		return nil
	}
}

// loadConfig layers the config file and changed persistent flags over
// the defaults, then validates the result.
func loadConfig() (config.Config, error) {
	pf := rootCmd.PersistentFlags()

	cfg := config.DefaultConfig()
	if path, _ := pf.GetString("config"); path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	var o config.FlagOverrides
	if pf.Changed("bar-height") {
		v, _ := pf.GetInt("bar-height")
		o.BarHeight = &v
	}
	if pf.Changed("awake-interval-ms") {
		v, _ := pf.GetInt("awake-interval-ms")
		o.AwakeIntervalMS = &v
	}
	if pf.Changed("doze-brightness") {
		v, _ := pf.GetInt("doze-brightness")
		o.DozeBrightness = &v
	}
	if pf.Changed("lockscreen-rotation") {
		v, _ := pf.GetBool("lockscreen-rotation")
		o.LockscreenRotation = &v
	}
	if pf.Changed("rotation-override") {
		v, _ := pf.GetBool("rotation-override")
		o.RotationOverride = &v
	}
	if pf.Changed("blur") {
		v, _ := pf.GetBool("blur")
		o.BlurSupported = &v
	}
	if pf.Changed("display") {
		s, _ := pf.GetString("display")
		size, err := platform.ParseSize(s)
		if err != nil {
			return config.Config{}, fmt.Errorf("--display: %w", err)
		}
		o.Display = &size
	}
	if pf.Changed("prefs") {
		v, _ := pf.GetString("prefs")
		o.PrefsPath = &v
	}
	if pf.Changed("prefs-poll-ms") {
		v, _ := pf.GetInt("prefs-poll-ms")
		o.PrefsPollMS = &v
	}
	if pf.Changed("broadcast") {
		v, _ := pf.GetString("broadcast")
		o.BroadcastListen = &v
	}
	if pf.Changed("log-level") {
		v, _ := pf.GetString("log-level")
		o.LogLevel = &v
	}
	o.Apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
