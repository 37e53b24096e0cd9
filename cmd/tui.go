package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/statusbar-window/internal/config"
	"github.com/mj1618/statusbar-window/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive console for toggling state flags",
	Long: `Open a terminal console listing every state flag next to the applied
window configuration. Toggling a flag applies it through the controller and
shows which layout fields changed. Logs are discarded below warn so they do
not draw over the console.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().Bool("alt-screen", true, "Use the terminal's alternate screen")
}

func runTUI(cmd *cobra.Command, args []string) error {
	altScreen, _ := cmd.Flags().GetBool("alt-screen")

	level, _ := config.ParseLogLevel(appConfig.Logging.Level)
	if level == config.LogLevelInfo || level == config.LogLevelDebug {
		logger = config.NewLogger(cmd.ErrOrStderr(), config.LogLevelWarn)
	}

	s, err := newSession(appConfig, sessionOptions{Broadcast: true})
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.startBackground(ctx)

	pollTick := s.cfg.PollInterval()
	if pollTick == 0 {
		pollTick = time.Second
	}
	return tui.Run(tui.Options{Controller: s.ctrl, PollTick: pollTick, AltScreen: altScreen})
}
