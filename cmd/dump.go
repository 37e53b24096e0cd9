package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the window state dump",
	Long: `Apply optional --set assignments to a fresh controller, in order, and
print the state dump. With --blur-png the keyguard blur overlay frame is
written to a file when the overlay is visible.

Example:
  sbwin dump --set keyguardShowing=true --set statusBarState=keyguard
  sbwin dump --set keyguardShowing=true --keyguard-changed --blur-png blur.png`,
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().StringArray("set", nil, "Flag assignment name=value applied through the controller (repeatable)")
	dumpCmd.Flags().Bool("keyguard-changed", false, "Recheck the blur overlay after the assignments")
	dumpCmd.Flags().String("blur-png", "", "Write the blur overlay frame to this PNG file")
}

func runDump(cmd *cobra.Command, args []string) error {
	assignments, _ := cmd.Flags().GetStringArray("set")
	keyguardChanged, _ := cmd.Flags().GetBool("keyguard-changed")
	blurPNG, _ := cmd.Flags().GetString("blur-png")

	s, err := newSession(appConfig, sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	for _, a := range assignments {
		name, value, err := parseAssignment(a)
		if err != nil {
			return err
		}
		if _, err := s.ctrl.Set(name, value); err != nil {
			return err
		}
	}
	if keyguardChanged {
		s.ctrl.OnKeyguardChanged()
	}

	if err := s.ctrl.Dump(cmd.OutOrStdout()); err != nil {
		return err
	}

	if blurPNG == "" {
		return nil
	}
	return writeBlurPNG(s, blurPNG)
}

func writeBlurPNG(s *session, path string) error {
	blur := s.blur()
	if blur == nil {
		return fmt.Errorf("blur overlay is not supported on this device")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	visible, err := blur.WritePNG(f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if !visible {
		_ = os.Remove(path)
		return fmt.Errorf("blur overlay is not showing")
	}
	logger.Info("blur overlay written", "path", path)
	return nil
}
