package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/statusbar-window/internal/model"
	"github.com/mj1618/statusbar-window/internal/output"
)

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive a window configuration from state flags",
	Long: `Build a state from --set assignments and print the configuration it
derives to. Nothing is applied; no surface or preferences are involved.

Unset flags are false and statusBarState defaults to shade.

Examples:
  sbwin derive --set keyguardShowing=true --set statusBarState=keyguard
  sbwin derive --set panelVisible=true --keyguard-rotation --format json`,
	RunE: runDerive,
}

func init() {
	rootCmd.AddCommand(deriveCmd)
	deriveCmd.Flags().StringArray("set", nil, "State assignment name=value (repeatable)")
	deriveCmd.Flags().Bool("keyguard-rotation", false, "Keyguard screen rotation preference is on")
	deriveCmd.Flags().Bool("blur-enabled", true, "Keyguard blur preference is on")
	deriveCmd.Flags().Bool("media", false, "Media artwork is showing on the keyguard")
}

func runDerive(cmd *cobra.Command, args []string) error {
	assignments, _ := cmd.Flags().GetStringArray("set")
	state, err := buildState(assignments)
	if err != nil {
		return err
	}

	rotation, _ := cmd.Flags().GetBool("keyguard-rotation")
	blurEnabled, _ := cmd.Flags().GetBool("blur-enabled")
	media, _ := cmd.Flags().GetBool("media")

	opts := appConfig.ControllerOptions()
	in := model.Inputs{
		BarHeight:              opts.BarHeight,
		KeyguardScreenRotation: rotation,
		KeyguardBlurEnabled:    blurEnabled && appConfig.Resources.BlurSupported,
		ShowingMedia:           media,
		DozeBrightness:         opts.DozeBrightness,
		AwakeInterval:          opts.AwakeInterval,
	}

	return output.Fprint(cmd.OutOrStdout(), output.StateResult{
		TS:            time.Now().Unix(),
		State:         state,
		Configuration: model.Derive(state, in),
	})
}

// buildState applies name=value assignments to a zero State.
func buildState(assignments []string) (model.State, error) {
	var s model.State
	for _, a := range assignments {
		name, value, err := parseAssignment(a)
		if err != nil {
			return model.State{}, err
		}
		if err := s.SetField(name, value); err != nil {
			return model.State{}, err
		}
	}
	return s, nil
}

func parseAssignment(a string) (name, value string, err error) {
	name, value, ok := strings.Cut(a, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("invalid assignment %q: expected name=value", a)
	}
	return name, strings.TrimSpace(value), nil
}
