package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mj1618/statusbar-window/internal/controller"
	"github.com/mj1618/statusbar-window/internal/output"
	"github.com/mj1618/statusbar-window/internal/prefs"
)

// PrefsResult is the output of the prefs command.
type PrefsResult struct {
	Path      string                   `yaml:"path"      json:"path"`
	Values    map[string]string        `yaml:"values"    json:"values"`
	Watched   []WatchedPref            `yaml:"watched"   json:"watched"`
	Effective controller.PrefsSnapshot `yaml:"effective" json:"effective"`
}

// WatchedPref is one key the controller reacts to and its effective value.
type WatchedPref struct {
	Key   string `yaml:"key"   json:"key"`
	Value bool   `yaml:"value" json:"value"`
	Set   bool   `yaml:"set"   json:"set"`
}

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show the preferences file and the values the controller derives from it",
	Long: `Print every key in the TOML preferences file, the watched keys with the
value the controller reads (defaults apply to unset keys), and the
resulting keyguard rotation and blur settings.`,
	Args: cobra.NoArgs,
	RunE: runPrefs,
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <true|false>",
	Short: "Write a boolean preference to the TOML file",
	Long: `Write a boolean preference. Namespaced keys go into the matching table:

  sbwin prefs set cmsystem:lockscreen_rotation true

writes lockscreen_rotation = true under [cmsystem]. A running serve or tui
picks the change up on its next poll.`,
	Args: cobra.ExactArgs(2),
	RunE: runPrefsSet,
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsSetCmd)
}

func runPrefs(cmd *cobra.Command, args []string) error {
	s, err := newSession(appConfig, sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	values := s.prefs.Values()
	watched := make([]WatchedPref, 0, len(controller.WatchedKeys()))
	for _, key := range controller.WatchedKeys() {
		_, set := values[key]
		watched = append(watched, WatchedPref{
			Key:   key,
			Value: s.prefs.GetBool(key, controller.PrefDefault(key)),
			Set:   set,
		})
	}
	sort.Slice(watched, func(i, j int) bool { return watched[i].Key < watched[j].Key })

	return output.Fprint(cmd.OutOrStdout(), PrefsResult{
		Path:      s.prefs.Path(),
		Values:    values,
		Watched:   watched,
		Effective: s.ctrl.Prefs(),
	})
}

func runPrefsSet(cmd *cobra.Command, args []string) error {
	value, err := strconv.ParseBool(args[1])
	if err != nil {
		return fmt.Errorf("invalid boolean %q", args[1])
	}
	if err := prefs.SetValue(appConfig.Prefs.Path, args[0], value); err != nil {
		return err
	}
	logger.Info("preference written", "key", args[0], "value", value)
	return nil
}
