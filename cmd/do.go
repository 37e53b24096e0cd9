package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/statusbar-window/internal/controller"
	"github.com/mj1618/statusbar-window/internal/model"
	"github.com/mj1618/statusbar-window/internal/output"
	"github.com/mj1618/statusbar-window/internal/server"
)

// DoResult is the YAML output of a batch do command.
type DoResult struct {
	OK            bool                 `yaml:"ok"                  json:"ok"`
	Action        string               `yaml:"action"              json:"action"`
	Steps         int                  `yaml:"steps"               json:"steps"`
	Completed     int                  `yaml:"completed"           json:"completed"`
	Error         string               `yaml:"error,omitempty"     json:"error,omitempty"`
	Results       []server.StepResult  `yaml:"results"             json:"results"`
	Configuration *model.Configuration `yaml:"configuration,omitempty" json:"configuration,omitempty"`
}

var doCmd = &cobra.Command{
	Use:   "do",
	Short: "Apply a batch of state changes",
	Long: `Apply a sequence of steps from a YAML list on stdin to one controller.

Each step is a step name with its parameters as a map. Steps execute
sequentially, and by default execution stops on the first error. The
configuration applied after the last step is printed with the results.

Supported step types: ` + strings.Join(server.Steps(), ", ") + `

Example:
  sbwin do <<'EOF'
  - set: { flag: keyguardShowing, value: true }
  - set: { flag: statusBarState, value: keyguard }
  - bar-height: { px: 96 }
  - media: { showing: true }
  - pref: { key: "cmsystem:lockscreen_rotation", value: true }
  EOF`,
	RunE: runDo,
}

func init() {
	rootCmd.AddCommand(doCmd)
	doCmd.Flags().Bool("stop-on-error", true, "Stop execution on first error (default: true)")
}

func runDo(cmd *cobra.Command, args []string) error {
	stopOnError, _ := cmd.Flags().GetBool("stop-on-error")

	// Read YAML steps from stdin
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	steps, err := parseSteps(data)
	if err != nil {
		return err
	}

	s, err := newSession(appConfig, sessionOptions{})
	if err != nil {
		return err
	}
	defer s.Close()

	return output.Fprint(cmd.OutOrStdout(), runSteps(s.ctrl, s.setPref, steps, stopOnError))
}

// step is one parsed batch item.
type step struct {
	Action string
	Params map[string]interface{}
}

func parseSteps(data []byte) ([]step, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("no steps provided on stdin; pipe a YAML list of steps")
	}

	var rawSteps []map[string]map[string]interface{}
	if err := yaml.Unmarshal(data, &rawSteps); err != nil {
		return nil, fmt.Errorf("failed to parse YAML steps: %w", err)
	}
	if len(rawSteps) == 0 {
		return nil, fmt.Errorf("no steps provided; expected a YAML list of steps")
	}

	steps := make([]step, len(rawSteps))
	for i, raw := range rawSteps {
		if len(raw) != 1 {
			keys := make([]string, 0, len(raw))
			for k := range raw {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			// Kept as an invalid step so it is reported in order.
			steps[i] = step{Action: strings.Join(keys, ",")}
			continue
		}
		for action, params := range raw {
			if params == nil {
				params = map[string]interface{}{}
			}
			steps[i] = step{Action: action, Params: params}
		}
	}
	return steps, nil
}

func runSteps(ctrl *controller.Controller, setPref server.PrefWriter, steps []step, stopOnError bool) DoResult {
	results := make([]server.StepResult, 0, len(steps))
	completed := 0
	hasFailure := false
	var lastErr string

	for i, st := range steps {
		stepNum := i + 1

		var (
			result server.StepResult
			err    error
		)
		if st.Params == nil {
			result = server.StepResult{Action: st.Action}
			err = fmt.Errorf("expected exactly one step key, got %q", st.Action)
		} else {
			result, err = server.ExecuteStep(ctrl, setPref, st.Action, st.Params)
		}
		result.Step = stepNum

		if err != nil {
			result.OK = false
			result.Error = err.Error()
			results = append(results, result)
			hasFailure = true
			lastErr = fmt.Sprintf("step %d: %s", stepNum, err.Error())
			if stopOnError {
				break
			}
			continue
		}
		result.OK = true
		completed++
		results = append(results, result)
	}

	cfg := ctrl.Configuration()
	return DoResult{
		OK:            !hasFailure,
		Action:        "do",
		Steps:         len(steps),
		Completed:     completed,
		Error:         lastErr,
		Results:       results,
		Configuration: &cfg,
	}
}
