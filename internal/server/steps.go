package server

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mj1618/statusbar-window/internal/controller"
	"github.com/mj1618/statusbar-window/internal/model"
)

// PrefWriter stores a boolean preference and triggers its change
// notification.
type PrefWriter func(key string, value bool) error

// ErrUnknownStep is returned by ExecuteStep for unsupported step names.
var ErrUnknownStep = errors.New("unknown step")

// StepResult is the output for a single step or tool call.
type StepResult struct {
	Step           int                  `yaml:"step,omitempty"            json:"step,omitempty"`
	OK             bool                 `yaml:"ok"                        json:"ok"`
	Action         string               `yaml:"action"                    json:"action"`
	Error          string               `yaml:"error,omitempty"           json:"error,omitempty"`
	Flag           string               `yaml:"flag,omitempty"            json:"flag,omitempty"`
	Value          string               `yaml:"value,omitempty"           json:"value,omitempty"`
	Changes        []model.LayoutChange `yaml:"changes,omitempty"         json:"changes,omitempty"`
	SurfaceUpdated bool                 `yaml:"surfaceUpdated,omitempty"  json:"surfaceUpdated,omitempty"`
	FitsChanged    bool                 `yaml:"fitsChanged,omitempty"     json:"fitsChanged,omitempty"`
	TopUISignalled bool                 `yaml:"topUiSignalled,omitempty"  json:"topUiSignalled,omitempty"`
	TopUIError     string               `yaml:"topUiError,omitempty"      json:"topUiError,omitempty"`
}

// Steps lists the step names ExecuteStep accepts.
func Steps() []string {
	names := make([]string, 0, len(stepHandlers))
	for name := range stepHandlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type stepFunc func(c *controller.Controller, setPref PrefWriter, params map[string]interface{}) (StepResult, error)

var stepHandlers = map[string]stepFunc{
	"set":                   executeSet,
	"bar-height":            executeBarHeight,
	"media":                 executeMedia,
	"keyguard-changed":      executeKeyguardChanged,
	"configuration-changed": executeConfigurationChanged,
	"pref":                  executePref,
}

// ExecuteStep runs one named step against c. setPref may be nil, in
// which case "pref" steps fail.
func ExecuteStep(c *controller.Controller, setPref PrefWriter, action string, params map[string]interface{}) (StepResult, error) {
	fn, ok := stepHandlers[action]
	if !ok {
		return StepResult{Action: action}, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownStep, action, strings.Join(Steps(), ", "))
	}
	return fn(c, setPref, params)
}

func executeSet(c *controller.Controller, _ PrefWriter, params map[string]interface{}) (StepResult, error) {
	flag := StringParam(params, "flag", "")
	value := StringParam(params, "value", "")
	result := StepResult{Action: "set", Flag: flag, Value: value}
	if flag == "" {
		return result, fmt.Errorf("flag is required")
	}
	if value == "" {
		return result, fmt.Errorf("value is required")
	}
	applied, err := c.Set(flag, value)
	if err != nil {
		return result, err
	}
	return withApply(result, applied), nil
}

func executeBarHeight(c *controller.Controller, _ PrefWriter, params map[string]interface{}) (StepResult, error) {
	px := IntParam(params, "px", 0)
	result := StepResult{Action: "bar-height", Value: fmt.Sprintf("%d", px)}
	if px <= 0 {
		return result, fmt.Errorf("px must be > 0")
	}
	return withApply(result, c.SetBarHeight(px)), nil
}

func executeMedia(c *controller.Controller, _ PrefWriter, params map[string]interface{}) (StepResult, error) {
	showing := BoolParam(params, "showing", false)
	c.SetShowingMedia(showing)
	return StepResult{Action: "media", Value: fmt.Sprintf("%v", showing)}, nil
}

func executeKeyguardChanged(c *controller.Controller, _ PrefWriter, _ map[string]interface{}) (StepResult, error) {
	c.OnKeyguardChanged()
	return StepResult{Action: "keyguard-changed"}, nil
}

func executeConfigurationChanged(c *controller.Controller, _ PrefWriter, _ map[string]interface{}) (StepResult, error) {
	c.OnConfigurationChanged()
	return StepResult{Action: "configuration-changed"}, nil
}

func executePref(c *controller.Controller, setPref PrefWriter, params map[string]interface{}) (StepResult, error) {
	key := StringParam(params, "key", "")
	value := BoolParam(params, "value", false)
	result := StepResult{Action: "pref", Flag: key, Value: fmt.Sprintf("%v", value)}
	if key == "" {
		return result, fmt.Errorf("key is required")
	}
	if setPref == nil {
		return result, fmt.Errorf("preferences are read-only here")
	}
	before := c.Configuration()
	if err := setPref(key, value); err != nil {
		return result, fmt.Errorf("set %s: %w", key, err)
	}
	result.Changes = model.SortedChanges(model.DiffLayout(before.Layout, c.Configuration().Layout))
	result.SurfaceUpdated = len(result.Changes) > 0
	return result, nil
}

func withApply(result StepResult, applied controller.ApplyResult) StepResult {
	result.Changes = applied.Changes
	result.SurfaceUpdated = applied.SurfaceUpdated
	result.FitsChanged = applied.FitsChanged
	result.TopUISignalled = applied.TopUISignalled
	if applied.TopUIErr != nil {
		result.TopUIError = applied.TopUIErr.Error()
	}
	return result
}

// Parameter extraction helpers for step and tool argument maps.

func StringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		// YAML and JSON decode scalars as bools and numbers
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func IntParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}

func BoolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		switch b := v.(type) {
		case bool:
			return b
		case string:
			switch strings.ToLower(b) {
			case "true", "1", "yes", "on":
				return true
			case "false", "0", "no", "off":
				return false
			}
		}
	}
	return defaultVal
}
