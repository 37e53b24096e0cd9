package controller

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mj1618/statusbar-window/internal/model"
)

// ErrUnknownFlag is returned by Set for names that no mutator handles.
var ErrUnknownFlag = errors.New("unknown flag")

var boolSetters = map[string]func(*Controller, bool) ApplyResult{
	"keyguardShowing":       (*Controller).SetKeyguardShowing,
	"keyguardOccluded":      (*Controller).SetKeyguardOccluded,
	"keyguardNeedsInput":    (*Controller).SetKeyguardNeedsInput,
	"panelVisible":          (*Controller).SetPanelVisible,
	"panelExpanded":         (*Controller).SetPanelExpanded,
	"statusBarFocusable":    (*Controller).SetStatusBarFocusable,
	"bouncerShowing":        (*Controller).SetBouncerShowing,
	"keyguardFadingAway":    (*Controller).SetKeyguardFadingAway,
	"qsExpanded":            (*Controller).SetQsExpanded,
	"headsUpShowing":        (*Controller).SetHeadsUpShowing,
	"forceStatusBarVisible": (*Controller).SetForceStatusBarVisible,
	"forceCollapsed":        (*Controller).SetForceWindowCollapsed,
	"forceWindowCollapsed":  (*Controller).SetForceWindowCollapsed,
	"forceDozeBrightness":   (*Controller).SetForceDozeBrightness,
	"forceUserActivity":     (*Controller).SetForceUserActivity,
	"backdropShowing":       (*Controller).SetBackdropShowing,
	"remoteInputActive":     (*Controller).SetRemoteInputActive,
}

// Flags returns every name accepted by Set, sorted.
func Flags() []string {
	names := make([]string, 0, len(boolSetters)+3)
	for name := range boolSetters {
		names = append(names, name)
	}
	names = append(names, "statusBarState", "barHeight", "showingMedia")
	sort.Strings(names)
	return names
}

// Set dispatches a textual flag assignment to the matching mutator.
// Boolean flags accept anything strconv.ParseBool accepts.
func (c *Controller) Set(flag, value string) (ApplyResult, error) {
	value = strings.TrimSpace(value)
	switch flag {
	case "statusBarState":
		bs, err := model.ParseBarState(value)
		if err != nil {
			return ApplyResult{}, err
		}
		return c.SetStatusBarState(bs), nil
	case "barHeight":
		px, err := strconv.Atoi(value)
		if err != nil {
			return ApplyResult{}, fmt.Errorf("barHeight: invalid integer %q", value)
		}
		if px <= 0 {
			return ApplyResult{}, fmt.Errorf("barHeight must be > 0, got %d", px)
		}
		return c.SetBarHeight(px), nil
	case "showingMedia":
		v, err := parseFlagBool(flag, value)
		if err != nil {
			return ApplyResult{}, err
		}
		c.SetShowingMedia(v)
		return ApplyResult{}, nil
	}

	set, ok := boolSetters[flag]
	if !ok {
		return ApplyResult{}, fmt.Errorf("%w: %q", ErrUnknownFlag, flag)
	}
	v, err := parseFlagBool(flag, value)
	if err != nil {
		return ApplyResult{}, err
	}
	return set(c, v), nil
}

func parseFlagBool(flag, value string) (bool, error) {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s: invalid boolean %q", flag, value)
	}
	return v, nil
}
