package model

import (
	"fmt"
	"sort"
	"strconv"
)

// LayoutChange is a single field difference between two layouts.
type LayoutChange struct {
	Field string `yaml:"field" json:"field"`
	From  string `yaml:"from"  json:"from"`
	To    string `yaml:"to"    json:"to"`
}

// DiffLayout compares two layouts and returns the changed fields keyed by
// their YAML name. It returns nil when the layouts are identical.
func DiffLayout(prev, curr Layout) map[string][2]string {
	diffs := make(map[string][2]string)

	if prev.Type != curr.Type {
		diffs["type"] = [2]string{prev.Type, curr.Type}
	}
	if prev.Title != curr.Title {
		diffs["title"] = [2]string{prev.Title, curr.Title}
	}
	if prev.Gravity != curr.Gravity {
		diffs["gravity"] = [2]string{prev.Gravity, curr.Gravity}
	}
	if prev.SoftInputAdjustResize != curr.SoftInputAdjustResize {
		diffs["softInputAdjustResize"] = boolPair(prev.SoftInputAdjustResize, curr.SoftInputAdjustResize)
	}
	if prev.Height != curr.Height {
		diffs["height"] = [2]string{strconv.Itoa(prev.Height), strconv.Itoa(curr.Height)}
	}
	if prev.Focus != curr.Focus {
		diffs["focus"] = [2]string{string(prev.Focus), string(curr.Focus)}
	}
	if prev.Keyguard != curr.Keyguard {
		diffs["keyguard"] = boolPair(prev.Keyguard, curr.Keyguard)
	}
	if prev.ForceStatusBarVisible != curr.ForceStatusBarVisible {
		diffs["forceStatusBarVisible"] = boolPair(prev.ForceStatusBarVisible, curr.ForceStatusBarVisible)
	}
	if prev.ShowWallpaper != curr.ShowWallpaper {
		diffs["showWallpaper"] = boolPair(prev.ShowWallpaper, curr.ShowWallpaper)
	}
	if prev.Orientation != curr.Orientation {
		diffs["orientation"] = [2]string{string(prev.Orientation), string(curr.Orientation)}
	}
	if prev.UserActivityTimeoutMS != curr.UserActivityTimeoutMS {
		diffs["userActivityTimeoutMs"] = [2]string{
			strconv.FormatInt(prev.UserActivityTimeoutMS, 10),
			strconv.FormatInt(curr.UserActivityTimeoutMS, 10),
		}
	}
	if prev.DisableUserActivity != curr.DisableUserActivity {
		diffs["disableUserActivity"] = boolPair(prev.DisableUserActivity, curr.DisableUserActivity)
	}
	if prev.NotTouchModal != curr.NotTouchModal {
		diffs["notTouchModal"] = boolPair(prev.NotTouchModal, curr.NotTouchModal)
	}
	if prev.Brightness != curr.Brightness {
		diffs["brightness"] = [2]string{
			fmt.Sprintf("%v", prev.Brightness),
			fmt.Sprintf("%v", curr.Brightness),
		}
	}

	if len(diffs) == 0 {
		return nil
	}
	return diffs
}

// SortedChanges flattens a DiffLayout result into a slice ordered by field name.
func SortedChanges(diffs map[string][2]string) []LayoutChange {
	if len(diffs) == 0 {
		return nil
	}
	changes := make([]LayoutChange, 0, len(diffs))
	for field, d := range diffs {
		changes = append(changes, LayoutChange{Field: field, From: d[0], To: d[1]})
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Field < changes[j].Field })
	return changes
}

func boolPair(prev, curr bool) [2]string {
	return [2]string{strconv.FormatBool(prev), strconv.FormatBool(curr)}
}
