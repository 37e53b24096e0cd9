package platform

import (
	"fmt"
	"strconv"
	"strings"
)

// Handle identifies a surface created by AddSurface.
type Handle int

// Size is a display size in pixels.
type Size struct {
	Width, Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ParseSize parses a "WxH" string into a Size.
func ParseSize(s string) (Size, error) {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) != 2 {
		return Size{}, fmt.Errorf("invalid size %q: expected WxH", s)
	}
	vals := make([]int, 2)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Size{}, fmt.Errorf("invalid size %q: %w", s, err)
		}
		if v <= 0 {
			return Size{}, fmt.Errorf("invalid size %q: dimensions must be positive", s)
		}
		vals[i] = v
	}
	return Size{Width: vals[0], Height: vals[1]}, nil
}

// Options configures the backend built by NewProvider.
type Options struct {
	Display        Size        // Real display size reported by Display
	Preferences    Preferences // Preference source (nil = in-memory defaults)
	VisibilityDown bool        // Start with the visibility host unreachable
}
