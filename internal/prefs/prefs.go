// Package prefs provides a TOML-file preference source for the status bar
// window controller. Tables name the key namespace:
//
//	[system]
//	accelerometer_rotation = 1
//
//	[cmsecure]
//	lockscreen_blur_enabled = false
//
// is read as "system:accelerometer_rotation" and
// "cmsecure:lockscreen_blur_enabled". Top-level keys are used as-is.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultPrefsPath = "~/.config/sbwin/prefs.toml"

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// File is a preference source backed by a TOML file. Reload re-reads the
// file and notifies watchers of every key whose value changed.
type File struct {
	path string
	log  *slog.Logger

	mu       sync.Mutex
	values   map[string]string
	watchers map[int]func(key string)
	nextID   int
}

// Open reads the preferences at path. A missing file yields an empty set.
func Open(path string, logger *slog.Logger) (*File, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve prefs path: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	values, err := readValues(resolved)
	if err != nil {
		return nil, err
	}
	return &File{
		path:     resolved,
		log:      logger,
		values:   values,
		watchers: make(map[int]func(string)),
	}, nil
}

// Path returns the resolved file path.
func (f *File) Path() string {
	return f.path
}

// GetBool returns the value for key. Booleans are used directly and numbers
// are true when non-zero, except for flag keys where only 1 is true.
// Anything else falls back to def.
func (f *File) GetBool(key string, def bool) bool {
	f.mu.Lock()
	raw, ok := f.values[key]
	f.mu.Unlock()
	if !ok {
		return def
	}
	return parseBool(raw, def, flagKeys[key])
}

func (f *File) Watch(fn func(key string)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.watchers[id] = fn
	return func() {
		f.mu.Lock()
		delete(f.watchers, id)
		f.mu.Unlock()
	}
}

// Values returns a copy of every key and its raw value.
func (f *File) Values() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Reload re-reads the file and returns the sorted keys that changed. On
// a read or parse error the previous values are kept.
func (f *File) Reload() ([]string, error) {
	values, err := readValues(f.path)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	changed := changedKeys(f.values, values)
	f.values = values
	fns := make([]func(string), 0, len(f.watchers))
	for _, fn := range f.watchers {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	for _, key := range changed {
		for _, fn := range fns {
			fn(key)
		}
	}
	return changed, nil
}

// Run reloads the file every interval until ctx is done.
func (f *File) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		changed, err := f.Reload()
		if err != nil {
			f.log.Warn("prefs reload failed", "path", f.path, "error", err)
			continue
		}
		if len(changed) > 0 {
			f.log.Info("prefs reloaded", "path", f.path, "changed", strings.Join(changed, ","))
		}
	}
}

// SetValue writes key = value into the file at path, creating it and its
// directory as needed. Namespaced keys go into the matching table.
func SetValue(path, key string, value bool) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	doc := map[string]any{}
	b, err := os.ReadFile(resolved)
	switch {
	case err == nil:
		if err := toml.Unmarshal(b, &doc); err != nil {
			return fmt.Errorf("parse prefs: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return fmt.Errorf("read prefs: %w", err)
	}

	if ns, name, ok := strings.Cut(key, ":"); ok {
		table, _ := doc[ns].(map[string]any)
		if table == nil {
			table = map[string]any{}
		}
		table[name] = value
		doc[ns] = table
	} else {
		doc[key] = value
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	out, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(resolved, out, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func readValues(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read prefs: %w", err)
	}
	var doc map[string]any
	if err := toml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse prefs %s: %w", path, err)
	}

	values := make(map[string]string)
	for k, v := range doc {
		if table, ok := v.(map[string]any); ok {
			for name, tv := range table {
				if s, ok := scalarString(tv); ok {
					values[k+":"+name] = s
				}
			}
			continue
		}
		if s, ok := scalarString(v); ok {
			values[k] = s
		}
	}
	return values, nil
}

func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), true
	case string:
		return x, true
	default:
		return "", false
	}
}

// flagKeys are stored as 0/1 flags and read back as value == 1.
var flagKeys = map[string]bool{
	"cmsecure:lockscreen_blur_enabled": true,
}

func parseBool(raw string, def, flag bool) bool {
	raw = strings.TrimSpace(raw)
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if flag {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return def
		}
		return n == 1
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n != 0
	}
	return def
}

func changedKeys(prev, curr map[string]string) []string {
	var changed []string
	for k, v := range curr {
		if old, ok := prev[k]; !ok || old != v {
			changed = append(changed, k)
		}
	}
	for k := range prev {
		if _, ok := curr[k]; !ok {
			changed = append(changed, k)
		}
	}
	sort.Strings(changed)
	return changed
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
