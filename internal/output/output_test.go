package output

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/mj1618/statusbar-window/internal/model"
	"gopkg.in/yaml.v3"
)

func sampleResult() StateResult {
	s := model.State{KeyguardShowing: true, StatusBarState: model.BarStateKeyguard}
	in := model.Inputs{BarHeight: 72, AwakeInterval: model.DefaultAwakeInterval}
	return StateResult{TS: 1707500000, State: s, Configuration: model.Derive(s, in)}
}

func TestPrintYAML(t *testing.T) {
	result := sampleResult()

	// Capture stdout
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	origFormat := OutputFormat
	OutputFormat = FormatYAML
	err := Print(result)
	OutputFormat = origFormat
	w.Close()
	os.Stdout = old

	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	if bytes.Count([]byte(output), []byte("\n")) <= 1 {
		t.Errorf("YAML output should be multi-line, got:\n%s", output)
	}
	if !strings.Contains(output, "statusBarState: keyguard") {
		t.Errorf("bar state should be written by name:\n%s", output)
	}

	var decoded StateResult
	if err := yaml.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if decoded.State != result.State {
		t.Errorf("state: got %+v, want %+v", decoded.State, result.State)
	}
	if decoded.Configuration != result.Configuration {
		t.Errorf("configuration: got %+v, want %+v", decoded.Configuration, result.Configuration)
	}
}

func TestWriteJSON_Compact(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleResult(), false); err != nil {
		t.Fatal(err)
	}
	output := strings.TrimSpace(buf.String())
	if strings.Contains(output, "\n") {
		t.Errorf("compact JSON should be single-line, got:\n%s", output)
	}

	var m map[string]interface{}
	if err := json.Unmarshal([]byte(output), &m); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	cfg, ok := m["configuration"].(map[string]interface{})
	if !ok {
		t.Fatalf("configuration missing: %v", m)
	}
	if cfg["hasTopUi"] != true {
		t.Errorf("hasTopUi: got %v", cfg["hasTopUi"])
	}
	layout := cfg["layout"].(map[string]interface{})
	if layout["height"].(float64) != -1 {
		t.Errorf("height: got %v", layout["height"])
	}
}

func TestWriteJSON_Pretty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, map[string]string{"a": "<b>"}, true); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\n  \"a\"") {
		t.Errorf("pretty JSON should be indented, got:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "<b>") {
		t.Errorf("HTML should not be escaped, got:\n%s", buf.String())
	}
}

func TestSprint_UsesFormat(t *testing.T) {
	origFormat := OutputFormat
	defer func() { OutputFormat = origFormat }()

	OutputFormat = FormatJSON
	out, err := Sprint(map[string]int{"n": 1})
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != `{"n":1}` {
		t.Errorf("got %q", out)
	}

	OutputFormat = Format("xml")
	if _, err := Sprint(1); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"yaml", "json"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q): %v", s, err)
		}
	}
	if _, err := ParseFormat("toml"); err == nil {
		t.Error("expected error for toml")
	}
}
