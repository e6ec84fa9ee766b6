package output

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/a11y-snapshot/internal/model"
)

func sampleResult() ParseResult {
	return ParseResult{
		Source:          "screen.yaml",
		LayoutDirection: model.LeftToRight,
		Markers: []model.Marker{
			{
				Index:       0,
				Description: "OK. Button.",
				Label:       "OK",
				Traits:      model.TraitButton,
				Shape:       model.FrameShape(model.Rect{X: 10, Y: 20, Width: 100, Height: 30}),
			},
			{
				Index:       1,
				Description: "Name. Text Field.",
				Hint:        "Double tap to edit.",
				Label:       "Name",
				Traits:      model.TraitTextEntry,
				Shape:       model.FrameShape(model.Rect{X: 10, Y: 60, Width: 200, Height: 30}),
			},
		},
	}
}

// withFormat runs fn with the package output settings temporarily changed.
func withFormat(t *testing.T, f Format, pretty bool, fn func()) {
	t.Helper()
	oldFormat, oldPretty := OutputFormat, PrettyOutput
	OutputFormat, PrettyOutput = f, pretty
	defer func() { OutputFormat, PrettyOutput = oldFormat, oldPretty }()
	fn()
}

func TestPrint_YAMLToStdout(t *testing.T) {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	var err error
	withFormat(t, FormatYAML, false, func() { err = Print(sampleResult()) })
	w.Close()
	os.Stdout = old
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	buf.ReadFrom(r)

	var decoded ParseResult
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if diff := cmp.Diff(sampleResult(), decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFprint_JSON(t *testing.T) {
	tests := []struct {
		name      string
		pretty    bool
		multiLine bool
	}{
		{"compact", false, false},
		{"pretty", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			var err error
			withFormat(t, FormatJSON, tt.pretty, func() { err = Fprint(&buf, sampleResult()) })
			if err != nil {
				t.Fatal(err)
			}
			lines := bytes.Count(buf.Bytes(), []byte("\n"))
			if tt.multiLine != (lines > 1) {
				t.Errorf("pretty=%v produced %d lines:\n%s", tt.pretty, lines, buf.String())
			}
			var decoded ParseResult
			if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
				t.Fatalf("output is not valid JSON: %v", err)
			}
			if diff := cmp.Diff(sampleResult(), decoded); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFprint_JSONDoesNotEscapeHTML(t *testing.T) {
	var buf bytes.Buffer
	withFormat(t, FormatJSON, false, func() {
		_ = Fprint(&buf, []model.Marker{{Description: "Q&A <beta>"}})
	})
	if !strings.Contains(buf.String(), "Q&A <beta>") {
		t.Errorf("expected unescaped output, got %s", buf.String())
	}
}

func TestParseResult_OmitEmpty(t *testing.T) {
	data, err := yaml.Marshal(ParseResult{Markers: []model.Marker{}})
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"source", "layout_direction", "idiom"} {
		if _, ok := m[key]; ok {
			t.Errorf("empty %s should be omitted", key)
		}
	}
	if _, ok := m["markers"]; !ok {
		t.Error("markers should always be present")
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"yaml", "json", "legend"} {
		if f, err := ParseFormat(s); err != nil || string(f) != s {
			t.Errorf("ParseFormat(%q) = %q, %v", s, f, err)
		}
	}
	if f, err := ParseFormat(""); err != nil || f != FormatYAML {
		t.Errorf("ParseFormat(\"\") = %q, %v", f, err)
	}
	if _, err := ParseFormat("agent"); err == nil {
		t.Error("ParseFormat(\"agent\") should fail")
	}
}
