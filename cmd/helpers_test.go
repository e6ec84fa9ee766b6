package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"

	"github.com/mj1618/a11y-snapshot/internal/logging"
	"github.com/mj1618/a11y-snapshot/internal/model"
	"github.com/mj1618/a11y-snapshot/internal/parser"
)

const screenYAML = `
layout_direction: ltr
idiom: phone
root:
  frame: {x: 0, y: 0, w: 400, h: 800}
  subviews:
    - label: Save
      is_element: true
      traits: [button]
      frame: {x: 300, y: 0, w: 100, h: 40}
    - label: Title
      is_element: true
      traits: [header]
      frame: {x: 0, y: 0, w: 200, h: 40}
    - label: Delete
      is_element: true
      traits: [button, not_enabled]
      frame: {x: 0, y: 100, w: 100, h: 40}
    - is_element: true
      frame: {x: 0, y: 200, w: 10, h: 10}
`

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testParser() *parser.Parser {
	return parser.New(parser.WithLogger(logging.Discard()))
}

func descriptions(markers []model.Marker) string {
	var out []string
	for _, m := range markers {
		out = append(out, m.Description)
	}
	return strings.Join(out, "|")
}

// flagCommand returns a command carrying the root persistent flags and the
// filter flags, parsed from args.
func flagCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	addGlobalFlags(c.Flags())
	addFilterFlags(c)
	if err := c.ParseFlags(args); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestParseFile(t *testing.T) {
	path := writeDoc(t, "screen.yaml", screenYAML)
	f, err := parseFile(testParser(), path, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := "Title. Heading.|Save. Button.|Delete. Dimmed. Button.|"
	if got := descriptions(f.markers); got != want {
		t.Errorf("descriptions = %q, want %q", got, want)
	}
	if f.markers[1].Ref != "save" {
		t.Errorf("expected refs to be assigned, got %q", f.markers[1].Ref)
	}
	if len(model.FlattenHierarchy(f.hierarchy)) != len(f.markers) {
		t.Error("hierarchy and markers disagree")
	}

	r := f.result(path)
	if r.Source != path || r.LayoutDirection != model.LeftToRight || r.Idiom != model.IdiomPhone {
		t.Errorf("unexpected result header %+v", r)
	}
}

func TestParseFile_Errors(t *testing.T) {
	if _, err := parseFile(testParser(), filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Error("expected error for missing file")
	}

	bad := writeDoc(t, "bad.yaml", `
root:
  frame: {x: 0, y: 0, w: 400, h: 800}
  kind: tab_bar
  tab_items: [Home]
  subviews:
    - {label: A, is_element: true, frame: {x: 0, y: 0, w: 10, h: 10}}
`)
	_, err := parseFile(testParser(), bad, nil)
	if !errors.Is(err, parser.ErrInconsistentTree) {
		t.Errorf("expected ErrInconsistentTree, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), bad) {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestCallOptions(t *testing.T) {
	path := writeDoc(t, "screen.yaml", screenYAML)

	opts, err := callOptions(flagCommand(t, "--layout-direction", "rtl"))
	if err != nil {
		t.Fatal(err)
	}
	f, err := parseFile(testParser(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	// Right to left, the Save button on the right is read before the title.
	if got := descriptions(f.markers); !strings.HasPrefix(got, "Save. Button.|Title. Heading.") {
		t.Errorf("rtl descriptions = %q", got)
	}
	if got := f.result(path).LayoutDirection; got != model.RightToLeft {
		t.Errorf("flag direction should win over the document, got %q", got)
	}

	if opts, err := callOptions(flagCommand(t)); err != nil || len(opts) != 0 {
		t.Errorf("no flags should give no options, got %d (%v)", len(opts), err)
	}
	if _, err := callOptions(flagCommand(t, "--layout-direction", "up")); err == nil {
		t.Error("expected error for bad direction")
	}
	if _, err := callOptions(flagCommand(t, "--idiom", "watch")); err == nil {
		t.Error("expected error for bad idiom")
	}
	if opts, err := callOptions(flagCommand(t, "--idiom", "pad")); err != nil || len(opts) != 1 {
		t.Errorf("expected one idiom option, got %d (%v)", len(opts), err)
	}
}

func TestNewParser_Verbosity(t *testing.T) {
	if _, err := newParser(flagCommand(t, "--verbosity", "chatty")); err == nil {
		t.Error("expected error for unknown verbosity")
	}
	p, err := newParser(flagCommand(t, "--verbosity", "minimal"))
	if err != nil {
		t.Fatal(err)
	}
	f, err := parseFile(p, writeDoc(t, "screen.yaml", screenYAML), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := f.markers[0].Description; got != "Title" {
		t.Errorf("minimal description = %q, want Title", got)
	}
}

func TestMarkerFilter(t *testing.T) {
	f, err := parseFile(testParser(), writeDoc(t, "screen.yaml", screenYAML), nil)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no filter", nil, "Title. Heading.|Save. Button.|Delete. Dimmed. Button.|"},
		{"text", []string{"--text", "save"}, "Save. Button."},
		{"traits", []string{"--traits", "button"}, "Save. Button.|Delete. Dimmed. Button."},
		{"traits and text", []string{"--traits", "button", "--text", "dimmed"}, "Delete. Dimmed. Button."},
		{"bbox", []string{"--bbox", "0,90,50,20"}, "Delete. Dimmed. Button."},
		{"prune", []string{"--prune"}, "Title. Heading.|Save. Button.|Delete. Dimmed. Button."},
		{"nothing", []string{"--text", "zzz"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := getMarkerFilter(flagCommand(t, tt.args...))
			if err != nil {
				t.Fatal(err)
			}
			got := filter.apply(f.markers)
			if got == nil {
				t.Fatal("apply should never return nil")
			}
			if d := descriptions(got); d != tt.want {
				t.Errorf("got %q, want %q", d, tt.want)
			}
		})
	}
}

func TestMarkerFilter_KeepsTraversalIndex(t *testing.T) {
	f, err := parseFile(testParser(), writeDoc(t, "screen.yaml", screenYAML), nil)
	if err != nil {
		t.Fatal(err)
	}
	filter, _ := getMarkerFilter(flagCommand(t, "--text", "delete"))
	got := filter.apply(f.markers)
	if len(got) != 1 || got[0].Index != 2 {
		t.Errorf("expected Delete at traversal index 2, got %+v", got)
	}
}

func TestGetMarkerFilter_Errors(t *testing.T) {
	if _, err := getMarkerFilter(flagCommand(t, "--traits", "button,sparkly")); err == nil {
		t.Error("expected error for unknown trait")
	}
	if _, err := getMarkerFilter(flagCommand(t, "--bbox", "1,2,3")); err == nil {
		t.Error("expected error for malformed bbox")
	}
}

func TestParseFiles_KeepsOrder(t *testing.T) {
	paths := []string{"a", "b", "c", "d", "e"}
	var inFlight, peak atomic.Int32
	files, err := parseFiles(context.Background(), paths, 2, func(path string) (parsedFile, error) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		return parsedFile{doc: &model.Document{Idiom: model.Idiom(path)}}, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	for i, f := range files {
		if string(f.doc.Idiom) != paths[i] {
			t.Errorf("files[%d] came from %q, want %q", i, f.doc.Idiom, paths[i])
		}
	}
	if peak.Load() > 2 {
		t.Errorf("peak concurrency %d exceeds limit 2", peak.Load())
	}
}

func TestParseFiles_Error(t *testing.T) {
	boom := errors.New("boom")
	_, err := parseFiles(context.Background(), []string{"ok", "bad"}, 0, func(path string) (parsedFile, error) {
		if path == "bad" {
			return parsedFile{}, boom
		}
		return parsedFile{doc: &model.Document{}}, nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

type fixedDirection model.LayoutDirection

func (d fixedDirection) LayoutDirection() model.LayoutDirection {
	return model.LayoutDirection(d)
}

func TestParseFile_ReportsResolvedDirection(t *testing.T) {
	path := writeDoc(t, "bare.yaml", `
root:
  frame: {x: 0, y: 0, w: 400, h: 800}
  subviews:
    - {label: Left, is_element: true, frame: {x: 0, y: 0, w: 100, h: 40}}
    - {label: Right, is_element: true, frame: {x: 300, y: 0, w: 100, h: 40}}
`)
	p := parser.New(parser.WithLogger(logging.Discard()), parser.WithLayoutDirectionProvider(fixedDirection(model.RightToLeft)))
	f, err := parseFile(p, path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := f.result(path).LayoutDirection; got != model.RightToLeft {
		t.Errorf("layout direction = %q, want the provider's rtl", got)
	}
	if f.markers[0].Label != "Right" {
		t.Errorf("expected right to left order, got %q first", f.markers[0].Label)
	}

	f, err = parseFile(testParser(), path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := f.result(path).LayoutDirection; got != model.LeftToRight {
		t.Errorf("layout direction = %q, want the ltr default", got)
	}
}

func TestParseFile_ExplicitElementsWithoutKind(t *testing.T) {
	path := writeDoc(t, "list.yaml", `
root:
  frame: {x: 0, y: 0, w: 400, h: 800}
  subviews:
    - container_type: list
      frame: {x: 0, y: 100, w: 400, h: 200}
      elements:
        - label: Inbox
          is_element: true
          frame_in_container: {x: 0, y: 0, w: 400, h: 50}
        - label: Sent
          is_element: true
          accessibility_frame: {x: 0, y: 150, w: 400, h: 50}
`)
	f, err := parseFile(testParser(), path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.markers) != 2 {
		t.Fatalf("expected two markers, got %d", len(f.markers))
	}
	if f.markers[0].Label != "Inbox" || f.markers[1].Label != "Sent" {
		t.Errorf("unexpected order %q, %q", f.markers[0].Label, f.markers[1].Label)
	}
	wantShapes := []model.Rect{{X: 0, Y: 100, Width: 400, Height: 50}, {X: 0, Y: 150, Width: 400, Height: 50}}
	for i, m := range f.markers {
		if got := m.Shape.Bounds(); got != wantShapes[i] {
			t.Errorf("%s: shape = %+v, want %+v", m.Label, got, wantShapes[i])
		}
	}
	if got := f.markers[0].ActivationPoint; got != (model.Point{X: 200, Y: 125}) {
		t.Errorf("activation point = %+v", got)
	}
	if c := f.markers[0].Context; c == nil || c.Kind != model.ContextListStart {
		t.Errorf("first element context = %v, want list start", c)
	}
	if c := f.markers[1].Context; c == nil || c.Kind != model.ContextListEnd {
		t.Errorf("last element context = %v, want list end", c)
	}
	if len(f.hierarchy) != 1 || f.hierarchy[0].Container == nil || f.hierarchy[0].Container.Kind != model.ContainerKindList {
		t.Errorf("expected one list container in the hierarchy, got %+v", f.hierarchy)
	}
}
