package cmd

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mj1618/a11y-snapshot/internal/model"
)

func TestFindCommand_Registered(t *testing.T) {
	found := false
	for _, c := range rootCmd.Commands() {
		if c.Name() == "find" {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected 'find' subcommand to be registered")
	}
}

func TestFindCommand_HasExpectedFlags(t *testing.T) {
	for _, name := range []string{"text", "ref", "traits", "limit", "exact"} {
		if findCmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag --%s to exist on find command", name)
		}
	}
}

func findMarkers() []model.Marker {
	return []model.Marker{
		{Index: 0, Description: "Subject", Label: "Subject", Ref: "subject"},
		{Index: 1, Description: "Test subject, unread", Label: "Test subject", Value: "unread", Ref: "test-subject"},
		{Index: 2, Description: "Body. Text field.", Label: "Body", Value: "subject line here", Ref: "body"},
	}
}

func TestCollectMatches_Substring(t *testing.T) {
	got := collectMatches(findMarkers(), "subject", false)
	if len(got) != 3 {
		t.Fatalf("expected 3 substring matches, got %d", len(got))
	}
}

func TestCollectMatches_Exact(t *testing.T) {
	got := collectMatches(findMarkers(), "SUBJECT", true)
	if len(got) != 1 || got[0].Index != 0 {
		t.Fatalf("expected only marker 0, got %+v", got)
	}
	got = collectMatches(findMarkers(), "unread", true)
	if len(got) != 1 || got[0].Index != 1 {
		t.Fatalf("exact match should consider the value, got %+v", got)
	}
}

func TestElementInfos(t *testing.T) {
	m := model.Marker{
		Index:       4,
		Ref:         "toolbar/save",
		Description: "Save. Button.",
		Shape:       model.FrameShape(model.Rect{X: 10.4, Y: 20.6, Width: 99.5, Height: 44}),
	}
	got := elementInfos([]model.Marker{m})
	want := []findElementInfo{{Number: 5, Ref: "toolbar/save", Description: "Save. Button.", Bounds: [4]int{10, 21, 100, 44}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("elementInfos mismatch (-want +got):\n%s", diff)
	}
}
