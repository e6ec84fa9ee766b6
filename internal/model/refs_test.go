package model

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Search", "search"},
		{"Full Name", "full-name"},
		{"OK", "ok"},
		{"hello---world", "hello-world"},
		{"  spaces  ", "spaces"},
		{"Special!@#$%Chars", "special-chars"},
		{"Inbox (23288 unread)", "inbox-23288-unread"},
		{"", ""},
	}
	for _, tt := range tests {
		got := slugify(tt.input)
		if got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGenerateRefs_PrefersIdentifier(t *testing.T) {
	markers := []Marker{
		{Identifier: "submit_button", Label: "Submit", Description: "Submit. Button."},
		{Label: "Cancel", Description: "Cancel. Button."},
		{Description: "Swipe to delete"},
		{Traits: TraitImage},
	}
	GenerateRefs(markers)

	want := []string{"submit_button", "cancel", "swipe-to-delete", "image"}
	for i, w := range want {
		if markers[i].Ref != w {
			t.Errorf("marker %d: ref = %q, want %q", i, markers[i].Ref, w)
		}
	}
}

func TestGenerateRefs_ContextPrefix(t *testing.T) {
	markers := []Marker{
		{Label: "Home", Context: &Context{Kind: ContextTabBarItem, Index: 1, Count: 2}},
		{Label: "First", Context: &Context{Kind: ContextListStart}},
	}
	GenerateRefs(markers)
	if markers[0].Ref != "tabs/home" {
		t.Errorf("got %q, want tabs/home", markers[0].Ref)
	}
	if markers[1].Ref != "list/first" {
		t.Errorf("got %q, want list/first", markers[1].Ref)
	}
}

func TestGenerateRefs_Deduplicates(t *testing.T) {
	markers := []Marker{{Label: "Row"}, {Label: "Row"}, {Label: "Other"}}
	GenerateRefs(markers)
	if markers[0].Ref != "row.1" || markers[1].Ref != "row.2" {
		t.Errorf("got %q, %q; want row.1, row.2", markers[0].Ref, markers[1].Ref)
	}
	if markers[2].Ref != "other" {
		t.Errorf("got %q, want other", markers[2].Ref)
	}
}

func TestFindMarkerByRef(t *testing.T) {
	markers := []Marker{
		{Index: 0, Label: "Home", Context: &Context{Kind: ContextTab}},
		{Index: 1, Label: "Settings", Context: &Context{Kind: ContextTab}},
		{Index: 2, Label: "Home", Context: &Context{Kind: ContextListStart}},
	}
	GenerateRefs(markers)

	m, err := FindMarkerByRef(markers, "tabs/settings")
	if err != nil || m.Index != 1 {
		t.Fatalf("exact match failed: %v", err)
	}
	m, err = FindMarkerByRef(markers, "settings")
	if err != nil || m.Index != 1 {
		t.Fatalf("suffix match failed: %v", err)
	}
	if _, err := FindMarkerByRef(markers, "home"); err == nil || !strings.Contains(err.Error(), "multiple") {
		t.Errorf("expected ambiguity error, got %v", err)
	}
	if _, err := FindMarkerByRef(markers, "missing"); err == nil {
		t.Error("expected error for missing ref")
	}
}

func TestGenerateHierarchyRefs(t *testing.T) {
	home := Marker{Index: 0, Label: "Home"}
	save := Marker{Index: 1, Label: "Save"}
	nodes := []HierarchyNode{
		{Container: &Container{Kind: ContainerKindList}, Children: []HierarchyNode{{Marker: &home}}},
		{Marker: &save},
	}
	flat := GenerateHierarchyRefs(nodes)
	if len(flat) != 2 {
		t.Fatalf("expected 2 markers, got %d", len(flat))
	}
	if home.Ref != flat[0].Ref || save.Ref != flat[1].Ref {
		t.Errorf("hierarchy refs %q/%q differ from flat refs %q/%q", home.Ref, save.Ref, flat[0].Ref, flat[1].Ref)
	}
	if home.Ref == "" || save.Ref != "save" {
		t.Errorf("unexpected refs %q, %q", home.Ref, save.Ref)
	}
}
