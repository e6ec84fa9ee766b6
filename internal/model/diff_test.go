package model

import "testing"

func TestDiffMarkers_NoChanges(t *testing.T) {
	markers := []Marker{
		{Index: 0, Label: "OK", Description: "OK. Button.", Traits: TraitButton, Shape: FrameShape(Rect{10, 20, 100, 30})},
	}
	changes := DiffMarkers(markers, markers)
	if len(changes) != 0 {
		t.Errorf("expected no changes, got %d", len(changes))
	}
}

func TestDiffMarkers_Added(t *testing.T) {
	prev := []Marker{{Index: 0, Description: "OK. Button."}}
	curr := []Marker{
		{Index: 0, Description: "OK. Button."},
		{Index: 1, Description: "Cancel. Button."},
	}
	changes := DiffMarkers(prev, curr)
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}
	if changes[0].Type != ChangeAdded {
		t.Errorf("expected added, got %s", changes[0].Type)
	}
	if changes[0].Marker.Description != "Cancel. Button." {
		t.Errorf("expected Cancel, got %s", changes[0].Marker.Description)
	}
}

func TestDiffMarkers_Removed(t *testing.T) {
	prev := []Marker{
		{Index: 0, Description: "OK. Button."},
		{Index: 1, Description: "Loading..."},
	}
	curr := []Marker{{Index: 0, Description: "OK. Button."}}
	changes := DiffMarkers(prev, curr)
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}
	if changes[0].Type != ChangeRemoved {
		t.Errorf("expected removed, got %s", changes[0].Type)
	}
	if changes[0].Index != 1 || changes[0].Description != "Loading..." {
		t.Errorf("unexpected removal: %+v", changes[0])
	}
}

func TestDiffMarkers_Changed(t *testing.T) {
	prev := []Marker{{Label: "Search", Description: "Search. Search Field.", Traits: TraitSearchField}}
	curr := []Marker{{Label: "Search", Value: "hello", Description: "Search: hello. Search Field.", Traits: TraitSearchField}}
	changes := DiffMarkers(prev, curr)
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}
	if changes[0].Type != ChangeChanged {
		t.Errorf("expected changed, got %s", changes[0].Type)
	}
	if changes[0].Changes["value"][1] != "hello" {
		t.Errorf("expected new value 'hello', got %s", changes[0].Changes["value"][1])
	}
	if _, ok := changes[0].Changes["description"]; !ok {
		t.Error("expected description diff")
	}
}

func TestDiffMarkers_Empty(t *testing.T) {
	if changes := DiffMarkers(nil, nil); len(changes) != 0 {
		t.Errorf("expected no changes for nil inputs, got %d", len(changes))
	}
}

func TestDiffProperties_ShapeChange(t *testing.T) {
	prev := Marker{Shape: FrameShape(Rect{10, 20, 100, 30})}
	curr := Marker{Shape: FrameShape(Rect{10, 20, 200, 30})}
	diffs := diffProperties(prev, curr)
	if diffs == nil || diffs["shape"][0] == "" {
		t.Error("expected shape diff")
	}
}

func TestDiffProperties_SelectedChange(t *testing.T) {
	prev := Marker{Traits: TraitButton}
	curr := Marker{Traits: TraitButton | TraitSelected}
	diffs := diffProperties(prev, curr)
	if diffs == nil || diffs["selected"][1] != "true" {
		t.Errorf("expected selected diff, got %v", diffs)
	}
	if _, ok := diffs["traits"]; !ok {
		t.Error("expected traits diff")
	}
}

func TestDiffProperties_ContextChange(t *testing.T) {
	prev := Marker{Context: &Context{Kind: ContextSeries, Index: 1, Count: 2}}
	curr := Marker{Context: &Context{Kind: ContextSeries, Index: 1, Count: 3}}
	diffs := diffProperties(prev, curr)
	if diffs["context"] != [2]string{"series(1/2)", "series(1/3)"} {
		t.Errorf("unexpected context diff: %v", diffs["context"])
	}
}

func TestDiffProperties_NoDiff(t *testing.T) {
	m := Marker{Label: "OK", Value: "v", Shape: FrameShape(Rect{1, 2, 3, 4})}
	if diffs := diffProperties(m, m); diffs != nil {
		t.Errorf("expected nil for identical markers, got %v", diffs)
	}
}
