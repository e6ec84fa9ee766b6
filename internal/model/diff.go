package model

import "fmt"

// ChangeType represents the kind of change detected between two parses.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeRemoved ChangeType = "removed"
	ChangeChanged ChangeType = "changed"
)

// MarkerChange represents a single change between two marker lists.
type MarkerChange struct {
	Type        ChangeType           `yaml:"type"                  json:"type"`
	Index       int                  `yaml:"index"                 json:"index"`
	Marker      *Marker              `yaml:"marker,omitempty"      json:"marker,omitempty"`      // For added: the full marker
	Description string               `yaml:"description,omitempty" json:"description,omitempty"` // For removed: what was announced
	Changes     map[string][2]string `yaml:"changes,omitempty"     json:"changes,omitempty"`     // For changed: field diffs
}

// DiffMarkers compares two marker lists position by position. Markers are
// matched by traversal index, so an inserted element shows up as a chain of
// changes; use DiffMarkersByHash to match by identity instead.
func DiffMarkers(prev, curr []Marker) []MarkerChange {
	var changes []MarkerChange
	for i, m := range curr {
		if i >= len(prev) {
			mCopy := m
			changes = append(changes, MarkerChange{
				Type:   ChangeAdded,
				Index:  i,
				Marker: &mCopy,
			})
			continue
		}
		if diffs := diffProperties(prev[i], m); len(diffs) > 0 {
			changes = append(changes, MarkerChange{
				Type:    ChangeChanged,
				Index:   i,
				Changes: diffs,
			})
		}
	}
	for i := len(curr); i < len(prev); i++ {
		changes = append(changes, MarkerChange{
			Type:        ChangeRemoved,
			Index:       i,
			Description: prev[i].Description,
		})
	}
	return changes
}

// diffProperties compares two markers and returns changed fields.
func diffProperties(prev, curr Marker) map[string][2]string {
	diffs := diffMutable(prev, curr)
	if prev.Description != curr.Description {
		diffs["description"] = [2]string{prev.Description, curr.Description}
	}
	if prev.Traits != curr.Traits {
		diffs["traits"] = [2]string{prev.Traits.String(), curr.Traits.String()}
	}
	if prev.Context.String() != curr.Context.String() {
		diffs["context"] = [2]string{prev.Context.String(), curr.Context.String()}
	}
	if len(diffs) == 0 {
		return nil
	}
	return diffs
}

// diffMutable compares the properties that may change while an element
// keeps its identity.
func diffMutable(prev, curr Marker) map[string][2]string {
	diffs := make(map[string][2]string)

	if prev.Value != curr.Value {
		diffs["value"] = [2]string{prev.Value, curr.Value}
	}
	if prev.Hint != curr.Hint {
		diffs["hint"] = [2]string{prev.Hint, curr.Hint}
	}
	if pb, cb := prev.Shape.Bounds(), curr.Shape.Bounds(); pb != cb {
		diffs["shape"] = [2]string{
			fmt.Sprintf("%v", pb),
			fmt.Sprintf("%v", cb),
		}
	}
	if prev.ActivationPoint != curr.ActivationPoint {
		diffs["activation_point"] = [2]string{
			fmt.Sprintf("%v", prev.ActivationPoint),
			fmt.Sprintf("%v", curr.ActivationPoint),
		}
	}
	if prev.Traits.Contains(TraitSelected) != curr.Traits.Contains(TraitSelected) {
		diffs["selected"] = [2]string{
			fmt.Sprintf("%v", prev.Traits.Contains(TraitSelected)),
			fmt.Sprintf("%v", curr.Traits.Contains(TraitSelected)),
		}
	}
	return diffs
}
