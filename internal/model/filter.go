package model

import "strings"

// FilterMarkers returns the markers carrying all of the given traits whose
// shape intersects bbox. A zero traits mask or nil bbox disables that filter.
// Traversal indices are preserved so numbering still matches the full list.
func FilterMarkers(markers []Marker, traits Traits, bbox *Rect) []Marker {
	if traits == 0 && bbox == nil {
		return markers
	}
	var result []Marker
	for _, m := range markers {
		if traits != 0 && !m.Traits.Contains(traits) {
			continue
		}
		if bbox != nil && !m.Shape.Bounds().Intersects(*bbox) {
			continue
		}
		result = append(result, m)
	}
	return result
}

// FilterByText returns the markers whose description, hint, label or value
// contains text (case-insensitive).
func FilterByText(markers []Marker, text string) []Marker {
	if text == "" {
		return markers
	}
	textLower := strings.ToLower(text)
	var result []Marker
	for _, m := range markers {
		if textMatchesMarker(m, textLower) {
			result = append(result, m)
		}
	}
	return result
}

func textMatchesMarker(m Marker, textLower string) bool {
	return strings.Contains(strings.ToLower(m.Description), textLower) ||
		strings.Contains(strings.ToLower(m.Hint), textLower) ||
		strings.Contains(strings.ToLower(m.Label), textLower) ||
		strings.Contains(strings.ToLower(m.Value), textLower)
}

// PruneSilent removes markers that have nothing to announce: an empty
// description and no hint, actions or custom content.
func PruneSilent(markers []Marker) []Marker {
	var result []Marker
	for _, m := range markers {
		if m.Description == "" && m.Hint == "" && len(m.CustomActions) == 0 && len(m.CustomContent) == 0 {
			continue
		}
		result = append(result, m)
	}
	return result
}
