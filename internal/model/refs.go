package model

import (
	"fmt"
	"regexp"
	"strings"
)

// slugRe matches characters that are not lowercase alphanumeric or hyphens.
var slugRe = regexp.MustCompile(`[^a-z0-9-]+`)

// slugify converts a label to a URL-safe slug: lowercase, hyphens for spaces/special chars.
func slugify(s string) string {
	s = strings.ToLower(s)
	s = slugRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	// Collapse multiple hyphens
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	// Truncate long slugs
	if len(s) > 40 {
		s = s[:40]
		s = strings.TrimRight(s, "-")
	}
	return s
}

// bestLabel returns the most stable name for a marker: identifier > label.
// Value is excluded because it changes (text field content, slider position).
func bestLabel(m Marker) string {
	if m.Identifier != "" {
		return m.Identifier
	}
	return m.Label
}

// contextSegments are the ref path prefixes contributed by a marker's context.
var contextSegments = map[ContextKind]string{
	ContextSeries:        "series",
	ContextTab:           "tabs",
	ContextTabBarItem:    "tabs",
	ContextDataTableCell: "table",
	ContextListStart:     "list",
	ContextListEnd:       "list",
	ContextLandmarkStart: "landmark",
	ContextLandmarkEnd:   "landmark",
}

// refSegment returns the leaf segment for a marker.
func refSegment(m Marker) string {
	if slug := slugify(bestLabel(m)); slug != "" {
		return slug
	}
	if slug := slugify(m.Description); slug != "" {
		return slug
	}
	if names := m.Traits.Names(); len(names) > 0 {
		return slugify(names[0])
	}
	return "element"
}

// GenerateRefs populates the Ref field of each marker. Refs are path-like
// identifiers such as "tabs/home" or "list/first-item" that stay stable as
// long as the element keeps its identity, even when traversal indices shift.
// Duplicates get ".1", ".2" suffixes in traversal order.
func GenerateRefs(markers []Marker) {
	for i := range markers {
		m := &markers[i]
		seg := refSegment(*m)
		if m.Context != nil {
			if prefix, ok := contextSegments[m.Context.Kind]; ok {
				seg = prefix + "/" + seg
			}
		}
		m.Ref = seg
	}
	deduplicateRefs(markers)
}

// deduplicateRefs finds markers with identical refs and appends .1, .2 suffixes.
func deduplicateRefs(markers []Marker) {
	refCounts := make(map[string][]*Marker)
	var order []string
	for i := range markers {
		ref := markers[i].Ref
		if ref == "" {
			continue
		}
		if _, seen := refCounts[ref]; !seen {
			order = append(order, ref)
		}
		refCounts[ref] = append(refCounts[ref], &markers[i])
	}
	for _, ref := range order {
		ms := refCounts[ref]
		if len(ms) <= 1 {
			continue
		}
		for i, m := range ms {
			m.Ref = fmt.Sprintf("%s.%d", ref, i+1)
		}
	}
}

// FindMarkerByRef returns the marker matching ref exactly, or the single
// marker whose ref ends with "/"+ref.
func FindMarkerByRef(markers []Marker, ref string) (*Marker, error) {
	for i := range markers {
		if markers[i].Ref == ref {
			return &markers[i], nil
		}
	}

	var matches []*Marker
	for i := range markers {
		if strings.HasSuffix(markers[i].Ref, "/"+ref) {
			matches = append(matches, &markers[i])
		}
	}

	if len(matches) == 1 {
		return matches[0], nil
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no marker matches ref %q", ref)
	}

	// Several suffix matches: list them so the caller can pick one.
	var b strings.Builder
	fmt.Fprintf(&b, "multiple markers match ref %q:\n", ref)
	for _, m := range matches {
		fmt.Fprintf(&b, "  ref=%q index=%d description=%q\n", m.Ref, m.Index, m.Description)
	}
	return nil, fmt.Errorf("%s", b.String())
}

// GenerateHierarchyRefs assigns refs to every marker in a hierarchy, the
// same refs GenerateRefs gives the flattened list, and returns that list.
func GenerateHierarchyRefs(nodes []HierarchyNode) []Marker {
	flat := FlattenHierarchy(nodes)
	GenerateRefs(flat)
	refs := make(map[int]string, len(flat))
	for _, m := range flat {
		refs[m.Index] = m.Ref
	}
	for _, n := range nodes {
		n.Walk(func(h HierarchyNode) {
			if h.Marker != nil {
				h.Marker.Ref = refs[h.Marker.Index]
			}
		})
	}
	return flat
}
