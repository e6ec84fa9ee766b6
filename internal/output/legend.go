package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mj1618/a11y-snapshot/internal/model"
)

// WriteLegend prints markers as a numbered list, the way they are labelled
// on an annotated screenshot. Values that have no legend rendering fall
// back to YAML.
func WriteLegend(w io.Writer, v interface{}) error {
	var lines []string
	switch r := v.(type) {
	case ParseResult:
		lines = legendHeader(r.Source)
		lines = append(lines, MarkerLegend(r.Markers, "")...)
	case *ParseResult:
		return WriteLegend(w, *r)
	case []ParseResult:
		for i, pr := range r {
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, legendHeader(pr.Source)...)
			lines = append(lines, MarkerLegend(pr.Markers, "")...)
		}
	case HierarchyResult:
		lines = legendHeader(r.Source)
		lines = append(lines, hierarchyLegend(r.Hierarchy, "")...)
	case []model.Marker:
		lines = MarkerLegend(r, "")
	default:
		return WriteYAML(w, v)
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

func legendHeader(source string) []string {
	if source == "" {
		return nil
	}
	return []string{"# " + source}
}

// MarkerLegend renders one line per marker, plus an indented hint line
// when the marker has a hint.
func MarkerLegend(markers []model.Marker, indent string) []string {
	var lines []string
	for _, m := range markers {
		lines = append(lines, indent+MarkerLine(m))
		if m.Hint != "" {
			lines = append(lines, indent+"    hint: "+m.Hint)
		}
	}
	return lines
}

// MarkerLine is the single-line rendering of a marker.
func MarkerLine(m model.Marker) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. ", m.Number())
	if m.Description == "" {
		b.WriteString("(silent)")
	} else {
		b.WriteString(m.Description)
	}
	r := m.Shape.Bounds()
	if !r.IsNull() {
		fmt.Fprintf(&b, " [%g,%g %gx%g]", r.X, r.Y, r.Width, r.Height)
	}
	if m.Ref != "" {
		b.WriteString(" @" + m.Ref)
	}
	return b.String()
}

func hierarchyLegend(nodes []model.HierarchyNode, indent string) []string {
	var lines []string
	for _, n := range nodes {
		if n.Marker != nil {
			lines = append(lines, MarkerLegend([]model.Marker{*n.Marker}, indent)...)
			continue
		}
		header := indent + string(n.Container.Kind)
		if n.Container.Label != "" {
			header += " " + fmt.Sprintf("%q", n.Container.Label)
		}
		lines = append(lines, header+":")
		lines = append(lines, hierarchyLegend(n.Children, indent+"  ")...)
	}
	return lines
}
