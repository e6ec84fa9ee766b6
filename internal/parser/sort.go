package parser

import (
	"math"
	"sort"

	"github.com/mj1618/a11y-snapshot/internal/model"
)

// Minimum vertical distance, in points, between two origins before the
// screen reader treats them as separate lines. Measured on devices.
const (
	phoneVerticalSeparation = 8.0
	padVerticalSeparation   = 13.0
)

// minimumVerticalSeparation returns the line tolerance for an idiom. An
// unspecified idiom compares origins exactly.
func minimumVerticalSeparation(i model.Idiom) float64 {
	switch i {
	case model.IdiomPhone:
		return phoneVerticalSeparation
	case model.IdiomPad:
		return padVerticalSeparation
	default:
		return 0
	}
}

// element is one sorted leaf with the provider that will give it context.
type element struct {
	key      key
	provider *provider
}

// sorted flattens nodes into traversal order. Unless explicitlyOrdered,
// siblings are ordered top to bottom and then along the layout direction;
// groups are expanded in place so their members stay contiguous.
func (r *run) sorted(nodes []*node, explicitlyOrdered bool) []element {
	ordered := nodes
	if !explicitlyOrdered {
		frames := make(map[*node]model.Rect, len(nodes))
		for _, n := range nodes {
			frames[n] = r.sortFrame(n)
		}
		ordered = append([]*node(nil), nodes...)
		less := r.comparator()
		sort.SliceStable(ordered, func(i, j int) bool {
			return less(frames[ordered[i]].Origin(), frames[ordered[j]].Origin())
		})
	}

	var out []element
	for _, n := range ordered {
		if n.leaf {
			out = append(out, element{key: n.element, provider: n.provider})
			continue
		}
		out = append(out, r.sorted(n.children, n.explicitlyOrdered)...)
	}
	return out
}

// comparator orders two frame origins in reading order.
func (r *run) comparator() func(a, b model.Point) bool {
	horizontal := func(x1, x2 float64) bool { return x1 < x2 }
	if r.opts.LayoutDirection == model.RightToLeft {
		horizontal = func(x1, x2 float64) bool { return x1 > x2 }
	}
	minSep := minimumVerticalSeparation(r.opts.Idiom)
	return func(a, b model.Point) bool {
		if a.Y != b.Y && math.Abs(a.Y-b.Y) >= minSep {
			return a.Y < b.Y
		}
		return horizontal(a.X, b.X)
	}
}

// sortFrame is the box that positions n among its siblings. Paths are
// ignored: the frame is always used for ordering.
func (r *run) sortFrame(n *node) model.Rect {
	if n.leaf {
		return r.shape(n.element, false).Bounds()
	}
	if n.frameOverride != noKey {
		return r.shape(n.frameOverride, false).Bounds()
	}
	frame := model.NullRect
	for _, c := range n.children {
		frame = frame.Union(r.sortFrame(c))
	}
	return frame
}
