package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Point is a location in points.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Offset returns the point translated by dx, dy.
func (p Point) Offset(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// ApproximatelyEqual reports whether both coordinates differ by less than tolerance.
func (p Point) ApproximatelyEqual(o Point, tolerance float64) bool {
	return math.Abs(p.X-o.X) < tolerance && math.Abs(p.Y-o.Y) < tolerance
}

// Rect is an axis-aligned rectangle in points.
type Rect struct {
	X      float64 `yaml:"x" json:"x"`
	Y      float64 `yaml:"y" json:"y"`
	Width  float64 `yaml:"w" json:"w"`
	Height float64 `yaml:"h" json:"h"`
}

// rectFields mirrors Rect without its decoding methods.
type rectFields Rect

func rectFromSlice(v []float64) (Rect, error) {
	if len(v) != 4 {
		return Rect{}, fmt.Errorf("rect needs 4 numbers [x, y, w, h], got %d", len(v))
	}
	return Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

// UnmarshalYAML accepts a {x, y, w, h} mapping or an [x, y, w, h] sequence.
func (r *Rect) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var v []float64
		if err := node.Decode(&v); err != nil {
			return err
		}
		parsed, err := rectFromSlice(v)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*r = parsed
		return nil
	}
	var f rectFields
	if err := node.Decode(&f); err != nil {
		return err
	}
	*r = Rect(f)
	return nil
}

// UnmarshalJSON accepts a {"x", "y", "w", "h"} object or an [x, y, w, h] array.
func (r *Rect) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		var v []float64
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		parsed, err := rectFromSlice(v)
		if err != nil {
			return err
		}
		*r = parsed
		return nil
	}
	var f rectFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*r = Rect(f)
	return nil
}

// NullRect is the identity for Union. Its origin sorts after every real rect.
var NullRect = Rect{X: math.Inf(1), Y: math.Inf(1)}

// IsNull reports whether r is the null rectangle.
func (r Rect) IsNull() bool {
	return math.IsInf(r.X, 1) || math.IsInf(r.Y, 1)
}

// IsZeroSize reports whether both dimensions are zero.
func (r Rect) IsZeroSize() bool {
	return r.Width == 0 && r.Height == 0
}

func (r Rect) MinX() float64 { return r.X }
func (r Rect) MinY() float64 { return r.Y }
func (r Rect) MaxX() float64 { return r.X + r.Width }
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Mid returns the center point.
func (r Rect) Mid() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Offset returns the rect translated by dx, dy.
func (r Rect) Offset(dx, dy float64) Rect {
	if r.IsNull() {
		return r
	}
	r.X += dx
	r.Y += dy
	return r
}

// Union returns the smallest rect containing both r and o.
func (r Rect) Union(o Rect) Rect {
	if r.IsNull() {
		return o
	}
	if o.IsNull() {
		return r
	}
	minX := math.Min(r.MinX(), o.MinX())
	minY := math.Min(r.MinY(), o.MinY())
	maxX := math.Max(r.MaxX(), o.MaxX())
	maxY := math.Max(r.MaxY(), o.MaxY())
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Intersects reports whether the two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	if r.IsNull() || o.IsNull() {
		return false
	}
	return r.MinX() < o.MaxX() && r.MaxX() > o.MinX() && r.MinY() < o.MaxY() && r.MaxY() > o.MinY()
}

// Path is an arbitrary accessibility outline made of closed polygons.
type Path [][]Point

// RectPath returns a path tracing the outline of r.
func RectPath(r Rect) Path {
	return Path{{
		{X: r.MinX(), Y: r.MinY()},
		{X: r.MaxX(), Y: r.MinY()},
		{X: r.MaxX(), Y: r.MaxY()},
		{X: r.MinX(), Y: r.MaxY()},
	}}
}

// IsEmpty reports whether the path has no points.
func (p Path) IsEmpty() bool {
	for _, sub := range p {
		if len(sub) > 0 {
			return false
		}
	}
	return true
}

// Bounds returns the bounding box of every point in the path.
func (p Path) Bounds() Rect {
	if p.IsEmpty() {
		return NullRect
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, sub := range p {
		for _, pt := range sub {
			minX = math.Min(minX, pt.X)
			minY = math.Min(minY, pt.Y)
			maxX = math.Max(maxX, pt.X)
			maxY = math.Max(maxY, pt.Y)
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Offset returns a translated copy of the path.
func (p Path) Offset(dx, dy float64) Path {
	out := make(Path, len(p))
	for i, sub := range p {
		out[i] = make([]Point, len(sub))
		for j, pt := range sub {
			out[i][j] = pt.Offset(dx, dy)
		}
	}
	return out
}

// Shape is the outline highlighted while an element has focus: either a
// frame or a path, in the coordinate space of the parsed root.
type Shape struct {
	Frame *Rect `yaml:"frame,omitempty" json:"frame,omitempty"`
	Path  Path  `yaml:"path,omitempty"  json:"path,omitempty"`
}

// FrameShape returns a frame-backed shape.
func FrameShape(r Rect) Shape {
	return Shape{Frame: &r}
}

// PathShape returns a path-backed shape.
func PathShape(p Path) Shape {
	return Shape{Path: p}
}

// IsPath reports whether the shape is path-backed.
func (s Shape) IsPath() bool {
	return s.Frame == nil && !s.Path.IsEmpty()
}

// Bounds returns the frame, or the bounding box of the path.
func (s Shape) Bounds() Rect {
	if s.Frame != nil {
		return *s.Frame
	}
	return s.Path.Bounds()
}
