// Package overlay draws parsed markers onto a screenshot of the same
// screen so traversal order can be checked by eye.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/mj1618/a11y-snapshot/internal/model"
)

// LabelMode controls what text is drawn on each marker box.
type LabelMode int

const (
	// LabelNumbers draws the 1-based traversal number.
	LabelNumbers LabelMode = iota
	// LabelRefs draws the marker ref, falling back to the number.
	LabelRefs
)

// Options configures an annotation.
type Options struct {
	Mode LabelMode
	// Scale converts points to image pixels. Zero derives it from the
	// ratio of the image width to ScreenWidth.
	Scale float64
	// ScreenWidth is the width in points of the parsed root.
	ScreenWidth float64
	// ActivationPoints draws a cross at each marker's activation point.
	ActivationPoints bool
}

var (
	boxColor        = color.RGBA{R: 220, G: 0, B: 0, A: 255}
	activationColor = color.RGBA{R: 0, G: 120, B: 255, A: 255}
	textColor       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor    = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

// Annotate returns a copy of img with a box and label for every marker.
func Annotate(img image.Image, markers []model.Marker, opts Options) *image.RGBA {
	rgba := toRGBA(img)
	scale := opts.scale(img.Bounds())
	for _, m := range markers {
		drawMarker(rgba, m, scale, opts)
	}
	return rgba
}

// AnnotatePNG decodes a PNG from r, annotates it and encodes the result to w.
func AnnotatePNG(r io.Reader, w io.Writer, markers []model.Marker, opts Options) error {
	img, err := png.Decode(r)
	if err != nil {
		return fmt.Errorf("decode png: %w", err)
	}
	if err := png.Encode(w, Annotate(img, markers, opts)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func (o Options) scale(bounds image.Rectangle) float64 {
	if o.Scale > 0 {
		return o.Scale
	}
	if o.ScreenWidth > 0 {
		return float64(bounds.Dx()) / o.ScreenWidth
	}
	return 1
}

func toRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

func drawMarker(img *image.RGBA, m model.Marker, scale float64, opts Options) {
	r := m.Shape.Bounds()
	if r.IsNull() {
		return
	}
	min := img.Bounds().Min
	x := min.X + int(r.X*scale)
	y := min.Y + int(r.Y*scale)
	w := int(r.Width * scale)
	h := int(r.Height * scale)

	drawRectangle(img, x, y, x+w, y+h, boxColor)

	if opts.ActivationPoints {
		px := min.X + int(m.ActivationPoint.X*scale)
		py := min.Y + int(m.ActivationPoint.Y*scale)
		drawCross(img, px, py, 3, activationColor)
	}

	label := fmt.Sprintf("%d", m.Number())
	if opts.Mode == LabelRefs && m.Ref != "" {
		label = m.Ref
	}
	drawTextWithOutline(img, label, x+w/2, y+h/2)
}

// drawRectangle draws a rectangle outline clamped to the image.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	rect := image.Rect(x1, y1, x2, y2).Intersect(img.Bounds())
	if rect.Empty() {
		return
	}
	for x := rect.Min.X; x < rect.Max.X; x++ {
		img.Set(x, rect.Min.Y, c)
		img.Set(x, rect.Max.Y-1, c)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		img.Set(rect.Min.X, y, c)
		img.Set(rect.Max.X-1, y, c)
	}
}

func drawCross(img *image.RGBA, x, y, arm int, c color.Color) {
	for d := -arm; d <= arm; d++ {
		img.Set(x+d, y, c)
		img.Set(x, y+d, c)
	}
}

// drawTextWithOutline draws text centered at (x, y) with a one pixel
// outline so it stays legible on any background.
func drawTextWithOutline(img *image.RGBA, text string, x, y int) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	left := x - width/2
	baseline := y - face.Height/2 + face.Ascent

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(img, text, left+dx, baseline+dy, outlineColor)
		}
	}
	drawString(img, text, left, baseline, textColor)
}

func drawString(img *image.RGBA, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
