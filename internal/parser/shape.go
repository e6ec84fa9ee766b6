package parser

import (
	"fmt"
	"math"

	"github.com/mj1618/a11y-snapshot/internal/model"
)

// accessibilityFrame is the screen-space frame the element reports.
func accessibilityFrame(v *model.View) model.Rect {
	if v.AccessibilityFrame != nil {
		return *v.AccessibilityFrame
	}
	return v.Frame
}

// shape returns the outline of k in root space. The path wins when
// preferPath is set; otherwise a frame is computed from the element's
// container-relative frame or its own accessibility frame.
func (r *run) shape(k key, preferPath bool) model.Shape {
	v := r.idx.view(k)
	if preferPath && !v.Path.IsEmpty() {
		return model.PathShape(v.Path.Offset(-r.origin.X, -r.origin.Y))
	}
	if !r.idx.class(k).kind.IsView() && v.FrameInContainer != nil {
		if owner, ok := r.idx.owner[k]; ok {
			container := r.idx.view(owner).Frame
			return model.FrameShape(v.FrameInContainer.Offset(container.X-r.origin.X, container.Y-r.origin.Y))
		}
	}
	return model.FrameShape(accessibilityFrame(v).Offset(-r.origin.X, -r.origin.Y))
}

func sliderThumbCenter(frame model.Rect, s model.Slider) model.Point {
	thumb := s.ThumbWidth
	if thumb <= 0 {
		thumb = model.DefaultThumbWidth
	}
	fraction := 0.0
	if s.Max > s.Min {
		fraction = math.Max(0, math.Min(1, (s.Value-s.Min)/(s.Max-s.Min)))
	}
	travel := math.Max(0, frame.Width-thumb)
	return model.Point{
		X: frame.X + fraction*travel + thumb/2,
		Y: frame.Y + frame.Height/2,
	}
}

// activationPoint returns the activation point of k in root space and
// whether it matches the default within one pixel. Sliders activate at the
// center of their thumb; everything else at the center of its frame.
func (r *run) activationPoint(k key) (model.Point, bool) {
	v := r.idx.view(k)
	frame := r.shape(k, false).Bounds()
	def := frame.Mid()
	if v.EffectiveKind() == model.KindSlider && v.Slider != nil {
		def = sliderThumbCenter(frame, *v.Slider)
	}
	if v.ActivationPoint == nil {
		return def, true
	}
	actual := v.ActivationPoint.Offset(-r.origin.X, -r.origin.Y)
	return actual, actual.ApproximatelyEqual(def, 1/r.opts.ScreenScale)
}

// rotors resolves the custom rotors k declares. Each rotor's targets are
// described without context and shaped in root space; targets that do not
// resolve to a node are skipped.
func (r *run) rotors(k key) []model.CustomRotor {
	v := r.idx.view(k)
	if len(v.CustomRotors) == 0 {
		return nil
	}
	out := make([]model.CustomRotor, 0, len(v.CustomRotors))
	for _, rotor := range v.CustomRotors {
		cr := model.CustomRotor{Name: rotor.Name}
		if cr.Name == "" {
			cr.Name = rotor.System
		}
		for _, target := range rotor.Targets {
			if len(cr.Results) == r.opts.RotorResultLimit {
				cr.Truncated = true
				break
			}
			tk := r.idx.lookup(target.Element)
			if tk == noKey {
				r.opts.Logger.Debug("rotor target not found", "rotor", cr.Name, "element", target.Element)
				continue
			}
			shape := r.shape(tk, true)
			res := model.RotorResult{Shape: &shape}
			if target.Range != nil {
				res.Range = fmt.Sprintf("[%d..<%d]", target.Range.Start, target.Range.End)
			}
			if target.Text != "" {
				res.Description = target.Text
			} else {
				res.Description, _ = r.desc.describe(describableView(r.idx.view(tk)), nil)
			}
			cr.Results = append(cr.Results, res)
		}
		out = append(out, cr)
	}
	return out
}
