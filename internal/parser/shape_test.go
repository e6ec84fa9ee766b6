package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mj1618/a11y-snapshot/internal/model"
)

func TestShape_RelativeToRoot(t *testing.T) {
	root := container(rect(100, 200, 400, 800), leaf("A", rect(110, 210, 50, 20)))
	m := mustParse(t, root)[0]

	if diff := cmp.Diff(model.FrameShape(rect(10, 10, 50, 20)), m.Shape); diff != "" {
		t.Errorf("shape mismatch (-want +got):\n%s", diff)
	}
	if want := (model.Point{X: 35, Y: 20}); m.ActivationPoint != want {
		t.Errorf("activation point = %+v, want %+v", m.ActivationPoint, want)
	}
	if !m.UsesDefaultActivationPoint {
		t.Error("expected default activation point")
	}
}

func TestShape_AccessibilityFrameWinsOverFrame(t *testing.T) {
	v := leaf("A", rect(0, 0, 100, 100))
	af := rect(10, 10, 20, 20)
	v.AccessibilityFrame = &af
	m := mustParse(t, screen(v))[0]
	if got := m.Shape.Bounds(); got != af {
		t.Errorf("bounds = %+v, want %+v", got, af)
	}
	if want := (model.Point{X: 20, Y: 20}); m.ActivationPoint != want {
		t.Errorf("activation point = %+v, want %+v", m.ActivationPoint, want)
	}
}

func TestShape_PathPreferred(t *testing.T) {
	v := leaf("Blob", rect(0, 0, 100, 100))
	v.Path = model.Path{{{X: 10, Y: 10}, {X: 60, Y: 10}, {X: 35, Y: 50}}}
	root := container(rect(0, 100, 400, 800), v)

	m := mustParse(t, root)[0]
	if !m.Shape.IsPath() {
		t.Fatalf("expected a path shape, got %+v", m.Shape)
	}
	want := model.Path{{{X: 10, Y: -90}, {X: 60, Y: -90}, {X: 35, Y: -50}}}
	if diff := cmp.Diff(want, m.Shape.Path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
}

func TestShape_PathDoesNotAffectOrdering(t *testing.T) {
	low := leaf("Low", rect(0, 100, 100, 40))
	low.Path = model.RectPath(rect(0, 0, 10, 10))
	root := screen(low, leaf("High", rect(0, 50, 100, 40)))
	if diff := cmp.Diff([]string{"High", "Low"}, labels(mustParse(t, root))); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestShape_FrameInContainer(t *testing.T) {
	group := &model.View{
		Frame:    rect(50, 100, 200, 100),
		Elements: []*model.View{item("A", rect(5, 5, 20, 20))},
	}
	m := mustParse(t, screen(group))[0]
	if got, want := m.Shape.Bounds(), rect(55, 105, 20, 20); got != want {
		t.Errorf("bounds = %+v, want %+v", got, want)
	}
	if want := (model.Point{X: 65, Y: 115}); m.ActivationPoint != want {
		t.Errorf("activation point = %+v, want %+v", m.ActivationPoint, want)
	}
}

func TestShape_SliderThumb(t *testing.T) {
	slider := leaf("Volume", rect(0, 0, 200, 40), model.TraitAdjustable)
	slider.Kind = model.KindSlider
	slider.Slider = &model.Slider{Min: 0, Max: 1, Value: 0.5}

	m := mustParse(t, screen(slider))[0]
	if want := (model.Point{X: 100, Y: 20}); m.ActivationPoint != want {
		t.Errorf("activation point = %+v, want %+v", m.ActivationPoint, want)
	}

	slider.Slider.Value = 1
	m = mustParse(t, screen(slider))[0]
	if want := (model.Point{X: 184.5, Y: 20}); m.ActivationPoint != want {
		t.Errorf("activation point at max = %+v, want %+v", m.ActivationPoint, want)
	}
}

func TestShape_ExplicitActivationPoint(t *testing.T) {
	tests := []struct {
		name        string
		point       model.Point
		usesDefault bool
	}{
		{"far from center", model.Point{X: 5, Y: 5}, false},
		{"within half a point", model.Point{X: 50.2, Y: 19.8}, true},
		{"exactly half a point", model.Point{X: 50.5, Y: 20}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := leaf("A", rect(0, 0, 100, 40))
			p := tt.point
			v.ActivationPoint = &p
			m := mustParse(t, screen(v))[0]
			if m.ActivationPoint != tt.point {
				t.Errorf("activation point = %+v, want %+v", m.ActivationPoint, tt.point)
			}
			if m.UsesDefaultActivationPoint != tt.usesDefault {
				t.Errorf("usesDefault = %v, want %v", m.UsesDefaultActivationPoint, tt.usesDefault)
			}
		})
	}
}

func TestShape_ScreenScaleTolerance(t *testing.T) {
	v := leaf("A", rect(0, 0, 100, 40))
	p := model.Point{X: 50.7, Y: 20}
	v.ActivationPoint = &p

	if mustParse(t, screen(v))[0].UsesDefaultActivationPoint {
		t.Error("0.7pt should exceed the 2x tolerance")
	}
	if !mustParse(t, screen(v), WithScreenScale(1))[0].UsesDefaultActivationPoint {
		t.Error("0.7pt should be within the 1x tolerance")
	}
}

func articleWithRotor(targets ...model.RotorTarget) *model.View {
	article := leaf("Article", rect(0, 0, 400, 100))
	article.CustomRotors = []model.Rotor{{Name: "Links", Targets: targets}}
	return screen(
		article,
		leaf("Home", rect(0, 200, 100, 40), model.TraitLink),
		leaf("About", rect(0, 300, 100, 40), model.TraitLink),
	)
}

func TestRotors_DescribesTargets(t *testing.T) {
	root := articleWithRotor(
		model.RotorTarget{Element: "Home"},
		model.RotorTarget{Element: "missing"},
		model.RotorTarget{Element: "About", Range: &model.TextRange{Start: 3, End: 7}, Text: "about us"},
	)
	rotors := mustParse(t, root)[0].CustomRotors
	if len(rotors) != 1 {
		t.Fatalf("expected 1 rotor, got %d", len(rotors))
	}
	r := rotors[0]
	if r.Name != "Links" || r.Truncated {
		t.Errorf("unexpected rotor %+v", r)
	}
	var got []string
	for _, res := range r.Results {
		got = append(got, res.String())
	}
	if diff := cmp.Diff([]string{"Home. Link.", "about us [3..<7]"}, got); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
	if s := r.Results[0].Shape; s == nil || s.Bounds() != rect(0, 200, 100, 40) {
		t.Errorf("unexpected result shape %+v", s)
	}
}

func TestRotors_ResultLimit(t *testing.T) {
	root := articleWithRotor(
		model.RotorTarget{Element: "Home"},
		model.RotorTarget{Element: "About"},
	)
	r := mustParse(t, root, WithRotorResultLimit(1))[0].CustomRotors[0]
	if len(r.Results) != 1 || !r.Truncated {
		t.Errorf("expected one truncated result, got %+v", r)
	}

	r = mustParse(t, root, WithRotorResultLimit(2))[0].CustomRotors[0]
	if len(r.Results) != 2 || r.Truncated {
		t.Errorf("expected two results, got %+v", r)
	}
}

func TestRotors_SystemName(t *testing.T) {
	article := leaf("Article", rect(0, 0, 400, 100))
	article.CustomRotors = []model.Rotor{{System: "heading"}}
	r := mustParse(t, screen(article))[0].CustomRotors
	if len(r) != 1 || r[0].Name != "heading" || len(r[0].Results) != 0 {
		t.Errorf("unexpected rotors %+v", r)
	}
}
