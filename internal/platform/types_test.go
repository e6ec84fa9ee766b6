package platform

import (
	"testing"

	"github.com/mj1618/a11y-snapshot/internal/model"
)

func TestParseRect_Valid(t *testing.T) {
	tests := []struct {
		in   string
		want model.Rect
	}{
		{"10,20,300,400", model.Rect{X: 10, Y: 20, Width: 300, Height: 400}},
		{"10, 20, 300, 400", model.Rect{X: 10, Y: 20, Width: 300, Height: 400}},
		{"-5,0.5,1.25,0", model.Rect{X: -5, Y: 0.5, Width: 1.25}},
	}
	for _, tt := range tests {
		got, err := ParseRect(tt.in)
		if err != nil {
			t.Errorf("ParseRect(%q): %v", tt.in, err)
			continue
		}
		if *got != tt.want {
			t.Errorf("ParseRect(%q) = %+v, want %+v", tt.in, *got, tt.want)
		}
	}
}

func TestParseRect_Invalid(t *testing.T) {
	tests := []string{
		"",
		"10,20,300",
		"10,20,300,400,500",
		"a,b,c,d",
		"10,20,-1,400",
	}
	for _, s := range tests {
		if _, err := ParseRect(s); err == nil {
			t.Errorf("ParseRect(%q) should fail", s)
		}
	}
}

func TestParseLayoutDirection(t *testing.T) {
	tests := []struct {
		input string
		want  model.LayoutDirection
	}{
		{"", ""},
		{"ltr", model.LeftToRight},
		{"LTR", model.LeftToRight},
		{"rtl", model.RightToLeft},
		{"right-to-left", model.RightToLeft},
	}
	for _, tt := range tests {
		got, err := ParseLayoutDirection(tt.input)
		if err != nil {
			t.Errorf("ParseLayoutDirection(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseLayoutDirection(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
	if _, err := ParseLayoutDirection("up"); err == nil {
		t.Error("ParseLayoutDirection(\"up\") should fail")
	}
}

func TestParseIdiom(t *testing.T) {
	tests := []struct {
		input string
		want  model.Idiom
	}{
		{"", model.IdiomUnspecified},
		{"unspecified", model.IdiomUnspecified},
		{"Phone", model.IdiomPhone},
		{"pad", model.IdiomPad},
	}
	for _, tt := range tests {
		got, err := ParseIdiom(tt.input)
		if err != nil {
			t.Errorf("ParseIdiom(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseIdiom(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
	if _, err := ParseIdiom("watch"); err == nil {
		t.Error("ParseIdiom(\"watch\") should fail")
	}
}
