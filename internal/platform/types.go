package platform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mj1618/a11y-snapshot/internal/model"
)

// ParseLayoutDirection converts a flag value to a layout direction. An
// empty value returns "" so callers can fall back to a provider.
func ParseLayoutDirection(s string) (model.LayoutDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "ltr", "left-to-right":
		return model.LeftToRight, nil
	case "rtl", "right-to-left":
		return model.RightToLeft, nil
	default:
		return "", fmt.Errorf("unknown layout direction: %q (expected ltr or rtl)", s)
	}
}

// ParseIdiom converts a flag value to a device idiom.
func ParseIdiom(s string) (model.Idiom, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unspecified":
		return model.IdiomUnspecified, nil
	case "phone":
		return model.IdiomPhone, nil
	case "pad":
		return model.IdiomPad, nil
	default:
		return "", fmt.Errorf("unknown idiom: %q (expected phone, pad or unspecified)", s)
	}
}

// ParseRect parses a "x,y,w,h" string into a Rect.
func ParseRect(s string) (*model.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("invalid rect %q: expected x,y,w,h", s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid rect %q: %w", s, err)
		}
		vals[i] = v
	}
	if vals[2] < 0 || vals[3] < 0 {
		return nil, fmt.Errorf("invalid rect %q: negative size", s)
	}
	return &model.Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}
