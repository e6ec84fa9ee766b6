package platform

import (
	"testing"

	"github.com/mj1618/a11y-snapshot/internal/model"
)

func TestDirectionForLocale(t *testing.T) {
	tests := []struct {
		locale string
		want   model.LayoutDirection
	}{
		{"en_US.UTF-8", model.LeftToRight},
		{"ar_EG.UTF-8", model.RightToLeft},
		{"he_IL", model.RightToLeft},
		{"fa-IR", model.RightToLeft},
		{"ur", model.RightToLeft},
		{"sr@latin", model.LeftToRight},
		{"C", model.LeftToRight},
		{"POSIX", model.LeftToRight},
		{"C.UTF-8", model.LeftToRight},
		{"not a locale", model.LeftToRight},
	}
	for _, tt := range tests {
		if got := DirectionForLocale(tt.locale); got != tt.want {
			t.Errorf("DirectionForLocale(%q) = %q, want %q", tt.locale, got, tt.want)
		}
	}
}

func TestSystemLayoutDirection_Precedence(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want model.LayoutDirection
	}{
		{"unset", nil, model.LeftToRight},
		{"lang only", map[string]string{"LANG": "ar_SA.UTF-8"}, model.RightToLeft},
		{"messages beats lang", map[string]string{"LANG": "ar_SA", "LC_MESSAGES": "en_GB"}, model.LeftToRight},
		{"all beats everything", map[string]string{"LANG": "en_US", "LC_MESSAGES": "en_GB", "LC_ALL": "he_IL"}, model.RightToLeft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SystemLayoutDirection{Getenv: func(k string) string { return tt.env[k] }}
			if got := s.LayoutDirection(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSystemLocale(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "de_DE.UTF-8")
	if got := SystemLocale(); got != "de-DE" {
		t.Errorf("SystemLocale() = %q, want de-DE", got)
	}
	t.Setenv("LANG", "C")
	if got := SystemLocale(); got != "" {
		t.Errorf("SystemLocale() = %q, want empty", got)
	}
}
