package platform

import (
	"os"
	"strings"

	"golang.org/x/text/language"

	"github.com/mj1618/a11y-snapshot/internal/model"
)

// rtlScripts are the scripts written right to left.
var rtlScripts = map[string]bool{
	"Adlm": true,
	"Arab": true,
	"Hebr": true,
	"Mand": true,
	"Nkoo": true,
	"Rohg": true,
	"Syrc": true,
	"Thaa": true,
}

// SystemLayoutDirection derives the layout direction from the POSIX locale
// environment (LC_ALL, then LC_MESSAGES, then LANG).
type SystemLayoutDirection struct {
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

func (s SystemLayoutDirection) LayoutDirection() model.LayoutDirection {
	getenv := s.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := getenv(name); v != "" {
			return DirectionForLocale(v)
		}
	}
	return model.LeftToRight
}

// SystemLocale returns the BCP 47 tag of the process locale, or "" when
// it is unset or the C locale.
func SystemLocale() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(name); v != "" {
			if tag, ok := posixTag(v); ok {
				return tag.String()
			}
			return ""
		}
	}
	return ""
}

// DirectionForLocale returns the layout direction of a POSIX locale name
// such as "ar_EG.UTF-8" or a BCP 47 tag such as "he-IL".
func DirectionForLocale(locale string) model.LayoutDirection {
	tag, ok := posixTag(locale)
	if !ok {
		return model.LeftToRight
	}
	script, _ := tag.Script()
	if rtlScripts[script.String()] {
		return model.RightToLeft
	}
	return model.LeftToRight
}

func posixTag(locale string) (language.Tag, bool) {
	name := locale
	if i := strings.IndexAny(name, ".@"); i >= 0 {
		name = name[:i]
	}
	if name == "" || name == "C" || name == "POSIX" {
		return language.Und, false
	}
	tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
	if err != nil {
		return language.Und, false
	}
	return tag, true
}
