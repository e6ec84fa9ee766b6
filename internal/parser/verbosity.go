package parser

import (
	"fmt"
	"strings"
)

// TraitPosition places the trait phrases relative to the description.
type TraitPosition string

const (
	TraitsAfter  TraitPosition = "after"
	TraitsBefore TraitPosition = "before"
	TraitsNone   TraitPosition = "none"
)

// Verbosity selects which parts of an announcement are synthesized.
type Verbosity struct {
	IncludesTraits           bool          `yaml:"includes_traits"            json:"includes_traits"`
	TraitPosition            TraitPosition `yaml:"trait_position"             json:"trait_position"`
	IncludesHints            bool          `yaml:"includes_hints"             json:"includes_hints"`
	IncludesContainerContext bool          `yaml:"includes_container_context" json:"includes_container_context"`
	IncludesTableContext     bool          `yaml:"includes_table_context"     json:"includes_table_context"`
	IncludesValue            bool          `yaml:"includes_value"             json:"includes_value"`
	IncludesCustomContent    bool          `yaml:"includes_custom_content"    json:"includes_custom_content"`
}

// VerbosityVerbose announces everything. It is the default.
var VerbosityVerbose = Verbosity{
	IncludesTraits:           true,
	TraitPosition:            TraitsAfter,
	IncludesHints:            true,
	IncludesContainerContext: true,
	IncludesTableContext:     true,
	IncludesValue:            true,
	IncludesCustomContent:    true,
}

// VerbosityMinimal announces labels only.
var VerbosityMinimal = Verbosity{
	TraitPosition: TraitsNone,
}

func (v Verbosity) traitsShown() bool {
	return v.IncludesTraits && v.TraitPosition != TraitsNone
}

// ParseVerbosity returns a preset by name.
func ParseVerbosity(name string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "verbose":
		return VerbosityVerbose, nil
	case "minimal":
		return VerbosityMinimal, nil
	case "traits-first":
		v := VerbosityVerbose
		v.TraitPosition = TraitsBefore
		return v, nil
	default:
		return Verbosity{}, fmt.Errorf("unknown verbosity %q (use verbose, minimal, traits-first)", name)
	}
}
