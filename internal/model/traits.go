package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Traits is a bit set of accessibility traits. Bit positions match the
// platform's raw values so masks captured from a device round-trip.
type Traits uint64

const (
	TraitButton                  Traits = 1 << 0
	TraitLink                    Traits = 1 << 1
	TraitImage                   Traits = 1 << 2
	TraitSelected                Traits = 1 << 3
	TraitPlaysSound              Traits = 1 << 4
	TraitKeyboardKey             Traits = 1 << 5
	TraitStaticText              Traits = 1 << 6
	TraitSummaryElement          Traits = 1 << 7
	TraitNotEnabled              Traits = 1 << 8
	TraitUpdatesFrequently       Traits = 1 << 9
	TraitSearchField             Traits = 1 << 10
	TraitStartsMediaSession      Traits = 1 << 11
	TraitAdjustable              Traits = 1 << 12
	TraitAllowsDirectInteraction Traits = 1 << 13
	TraitCausesPageTurn          Traits = 1 << 14
	TraitTabBar                  Traits = 1 << 15
	TraitHeader                  Traits = 1 << 16
	TraitTextEntry               Traits = 1 << 18
	TraitIsEditing               Traits = 1 << 21
	TraitBackButton              Traits = 1 << 27
	TraitTabBarItem              Traits = 1 << 28
	TraitScrollable              Traits = 1 << 47
	TraitSwitchButton            Traits = 1 << 53
)

// TraitNames maps the names used in fixture documents to trait bits.
var TraitNames = map[string]Traits{
	"button":                    TraitButton,
	"link":                      TraitLink,
	"image":                     TraitImage,
	"selected":                  TraitSelected,
	"plays_sound":               TraitPlaysSound,
	"keyboard_key":              TraitKeyboardKey,
	"static_text":               TraitStaticText,
	"summary_element":           TraitSummaryElement,
	"not_enabled":               TraitNotEnabled,
	"updates_frequently":        TraitUpdatesFrequently,
	"search_field":              TraitSearchField,
	"starts_media_session":      TraitStartsMediaSession,
	"adjustable":                TraitAdjustable,
	"allows_direct_interaction": TraitAllowsDirectInteraction,
	"causes_page_turn":          TraitCausesPageTurn,
	"tab_bar":                   TraitTabBar,
	"header":                    TraitHeader,
	"text_entry":                TraitTextEntry,
	"is_editing":                TraitIsEditing,
	"back_button":               TraitBackButton,
	"tab_bar_item":              TraitTabBarItem,
	"scrollable":                TraitScrollable,
	"switch_button":             TraitSwitchButton,
}

// TraitAliases are accepted on input in addition to TraitNames.
var TraitAliases = map[string]string{
	"heading":    "header",
	"disabled":   "not_enabled",
	"dimmed":     "not_enabled",
	"switch":     "switch_button",
	"tab":        "tab_bar_item",
	"text_field": "text_entry",
}

// Contains reports whether every bit of o is set in t.
func (t Traits) Contains(o Traits) bool {
	return t&o == o
}

// ContainsAny reports whether any bit of o is set in t.
func (t Traits) ContainsAny(o Traits) bool {
	return t&o != 0
}

// Names returns the sorted names of the set bits. Unknown bits are rendered
// as hexadecimal masks.
func (t Traits) Names() []string {
	var names []string
	var known Traits
	for name, bit := range TraitNames {
		known |= bit
		if t.Contains(bit) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if rest := t &^ known; rest != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint64(rest)))
	}
	return names
}

func (t Traits) String() string {
	return strings.Join(t.Names(), ",")
}

// ParseTrait converts a trait name or alias to its bit.
func ParseTrait(name string) (Traits, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "-", "_")
	if alias, ok := TraitAliases[n]; ok {
		n = alias
	}
	if bit, ok := TraitNames[n]; ok {
		return bit, nil
	}
	var raw uint64
	if _, err := fmt.Sscanf(n, "0x%x", &raw); err == nil {
		return Traits(raw), nil
	}
	return 0, fmt.Errorf("unknown trait %q", name)
}

// ParseTraits converts a list of trait names to a bit set.
func ParseTraits(names []string) (Traits, error) {
	var t Traits
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		bit, err := ParseTrait(name)
		if err != nil {
			return 0, err
		}
		t |= bit
	}
	return t, nil
}

// MarshalYAML encodes traits as a list of names.
func (t Traits) MarshalYAML() (interface{}, error) {
	return t.Names(), nil
}

// UnmarshalYAML accepts a list of names, a comma-separated string, or a raw mask.
func (t *Traits) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var names []string
		if err := node.Decode(&names); err != nil {
			return err
		}
		parsed, err := ParseTraits(names)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case yaml.ScalarNode:
		var raw uint64
		if err := node.Decode(&raw); err == nil {
			*t = Traits(raw)
			return nil
		}
		parsed, err := ParseTraits(strings.Split(node.Value, ","))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	default:
		return fmt.Errorf("line %d: traits must be a list or a mask", node.Line)
	}
}

// MarshalJSON encodes traits as a list of names.
func (t Traits) MarshalJSON() ([]byte, error) {
	names := t.Names()
	if names == nil {
		names = []string{}
	}
	return json.Marshal(names)
}

// UnmarshalJSON accepts a list of names or a raw mask.
func (t *Traits) UnmarshalJSON(data []byte) error {
	var raw uint64
	if err := json.Unmarshal(data, &raw); err == nil {
		*t = Traits(raw)
		return nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return fmt.Errorf("traits must be a list or a mask: %w", err)
	}
	parsed, err := ParseTraits(names)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
