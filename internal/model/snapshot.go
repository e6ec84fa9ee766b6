package model

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// HashChange represents a changed marker detected by hash-based diffing.
type HashChange struct {
	Index       int                  `yaml:"index"                 json:"index"`
	PrevIndex   int                  `yaml:"prev_index"            json:"prev_index"`
	Description string               `yaml:"description,omitempty" json:"description,omitempty"`
	Changes     map[string][2]string `yaml:"changes"               json:"changes"`
}

// MarkerDiff is the result of comparing two marker lists by content hash.
type MarkerDiff struct {
	Added          []Marker     `yaml:"added,omitempty"   json:"added,omitempty"`
	Removed        []Marker     `yaml:"removed,omitempty" json:"removed,omitempty"`
	Changed        []HashChange `yaml:"changed,omitempty" json:"changed,omitempty"`
	Moved          int          `yaml:"moved"             json:"moved"`
	UnchangedCount int          `yaml:"unchanged_count"   json:"unchanged_count"`
}

// Empty reports whether the diff found no differences at all.
func (d MarkerDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0 && d.Moved == 0
}

// MarkerHash computes a stable identity hash for a marker from the parts
// that do not change while the user interacts with it: identifier, label,
// the static traits and its structural context. Value, selection and
// traversal index are left out.
func MarkerHash(m Marker) string {
	h := sha256.New()
	ctx := ""
	if m.Context != nil {
		ctx = string(m.Context.Kind)
	}
	static := m.Traits &^ (TraitSelected | TraitIsEditing | TraitNotEnabled)
	fmt.Fprintf(h, "%s|%s|%d|%s", m.Identifier, m.Label, uint64(static), ctx)
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

// DiffMarkersByHash compares two marker lists using content hashing for
// stable identity. Unlike DiffMarkers (which matches by traversal index),
// this handles index shifts caused by markers being added or removed.
// Markers sharing a hash are paired in traversal order.
func DiffMarkersByHash(prev, curr []Marker) MarkerDiff {
	prevByHash := make(map[string][]int, len(prev))
	for i, m := range prev {
		h := MarkerHash(m)
		prevByHash[h] = append(prevByHash[h], i)
	}

	var diff MarkerDiff
	matched := make([]bool, len(prev))

	for i, m := range curr {
		h := MarkerHash(m)
		candidates := prevByHash[h]
		if len(candidates) == 0 {
			diff.Added = append(diff.Added, m)
			continue
		}
		j := candidates[0]
		prevByHash[h] = candidates[1:]
		matched[j] = true

		if j != i {
			diff.Moved++
		}
		if changes := diffMutable(prev[j], m); len(changes) > 0 {
			diff.Changed = append(diff.Changed, HashChange{
				Index:       i,
				PrevIndex:   j,
				Description: m.Description,
				Changes:     changes,
			})
		} else {
			diff.UnchangedCount++
		}
	}

	for j, m := range prev {
		if !matched[j] {
			diff.Removed = append(diff.Removed, m)
		}
	}
	return diff
}

// markerFile is the envelope written by the output package; a bare marker
// list is accepted too.
type markerFile struct {
	Markers []Marker `yaml:"markers" json:"markers"`
}

// LoadMarkers reads a marker list previously written with SaveMarkers or
// printed by the parse command. JSON is detected by extension or by a
// leading brace or bracket; anything else is decoded as YAML.
func LoadMarkers(path string) ([]Marker, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load markers: %w", err)
	}
	markers, err := DecodeMarkers(data, strings.EqualFold(filepath.Ext(path), ".json"))
	if err != nil {
		return nil, fmt.Errorf("unmarshal markers %s: %w", path, err)
	}
	return markers, nil
}

// DecodeMarkers decodes a marker list or a {markers: [...]} envelope.
// Content starting with "{" or "[" is treated as JSON even when isJSON
// is false.
func DecodeMarkers(data []byte, isJSON bool) ([]Marker, error) {
	trimmed := bytes.TrimSpace(data)
	isJSON = isJSON || bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))

	var err error
	if bytes.HasPrefix(trimmed, []byte("[")) || (!isJSON && bytes.HasPrefix(trimmed, []byte("-"))) {
		var markers []Marker
		if isJSON {
			err = json.Unmarshal(trimmed, &markers)
		} else {
			err = yaml.Unmarshal(trimmed, &markers)
		}
		if err != nil {
			return nil, err
		}
		return markers, nil
	}

	var f markerFile
	if isJSON {
		err = json.Unmarshal(trimmed, &f)
	} else {
		err = yaml.Unmarshal(trimmed, &f)
	}
	if err != nil {
		return nil, err
	}
	return f.Markers, nil
}

// SaveMarkers writes a marker list to path, as JSON when the extension is
// .json and YAML otherwise.
func SaveMarkers(path string, markers []Marker) error {
	var data []byte
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(markerFile{Markers: markers}, "", "  ")
	} else {
		data, err = yaml.Marshal(markerFile{Markers: markers})
	}
	if err != nil {
		return fmt.Errorf("marshal markers: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
