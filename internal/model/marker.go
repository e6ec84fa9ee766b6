package model

import "fmt"

// ContextKind identifies the structural context an element is announced in.
type ContextKind string

const (
	ContextSeries        ContextKind = "series"
	ContextTabBarItem    ContextKind = "tab_bar_item"
	ContextTab           ContextKind = "tab"
	ContextDataTableCell ContextKind = "data_table_cell"
	ContextListStart     ContextKind = "list_start"
	ContextListEnd       ContextKind = "list_end"
	ContextLandmarkStart ContextKind = "landmark_start"
	ContextLandmarkEnd   ContextKind = "landmark_end"
)

// Context is the structural metadata an element's container contributes
// to its announcement. Only the fields of the active Kind are meaningful.
type Context struct {
	Kind ContextKind `yaml:"kind" json:"kind"`

	// series, tab, tab_bar_item
	Index int    `yaml:"index,omitempty" json:"index,omitempty"`
	Count int    `yaml:"count,omitempty" json:"count,omitempty"`
	Item  string `yaml:"item,omitempty"  json:"item,omitempty"`

	// data_table_cell
	Row           int      `yaml:"row,omitempty"            json:"row,omitempty"`
	Column        int      `yaml:"column,omitempty"         json:"column,omitempty"`
	RowSpan       int      `yaml:"row_span,omitempty"       json:"row_span,omitempty"`
	ColumnSpan    int      `yaml:"column_span,omitempty"    json:"column_span,omitempty"`
	IsFirstInRow  bool     `yaml:"is_first_in_row,omitempty" json:"is_first_in_row,omitempty"`
	RowHeaders    []string `yaml:"row_headers,omitempty"    json:"row_headers,omitempty"`
	ColumnHeaders []string `yaml:"column_headers,omitempty" json:"column_headers,omitempty"`
}

// HidesButtonTrait reports whether the context suppresses the "Button." phrase.
func (c *Context) HidesButtonTrait() bool {
	return c != nil && c.Kind == ContextTab
}

// ShowsTabTrait reports whether the context adds the "Tab." phrase.
func (c *Context) ShowsTabTrait() bool {
	return c != nil && (c.Kind == ContextTab || c.Kind == ContextTabBarItem)
}

func (c *Context) String() string {
	if c == nil {
		return ""
	}
	switch c.Kind {
	case ContextSeries, ContextTab, ContextTabBarItem:
		return fmt.Sprintf("%s(%d/%d)", c.Kind, c.Index, c.Count)
	case ContextDataTableCell:
		return fmt.Sprintf("%s(r%d,c%d)", c.Kind, c.Row, c.Column)
	default:
		return string(c.Kind)
	}
}

// RotorResult is one element a custom rotor lands on.
type RotorResult struct {
	Description string `yaml:"description"     json:"description"`
	Range       string `yaml:"range,omitempty" json:"range,omitempty"`
	Shape       *Shape `yaml:"shape,omitempty" json:"shape,omitempty"`
}

func (r RotorResult) String() string {
	if r.Range == "" {
		return r.Description
	}
	return r.Description + " " + r.Range
}

// CustomRotor is a named, navigable list of related elements.
type CustomRotor struct {
	Name      string        `yaml:"name"                json:"name"`
	Results   []RotorResult `yaml:"results,omitempty"   json:"results,omitempty"`
	Truncated bool          `yaml:"truncated,omitempty" json:"truncated,omitempty"`
}

// Marker describes one element exactly as the screen reader visits it.
// A marker list's order is the traversal order.
type Marker struct {
	Index       int    `yaml:"index"                json:"index"`
	Description string `yaml:"description"          json:"description"`
	Hint        string `yaml:"hint,omitempty"       json:"hint,omitempty"`

	Label             string `yaml:"label,omitempty"              json:"label,omitempty"`
	Value             string `yaml:"value,omitempty"              json:"value,omitempty"`
	AccessibilityHint string `yaml:"accessibility_hint,omitempty" json:"accessibility_hint,omitempty"`
	Identifier        string `yaml:"identifier,omitempty"         json:"identifier,omitempty"`
	Traits            Traits `yaml:"traits,omitempty"             json:"traits,omitempty"`
	Language          string `yaml:"language,omitempty"           json:"language,omitempty"`

	UserInputLabels []string `yaml:"user_input_labels,omitempty" json:"user_input_labels,omitempty"`

	Shape                      Shape `yaml:"shape"                         json:"shape"`
	ActivationPoint            Point `yaml:"activation_point"              json:"activation_point"`
	UsesDefaultActivationPoint bool  `yaml:"uses_default_activation_point" json:"uses_default_activation_point"`

	CustomActions             []string        `yaml:"custom_actions,omitempty"               json:"custom_actions,omitempty"`
	CustomContent             []CustomContent `yaml:"custom_content,omitempty"               json:"custom_content,omitempty"`
	CustomRotors              []CustomRotor   `yaml:"custom_rotors,omitempty"                json:"custom_rotors,omitempty"`
	RespondsToUserInteraction *bool           `yaml:"responds_to_user_interaction,omitempty" json:"responds_to_user_interaction,omitempty"`

	Context *Context `yaml:"context,omitempty" json:"context,omitempty"`

	// Ref is a stable path-like identifier, see GenerateRefs.
	Ref string `yaml:"ref,omitempty" json:"ref,omitempty"`
}

// Number returns the 1-based number renderers print next to the marker.
func (m Marker) Number() int {
	return m.Index + 1
}
