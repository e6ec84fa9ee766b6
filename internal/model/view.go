package model

// Kind classifies the concrete control a view node stands for.
type Kind string

const (
	KindView             Kind = "view"
	KindElement          Kind = "element" // a non-view accessibility element vended by a container
	KindSegmentedControl Kind = "segmented_control"
	KindTabBar           Kind = "tab_bar"
	KindTabBarButton     Kind = "tab_bar_button"
	KindSlider           Kind = "slider"
	KindTextInput        Kind = "text_input"
)

// IsView reports whether nodes of this kind are part of the view hierarchy
// (as opposed to standalone accessibility elements).
func (k Kind) IsView() bool {
	return k != KindElement
}

// ContainerType is the accessibility container type a node declares.
type ContainerType string

const (
	ContainerNone          ContainerType = ""
	ContainerSemanticGroup ContainerType = "semantic_group"
	ContainerList          ContainerType = "list"
	ContainerLandmark      ContainerType = "landmark"
	ContainerDataTable     ContainerType = "data_table"
)

// NotFound marks an undefined row or column index.
const NotFound = -1

// CustomContent is one additional piece of content an element exposes.
type CustomContent struct {
	Label     string `yaml:"label"               json:"label"`
	Value     string `yaml:"value,omitempty"     json:"value,omitempty"`
	Important bool   `yaml:"important,omitempty" json:"important,omitempty"`
}

// TextRange is a character range inside a text element.
type TextRange struct {
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end"   json:"end"`
}

// RotorTarget is one result a custom rotor navigates to.
type RotorTarget struct {
	Element string     `yaml:"element"         json:"element"`
	Range   *TextRange `yaml:"range,omitempty" json:"range,omitempty"`
	Text    string     `yaml:"text,omitempty"  json:"text,omitempty"`
}

// Rotor is a custom rotor declared by an element. Either Name or System
// must be set; System names a built-in rotor type such as "heading".
type Rotor struct {
	Name    string        `yaml:"name,omitempty"   json:"name,omitempty"`
	System  string        `yaml:"system,omitempty" json:"system,omitempty"`
	Targets []RotorTarget `yaml:"targets,omitempty" json:"targets,omitempty"`
}

// CellRange locates a data table cell. Row and Column may be NotFound.
type CellRange struct {
	Row        int `yaml:"row"                   json:"row"`
	RowSpan    int `yaml:"row_span,omitempty"    json:"row_span,omitempty"`
	Column     int `yaml:"column"                json:"column"`
	ColumnSpan int `yaml:"column_span,omitempty" json:"column_span,omitempty"`
}

// Rows returns the row span, treating zero as one.
func (c CellRange) Rows() int {
	if c.RowSpan <= 0 {
		return 1
	}
	return c.RowSpan
}

// Columns returns the column span, treating zero as one.
func (c CellRange) Columns() int {
	if c.ColumnSpan <= 0 {
		return 1
	}
	return c.ColumnSpan
}

// Covers reports whether the cell occupies the given position.
func (c CellRange) Covers(row, column int) bool {
	if c.Row == NotFound || c.Column == NotFound {
		return c.Row == row && c.Column == column
	}
	return row >= c.Row && row < c.Row+c.Rows() &&
		column >= c.Column && column < c.Column+c.Columns()
}

// DataTable describes a data table container. Header maps are keyed by row
// or column index and list element ids.
type DataTable struct {
	Rows          int              `yaml:"rows,omitempty"           json:"rows,omitempty"`
	Columns       int              `yaml:"columns,omitempty"        json:"columns,omitempty"`
	RowHeaders    map[int][]string `yaml:"row_headers,omitempty"    json:"row_headers,omitempty"`
	ColumnHeaders map[int][]string `yaml:"column_headers,omitempty" json:"column_headers,omitempty"`
}

// Slider holds what is needed to locate a slider's thumb.
type Slider struct {
	Min        float64 `yaml:"min"                   json:"min"`
	Max        float64 `yaml:"max"                   json:"max"`
	Value      float64 `yaml:"value"                 json:"value"`
	ThumbWidth float64 `yaml:"thumb_width,omitempty" json:"thumb_width,omitempty"`
}

// DefaultThumbWidth is the thumb diameter used when a slider omits it.
const DefaultThumbWidth = 31

// View is one node of the input tree: a view or accessibility element with
// its accessibility metadata. Frames and points are in screen coordinates.
type View struct {
	ID   string `yaml:"id,omitempty"   json:"id,omitempty"`
	Kind Kind   `yaml:"kind,omitempty" json:"kind,omitempty"`

	Frame          Rect     `yaml:"frame"                     json:"frame"`
	Hidden         bool     `yaml:"hidden,omitempty"          json:"hidden,omitempty"`
	Alpha          *float64 `yaml:"alpha,omitempty"           json:"alpha,omitempty"`
	ElementsHidden bool     `yaml:"elements_hidden,omitempty" json:"elements_hidden,omitempty"`

	IsElement      bool          `yaml:"is_element,omitempty"      json:"is_element,omitempty"`
	Elements       []*View       `yaml:"elements,omitempty"        json:"elements,omitempty"`
	Subviews       []*View       `yaml:"subviews,omitempty"        json:"subviews,omitempty"`
	Modal          bool          `yaml:"modal,omitempty"           json:"modal,omitempty"`
	GroupsChildren bool          `yaml:"groups_children,omitempty" json:"groups_children,omitempty"`
	ContainerType  ContainerType `yaml:"container_type,omitempty"  json:"container_type,omitempty"`

	AccessibilityFrame *Rect  `yaml:"accessibility_frame,omitempty" json:"accessibility_frame,omitempty"`
	FrameInContainer   *Rect  `yaml:"frame_in_container,omitempty"  json:"frame_in_container,omitempty"`
	Path               Path   `yaml:"path,omitempty"                json:"path,omitempty"`
	ActivationPoint    *Point `yaml:"activation_point,omitempty"    json:"activation_point,omitempty"`

	Traits     Traits `yaml:"traits,omitempty"     json:"traits,omitempty"`
	Label      string `yaml:"label,omitempty"      json:"label,omitempty"`
	Value      string `yaml:"value,omitempty"      json:"value,omitempty"`
	Hint       string `yaml:"hint,omitempty"       json:"hint,omitempty"`
	Identifier string `yaml:"identifier,omitempty" json:"identifier,omitempty"`
	Language   string `yaml:"language,omitempty"   json:"language,omitempty"`

	UserInputLabels           []string        `yaml:"user_input_labels,omitempty"            json:"user_input_labels,omitempty"`
	CustomActions             []string        `yaml:"custom_actions,omitempty"               json:"custom_actions,omitempty"`
	CustomContent             []CustomContent `yaml:"custom_content,omitempty"               json:"custom_content,omitempty"`
	CustomContentBlock        []CustomContent `yaml:"custom_content_block,omitempty"         json:"custom_content_block,omitempty"`
	CustomRotors              []Rotor         `yaml:"custom_rotors,omitempty"                json:"custom_rotors,omitempty"`
	RespondsToUserInteraction *bool           `yaml:"responds_to_user_interaction,omitempty" json:"responds_to_user_interaction,omitempty"`

	Cell     *CellRange `yaml:"cell,omitempty"      json:"cell,omitempty"`
	Table    *DataTable `yaml:"table,omitempty"     json:"table,omitempty"`
	TabItems []string   `yaml:"tab_items,omitempty" json:"tab_items,omitempty"`
	Slider   *Slider    `yaml:"slider,omitempty"    json:"slider,omitempty"`
}

// EffectiveKind returns the node kind, defaulting to KindView.
func (v *View) EffectiveKind() Kind {
	if v.Kind == "" {
		return KindView
	}
	return v.Kind
}

// EffectiveAlpha returns the opacity, defaulting to fully opaque.
func (v *View) EffectiveAlpha() float64 {
	if v.Alpha == nil {
		return 1
	}
	return *v.Alpha
}

// EffectiveCustomContent prefers the dynamic block-based content when it is
// provided over the static list.
func (v *View) EffectiveCustomContent() []CustomContent {
	if v.CustomContentBlock != nil {
		return v.CustomContentBlock
	}
	return v.CustomContent
}

// LayoutDirection is the horizontal reading direction of the interface.
type LayoutDirection string

const (
	LeftToRight LayoutDirection = "ltr"
	RightToLeft LayoutDirection = "rtl"
)

// Idiom is the device family, which affects vertical ordering tolerance.
type Idiom string

const (
	IdiomUnspecified Idiom = ""
	IdiomPhone       Idiom = "phone"
	IdiomPad         Idiom = "pad"
)

// Document is a serialized parse input: a root view plus optional hints
// about the environment it was captured in.
type Document struct {
	LayoutDirection LayoutDirection `yaml:"layout_direction,omitempty" json:"layout_direction,omitempty"`
	Idiom           Idiom           `yaml:"idiom,omitempty"            json:"idiom,omitempty"`
	ScreenScale     float64         `yaml:"screen_scale,omitempty"     json:"screen_scale,omitempty"`
	Root            *View           `yaml:"root"                       json:"root"`
}
