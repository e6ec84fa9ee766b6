package output

import (
	"fmt"
	"io"
	"os"

	"github.com/mj1618/a11y-snapshot/internal/model"
)

// Format represents the output format.
type Format string

const (
	FormatYAML   Format = "yaml"
	FormatJSON   Format = "json"
	FormatLegend Format = "legend"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatYAML, FormatJSON, FormatLegend:
		return Format(s), nil
	case "":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use yaml, json, or legend)", s)
	}
}

// ParseResult is the output of the `parse` command for one document.
type ParseResult struct {
	Source          string                `yaml:"source,omitempty"           json:"source,omitempty"`
	LayoutDirection model.LayoutDirection `yaml:"layout_direction,omitempty" json:"layout_direction,omitempty"`
	Idiom           model.Idiom           `yaml:"idiom,omitempty"            json:"idiom,omitempty"`
	Markers         []model.Marker        `yaml:"markers"                    json:"markers"`
}

// HierarchyResult is the output of the `hierarchy` command.
type HierarchyResult struct {
	Source    string                `yaml:"source,omitempty" json:"source,omitempty"`
	Hierarchy []model.HierarchyNode `yaml:"hierarchy"        json:"hierarchy"`
}

// Print serializes v to stdout in the current output format.
func Print(v interface{}) error {
	return Fprint(os.Stdout, v)
}

// Fprint serializes v to w in the current output format.
func Fprint(w io.Writer, v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		if PrettyOutput {
			return WritePrettyJSON(w, v)
		}
		return WriteJSON(w, v)
	case FormatYAML:
		return WriteYAML(w, v)
	case FormatLegend:
		return WriteLegend(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// IsOutputPiped reports whether stdout is not a terminal.
func IsOutputPiped() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return true
	}
	return fi.Mode()&os.ModeCharDevice == 0
}
