package cmd

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/a11y-snapshot/internal/model"
	"github.com/mj1618/a11y-snapshot/internal/output"
)

var findCmd = &cobra.Command{
	Use:   "find FILE...",
	Short: "Search for elements across documents",
	Long: `Search one or more view tree documents for the elements a screen reader
would announce with the given text, or for the element with a given ref.
Useful for locating a control across a set of captured screens.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().String("text", "", "Text to search for (case-insensitive substring match on description/hint/label/value)")
	findCmd.Flags().String("ref", "", "Find the element with this ref (or unique ref suffix)")
	findCmd.Flags().String("traits", "", "Only include markers carrying all of these comma-separated traits")
	findCmd.Flags().Int("limit", 10, "Max total matching elements to return")
	findCmd.Flags().Bool("exact", false, "Require exact match instead of substring")
}

// findDocumentMatch groups matching elements with the document they came from.
type findDocumentMatch struct {
	Source   string            `yaml:"source"   json:"source"`
	Elements []findElementInfo `yaml:"elements" json:"elements"`
}

// findElementInfo is a compact marker representation for find results.
type findElementInfo struct {
	Number      int    `yaml:"n"             json:"n"`
	Ref         string `yaml:"ref,omitempty" json:"ref,omitempty"`
	Description string `yaml:"d"             json:"d"`
	Bounds      [4]int `yaml:"b"             json:"b"`
}

// findResult is the top-level output of the find command.
type findResult struct {
	OK      bool                `yaml:"ok"             json:"ok"`
	Action  string              `yaml:"action"         json:"action"`
	Text    string              `yaml:"text,omitempty" json:"text,omitempty"`
	Ref     string              `yaml:"ref,omitempty"  json:"ref,omitempty"`
	Matches []findDocumentMatch `yaml:"matches"        json:"matches"`
	Total   int                 `yaml:"total"          json:"total"`
}

func runFind(cmd *cobra.Command, args []string) error {
	text, _ := cmd.Flags().GetString("text")
	ref, _ := cmd.Flags().GetString("ref")
	traitsStr, _ := cmd.Flags().GetString("traits")
	limit, _ := cmd.Flags().GetInt("limit")
	exact, _ := cmd.Flags().GetBool("exact")

	if (text == "") == (ref == "") {
		return fmt.Errorf("exactly one of --text or --ref is required")
	}
	var traits model.Traits
	if traitsStr != "" {
		var err error
		if traits, err = model.ParseTraits(strings.Split(traitsStr, ",")); err != nil {
			return err
		}
	}

	p, err := newParser(cmd)
	if err != nil {
		return err
	}
	opts, err := callOptions(cmd)
	if err != nil {
		return err
	}
	files, err := parseFiles(cmd.Context(), args, 4, func(path string) (parsedFile, error) {
		return parseFile(p, path, opts)
	})
	if err != nil {
		return err
	}

	result := findResult{OK: true, Action: "find", Text: text, Ref: ref, Matches: []findDocumentMatch{}}
	for i, f := range files {
		if result.Total >= limit {
			break
		}
		markers := model.FilterMarkers(f.markers, traits, nil)
		var found []model.Marker
		if ref != "" {
			if m, err := model.FindMarkerByRef(markers, ref); err == nil {
				found = []model.Marker{*m}
			}
		} else {
			found = collectMatches(markers, text, exact)
		}
		if len(found) == 0 {
			continue
		}
		if remaining := limit - result.Total; len(found) > remaining {
			found = found[:remaining]
		}
		result.Matches = append(result.Matches, findDocumentMatch{Source: args[i], Elements: elementInfos(found)})
		result.Total += len(found)
	}
	if ref != "" && result.Total == 0 {
		return fmt.Errorf("no element matches ref %q", ref)
	}
	return output.Print(result)
}

// collectMatches returns the markers announcing text. With exact, the
// description, label or value must equal text ignoring case.
func collectMatches(markers []model.Marker, text string, exact bool) []model.Marker {
	if !exact {
		return model.FilterByText(markers, text)
	}
	var out []model.Marker
	for _, m := range markers {
		if strings.EqualFold(m.Description, text) || strings.EqualFold(m.Label, text) || strings.EqualFold(m.Value, text) {
			out = append(out, m)
		}
	}
	return out
}

func elementInfos(markers []model.Marker) []findElementInfo {
	out := make([]findElementInfo, len(markers))
	for i, m := range markers {
		b := m.Shape.Bounds()
		out[i] = findElementInfo{
			Number:      m.Number(),
			Ref:         m.Ref,
			Description: m.Description,
			Bounds:      [4]int{round(b.X), round(b.Y), round(b.Width), round(b.Height)},
		}
	}
	return out
}

func round(f float64) int {
	return int(math.Round(f))
}
