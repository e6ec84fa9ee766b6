package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/a11y-snapshot/internal/model"
	"github.com/mj1618/a11y-snapshot/internal/output"
	"github.com/mj1618/a11y-snapshot/internal/parser"
)

var describeCmd = &cobra.Command{
	Use:   "describe MARKERS",
	Short: "Re-synthesize descriptions of saved markers",
	Long: `Load a marker list saved with "parse --save" and print each marker's
description and hint again, under the --verbosity flag and optionally in
another language. Nothing is re-parsed; the stored label, value, traits and
context are described afresh.`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().String("language", "", "Describe in this language (e.g. \"de\", \"fr-CA\") instead of each marker's own")
}

// describedMarker is one line of describe output.
type describedMarker struct {
	Index       int    `yaml:"index"          json:"index"`
	Ref         string `yaml:"ref,omitempty"  json:"ref,omitempty"`
	Description string `yaml:"description"    json:"description"`
	Hint        string `yaml:"hint,omitempty" json:"hint,omitempty"`
}

func runDescribe(cmd *cobra.Command, args []string) error {
	p, err := newParser(cmd)
	if err != nil {
		return err
	}
	markers, err := model.LoadMarkers(args[0])
	if err != nil {
		return err
	}
	language, _ := cmd.Flags().GetString("language")

	out := redescribe(p, markers, language)
	if output.OutputFormat == output.FormatLegend {
		return output.Print(out)
	}
	return output.Print(describedList(out))
}

// redescribe returns copies of markers with fresh descriptions and hints,
// in language when it is set.
func redescribe(p *parser.Parser, markers []model.Marker, language string) []model.Marker {
	out := make([]model.Marker, len(markers))
	for i, m := range markers {
		if language != "" {
			m.Language = language
		}
		m.Description, m.Hint = p.Describe(m)
		out[i] = m
	}
	return out
}

func describedList(markers []model.Marker) []describedMarker {
	out := make([]describedMarker, len(markers))
	for i, m := range markers {
		out[i] = describedMarker{Index: m.Index, Ref: m.Ref, Description: m.Description, Hint: m.Hint}
	}
	return out
}
