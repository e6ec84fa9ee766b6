package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mj1618/a11y-snapshot/internal/model"
	"github.com/mj1618/a11y-snapshot/internal/output"
	"github.com/mj1618/a11y-snapshot/internal/parser"
	"github.com/mj1618/a11y-snapshot/internal/platform"
)

// provider holds the document readers and environment defaults shared by
// every command.
var provider = platform.NewProvider()

// newParser builds a parser from the root persistent flags. The system
// layout direction applies only when neither the flags nor the document
// name one.
func newParser(cmd *cobra.Command) (*parser.Parser, error) {
	name, _ := cmd.Flags().GetString("verbosity")
	verbosity, err := parser.ParseVerbosity(name)
	if err != nil {
		return nil, err
	}
	return parser.New(
		parser.WithLayoutDirectionProvider(provider.Direction),
		parser.WithVerbosity(verbosity),
	), nil
}

// callOptions returns the per-call options set explicitly by flags, which
// take precedence over document hints.
func callOptions(cmd *cobra.Command) ([]parser.Option, error) {
	var opts []parser.Option
	dirStr, _ := cmd.Flags().GetString("layout-direction")
	dir, err := platform.ParseLayoutDirection(dirStr)
	if err != nil {
		return nil, err
	}
	if dir != "" {
		opts = append(opts, parser.WithLayoutDirection(dir))
	}
	if cmd.Flags().Changed("idiom") {
		idiomStr, _ := cmd.Flags().GetString("idiom")
		idiom, err := platform.ParseIdiom(idiomStr)
		if err != nil {
			return nil, err
		}
		opts = append(opts, parser.WithIdiom(idiom))
	}
	return opts, nil
}

// parsedFile is one document parsed from disk.
type parsedFile struct {
	doc       *model.Document
	direction model.LayoutDirection
	hierarchy []model.HierarchyNode
	markers   []model.Marker
}

// result returns the printable form of the parse.
func (f parsedFile) result(source string) output.ParseResult {
	markers := f.markers
	if markers == nil {
		markers = []model.Marker{}
	}
	return output.ParseResult{
		Source:          source,
		LayoutDirection: f.direction,
		Idiom:           f.doc.Idiom,
		Markers:         markers,
	}
}

// parseFile reads and parses the document at path, assigning refs.
func parseFile(p *parser.Parser, path string, opts []parser.Option) (parsedFile, error) {
	doc, err := provider.ReadFile(path)
	if err != nil {
		return parsedFile{}, err
	}
	nodes, err := p.ParseDocument(doc, opts...)
	if err != nil {
		return parsedFile{}, fmt.Errorf("%s: %w", path, err)
	}
	return parsedFile{
		doc:       doc,
		direction: p.LayoutDirection(doc, opts...),
		hierarchy: nodes,
		markers:   model.GenerateHierarchyRefs(nodes),
	}, nil
}

// addFilterFlags registers the marker filtering flags shared by parse and find.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("text", "", "Only include markers whose description, hint, label or value contains this text")
	cmd.Flags().String("traits", "", "Only include markers carrying all of these comma-separated traits (e.g. \"button,selected\")")
	cmd.Flags().String("bbox", "", "Only include markers whose shape intersects this rect (x,y,w,h)")
	cmd.Flags().Bool("prune", false, "Drop markers with nothing to announce")
}

// markerFilter holds the values of the filtering flags.
type markerFilter struct {
	text   string
	traits model.Traits
	bbox   *model.Rect
	prune  bool
}

func getMarkerFilter(cmd *cobra.Command) (markerFilter, error) {
	var f markerFilter
	f.text, _ = cmd.Flags().GetString("text")
	f.prune, _ = cmd.Flags().GetBool("prune")

	traitsStr, _ := cmd.Flags().GetString("traits")
	if traitsStr != "" {
		traits, err := model.ParseTraits(strings.Split(traitsStr, ","))
		if err != nil {
			return f, err
		}
		f.traits = traits
	}

	bboxStr, _ := cmd.Flags().GetString("bbox")
	if bboxStr != "" {
		bbox, err := platform.ParseRect(bboxStr)
		if err != nil {
			return f, err
		}
		f.bbox = bbox
	}
	return f, nil
}

// apply filters markers, keeping traversal indices.
func (f markerFilter) apply(markers []model.Marker) []model.Marker {
	markers = model.FilterMarkers(markers, f.traits, f.bbox)
	markers = model.FilterByText(markers, f.text)
	if f.prune {
		markers = model.PruneSilent(markers)
	}
	if markers == nil {
		markers = []model.Marker{}
	}
	return markers
}
