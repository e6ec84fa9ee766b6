// Package parser turns a view tree carrying accessibility metadata into the
// ordered list of markers a screen reader's linear navigation visits.
//
// Parsing happens in three passes over a read-only tree: build groups the
// tree into elements and ordered clusters, sort orders them geometrically,
// and describe resolves each element's structural context and synthesizes
// what is announced for it.
package parser

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/mj1618/a11y-snapshot/internal/l10n"
	"github.com/mj1618/a11y-snapshot/internal/logging"
	"github.com/mj1618/a11y-snapshot/internal/model"
)

// ErrInconsistentTree is returned when the tree violates an assumption the
// traversal depends on, such as an element missing from the container that
// claims it or a tab bar whose buttons do not match its items. No partial
// result is returned alongside it.
var ErrInconsistentTree = errors.New("inconsistent accessibility tree")

// DefaultRotorResultLimit caps the results collected for each custom rotor.
const DefaultRotorResultLimit = 10

// DefaultScreenScale is the pixel density assumed when none is given.
const DefaultScreenScale = 2.0

// LayoutDirectionProvider supplies the interface layout direction at parse time.
type LayoutDirectionProvider interface {
	LayoutDirection() model.LayoutDirection
}

// Options configures a parse.
type Options struct {
	LayoutDirection         model.LayoutDirection
	LayoutDirectionProvider LayoutDirectionProvider
	Idiom                   model.Idiom
	RotorResultLimit        int
	ScreenScale             float64
	Verbosity               Verbosity
	Bundle                  *l10n.Bundle
	Logger                  *slog.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithLayoutDirection fixes the horizontal reading direction.
func WithLayoutDirection(d model.LayoutDirection) Option {
	return func(o *Options) { o.LayoutDirection = d }
}

// WithLayoutDirectionProvider reads the direction from p on every parse.
// An explicit WithLayoutDirection wins over the provider.
func WithLayoutDirectionProvider(p LayoutDirectionProvider) Option {
	return func(o *Options) { o.LayoutDirectionProvider = p }
}

// WithIdiom sets the device family, which controls how far apart two
// elements must be vertically before they are read as separate lines.
func WithIdiom(i model.Idiom) Option {
	return func(o *Options) { o.Idiom = i }
}

// WithRotorResultLimit caps the results collected per custom rotor.
func WithRotorResultLimit(n int) Option {
	return func(o *Options) { o.RotorResultLimit = n }
}

// WithScreenScale sets the pixel density used to compare activation points.
func WithScreenScale(scale float64) Option {
	return func(o *Options) { o.ScreenScale = scale }
}

// WithVerbosity controls which parts of a description are synthesized.
func WithVerbosity(v Verbosity) Option {
	return func(o *Options) { o.Verbosity = v }
}

// WithBundle sets the phrase tables used for descriptions.
func WithBundle(b *l10n.Bundle) Option {
	return func(o *Options) { o.Bundle = b }
}

// WithLogger sets the logger for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// Parser parses accessibility hierarchies. A Parser holds only
// configuration; every call owns its own state, so one Parser may be used
// from several goroutines.
type Parser struct {
	opts Options
}

// New returns a parser with the given default options.
func New(opts ...Option) *Parser {
	o := Options{
		Verbosity: VerbosityVerbose,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Parser{opts: o}
}

// resolve applies per-call options over the parser defaults and fills in
// whatever is still unset.
func (p *Parser) resolve(opts []Option) Options {
	o := p.opts
	for _, opt := range opts {
		opt(&o)
	}
	if o.LayoutDirection == "" && o.LayoutDirectionProvider != nil {
		o.LayoutDirection = o.LayoutDirectionProvider.LayoutDirection()
	}
	if o.LayoutDirection == "" {
		o.LayoutDirection = model.LeftToRight
	}
	if o.RotorResultLimit <= 0 {
		o.RotorResultLimit = DefaultRotorResultLimit
	}
	if o.ScreenScale <= 0 {
		o.ScreenScale = DefaultScreenScale
	}
	if o.Bundle == nil {
		o.Bundle = l10n.Default()
	}
	if o.Logger == nil {
		o.Logger = logging.New("parser")
	}
	return o
}

// Parse returns the markers for every element under root in traversal
// order. Coordinates in the markers are relative to root's frame.
func (p *Parser) Parse(root *model.View, opts ...Option) ([]model.Marker, error) {
	res, err := p.run(root, p.resolve(opts))
	if err != nil {
		return nil, err
	}
	return res.markers, nil
}

// ParseHierarchy returns the same elements as Parse nested inside the
// meaningful containers (lists, landmarks, data tables, tab bars and
// labelled semantic groups) that hold them. model.FlattenHierarchy of the
// result equals the output of Parse.
func (p *Parser) ParseHierarchy(root *model.View, opts ...Option) ([]model.HierarchyNode, error) {
	res, err := p.run(root, p.resolve(opts))
	if err != nil {
		return nil, err
	}
	return res.hierarchy, nil
}

// ParseDocument parses a decoded document. The document's layout
// direction, idiom and screen scale apply unless opts override them.
func (p *Parser) ParseDocument(doc *model.Document, opts ...Option) ([]model.HierarchyNode, error) {
	if doc == nil || doc.Root == nil {
		return nil, errors.New("document has no root view")
	}
	return p.ParseHierarchy(doc.Root, append(documentOptions(doc), opts...)...)
}

// LayoutDirection reports the direction ParseDocument resolves for doc and
// opts, including the provider fallback.
func (p *Parser) LayoutDirection(doc *model.Document, opts ...Option) model.LayoutDirection {
	return p.resolve(append(documentOptions(doc), opts...)).LayoutDirection
}

// documentOptions turns the hints carried by doc into options.
func documentOptions(doc *model.Document) []Option {
	var opts []Option
	if doc == nil {
		return opts
	}
	if doc.LayoutDirection != "" {
		opts = append(opts, WithLayoutDirection(doc.LayoutDirection))
	}
	if doc.Idiom != "" {
		opts = append(opts, WithIdiom(doc.Idiom))
	}
	if doc.ScreenScale > 0 {
		opts = append(opts, WithScreenScale(doc.ScreenScale))
	}
	return opts
}

// Describe re-synthesizes the description and hint of an already parsed
// marker, for instance under a different verbosity or language.
func (p *Parser) Describe(m model.Marker, opts ...Option) (description, hint string) {
	o := p.resolve(opts)
	d := describer{bundle: o.Bundle, verbosity: o.Verbosity}
	return d.describe(describableMarker(m), m.Context)
}

type result struct {
	markers   []model.Marker
	hierarchy []model.HierarchyNode
}

// run executes one parse. Invariant faults raised anywhere below are
// converted into an error here.
func (p *Parser) run(root *model.View, o Options) (res result, err error) {
	if root == nil {
		return result{}, errors.New("parse: nil root view")
	}
	defer func() {
		if rec := recover(); rec != nil {
			v, ok := rec.(invariantViolation)
			if !ok {
				panic(rec)
			}
			o.Logger.Debug("parse aborted", "reason", v.msg)
			res = result{}
			err = fmt.Errorf("%w: %s", ErrInconsistentTree, v.msg)
		}
	}()

	r := newRun(root, o)
	nodes := r.build(r.idx.root, nil)
	elements := r.sorted(nodes, false)

	res.markers = make([]model.Marker, len(elements))
	traversal := make(map[key]int, len(elements))
	for i, el := range elements {
		res.markers[i] = r.marker(i, el)
		traversal[el.key] = i
	}
	res.hierarchy = r.hierarchy(nodes, traversal, res.markers)

	o.Logger.Debug("parsed hierarchy",
		"nodes", len(r.idx.views),
		"markers", len(res.markers),
		"direction", o.LayoutDirection,
		"idiom", o.Idiom)
	return res, nil
}

// invariantViolation is raised when the tree breaks an assumption the
// traversal cannot proceed past.
type invariantViolation struct {
	msg string
}

func fault(format string, args ...any) {
	panic(invariantViolation{msg: fmt.Sprintf(format, args...)})
}
