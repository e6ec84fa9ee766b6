package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mj1618/a11y-snapshot/internal/model"
	"github.com/mj1618/a11y-snapshot/internal/output"
	"github.com/mj1618/a11y-snapshot/internal/parser"
	"github.com/mj1618/a11y-snapshot/internal/platform"
)

func (s *Server) registerTools() {
	documentArgs := []mcp.ToolOption{
		mcp.WithString("document", mcp.Description("The view tree as YAML or JSON (a document with a root, or a bare root view)")),
		mcp.WithString("path", mcp.Description("Read the view tree from this file instead of 'document'")),
		mcp.WithString("format", mcp.Description("Format of 'document': yaml or json (default: yaml)")),
		mcp.WithString("layout-direction", mcp.Description("Override the layout direction: ltr or rtl")),
		mcp.WithString("idiom", mcp.Description("Override the device idiom: phone, pad or unspecified")),
		mcp.WithString("verbosity", mcp.Description("Announcement verbosity: verbose, minimal or traits-first")),
	}

	// parse
	s.mcp.AddTool(
		mcp.NewTool("parse", append([]mcp.ToolOption{
			mcp.WithDescription("Parse a view tree into the ordered list of elements a screen reader visits, with descriptions, hints, shapes and activation points"),
			mcp.WithString("text", mcp.Description("Only return markers whose description, hint, label or value contains this text")),
			mcp.WithBoolean("prune", mcp.Description("Drop markers with nothing to announce")),
		}, documentArgs...)...),
		s.handleParse,
	)

	// hierarchy
	s.mcp.AddTool(
		mcp.NewTool("hierarchy", append([]mcp.ToolOption{
			mcp.WithDescription("Parse a view tree and return its markers nested in the lists, landmarks, tables, tab bars and labelled groups that contain them"),
		}, documentArgs...)...),
		s.handleHierarchy,
	)

	// describe
	s.mcp.AddTool(
		mcp.NewTool("describe",
			mcp.WithDescription("Re-describe previously parsed markers under a different verbosity or language"),
			mcp.WithString("markers", mcp.Description("Marker list as YAML or JSON, as returned by parse"), mcp.Required()),
			mcp.WithString("verbosity", mcp.Description("Announcement verbosity: verbose, minimal or traits-first")),
			mcp.WithString("language", mcp.Description("BCP 47 language to describe in, overriding each marker's own")),
		),
		s.handleDescribe,
	)

	// locales
	s.mcp.AddTool(
		mcp.NewTool("locales",
			mcp.WithDescription("List the languages descriptions can be produced in"),
		),
		s.handleLocales,
	)
}

// request is a decoded document tool call.
type request struct {
	doc       *model.Document
	source    string
	content   []byte
	format    string
	direction model.LayoutDirection
	idiom     string
	verbosity string
	opts      []parser.Option
}

// key identifies the result of tool for this request.
func (r request) key(tool string) string {
	return CacheKey(tool, r.format, string(r.content), string(r.direction), r.idiom, r.verbosity)
}

func (s *Server) decodeRequest(req mcp.CallToolRequest) (request, error) {
	r := request{
		format:    req.GetString("format", "yaml"),
		idiom:     req.GetString("idiom", ""),
		verbosity: req.GetString("verbosity", ""),
	}
	document := req.GetString("document", "")
	path := req.GetString("path", "")
	switch {
	case document != "" && path != "":
		return r, errors.New("specify either document or path, not both")
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return r, fmt.Errorf("read %s: %w", path, err)
		}
		r.content, r.source = data, path
		if ext := filepath.Ext(path); ext != "" {
			r.format = ext
		}
	case document != "":
		r.content = []byte(document)
	default:
		return r, errors.New("document or path is required")
	}

	doc, err := s.provider.Read(r.format, r.content)
	if err != nil {
		return r, err
	}
	r.doc = doc

	dir, err := platform.ParseLayoutDirection(req.GetString("layout-direction", ""))
	if err != nil {
		return r, err
	}
	if dir != "" {
		r.direction = dir
		r.opts = append(r.opts, parser.WithLayoutDirection(dir))
	}
	if r.idiom != "" {
		idiom, err := platform.ParseIdiom(r.idiom)
		if err != nil {
			return r, err
		}
		r.opts = append(r.opts, parser.WithIdiom(idiom))
	}
	if r.verbosity != "" {
		v, err := parser.ParseVerbosity(r.verbosity)
		if err != nil {
			return r, err
		}
		r.opts = append(r.opts, parser.WithVerbosity(v))
	}
	return r, nil
}

// parseHierarchy parses the request's document, through the cache.
func (s *Server) parseHierarchy(r request) ([]model.HierarchyNode, []model.Marker, error) {
	type parsed struct {
		nodes   []model.HierarchyNode
		markers []model.Marker
	}
	v, hit, err := s.cache.Get(r.key("parse"), func() (any, error) {
		nodes, err := s.parser.ParseDocument(r.doc, r.opts...)
		if err != nil {
			return nil, err
		}
		markers := model.GenerateHierarchyRefs(nodes)
		return parsed{nodes: nodes, markers: markers}, nil
	})
	if err != nil {
		return nil, nil, err
	}
	p := v.(parsed)
	s.log.Debug("parsed document", "source", r.source, "markers", len(p.markers), "cache_hit", hit)
	return p.nodes, p.markers, nil
}

func (s *Server) handleParse(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r, err := s.decodeRequest(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	_, markers, err := s.parseHierarchy(r)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	markers = model.FilterByText(markers, req.GetString("text", ""))
	if req.GetBool("prune", false) {
		markers = model.PruneSilent(markers)
	}
	if markers == nil {
		markers = []model.Marker{}
	}

	return yamlResult(output.ParseResult{
		Source:          r.source,
		LayoutDirection: s.parser.LayoutDirection(r.doc, r.opts...),
		Idiom:           r.doc.Idiom,
		Markers:         markers,
	}), nil
}

func (s *Server) handleHierarchy(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	r, err := s.decodeRequest(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	nodes, _, err := s.parseHierarchy(r)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if nodes == nil {
		nodes = []model.HierarchyNode{}
	}
	return yamlResult(output.HierarchyResult{Source: r.source, Hierarchy: nodes}), nil
}

// description is one re-described marker.
type description struct {
	Index       int    `yaml:"index"`
	Description string `yaml:"description"`
	Hint        string `yaml:"hint,omitempty"`
}

func (s *Server) handleDescribe(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	markers, err := model.DecodeMarkers([]byte(req.GetString("markers", "")), false)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("decode markers: %v", err)), nil
	}
	var opts []parser.Option
	if name := req.GetString("verbosity", ""); name != "" {
		v, err := parser.ParseVerbosity(name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		opts = append(opts, parser.WithVerbosity(v))
	}
	language := req.GetString("language", "")

	out := make([]description, 0, len(markers))
	for _, m := range markers {
		if language != "" {
			m.Language = language
		}
		desc, hint := s.parser.Describe(m, opts...)
		out = append(out, description{Index: m.Index, Description: desc, Hint: hint})
	}
	return yamlResult(out), nil
}

// locale is one entry of the locales tool output.
type locale struct {
	Locale   string `yaml:"locale"`
	Coverage string `yaml:"coverage"`
}

func (s *Server) handleLocales(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	total := len(s.bundle.Keys())
	var out []locale
	for _, l := range s.bundle.Locales() {
		out = append(out, locale{Locale: l, Coverage: fmt.Sprintf("%d/%d", s.bundle.Coverage(l), total)})
	}
	return yamlResult(out), nil
}

// yamlResult serializes v to YAML for an MCP response.
func yamlResult(v any) *mcp.CallToolResult {
	var b strings.Builder
	if err := output.WriteYAML(&b, v); err != nil {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultText(b.String())
}
