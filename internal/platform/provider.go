package platform

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/a11y-snapshot/internal/model"
)

// ErrUnsupportedFormat is returned when no reader is registered for a
// document's format.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Provider bundles the tree sources and environment defaults the CLI and
// server use.
type Provider struct {
	mu        sync.RWMutex
	readers   map[string]Reader
	Direction DirectionProvider
}

// NewProvider returns a provider with the YAML and JSON readers registered
// and the layout direction taken from the process locale.
func NewProvider() *Provider {
	p := &Provider{
		readers:   make(map[string]Reader),
		Direction: SystemLayoutDirection{},
	}
	p.Register("yaml", ReaderFunc(readYAML))
	p.Register("yml", ReaderFunc(readYAML))
	p.Register("json", ReaderFunc(readJSON))
	return p
}

// Register adds or replaces the reader for a format. Formats are file
// extensions without the dot.
func (p *Provider) Register(format string, r Reader) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.readers[normalizeFormat(format)] = r
}

// Formats returns the registered formats, sorted.
func (p *Provider) Formats() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.formatsLocked()
}

// ReaderFor returns the reader registered for format.
func (p *Provider) ReaderFor(format string) (Reader, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	r, ok := p.readers[normalizeFormat(format)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, format, strings.Join(p.formatsLocked(), ", "))
	}
	return r, nil
}

func (p *Provider) formatsLocked() []string {
	out := make([]string, 0, len(p.readers))
	for f := range p.readers {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Read decodes data in the given format.
func (p *Provider) Read(format string, data []byte) (*model.Document, error) {
	r, err := p.ReaderFor(format)
	if err != nil {
		return nil, err
	}
	doc, err := r.ReadDocument(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s document: %w", normalizeFormat(format), err)
	}
	if doc.Root == nil {
		return nil, fmt.Errorf("decode %s document: missing root view", normalizeFormat(format))
	}
	return doc, nil
}

// ReadFile decodes the document at path, picking the reader by extension.
// A path of "-" reads YAML from stdin.
func (p *Provider) ReadFile(path string) (*model.Document, error) {
	var (
		data   []byte
		err    error
		format string
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
		format = "yaml"
	} else {
		data, err = os.ReadFile(path)
		format = filepath.Ext(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := p.Read(format, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

var errEmptyDocument = errors.New("empty document")

func normalizeFormat(format string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
}

// readYAML accepts either a full document or a bare root view.
func readYAML(r io.Reader) (*model.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var top map[string]yaml.Node
	if err := yaml.Unmarshal(data, &top); err != nil {
		return nil, err
	}
	if len(top) == 0 {
		return nil, errEmptyDocument
	}
	if _, ok := top["root"]; ok {
		var doc model.Document
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return &doc, nil
	}
	var root model.View
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return &model.Document{Root: &root}, nil
}

// readJSON accepts either a full document or a bare root view.
func readJSON(r io.Reader) (*model.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, err
	}
	if len(top) == 0 {
		return nil, errEmptyDocument
	}
	if _, ok := top["root"]; ok {
		var doc model.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return &doc, nil
	}
	var root model.View
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	return &model.Document{Root: &root}, nil
}
