// Package l10n provides the phrases spoken alongside element descriptions,
// localized by the element's language tag.
package l10n

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// DefaultLocale is the table every lookup finally falls back to.
const DefaultLocale = "en"

// Bundle holds the phrase tables and the localizers resolved from them.
// It is safe for concurrent use.
type Bundle struct {
	tables map[string]map[string]string

	mu       sync.Mutex
	resolved map[string]*Localizer
}

var (
	defaultOnce   sync.Once
	defaultBundle *Bundle
	defaultErr    error
)

// Default returns the bundle built from the embedded tables.
func Default() *Bundle {
	defaultOnce.Do(func() {
		defaultBundle, defaultErr = Load()
	})
	if defaultErr != nil {
		// The embedded tables are part of the binary.
		panic(fmt.Sprintf("l10n: embedded tables: %v", defaultErr))
	}
	return defaultBundle
}

// Load parses the embedded phrase tables.
func Load() (*Bundle, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}
	tables := make(map[string]map[string]string, len(entries))
	for _, e := range entries {
		data, err := localeFS.ReadFile(path.Join("locales", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		var table map[string]string
		if err := yaml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.Name(), err)
		}
		tables[strings.TrimSuffix(e.Name(), path.Ext(e.Name()))] = table
	}
	return NewBundle(tables)
}

// NewBundle builds a bundle from in-memory tables keyed by locale name.
// The DefaultLocale table is required.
func NewBundle(tables map[string]map[string]string) (*Bundle, error) {
	if _, ok := tables[DefaultLocale]; !ok {
		return nil, fmt.Errorf("missing %q table", DefaultLocale)
	}
	normalized := make(map[string]map[string]string, len(tables))
	for name, table := range tables {
		normalized[normalizeLocale(name)] = table
	}
	return &Bundle{tables: normalized, resolved: make(map[string]*Localizer)}, nil
}

// Locales returns the names of the available tables, sorted.
func (b *Bundle) Locales() []string {
	names := make([]string, 0, len(b.tables))
	for name := range b.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Keys returns the keys of the default table, sorted.
func (b *Bundle) Keys() []string {
	keys := make([]string, 0, len(b.tables[DefaultLocale]))
	for k := range b.tables[DefaultLocale] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Coverage returns how many default keys the named table translates.
func (b *Bundle) Coverage(locale string) int {
	table := b.tables[normalizeLocale(locale)]
	n := 0
	for k := range b.tables[DefaultLocale] {
		if _, ok := table[k]; ok {
			n++
		}
	}
	return n
}

// For returns the localizer for a BCP 47 language tag. An empty or
// unparseable tag yields the default localizer. Results are memoized.
func (b *Bundle) For(lang string) *Localizer {
	b.mu.Lock()
	defer b.mu.Unlock()
	if l, ok := b.resolved[lang]; ok {
		return l
	}
	l := b.resolve(lang)
	b.resolved[lang] = l
	return l
}

// resolve builds the fallback chain exact locale, then same base language,
// then default table.
func (b *Bundle) resolve(lang string) *Localizer {
	l := &Localizer{tag: language.English}
	tag, err := language.Parse(lang)
	if lang == "" || err != nil {
		l.chain = []map[string]string{b.tables[DefaultLocale]}
		return l
	}
	l.tag = tag

	seen := make(map[string]bool)
	add := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		if table, ok := b.tables[name]; ok {
			l.chain = append(l.chain, table)
		}
	}
	add(normalizeLocale(tag.String()))
	if base, conf := tag.Base(); conf != language.No {
		add(normalizeLocale(base.String()))
	}
	add(DefaultLocale)
	return l
}

func normalizeLocale(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "_", "-"))
}

// Localizer looks up phrases for one language.
type Localizer struct {
	tag   language.Tag
	chain []map[string]string
}

// Tag returns the language the localizer was resolved for.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// String returns the phrase for key, or key itself when no table has it.
func (l *Localizer) String(key string) string {
	for _, table := range l.chain {
		if s, ok := table[key]; ok {
			return s
		}
	}
	return key
}

// Format looks up a format phrase and applies args to it.
func (l *Localizer) Format(key string, args ...any) string {
	return fmt.Sprintf(l.String(key), args...)
}

// Number formats n in the localizer's language without grouping separators.
func (l *Localizer) Number(n int) string {
	return message.NewPrinter(l.tag).Sprint(number.Decimal(n, number.NoSeparator()))
}
