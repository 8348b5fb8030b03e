package i18n

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// SourceLocale is the locale every catalog tree is authored against.
// The fallback chain bottoms out here.
const SourceLocale = "en"

// Catalog is an immutable, locale-keyed set of string templates.
// Nested namespaces are flattened to dotted keys ("program.verifiedBy").
type Catalog struct {
	locale  string
	entries map[string]string
}

// ParseCatalog builds a Catalog for a locale from a nested key/value JSON
// document. Non-string leaves are skipped; a missing namespace is simply a
// set of missing keys, never a parse failure.
func ParseCatalog(locale string, doc []byte) (*Catalog, error) {
	locale = NormalizeLocale(locale)
	if locale == "" {
		return nil, ErrEmptyLocale
	}

	var tree map[string]any
	if err := json.Unmarshal(doc, &tree); err != nil {
		return nil, fmt.Errorf("%w: locale %q: %w", ErrMalformedCatalog, locale, err)
	}

	entries := make(map[string]string)
	flattenTree("", tree, entries)

	return &Catalog{locale: locale, entries: entries}, nil
}

// NewCatalog builds a Catalog from an already-flattened key/template map.
// The map is copied; the catalog never aliases caller memory.
func NewCatalog(locale string, entries map[string]string) (*Catalog, error) {
	locale = NormalizeLocale(locale)
	if locale == "" {
		return nil, ErrEmptyLocale
	}
	copied := make(map[string]string, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return &Catalog{locale: locale, entries: copied}, nil
}

func flattenTree(prefix string, node map[string]any, out map[string]string) {
	for key, value := range node {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			out[full] = v
		case map[string]any:
			flattenTree(full, v, out)
		}
	}
}

// Locale returns the normalized locale code this catalog was parsed for.
func (c *Catalog) Locale() string {
	return c.locale
}

// Lookup returns the template for a dotted key, if present.
func (c *Catalog) Lookup(key string) (string, bool) {
	template, ok := c.entries[key]
	return template, ok
}

// Len returns the number of leaf templates in the catalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Keys returns every dotted key in the catalog, sorted. Used by structural
// parity checks in tests and tooling.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Bundle is an immutable set of catalogs, one per locale, with a designated
// source locale. A bundle is loaded once per snapshot and injected wherever
// localized text is rendered.
type Bundle struct {
	source   string
	catalogs map[string]*Catalog
}

// NewBundle aggregates catalogs into a bundle. The source locale catalog is
// required; every lookup must be able to bottom out there.
func NewBundle(catalogs ...*Catalog) (*Bundle, error) {
	byLocale := make(map[string]*Catalog, len(catalogs))
	for _, c := range catalogs {
		if c == nil {
			continue
		}
		byLocale[c.locale] = c
	}
	if _, ok := byLocale[SourceLocale]; !ok {
		return nil, ErrSourceCatalogRequired
	}
	return &Bundle{source: SourceLocale, catalogs: byLocale}, nil
}

// Catalog returns the catalog for an exact normalized locale, if loaded.
func (b *Bundle) Catalog(locale string) (*Catalog, bool) {
	c, ok := b.catalogs[NormalizeLocale(locale)]
	return c, ok
}

// Locales returns the loaded locale codes, sorted.
func (b *Bundle) Locales() []string {
	locales := make([]string, 0, len(b.catalogs))
	for code := range b.catalogs {
		locales = append(locales, code)
	}
	sort.Strings(locales)
	return locales
}

// NormalizeLocale canonicalizes a locale code: trimmed, lowercase language,
// "-" separators, uppercase region ("es_mx" -> "es-MX").
func NormalizeLocale(locale string) string {
	locale = strings.TrimSpace(strings.ReplaceAll(locale, "_", "-"))
	if locale == "" {
		return ""
	}
	parts := strings.Split(locale, "-")
	parts[0] = strings.ToLower(parts[0])
	if len(parts) > 1 {
		parts[1] = strings.ToUpper(parts[1])
	}
	return strings.Join(parts, "-")
}

// BaseLanguage returns the language-only prefix of a locale code
// ("es-MX" -> "es"). Returns the input unchanged when there is no region.
func BaseLanguage(locale string) string {
	locale = NormalizeLocale(locale)
	if i := strings.IndexByte(locale, '-'); i >= 0 {
		return locale[:i]
	}
	return locale
}
