package i18n

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// Params carries the named interpolation values for one template render.
// Placeholder names are enumerated at the call site; values are formatted
// with fmt semantics.
type Params map[string]any

// placeholderPattern matches {name} tokens inside templates.
var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z][a-zA-Z0-9_]*)\}`)

// pluralSuffixes maps base languages to the suffix rendered for the {s}
// marker in plural positions. Languages without plural inflection map to "".
var pluralSuffixes = map[string]string{
	"en": "s",
	"es": "s",
	"fr": "s",
	"pt": "s",
	"zh": "",
	"ja": "",
	"ko": "",
	"vi": "",
	"th": "",
}

// Resolver renders localized templates from an immutable bundle.
// It is a pure function over the bundle: safe to call from any goroutine,
// never errors, never returns an empty string for a key present in the
// source locale.
type Resolver struct {
	bundle *Bundle
	logger *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
	}
}

// NewResolver creates a resolver over a bundle.
func NewResolver(bundle *Bundle, opts ...ResolverOption) (*Resolver, error) {
	if bundle == nil {
		return nil, ErrSourceCatalogRequired
	}
	r := &Resolver{
		bundle: bundle,
		logger: slog.Default().With("component", "i18n-resolver"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Resolve renders the template for a dotted "namespace.key" in the best
// available locale. Resolution order: exact locale, base language, source
// locale. When the key is missing everywhere, the literal key string is
// returned as a visible sentinel so the gap is detectable in the UI.
func (r *Resolver) Resolve(locale, key string, params Params) string {
	template, foundLocale, ok := r.lookup(locale, key)
	if !ok {
		r.logger.Warn("translation missing in every catalog", "locale", locale, "key", key)
		return key
	}
	return r.render(template, foundLocale, params)
}

// FallbackChain returns the locale resolution order for a requested locale,
// ending at the source locale.
func (r *Resolver) FallbackChain(locale string) []string {
	chain := make([]string, 0, 3)
	exact := NormalizeLocale(locale)
	if exact != "" {
		chain = append(chain, exact)
	}
	if base := BaseLanguage(exact); base != "" && base != exact {
		chain = append(chain, base)
	}
	if len(chain) == 0 || chain[len(chain)-1] != r.bundle.source {
		chain = append(chain, r.bundle.source)
	}
	return chain
}

func (r *Resolver) lookup(locale, key string) (template, foundLocale string, ok bool) {
	for _, candidate := range r.FallbackChain(locale) {
		catalog, loaded := r.bundle.Catalog(candidate)
		if !loaded {
			continue
		}
		if template, ok := catalog.Lookup(key); ok {
			return template, candidate, true
		}
	}
	return "", "", false
}

// render substitutes {name} placeholders from params. The {s} marker is
// pluralization, driven by a numeric "count" parameter: count != 1 selects
// the plural suffix, and zero is plural. Placeholders without a matching
// parameter are left verbatim rather than removed.
func (r *Resolver) render(template, locale string, params Params) string {
	if !strings.ContainsRune(template, '{') {
		return template
	}

	count, hasCount := numericParam(params, "count")

	return placeholderPattern.ReplaceAllStringFunc(template, func(token string) string {
		name := token[1 : len(token)-1]

		if name == "s" {
			if !hasCount {
				return token
			}
			if count == 1 {
				return ""
			}
			return pluralSuffixFor(locale)
		}

		if params == nil {
			return token
		}
		value, ok := params[name]
		if !ok {
			return token
		}
		return fmt.Sprint(value)
	})
}

func pluralSuffixFor(locale string) string {
	if suffix, ok := pluralSuffixes[BaseLanguage(locale)]; ok {
		return suffix
	}
	return "s"
}

func numericParam(params Params, name string) (int64, bool) {
	if params == nil {
		return 0, false
	}
	switch v := params[name].(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), true
	case uint64:
		return int64(v), true
	case float32:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
