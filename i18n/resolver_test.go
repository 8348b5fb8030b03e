package i18n

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBundle(t *testing.T) *Bundle {
	t.Helper()

	en, err := NewCatalog("en", map[string]string{
		"program.found":      "{count} program{s} found",
		"program.verifiedBy": "Verified by {source} {days} day{s} ago",
		"search.placeholder": "Search programs",
		"search.noResults":   "No programs found",
		"category.food":      "Food",
	})
	require.NoError(t, err)

	es, err := NewCatalog("es", map[string]string{
		"program.found":      "{count} programa{s} encontrado{s}",
		"search.placeholder": "Buscar programas",
	})
	require.NoError(t, err)

	esMX, err := NewCatalog("es-MX", map[string]string{
		"search.placeholder": "Busca programas",
	})
	require.NoError(t, err)

	bundle, err := NewBundle(en, es, esMX)
	require.NoError(t, err)
	return bundle
}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	resolver, err := NewResolver(testBundle(t))
	require.NoError(t, err)
	return resolver
}

func TestResolveFallbackChain(t *testing.T) {
	resolver := newTestResolver(t)

	t.Run("exact locale wins", func(t *testing.T) {
		got := resolver.Resolve("es-MX", "search.placeholder", nil)
		assert.Equal(t, "Busca programas", got)
	})

	t.Run("region falls back to base language before source", func(t *testing.T) {
		got := resolver.Resolve("es-MX", "program.found", Params{"count": 2})
		assert.Equal(t, "2 programas encontrados", got)
	})

	t.Run("unknown language falls back to source", func(t *testing.T) {
		got := resolver.Resolve("tl", "search.noResults", nil)
		assert.Equal(t, "No programs found", got)
	})

	t.Run("missing everywhere returns literal key", func(t *testing.T) {
		got := resolver.Resolve("en", "program.doesNotExist", nil)
		assert.Equal(t, "program.doesNotExist", got)
	})

	t.Run("chain shape", func(t *testing.T) {
		assert.Equal(t, []string{"es-MX", "es", "en"}, resolver.FallbackChain("es_mx"))
		assert.Equal(t, []string{"en"}, resolver.FallbackChain("en"))
		assert.Equal(t, []string{"en"}, resolver.FallbackChain(""))
	})
}

func TestResolveSourceLocaleInvariant(t *testing.T) {
	// Every key present in the source catalog must resolve non-empty for any
	// requested locale.
	resolver := newTestResolver(t)
	enCatalog, ok := testBundle(t).Catalog("en")
	require.True(t, ok)

	for _, locale := range []string{"en", "es", "es-MX", "zh-TW", "xx", ""} {
		for _, key := range enCatalog.Keys() {
			got := resolver.Resolve(locale, key, Params{"count": 1, "source": "CDSS", "days": 3})
			assert.NotEmpty(t, got, "locale %q key %q", locale, key)
		}
	}
}

func TestResolvePluralization(t *testing.T) {
	resolver := newTestResolver(t)

	t.Run("singular", func(t *testing.T) {
		assert.Equal(t, "1 program found", resolver.Resolve("en", "program.found", Params{"count": 1}))
	})

	t.Run("zero is plural", func(t *testing.T) {
		assert.Equal(t, "0 programs found", resolver.Resolve("en", "program.found", Params{"count": 0}))
	})

	t.Run("many is plural", func(t *testing.T) {
		assert.Equal(t, "12 programs found", resolver.Resolve("en", "program.found", Params{"count": 12}))
	})

	t.Run("marker left verbatim without count", func(t *testing.T) {
		assert.Equal(t, "{count} program{s} found", resolver.Resolve("en", "program.found", nil))
	})

	t.Run("no-plural language renders empty suffix", func(t *testing.T) {
		zh, err := NewCatalog("zh", map[string]string{"program.found": "找到 {count} 個項目{s}"})
		require.NoError(t, err)
		en, err := NewCatalog("en", map[string]string{"program.found": "{count} program{s} found"})
		require.NoError(t, err)
		bundle, err := NewBundle(en, zh)
		require.NoError(t, err)
		r, err := NewResolver(bundle)
		require.NoError(t, err)
		assert.Equal(t, "找到 3 個項目", r.Resolve("zh", "program.found", Params{"count": 3}))
	})
}

func TestResolveInterpolation(t *testing.T) {
	resolver := newTestResolver(t)

	t.Run("substitutes named placeholders", func(t *testing.T) {
		got := resolver.Resolve("en", "program.verifiedBy", Params{"source": "CDSS", "days": 3, "count": 3})
		assert.Equal(t, "Verified by CDSS 3 days ago", got)
	})

	t.Run("unmatched placeholder left verbatim", func(t *testing.T) {
		got := resolver.Resolve("en", "program.verifiedBy", Params{"days": 1, "count": 1})
		assert.Equal(t, "Verified by {source} 1 day ago", got)
	})

	t.Run("formats arbitrary values", func(t *testing.T) {
		en, err := NewCatalog("en", map[string]string{"k": "value is {v}"})
		require.NoError(t, err)
		bundle, err := NewBundle(en)
		require.NoError(t, err)
		r, err := NewResolver(bundle)
		require.NoError(t, err)
		assert.Equal(t, "value is 2.5", r.Resolve("en", "k", Params{"v": 2.5}))
	})
}

func TestResolverIsPure(t *testing.T) {
	resolver := newTestResolver(t)
	first := resolver.Resolve("es-MX", "program.found", Params{"count": 5})
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, resolver.Resolve("es-MX", "program.found", Params{"count": 5}), fmt.Sprintf("iteration %d", i))
	}
}
