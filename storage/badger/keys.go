package badger

import (
	"strings"

	"github.com/poiesic/benefind/core"
)

// Key prefixes for different data types
const (
	programPrefix = "prog"
	metadataKey   = "meta"
	localePrefix  = "loc"
	keySeparator  = ":"
)

// makeProgramKey generates a key for a program record by slug.
func makeProgramKey(slug core.Slug) []byte {
	return []byte(programPrefix + keySeparator + string(slug))
}

// programKeyPrefix returns the iteration prefix for program records.
func programKeyPrefix() []byte {
	return []byte(programPrefix + keySeparator)
}

// slugFromProgramKey recovers the slug from a program record key.
func slugFromProgramKey(key []byte) core.Slug {
	return core.Slug(strings.TrimPrefix(string(key), programPrefix+keySeparator))
}

// makeMetadataKey generates the key for the snapshot metadata record.
func makeMetadataKey() []byte {
	return []byte(metadataKey)
}

// makeLocaleKey generates a key for a locale's raw catalog document.
func makeLocaleKey(locale string) []byte {
	return []byte(localePrefix + keySeparator + locale)
}

// localeKeyPrefix returns the iteration prefix for locale documents.
func localeKeyPrefix() []byte {
	return []byte(localePrefix + keySeparator)
}

// localeFromKey recovers the locale code from a locale document key.
func localeFromKey(key []byte) string {
	return strings.TrimPrefix(string(key), localePrefix+keySeparator)
}
