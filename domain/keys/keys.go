package keys

import (
	"strings"
)

const (
	// PfxCollection is used for prefixing collection snapshot cache keys
	PfxCollection = "collection"
	// PfxFacets is used for prefixing facet cache keys
	PfxFacets = "facets"
	// PfxBid is used for prefixing bid book cache keys
	PfxBid = "bid"
	// PfxSession is used for prefixing revoked session keys
	PfxSession = "session"
	// PfxHttpCache is used for prefixing cached http responses
	PfxHttpCache = "httpcache"
)

// CustomKey is used to join the customized key by components with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// CacheKey is used to join the cache key by components
func CacheKey(components ...string) string {
	return CustomKey(":", components...)
}
