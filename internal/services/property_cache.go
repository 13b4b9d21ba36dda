package services

import (
	"sync"

	"github.com/deploymenttheory/go-wim/internal/types"
)

// cacheKey scopes a cached resolution to one image and one logical field
// within a single container session.
type cacheKey struct {
	imageIndex int
	field      types.Field
}

// cacheEntry distinguishes a value that resolved from one that was confirmed
// absent; both are cached so a repeated query never re-invokes the resolver.
type cacheEntry struct {
	value    string
	resolved bool
}

// PropertyCache stores per-(image, field) resolution results for one
// aggregation session. It is bound to a single container identity and clears
// itself whenever that identity changes, so stale state can never leak across
// containers.
type PropertyCache struct {
	mu            sync.RWMutex
	containerPath string
	entries       map[cacheKey]cacheEntry
}

// NewPropertyCache creates an empty cache bound to no container.
func NewPropertyCache() *PropertyCache {
	return &PropertyCache{
		entries: make(map[cacheKey]cacheEntry),
	}
}

// BindContainer associates the cache with a container identity, invalidating
// every entry when the identity differs from the current one.
func (pc *PropertyCache) BindContainer(path string) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.containerPath != path {
		pc.containerPath = path
		pc.entries = make(map[cacheKey]cacheEntry)
	}
}

// Get looks up a cached resolution. The second return value reports whether
// the field was ever resolved in this session; when it is true, the first and
// third values carry the cached outcome (value, resolved-vs-confirmed-absent).
func (pc *PropertyCache) Get(imageIndex int, field types.Field) (string, bool, bool) {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	entry, queried := pc.entries[cacheKey{imageIndex: imageIndex, field: field}]
	return entry.value, queried, entry.resolved
}

// Set records a resolution outcome, including the confirmed-absent case
// (resolved=false with an empty value).
func (pc *PropertyCache) Set(imageIndex int, field types.Field, value string, resolved bool) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.entries[cacheKey{imageIndex: imageIndex, field: field}] = cacheEntry{value: value, resolved: resolved}
}

// InvalidateAll drops every cached entry but keeps the container binding.
func (pc *PropertyCache) InvalidateAll() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.entries = make(map[cacheKey]cacheEntry)
}

// Len returns the number of cached entries.
func (pc *PropertyCache) Len() int {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	return len(pc.entries)
}
