package datasource

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is the optional response-cache capability providers depend on. It is
// injected at construction time; when no cache is configured, providers run
// against NoopCache and every lookup is a miss. There is no call-time
// probing for cache availability anywhere else.
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
}

// MemoryCache is the in-memory Cache backed by go-cache with a fixed TTL.
type MemoryCache struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewMemoryCache creates a TTL-bound in-memory cache.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// Get retrieves a cached value.
func (m *MemoryCache) Get(key string) (interface{}, bool) {
	return m.cache.Get(key)
}

// Set stores a value under the cache TTL.
func (m *MemoryCache) Set(key string, value interface{}) {
	m.cache.Set(key, value, m.ttl)
}

// Flush drops every cached entry.
func (m *MemoryCache) Flush() {
	m.cache.Flush()
}

// NoopCache is the documented default when caching is disabled: it stores
// nothing and never hits.
type NoopCache struct{}

// Get always misses.
func (NoopCache) Get(string) (interface{}, bool) { return nil, false }

// Set discards the value.
func (NoopCache) Set(string, interface{}) {}
