package web

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

const (
	cacheSize   = 256
	cacheExpiry = 5 * time.Second
)

// cachedPayload is a rendered response body with its build time.
type cachedPayload struct {
	data      any
	timestamp time.Time
}

// SnapshotCache caches rendered read-endpoint payloads keyed by view kind
// and store revision. A mutation bumps the revision, so stale entries are
// simply never asked for again and age out of the LRU.
type SnapshotCache struct {
	cache *lru.Cache
}

// NewSnapshotCache creates the cache.
func NewSnapshotCache() *SnapshotCache {
	cache, _ := lru.New(cacheSize)
	return &SnapshotCache{cache: cache}
}

// Get returns the cached payload for (kind, revision), building and storing
// it on a miss.
func (sc *SnapshotCache) Get(kind string, revision uint64, build func() any) any {
	key := fmt.Sprintf("%s:%d", kind, revision)

	if cached, ok := sc.cache.Get(key); ok {
		entry := cached.(cachedPayload)
		if time.Since(entry.timestamp) < cacheExpiry {
			return entry.data
		}
		sc.cache.Remove(key)
	}

	data := build()
	sc.cache.Add(key, cachedPayload{data: data, timestamp: time.Now()})
	return data
}
