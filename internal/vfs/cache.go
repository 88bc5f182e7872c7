package vfs

import (
	"math"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	"neptis/internal/paths"
)

type blob struct {
	data    []byte
	expires time.Time
}

// dumpCache holds whole-file contents. Entries expire after ttl and the
// total length of all entries never exceeds maxBytes; the least recently
// used entries are evicted first.
type dumpCache struct {
	mu       sync.Mutex
	lru      *simplelru.LRU[string, blob]
	ttl      time.Duration
	maxBytes int64
	weight   int64
	now      func() time.Time
}

func newDumpCache(ttl time.Duration, maxBytes int64, now func() time.Time) *dumpCache {
	c := &dumpCache{ttl: ttl, maxBytes: maxBytes, now: now}
	// Entry count is unbounded in practice; weight is the real limit.
	lru, err := simplelru.NewLRU[string, blob](math.MaxInt32, func(_ string, b blob) {
		c.weight -= int64(len(b.data))
	})
	if err != nil {
		panic(err)
	}
	c.lru = lru
	return c
}

func (c *dumpCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	if !c.now().Before(b.expires) {
		c.lru.Remove(key)
		return nil, false
	}
	return b.data, true
}

func (c *dumpCache) add(key string, data []byte) {
	size := int64(len(data))
	if c.maxBytes <= 0 || size > c.maxBytes {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Remove(key)
	for c.weight+size > c.maxBytes && c.lru.Len() > 0 {
		c.lru.RemoveOldest()
	}
	c.lru.Add(key, blob{data: data, expires: c.now().Add(c.ttl)})
	c.weight += size
}

// invalidatePrefix drops every entry whose key starts with prefix.
func (c *dumpCache) invalidatePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for _, key := range c.lru.Keys() {
		if paths.HasPrefix(key, prefix) {
			c.lru.Remove(key)
			removed++
		}
	}
	return removed
}

func (c *dumpCache) bytes() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.weight
}
