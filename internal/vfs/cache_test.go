package vfs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"neptis/internal/config"
)

func testConfig() config.VFSConfig {
	return config.VFSConfig{
		LookupTTL:    10 * time.Second,
		DumpTTL:      10 * time.Second,
		DumpMaxBytes: 1 << 30,
		LookupSize:   4096,
	}
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestDumpCache_Expiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)}
	c := newDumpCache(10*time.Second, 100, clock.now)

	c.add("/m/data/a", []byte("abc"))
	data, ok := c.get("/m/data/a")
	assert.True(t, ok)
	assert.Equal(t, "abc", string(data))

	clock.t = clock.t.Add(9 * time.Second)
	_, ok = c.get("/m/data/a")
	assert.True(t, ok)

	clock.t = clock.t.Add(time.Second)
	_, ok = c.get("/m/data/a")
	assert.False(t, ok)
	assert.Zero(t, c.bytes())
}

func TestDumpCache_WeightBound(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	c := newDumpCache(time.Minute, 10, clock.now)

	c.add("/m/data/a", []byte("aaaa"))
	c.add("/m/data/b", []byte("bbbb"))
	assert.Equal(t, int64(8), c.bytes())

	// touch a so b is the oldest
	_, _ = c.get("/m/data/a")
	c.add("/m/data/c", []byte("cccc"))

	_, ok := c.get("/m/data/b")
	assert.False(t, ok)
	_, ok = c.get("/m/data/a")
	assert.True(t, ok)
	assert.Equal(t, int64(8), c.bytes())

	c.add("/m/data/huge", make([]byte, 11))
	_, ok = c.get("/m/data/huge")
	assert.False(t, ok, "entries larger than the bound are never cached")
	assert.Equal(t, int64(8), c.bytes())
}

func TestDumpCache_ReplaceKeepsWeight(t *testing.T) {
	c := newDumpCache(time.Minute, 100, time.Now)

	c.add("/m/data/a", []byte("aaaa"))
	c.add("/m/data/a", []byte("aa"))
	assert.Equal(t, int64(2), c.bytes())
}

func TestDumpCache_InvalidatePrefix(t *testing.T) {
	c := newDumpCache(time.Minute, 100, time.Now)

	c.add("/m/data/dir/a", []byte("a"))
	c.add("/m/data/dir/b", []byte("b"))
	c.add("/m/data/other", []byte("o"))

	assert.Equal(t, 2, c.invalidatePrefix("/m/data/dir"))
	assert.Equal(t, int64(1), c.bytes())
	_, ok := c.get("/m/data/other")
	assert.True(t, ok)
}
