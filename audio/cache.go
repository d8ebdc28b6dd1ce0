package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// cacheEntry is a pending-or-resolved decode result. A nil buffer after
// done closes means the sample is unavailable.
type cacheEntry struct {
	done chan struct{}
	buf  *beep.Buffer
}

// bufferCache stores decoded sample buffers keyed by URL. Append-only for
// the process lifetime: once a URL is requested every later request shares
// the same in-flight or completed result.
type bufferCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

func newBufferCache() *bufferCache {
	return &bufferCache{entries: make(map[string]*cacheEntry)}
}

// get returns the cached buffer for url, running load at most once per
// url across all callers. Concurrent callers for a pending url block
// until the first caller's load settles.
func (c *bufferCache) get(url string, load func(string) *beep.Buffer) *beep.Buffer {
	c.mu.Lock()
	if e, ok := c.entries[url]; ok {
		c.mu.Unlock()
		<-e.done
		return e.buf
	}

	e := &cacheEntry{done: make(chan struct{})}
	c.entries[url] = e
	c.mu.Unlock()

	e.buf = load(url)
	close(e.done)
	return e.buf
}

// len reports the number of requested URLs, resolved or pending.
func (c *bufferCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
