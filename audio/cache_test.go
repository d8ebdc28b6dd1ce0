package audio

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestCacheLoadsOncePerURL(t *testing.T) {
	c := newBufferCache()
	var calls atomic.Int32

	buf := beep.NewBuffer(beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2})
	load := func(string) *beep.Buffer {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return buf
	}

	// Concurrent requests for one URL share a single in-flight load
	var wg sync.WaitGroup
	results := make([]*beep.Buffer, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.get("audio/c4.mp3", load)
		}(i)
	}
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("loader ran %d times, want 1", got)
	}
	for i, r := range results {
		if r != buf {
			t.Errorf("caller %d got a different buffer", i)
		}
	}

	// Later requests reuse the completed result
	if c.get("audio/c4.mp3", load) != buf {
		t.Error("repeat request missed the cache")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("loader ran %d times after repeat, want 1", got)
	}
}

func TestCacheStoresFailures(t *testing.T) {
	c := newBufferCache()
	var calls atomic.Int32
	load := func(string) *beep.Buffer {
		calls.Add(1)
		return nil
	}

	// A failed load is cached as "unavailable", not retried
	if c.get("audio/missing.mp3", load) != nil {
		t.Error("failed load returned a buffer")
	}
	if c.get("audio/missing.mp3", load) != nil {
		t.Error("cached failure returned a buffer")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("loader ran %d times, want 1", got)
	}
	if c.len() != 1 {
		t.Errorf("cache holds %d entries, want 1", c.len())
	}
}
