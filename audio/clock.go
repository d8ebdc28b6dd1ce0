package audio

import (
	"sync/atomic"

	"github.com/gopxl/beep"
)

// clock taps the output chain and counts samples pulled through it,
// giving the engine a monotonic playback clock in seconds.
type clock struct {
	src     beep.Streamer
	rate    beep.SampleRate
	samples atomic.Int64
}

func (c *clock) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = c.src.Stream(samples)
	c.samples.Add(int64(n))
	return n, ok
}

func (c *clock) Err() error {
	if s, ok := c.src.(interface{ Err() error }); ok {
		return s.Err()
	}
	return nil
}

// now returns the playback clock position in seconds.
func (c *clock) now() float64 {
	return float64(c.samples.Load()) / float64(c.rate)
}
