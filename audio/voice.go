package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// Voice is one scheduled, independently stoppable sounding instance of a
// sample. Owned by the engine for its lifetime; it leaves the active set
// when its source drains or when a fade-out hard-stops it.
type Voice struct {
	gain *gainNode
	// start is the audio-clock second the source was scheduled to begin.
	start float64
}

// gainNode wraps a source streamer with the voice's gain automation:
// optional start delay, linear fade-in, and an exponential-approach
// fade-out with a scheduled hard stop.
//
// All mutation happens under the speaker lock, the same lock the mixer
// streams under.
type gainNode struct {
	src   beep.Streamer
	level float64

	// delay is the silence prefix for a future-scheduled start.
	delay int

	fadeInLeft  int
	fadeInTotal int

	fading   bool
	fadeEnv  float64
	fadeCoef float64

	// stopIn counts samples until hard stop; negative means none pending.
	stopIn int

	done bool
}

func newGainNode(src beep.Streamer, level float64, delay, fadeIn int) *gainNode {
	return &gainNode{
		src:         src,
		level:       level,
		delay:       delay,
		fadeInLeft:  fadeIn,
		fadeInTotal: fadeIn,
		fadeEnv:     1,
		stopIn:      -1,
	}
}

// beginFadeOut cancels pending automation and ramps the voice toward
// silence with the given time constant (in samples), hard-stopping after
// stopIn samples. Safe to call again on an already-fading or finished
// voice.
func (g *gainNode) beginFadeOut(tauSamples float64, stopIn int) {
	if g.done {
		return
	}
	if tauSamples < 1 {
		tauSamples = 1
	}
	// An in-progress fade-in is cancelled: its current ramp value is
	// frozen into the level so the envelope only falls from here.
	if g.fadeInLeft > 0 {
		g.level *= 1 - float64(g.fadeInLeft)/float64(g.fadeInTotal)
		g.fadeInLeft = 0
	}
	g.fading = true
	g.fadeCoef = math.Exp(-1 / tauSamples)
	g.stopIn = stopIn
}

func (g *gainNode) Stream(samples [][2]float64) (n int, ok bool) {
	if g.done {
		return 0, false
	}

	for n < len(samples) {
		if g.stopIn == 0 {
			g.done = true
			break
		}

		limit := len(samples) - n
		if g.stopIn > 0 && g.stopIn < limit {
			limit = g.stopIn
		}

		if g.delay > 0 {
			k := limit
			if g.delay < k {
				k = g.delay
			}
			for i := 0; i < k; i++ {
				samples[n+i] = [2]float64{}
			}
			g.delay -= k
			if g.stopIn > 0 {
				g.stopIn -= k
			}
			n += k
			continue
		}

		m, more := g.src.Stream(samples[n : n+limit])
		for i := 0; i < m; i++ {
			v := g.level
			if g.fadeInLeft > 0 {
				v *= 1 - float64(g.fadeInLeft)/float64(g.fadeInTotal)
				g.fadeInLeft--
			}
			if g.fading {
				g.fadeEnv *= g.fadeCoef
				v *= g.fadeEnv
			}
			samples[n+i][0] *= v
			samples[n+i][1] *= v
		}
		if g.stopIn > 0 {
			g.stopIn -= m
		}
		n += m

		if !more {
			g.done = true
			break
		}
	}

	return n, n > 0
}

func (g *gainNode) Err() error {
	if s, ok := g.src.(interface{ Err() error }); ok {
		return s.Err()
	}
	return nil
}

// clampGain bounds a requested gain to [0, +inf); non-finite input
// defaults to unity.
func clampGain(gain float64) float64 {
	if math.IsNaN(gain) || math.IsInf(gain, 0) {
		return 1
	}
	if gain < 0 {
		return 0
	}
	return gain
}
