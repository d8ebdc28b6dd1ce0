package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/kelsine/pitchmatch/constant"
)

// limiter keeps the master bus under a fixed threshold, compressing
// overshoot at a high ratio with attack/release smoothing. It sits after
// the master volume so simultaneous voices cannot clip the output.
type limiter struct {
	src       beep.Streamer
	threshold float64 // linear amplitude
	ratio     float64
	attack    float64 // per-sample smoothing coefficients
	release   float64
	env       float64 // smoothed peak estimate
}

func newLimiter(src beep.Streamer, rate beep.SampleRate) *limiter {
	return &limiter{
		src:       src,
		threshold: math.Pow(10, constant.LimiterThresholdDB/20),
		ratio:     constant.LimiterRatio,
		attack:    smoothingCoef(constant.LimiterAttack, rate),
		release:   smoothingCoef(constant.LimiterRelease, rate),
	}
}

// smoothingCoef converts a time constant to a per-sample one-pole
// coefficient.
func smoothingCoef(d time.Duration, rate beep.SampleRate) float64 {
	n := float64(rate) * d.Seconds()
	if n <= 0 {
		return 0
	}
	return math.Exp(-1 / n)
}

func (l *limiter) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = l.src.Stream(samples)

	for i := 0; i < n; i++ {
		peak := math.Abs(samples[i][0])
		if r := math.Abs(samples[i][1]); r > peak {
			peak = r
		}

		coef := l.release
		if peak > l.env {
			coef = l.attack
		}
		l.env = coef*l.env + (1-coef)*peak

		if l.env > l.threshold {
			out := l.threshold * math.Pow(l.env/l.threshold, 1/l.ratio)
			g := out / l.env
			samples[i][0] *= g
			samples[i][1] *= g
		}
	}

	return n, ok
}

func (l *limiter) Err() error {
	if s, ok := l.src.(interface{ Err() error }); ok {
		return s.Err()
	}
	return nil
}
