// Package audio owns the playback signal graph, the decoded-sample cache
// and the set of in-flight voices.
package audio

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/kelsine/pitchmatch/constant"
	"github.com/kelsine/pitchmatch/pitch"
)

// Engine manages the audio graph: per-voice gain nodes feed a mixer, the
// mixer feeds the master volume and limiter, and a clock tap counts what
// the speaker pulls. Construction is cheap; the speaker starts lazily on
// first Start.
type Engine struct {
	cfg    *Config
	rate   beep.SampleRate
	format beep.Format

	cache  *bufferCache
	loader func(string) *beep.Buffer

	mixer *beep.Mixer
	out   *clock

	mu     sync.Mutex // guards voices
	voices map[*Voice]struct{}

	startOnce sync.Once
	silent    atomic.Bool

	// speaker seams, replaced in tests without an audio device
	initSpeaker func() error
	playOutput  func()
}

// NewEngine creates an engine with the given config (nil for defaults).
func NewEngine(cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	rate := beep.SampleRate(cfg.SampleRate)
	e := &Engine{
		cfg:    cfg,
		rate:   rate,
		format: beep.Format{SampleRate: rate, NumChannels: constant.AudioChannels, Precision: 2},
		cache:  newBufferCache(),
		mixer:  &beep.Mixer{},
		voices: make(map[*Voice]struct{}),
	}
	e.loader = e.loadSample
	e.out = &clock{src: newLimiter(newVolume(e.mixer, cfg.MasterVolume), rate), rate: rate}
	e.initSpeaker = func() error {
		return speaker.Init(e.rate, e.rate.N(e.cfg.BufferDuration))
	}
	e.playOutput = func() { speaker.Play(e.out) }
	return e
}

// newVolume wraps a streamer in a log-scaled volume effect. Zero or
// negative volume means silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Start brings up the speaker. It is safe and cheap to call before every
// playback; only the first call does work. A device failure flips the
// engine into silent mode and is returned exactly once so the caller can
// notify the user a single time. Silent mode is not fatal: every later
// playback call becomes a no-op.
func (e *Engine) Start() error {
	var err error
	e.startOnce.Do(func() {
		if !e.cfg.Enabled {
			e.silent.Store(true)
			return
		}
		if sErr := e.initSpeaker(); sErr != nil {
			e.silent.Store(true)
			err = fmt.Errorf("%w: %v", ErrNoDevice, sErr)
			return
		}
		e.playOutput()
	})
	return err
}

// Silent reports whether playback is disabled (no device or muted config).
func (e *Engine) Silent() bool {
	return e.silent.Load()
}

// Now returns the current audio clock time in seconds.
func (e *Engine) Now() float64 {
	return e.out.now()
}

// LoadBuffer returns the decoded buffer for url, or nil when the sample
// is unavailable. At most one fetch+decode runs per URL; concurrent and
// repeat callers share the one result.
func (e *Engine) LoadBuffer(url string) *beep.Buffer {
	return e.cache.get(url, e.loader)
}

// PlayBufferAt schedules buf to start at whenSec on the audio clock with
// the given gain, faded in over a few milliseconds to avoid clicks. The
// returned voice stays in the active set until the source drains or a
// fade-out stops it.
func (e *Engine) PlayBufferAt(buf *beep.Buffer, whenSec, gain float64) *Voice {
	if buf == nil {
		return nil
	}

	delay := 0
	if now := e.Now(); whenSec > now {
		delay = e.rate.N(time.Duration((whenSec - now) * float64(time.Second)))
	}
	fadeIn := e.rate.N(time.Duration(constant.VoiceFadeInSec * float64(time.Second)))

	g := newGainNode(buf.Streamer(0, buf.Len()), clampGain(gain), delay, fadeIn)
	v := &Voice{gain: g, start: whenSec}

	e.mu.Lock()
	e.voices[v] = struct{}{}
	e.mu.Unlock()

	speaker.Lock()
	e.mixer.Add(beep.Seq(g, beep.Callback(func() {
		e.removeVoice(v)
	})))
	speaker.Unlock()

	return v
}

// removeVoice drops a voice from the active set. Idempotent: completion
// callbacks and force-stops may both land on the same voice.
func (e *Engine) removeVoice(v *Voice) {
	e.mu.Lock()
	delete(e.voices, v)
	e.mu.Unlock()
}

// ActiveVoices reports the number of voices currently sounding.
func (e *Engine) ActiveVoices() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.voices)
}

// StopAllNotes fades every active voice to silence over fadeSec and
// schedules a hard stop slightly after the fade completes. With no active
// voices it does nothing.
func (e *Engine) StopAllNotes(fadeSec float64) {
	fade := fadeSec
	if math.IsNaN(fade) || math.IsInf(fade, 0) {
		fade = constant.StopFadeSec
	}
	if fade < 0.01 {
		fade = 0.01
	}

	e.mu.Lock()
	voices := make([]*Voice, 0, len(e.voices))
	for v := range e.voices {
		voices = append(voices, v)
	}
	e.mu.Unlock()

	if len(voices) == 0 {
		return
	}

	now := e.Now()
	tau := fade / 6 * float64(e.rate)

	speaker.Lock()
	for _, v := range voices {
		stopAt := math.Max(now+fade, v.start+0.001) + constant.StopTailSec
		stopIn := int((stopAt - now) * float64(e.rate))
		if stopIn < 0 {
			stopIn = 0
		}
		v.gain.beginFadeOut(tau, stopIn)
	}
	speaker.Unlock()
}

// PlayPitch resolves, loads and plays the sample for a pitch at the given
// gain. An unresolvable pitch class is a no-op; a missing sample returns
// ErrMissingSample naming the resource so the caller can surface it.
func (e *Engine) PlayPitch(p pitch.Pitch, gain float64) error {
	stem := pitch.SampleStem(p.Class())
	if stem == "" {
		return nil
	}

	// Resume-then-play: device failures were reported by the first Start
	// and are ignored here on purpose, playback is audio-only.
	_ = e.Start()
	if e.silent.Load() {
		return nil
	}

	url := SampleURL(e.cfg.SampleDir, stem, p.Octave())
	buf := e.LoadBuffer(url)
	if buf == nil {
		return fmt.Errorf("%w: %s", ErrMissingSample, url)
	}

	e.PlayBufferAt(buf, e.Now(), gain)
	return nil
}

// SampleURL builds the address of one note sample under a base directory
// or URL.
func SampleURL(base, stem string, octave int) string {
	return fmt.Sprintf("%s/%s%d.mp3", strings.TrimRight(base, "/"), stem, octave)
}
