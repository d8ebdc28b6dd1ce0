package audio

import (
	"errors"
	"math"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gopxl/beep"

	"github.com/kelsine/pitchmatch/pitch"
)

// newTestEngine builds an engine whose speaker seams are stubbed out, so
// tests run without an audio device and pull the output chain directly.
func newTestEngine(loader func(string) *beep.Buffer) *Engine {
	e := NewEngine(DefaultConfig())
	e.initSpeaker = func() error { return nil }
	e.playOutput = func() {}
	if loader != nil {
		e.loader = loader
	}
	return e
}

func noteBuffer(e *Engine, n int) *beep.Buffer {
	buf := beep.NewBuffer(e.format)
	buf.Append(beep.Take(n, constSource(0.5)))
	return buf
}

func TestStartDeviceFailureReportedOnce(t *testing.T) {
	e := NewEngine(DefaultConfig())
	e.initSpeaker = func() error { return errors.New("no device") }
	e.playOutput = func() {}

	err := e.Start()
	if !errors.Is(err, ErrNoDevice) {
		t.Fatalf("Start() = %v, want ErrNoDevice", err)
	}
	if !e.Silent() {
		t.Error("engine not in silent mode after device failure")
	}

	// The failure is surfaced once; later calls are quiet no-ops
	if err := e.Start(); err != nil {
		t.Errorf("second Start() = %v, want nil", err)
	}
}

func TestDisabledConfigRunsSilent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	e := NewEngine(cfg)
	e.initSpeaker = func() error {
		t.Fatal("speaker initialized with audio disabled")
		return nil
	}

	if err := e.Start(); err != nil {
		t.Fatalf("Start() = %v", err)
	}
	if !e.Silent() {
		t.Error("disabled engine not silent")
	}
}

func TestPlayPitchSilentModeIsNoOp(t *testing.T) {
	var loads atomic.Int32
	e := newTestEngine(func(string) *beep.Buffer {
		loads.Add(1)
		return nil
	})
	e.initSpeaker = func() error { return errors.New("no device") }

	if err := e.PlayPitch(48, 1); err != nil {
		t.Errorf("PlayPitch in silent mode = %v, want nil", err)
	}
	if loads.Load() != 0 {
		t.Error("silent engine fetched a sample")
	}
}

func TestPlayPitchMissingSample(t *testing.T) {
	e := newTestEngine(func(string) *beep.Buffer { return nil })

	err := e.PlayPitch(pitch.FromClassOctave(0, 4), 1)
	if !errors.Is(err, ErrMissingSample) {
		t.Fatalf("PlayPitch = %v, want ErrMissingSample", err)
	}
	if !strings.Contains(err.Error(), "audio/c4.mp3") {
		t.Errorf("error %q does not name the resource", err)
	}
	if e.ActiveVoices() != 0 {
		t.Error("voice registered for a missing sample")
	}
}

func TestPlayPitchRegistersAndReleasesVoice(t *testing.T) {
	var e *Engine
	e = newTestEngine(func(string) *beep.Buffer { return noteBuffer(e, 500) })

	if err := e.PlayPitch(48, 1); err != nil {
		t.Fatalf("PlayPitch = %v", err)
	}
	if got := e.ActiveVoices(); got != 1 {
		t.Fatalf("ActiveVoices = %d, want 1", got)
	}

	// Draining the source fires the completion callback which
	// unregisters the voice.
	pull(e.out, 1000)
	if got := e.ActiveVoices(); got != 0 {
		t.Errorf("ActiveVoices after drain = %d, want 0", got)
	}
}

func TestConcurrentVoices(t *testing.T) {
	var e *Engine
	e = newTestEngine(func(string) *beep.Buffer { return noteBuffer(e, 44100) })

	// A preview can sound while the prior target is still fading
	e.PlayPitch(48, 1)
	e.PlayPitch(50, 0.95)
	if got := e.ActiveVoices(); got != 2 {
		t.Errorf("ActiveVoices = %d, want 2", got)
	}
}

func TestStopAllNotesNoVoices(t *testing.T) {
	e := newTestEngine(nil)
	e.StopAllNotes(0.04) // must not panic or add work
	if e.ActiveVoices() != 0 {
		t.Error("voices appeared from nowhere")
	}
}

func TestStopAllNotesFadesAndStops(t *testing.T) {
	var e *Engine
	e = newTestEngine(func(string) *beep.Buffer { return noteBuffer(e, 44100*5) })

	e.PlayPitch(48, 1)
	pull(e.out, 4410) // 0.1s of playback

	e.StopAllNotes(0.04)

	// Hard stop lands at max(now+fade, start+0.001)+0.02 = now+0.06
	stopSamples := int(0.06 * 44100)
	out := pull(e.out, stopSamples+100)

	if got := e.ActiveVoices(); got != 0 {
		t.Errorf("ActiveVoices after fade = %d, want 0", got)
	}
	for _, s := range out[stopSamples:] {
		if s[0] != 0 {
			t.Errorf("output %v after hard stop, want silence", s[0])
			break
		}
	}
}

func TestStopAllNotesNonFiniteFade(t *testing.T) {
	var e *Engine
	e = newTestEngine(func(string) *beep.Buffer { return noteBuffer(e, 44100) })
	e.PlayPitch(48, 1)

	// Falls back to the default fade rather than scheduling garbage
	e.StopAllNotes(math.NaN())
	pull(e.out, 44100)
	if e.ActiveVoices() != 0 {
		t.Error("voice survived a non-finite fade request")
	}
}

func TestPlayBufferAtFutureStart(t *testing.T) {
	e := newTestEngine(nil)
	buf := noteBuffer(e, 1000)

	e.PlayBufferAt(buf, 0.01, 1)
	delay := int(0.01 * 44100)
	out := pull(e.out, delay)
	for i, s := range out {
		if s[0] != 0 {
			t.Fatalf("sample %d = %v before scheduled start, want silence", i, s[0])
		}
	}
}

func TestRemoveVoiceIdempotent(t *testing.T) {
	e := newTestEngine(nil)
	v := e.PlayBufferAt(noteBuffer(e, 100), 0, 1)
	if v == nil {
		t.Fatal("no voice returned")
	}

	e.removeVoice(v)
	e.removeVoice(v) // already removed: must be safe
	if e.ActiveVoices() != 0 {
		t.Errorf("ActiveVoices = %d", e.ActiveVoices())
	}

	// The completion callback firing later must also be safe
	pull(e.out, 200)
}

func TestSampleURL(t *testing.T) {
	tests := []struct {
		base string
		stem string
		oct  int
		want string
	}{
		{"audio", "c", 4, "audio/c4.mp3"},
		{"audio/", "fsharp", 2, "audio/fsharp2.mp3"},
		{"http://localhost:8080", "asharp", 3, "http://localhost:8080/asharp3.mp3"},
	}
	for _, tt := range tests {
		if got := SampleURL(tt.base, tt.stem, tt.oct); got != tt.want {
			t.Errorf("SampleURL(%q, %q, %d) = %q, want %q", tt.base, tt.stem, tt.oct, got, tt.want)
		}
	}
}
