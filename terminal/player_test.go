package terminal

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kelsine/pitchmatch/pitch"
)

// stalledPlayer blocks PlayPitch until released, like a sample fetch
// hanging on a slow or dead server.
type stalledPlayer struct {
	release chan struct{}
	err     error
}

func (s *stalledPlayer) Start() error { return nil }

func (s *stalledPlayer) StopAllNotes(float64) {}

func (s *stalledPlayer) PlayPitch(pitch.Pitch, float64) error {
	<-s.release
	return s.err
}

func TestAsyncPlayerDoesNotBlockCaller(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("simulation screen: %v", err)
	}
	defer screen.Fini()

	inner := &stalledPlayer{
		release: make(chan struct{}),
		err:     errors.New("missing audio: audio/c4.mp3"),
	}
	ap := NewAsyncPlayer(inner, screen)

	// The fetch is still hanging, yet the call returns: the event loop
	// stays free to handle input while the sample downloads.
	if err := ap.PlayPitch(48, 1); err != nil {
		t.Fatalf("PlayPitch = %v, want nil", err)
	}

	// Releasing the fetch delivers the failure as an event.
	close(inner.release)
	for {
		ev := screen.PollEvent()
		pe, ok := ev.(*playbackError)
		if !ok {
			continue // synthetic resize from Init
		}
		if pe.msg != "missing audio: audio/c4.mp3" {
			t.Errorf("msg = %q", pe.msg)
		}
		return
	}
}

func TestAsyncPlayerSuccessPostsNothing(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("simulation screen: %v", err)
	}
	defer screen.Fini()

	inner := &stalledPlayer{release: make(chan struct{})}
	ap := NewAsyncPlayer(inner, screen)

	if err := ap.PlayPitch(48, 1); err != nil {
		t.Fatalf("PlayPitch = %v, want nil", err)
	}
	close(inner.release)

	// Sentinel so PollEvent returns even though a successful playback
	// posts nothing; a failure event would have to arrive before it.
	screen.PostEvent(tcell.NewEventInterrupt(nil))
	for {
		ev := screen.PollEvent()
		if _, bad := ev.(*playbackError); bad {
			t.Fatal("successful playback posted a failure event")
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok {
			return
		}
	}
}

func TestPlaybackErrorBecomesFeedback(t *testing.T) {
	app, _ := newTestApp(t)

	if quit := app.handleEvent(newPlaybackError("missing audio: audio/c4.mp3")); quit {
		t.Fatal("playback error must not quit")
	}
	if app.feedback != "missing audio: audio/c4.mp3" {
		t.Errorf("feedback = %q", app.feedback)
	}
}
