package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kelsine/pitchmatch/game"
	"github.com/kelsine/pitchmatch/pitch"
)

// playbackError carries a failed playback message into the event loop.
type playbackError struct {
	tcell.EventTime
	msg string
}

func newPlaybackError(msg string) *playbackError {
	ev := &playbackError{msg: msg}
	ev.SetEventTime(time.Now())
	return ev
}

// AsyncPlayer wraps a player so PlayPitch runs off the calling
// goroutine. The first playback of a note fetches and decodes its
// sample, which over HTTP can take arbitrarily long; run inline it
// would stall the event loop for every keypress and click. Failures
// come back through the screen's event queue and Run turns them into
// feedback.
type AsyncPlayer struct {
	inner  game.Player
	screen tcell.Screen
}

// NewAsyncPlayer wraps inner, posting playback failures to screen.
func NewAsyncPlayer(inner game.Player, screen tcell.Screen) *AsyncPlayer {
	return &AsyncPlayer{inner: inner, screen: screen}
}

func (a *AsyncPlayer) Start() error { return a.inner.Start() }

func (a *AsyncPlayer) StopAllNotes(fadeSec float64) { a.inner.StopAllNotes(fadeSec) }

// PlayPitch returns immediately; the wrapped playback runs on its own
// goroutine and reports its error, if any, as a posted event.
func (a *AsyncPlayer) PlayPitch(p pitch.Pitch, gain float64) error {
	go func() {
		if err := a.inner.PlayPitch(p, gain); err != nil {
			a.screen.PostEventWait(newPlaybackError(err.Error()))
		}
	}()
	return nil
}
