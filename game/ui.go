package game

import "github.com/kelsine/pitchmatch/pitch"

// KeyState is the visual state of one keyboard key. States are mutually
// exclusive; marking a key replaces its previous state.
type KeyState int

const (
	KeyNeutral KeyState = iota
	KeySelected
	KeyCorrect
	KeyWrong
)

// UI is the renderer collaborator the session drives. Implementations
// must tolerate being called for pitches outside the visible range by
// ignoring them.
type UI interface {
	// ClearHighlights returns every key to the neutral state.
	ClearHighlights()
	// MarkKey sets one key's visual state.
	MarkKey(p pitch.Pitch, state KeyState)
	// SetFeedback shows the per-question result line.
	SetFeedback(msg string)
	// SetHint shows the what-to-do-next line.
	SetHint(msg string)
	// ScoreChanged reports a new score snapshot.
	ScoreChanged(snap Snapshot)
	// RecordStreak announces a newly banked longest streak, with the
	// option to export a record image.
	RecordStreak(streak int)
}

// NopUI discards all rendering calls; used headless and in tests.
type NopUI struct{}

func (NopUI) ClearHighlights()              {}
func (NopUI) MarkKey(pitch.Pitch, KeyState) {}
func (NopUI) SetFeedback(string)            {}
func (NopUI) SetHint(string)                {}
func (NopUI) ScoreChanged(Snapshot)         {}
func (NopUI) RecordStreak(int)              {}
