// Package game holds the question/answer state machine and score
// tracking for the single-note pitch matching exercise.
package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/kelsine/pitchmatch/constant"
	"github.com/kelsine/pitchmatch/pitch"
)

// Player is the audio collaborator the session drives. All methods are
// best-effort: audio failures never corrupt game state.
type Player interface {
	Start() error
	PlayPitch(p pitch.Pitch, gain float64) error
	StopAllNotes(fadeSec float64)
}

// Session owns one game: the playable pitch set, the current question,
// the pick pending submission and the score. All operations re-validate
// their preconditions and no-op on illegal-state calls, so callers never
// need to pre-check.
type Session struct {
	player Player
	ui     UI
	intn   func(n int) int

	pitches    []pitch.Pitch
	mode       string
	playerName string

	score Score

	started      bool
	awaitingNext bool

	target    pitch.Pitch
	hasTarget bool
	picked    pitch.Pitch
	hasPicked bool
	last      pitch.Pitch
	hasLast   bool
}

// Option adjusts session construction.
type Option func(*Session)

// WithRand injects the uniform random source used by the target picker.
func WithRand(intn func(n int) int) Option {
	return func(s *Session) { s.intn = intn }
}

// WithPlayerName sets the name stamped on exported score cards.
func WithPlayerName(name string) Option {
	return func(s *Session) { s.playerName = name }
}

// NewSession builds a session over the given keyboard range. A nil ui is
// replaced with NopUI.
func NewSession(player Player, ui UI, r pitch.Range, mode string, opts ...Option) *Session {
	if ui == nil {
		ui = NopUI{}
	}
	s := &Session{
		player:     player,
		ui:         ui,
		pitches:    r.Pitches(),
		mode:       mode,
		playerName: "Player",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.intn == nil {
		s.intn = rand.New(rand.NewSource(time.Now().UnixNano())).Intn
	}
	return s
}

// Begin starts a fresh game: resumes audio, zeroes the score and asks the
// first question. A device failure is surfaced as a one-time message and
// the game continues silently.
func (s *Session) Begin() {
	startErr := s.player.Start()

	s.started = true
	s.score.reset()
	s.awaitingNext = false
	// The device-failure notice must survive until the first repaint,
	// so only a clean start clears the feedback line.
	if startErr != nil {
		s.ui.SetFeedback("Audio unavailable, the game will run silently.")
	} else {
		s.ui.SetFeedback("")
	}
	s.ui.ScoreChanged(s.Snapshot())

	s.StartNewQuestion(true)
}

// Restart stops all sounding notes, zeroes every score field and state
// flag, and starts over with a new question. No-op before Begin.
func (s *Session) Restart() {
	if !s.started {
		return
	}

	s.player.StopAllNotes(constant.StopFadeSec)
	s.ui.ClearHighlights()

	s.score.reset()
	s.hasPicked = false
	s.awaitingNext = false
	s.hasTarget = false
	s.hasLast = false

	s.ui.ScoreChanged(s.Snapshot())
	s.ui.SetFeedback("")

	s.StartNewQuestion(true)
}

// SetRange swaps the playable keyboard range mid-game, keeping the
// score. Once started, the next question is drawn from the new set
// immediately; before Begin only the range and mode label change.
func (s *Session) SetRange(r pitch.Range, mode string) {
	s.pitches = r.Pitches()
	s.mode = mode
	s.hasLast = false
	s.hasTarget = false
	s.hasPicked = false

	if !s.started {
		s.ui.ScoreChanged(s.Snapshot())
		return
	}

	s.ui.SetFeedback("")
	s.StartNewQuestion(true)
}

// StartNewQuestion clears pick and highlight state, draws a new target
// avoiding an immediate repeat, and (with autoplay) fades out prior
// voices and plays the target. No-op before Begin.
func (s *Session) StartNewQuestion(autoplay bool) {
	if !s.started {
		return
	}

	s.ui.ClearHighlights()
	s.hasPicked = false
	s.awaitingNext = false

	s.target, s.hasTarget = s.pickAvoidRepeat()
	if s.hasTarget {
		s.last, s.hasLast = s.target, true
	}

	s.ui.ScoreChanged(s.Snapshot())

	if autoplay && s.hasTarget {
		s.player.StopAllNotes(constant.QuestionFadeSec)
		s.playTarget()
	}
}

// pickAvoidRepeat draws uniformly from the pitch set, resampling up to 7
// times to avoid the previous target. After 7 collisions the last draw is
// accepted anyway: a bounded-effort policy, not an exhaustive scan.
func (s *Session) pickAvoidRepeat() (pitch.Pitch, bool) {
	switch len(s.pitches) {
	case 0:
		return 0, false
	case 1:
		return s.pitches[0], true
	}

	for i := 0; i < 7; i++ {
		p := s.pitches[s.intn(len(s.pitches))]
		if !s.hasLast || p != s.last {
			return p, true
		}
	}
	return s.pitches[s.intn(len(s.pitches))], true
}

// HandleKeyClick records or toggles the player's tentative pick and
// previews it at reduced gain. Pitches outside the configured range are
// ignored as a defensive boundary check. No-op before Begin.
func (s *Session) HandleKeyClick(p pitch.Pitch) {
	if !s.started || !s.inRange(p) {
		return
	}

	if s.hasPicked && s.picked == p {
		s.clearPick()
		return
	}

	if s.hasPicked {
		s.ui.MarkKey(s.picked, KeyNeutral)
	}
	s.picked = p
	s.hasPicked = true
	s.ui.MarkKey(p, KeySelected)

	if err := s.player.PlayPitch(p, constant.PreviewGain); err != nil {
		s.ui.SetFeedback(err.Error())
	}
}

func (s *Session) clearPick() {
	if !s.hasPicked {
		return
	}
	s.ui.MarkKey(s.picked, KeyNeutral)
	s.hasPicked = false
	s.awaitingNext = false
}

func (s *Session) inRange(p pitch.Pitch) bool {
	for _, q := range s.pitches {
		if q == p {
			return true
		}
	}
	return false
}

// Replay fades out all sounding notes and plays the current target again
// at full gain. No-op without a target.
func (s *Session) Replay() {
	if !s.started || !s.hasTarget {
		return
	}
	s.player.StopAllNotes(constant.QuestionFadeSec)
	s.playTarget()
}

func (s *Session) playTarget() {
	if err := s.player.PlayPitch(s.target, constant.TargetGain); err != nil {
		s.ui.SetFeedback(err.Error())
	}
}

// Submit judges the pick against the target, updates the score, marks the
// keys and enters the awaiting-next phase. While awaiting next, further
// submits are rejected until Next runs.
func (s *Session) Submit() {
	if !s.started || !s.hasTarget || !s.hasPicked || s.awaitingNext {
		return
	}

	s.score.Asked++
	correct := s.picked == s.target
	label := s.target.Label()

	s.ui.ClearHighlights()

	if correct {
		s.score.Correct++
		s.score.Streak++
		s.ui.SetFeedback(fmt.Sprintf("Correct! That was the note %s. Nice one!", label))
		s.ui.MarkKey(s.picked, KeyCorrect)
		s.ui.SetHint("Correct! Press Next (or Space) for the next note.")
	} else {
		prev := s.score.Streak
		s.score.Streak = 0
		if prev > s.score.LongestStored {
			s.score.LongestStored = prev
			s.ui.RecordStreak(prev)
		}
		s.ui.SetFeedback(fmt.Sprintf("Incorrect. The note played was %s.", label))
		s.ui.MarkKey(s.picked, KeyWrong)
		s.ui.MarkKey(s.target, KeyCorrect)
		s.ui.SetHint("Press Next (or Space) for the next note.")
	}

	s.hasPicked = false
	s.awaitingNext = true
	s.ui.ScoreChanged(s.Snapshot())
}

// Next leaves the awaiting-next phase and asks a new question with
// autoplay. Only valid while awaiting next.
func (s *Session) Next() {
	if !s.started || !s.awaitingNext {
		return
	}
	s.ui.SetFeedback("")
	s.awaitingNext = false
	s.StartNewQuestion(true)
}

// SubmitOrNext is the combined shortcut action: Next while awaiting the
// next question, Submit otherwise.
func (s *Session) SubmitOrNext() {
	if s.awaitingNext {
		s.Next()
	} else {
		s.Submit()
	}
}

// Started reports whether Begin has run.
func (s *Session) Started() bool { return s.started }

// AwaitingNext reports whether the current question has been answered.
func (s *Session) AwaitingNext() bool { return s.awaitingNext }

// Target returns the current target pitch, if one is set.
func (s *Session) Target() (pitch.Pitch, bool) { return s.target, s.hasTarget }

// Picked returns the tentative pick, if one is pending.
func (s *Session) Picked() (pitch.Pitch, bool) { return s.picked, s.hasPicked }

// Snapshot returns the read-only score view for rendering and export.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Asked:   s.score.Asked,
		Correct: s.score.Correct,
		Streak:  s.score.Streak,
		Longest: s.score.DisplayedLongest(),
		Percent: s.score.Percent(),
		Mode:    s.mode,
		Player:  s.playerName,
	}
}
