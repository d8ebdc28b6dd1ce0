// Package terminal renders the keyboard, score and feedback in a tcell
// screen and feeds clicks and shortcuts back into the game session.
package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/gdamore/tcell/v2"

	"github.com/kelsine/pitchmatch/constant"
	"github.com/kelsine/pitchmatch/game"
	"github.com/kelsine/pitchmatch/pitch"
	"github.com/kelsine/pitchmatch/scorecard"
)

const (
	keyboardX = 1
	keyboardY = 2
)

// App owns the screen and implements game.UI. Session operations run on
// the event loop goroutine; the debounced resize callback is the only
// other caller, so shared view state sits behind one mutex.
type App struct {
	screen  tcell.Screen
	layout  *Layout
	session *game.Session

	mu       sync.Mutex
	states   map[pitch.Pitch]game.KeyState
	feedback string
	hint     string
	snap     game.Snapshot

	// record is the last banked longest streak, 0 before any record.
	record int

	// rangeIdx indexes pitch.PresetNames for the C shortcut.
	rangeIdx int

	debounced func(f func())
	outDir    string
}

// NewApp builds the UI over an initialized screen for the named range
// preset. outDir receives exported score cards.
func NewApp(screen tcell.Screen, rangeName string, outDir string) *App {
	// Unknown names fall back to the default preset, as Preset does.
	idx := slices.Index(pitch.PresetNames(), rangeName)
	if idx < 0 {
		idx = slices.Index(pitch.PresetNames(), pitch.DefaultPreset)
	}
	return &App{
		screen:    screen,
		layout:    NewLayout(pitch.Preset(rangeName), keyboardX, keyboardY),
		states:    make(map[pitch.Pitch]game.KeyState),
		hint:      "Press B to begin. R replays, C switches the keyboard, Space or Enter submits.",
		feedback:  "Press B to start a game.",
		rangeIdx:  idx,
		debounced: debounce.New(constant.ResizeDebounceMs * time.Millisecond),
		outDir:    outDir,
	}
}

// SetSession wires the session after construction; the session needs the
// app as its UI first.
func (a *App) SetSession(s *game.Session) {
	a.session = s
	a.mu.Lock()
	a.snap = s.Snapshot()
	a.mu.Unlock()
}

// Run drives the event loop until quit.
func (a *App) Run() error {
	defer a.screen.Fini()
	a.screen.EnableMouse()
	a.refresh()

	for {
		if a.handleEvent(a.screen.PollEvent()) {
			return nil
		}
	}
}

// handleEvent dispatches one event; returns true to quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if a.handleKey(ev) {
			return true
		}
		a.refresh()
	case *tcell.EventMouse:
		a.handleMouse(ev)
		a.refresh()
	case *playbackError:
		a.SetFeedback(ev.msg)
		a.refresh()
	case *tcell.EventResize:
		a.debounced(func() {
			a.screen.Sync()
			a.refresh()
		})
	}
	return false
}

// handleKey dispatches shortcuts; returns true to quit.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyEnter:
		a.session.SubmitOrNext()
		return false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case ' ':
			a.session.SubmitOrNext()
		case 'b', 'B':
			if a.session.Started() {
				a.session.Restart()
			} else {
				a.session.Begin()
			}
		case 'r', 'R':
			a.session.Replay()
		case 'c', 'C':
			a.cycleRange()
		case 'd', 'D':
			a.exportScoreCard()
		case 'e', 'E':
			a.exportRecord()
		}
	}
	return false
}

// cycleRange steps to the next keyboard preset, rebuilds the layout
// and asks the session for a question from the new range.
func (a *App) cycleRange() {
	names := pitch.PresetNames()
	a.rangeIdx = (a.rangeIdx + 1) % len(names)
	name := names[a.rangeIdx]

	a.mu.Lock()
	a.layout = NewLayout(pitch.Preset(name), keyboardX, keyboardY)
	clear(a.states)
	a.mu.Unlock()

	a.session.SetRange(pitch.Preset(name), pitch.PresetLabel(name))
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 {
		return
	}
	x, y := ev.Position()
	if p, ok := a.layout.PitchAt(x, y); ok {
		a.session.HandleKeyClick(p)
	}
}

func (a *App) exportScoreCard() {
	a.mu.Lock()
	snap := a.snap
	a.mu.Unlock()

	path := filepath.Join(a.outDir, "pitch-matching-score-card.png")
	if err := writeCard(path, func(f *os.File) error {
		return scorecard.WriteScoreCard(f, snap)
	}); err != nil {
		slog.Error("score card export failed", "path", path, "error", err)
		a.SetFeedback("Could not write the score card.")
		return
	}
	a.SetFeedback(fmt.Sprintf("Score card saved to %s", path))
}

func (a *App) exportRecord() {
	a.mu.Lock()
	record := a.record
	if record == 0 {
		record = a.snap.Longest
	}
	player := a.snap.Player
	a.mu.Unlock()

	if record == 0 {
		a.SetFeedback("No streak to export yet.")
		return
	}

	path := filepath.Join(a.outDir, "pitch-matching-record.png")
	if err := writeCard(path, func(f *os.File) error {
		return scorecard.WriteRecord(f, record, player)
	}); err != nil {
		slog.Error("record export failed", "path", path, "error", err)
		a.SetFeedback("Could not write the record card.")
		return
	}
	a.SetFeedback(fmt.Sprintf("Record card saved to %s", path))
}

func writeCard(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// refresh repaints the whole screen from the current view state.
func (a *App) refresh() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.screen.Clear()

	title := "Pitch Matching Test"
	if a.snap.Mode != "" {
		title = fmt.Sprintf("Pitch Matching Test (%s)", a.snap.Mode)
	}
	putString(a.screen, keyboardX, 0, styleText.Bold(true), title)

	drawKeyboard(a.screen, a.layout, a.states)

	_, kh := a.layout.Size()
	base := keyboardY + kh + 1
	putString(a.screen, keyboardX, base, styleText, a.feedback)
	putString(a.screen, keyboardX, base+1, styleText.Dim(true), a.hint)
	drawScore(a.screen, keyboardX, base+3, a.snap)

	a.screen.Show()
}

// --- game.UI ---

func (a *App) ClearHighlights() {
	a.mu.Lock()
	defer a.mu.Unlock()
	clear(a.states)
}

func (a *App) MarkKey(p pitch.Pitch, state game.KeyState) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if state == game.KeyNeutral {
		delete(a.states, p)
		return
	}
	a.states[p] = state
}

func (a *App) SetFeedback(msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.feedback = msg
}

func (a *App) SetHint(msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hint = msg
}

func (a *App) ScoreChanged(snap game.Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.snap = snap
}

func (a *App) RecordStreak(streak int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.record = streak
	a.hint = fmt.Sprintf("New longest streak: %d in a row! Press E to save a record card.", streak)
}
