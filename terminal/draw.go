package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/kelsine/pitchmatch/constant"
	"github.com/kelsine/pitchmatch/game"
	"github.com/kelsine/pitchmatch/pitch"
)

var (
	styleWhiteKey = tcell.StyleDefault.
			Background(tcell.ColorWhite).
			Foreground(tcell.NewHexColor(0x9A9A9A))
	styleBlackKey = tcell.StyleDefault.
			Background(tcell.NewHexColor(0x1A1A1A)).
			Foreground(tcell.ColorWhite)
	styleGap  = tcell.StyleDefault.Background(tcell.NewHexColor(0x444444))
	styleText = tcell.StyleDefault
)

// stateStyle returns the fill for a key in the given visual state, or
// the neutral style for the key color.
func stateStyle(white bool, st game.KeyState) tcell.Style {
	switch st {
	case game.KeySelected:
		return tcell.StyleDefault.
			Background(tcell.NewHexColor(constant.SelectedColor)).
			Foreground(tcell.ColorWhite)
	case game.KeyCorrect:
		return tcell.StyleDefault.
			Background(tcell.NewHexColor(constant.CorrectColor)).
			Foreground(tcell.ColorWhite)
	case game.KeyWrong:
		return tcell.StyleDefault.
			Background(tcell.NewHexColor(constant.WrongColor)).
			Foreground(tcell.ColorWhite)
	}
	if white {
		return styleWhiteKey
	}
	return styleBlackKey
}

func fillCells(s tcell.Screen, x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.SetContent(col, row, ' ', nil, style)
		}
	}
}

func putString(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for i, r := range str {
		s.SetContent(x+i, y, r, nil, style)
	}
}

// drawKeyboard paints all keys with their current visual states.
func drawKeyboard(s tcell.Screen, l *Layout, states map[pitch.Pitch]game.KeyState) {
	for _, k := range l.keys {
		if !k.White {
			continue
		}
		x, y, w, h := l.whiteRect(k.WhiteIndex)
		style := stateStyle(true, states[k.Pitch])
		fillCells(s, x, y, w-1, h, style)
		fillCells(s, x+w-1, y, 1, h, styleGap)

		label := pitch.SharpName(k.Class)
		if k.Class == 0 && k.Octave == 4 {
			label = "C4"
		}
		putString(s, x, y+h-1, style, label)
	}

	for _, k := range l.keys {
		if k.White {
			continue
		}
		x, y, w, h := l.blackRect(k.WhiteIndex)
		style := stateStyle(false, states[k.Pitch])
		fillCells(s, x, y, w, h, style)
		if states[k.Pitch] != game.KeyNeutral {
			putString(s, x, y+h-1, style, pitch.SharpName(k.Class))
		}
	}
}

// drawScore paints the score panel rows starting at (x, y).
func drawScore(s tcell.Screen, x, y int, snap game.Snapshot) {
	rows := []string{
		fmt.Sprintf("Questions asked         %d", snap.Asked),
		fmt.Sprintf("Answers correct         %d", snap.Correct),
		fmt.Sprintf("Correct in a row        %d", snap.Streak),
		fmt.Sprintf("Longest correct streak  %d", snap.Longest),
		fmt.Sprintf("Percentage correct      %v%%", snap.Percent),
	}
	for i, row := range rows {
		putString(s, x, y+i, styleText, row)
	}
}
