package terminal

import (
	"github.com/kelsine/pitchmatch/constant"
	"github.com/kelsine/pitchmatch/pitch"
)

// Layout places the keys of a range on the cell grid and answers
// cell-to-pitch hit tests. Black keys overlap the top rows of the white
// keys and win ties, the same stacking the rendered keyboard uses.
type Layout struct {
	originX int
	originY int
	keys    []pitch.Key
	whites  int
}

// NewLayout builds the key geometry for a range anchored at (x, y).
func NewLayout(r pitch.Range, x, y int) *Layout {
	return &Layout{
		originX: x,
		originY: y,
		keys:    r.Keys(),
		whites:  r.WhiteCount(),
	}
}

// Size returns the keyboard's footprint in cells.
func (l *Layout) Size() (w, h int) {
	return l.whites * constant.WhiteKeyWidth, constant.WhiteKeyHeight
}

// Keys exposes the ordered key descriptors.
func (l *Layout) Keys() []pitch.Key {
	return l.keys
}

// whiteRect returns the cell rectangle of a white key by white index.
func (l *Layout) whiteRect(wi int) (x, y, w, h int) {
	return l.originX + wi*constant.WhiteKeyWidth, l.originY,
		constant.WhiteKeyWidth, constant.WhiteKeyHeight
}

// blackRect returns the cell rectangle of a black key sitting on the
// right boundary of white index wi.
func (l *Layout) blackRect(wi int) (x, y, w, h int) {
	center := l.originX + (wi+1)*constant.WhiteKeyWidth - 1
	return center - constant.BlackKeyWidth/2, l.originY,
		constant.BlackKeyWidth, constant.BlackKeyHeight
}

// PitchAt maps a screen cell to the pitch of the key covering it.
func (l *Layout) PitchAt(x, y int) (pitch.Pitch, bool) {
	// Black keys sit on top within their rows.
	for _, k := range l.keys {
		if k.White {
			continue
		}
		bx, by, bw, bh := l.blackRect(k.WhiteIndex)
		if x >= bx && x < bx+bw && y >= by && y < by+bh {
			return k.Pitch, true
		}
	}

	for _, k := range l.keys {
		if !k.White {
			continue
		}
		wx, wy, ww, wh := l.whiteRect(k.WhiteIndex)
		if x >= wx && x < wx+ww && y >= wy && y < wy+wh {
			return k.Pitch, true
		}
	}

	return 0, false
}
