package pitch

import "sort"

// Range selects a contiguous run of octaves realized as piano keys.
type Range struct {
	StartOctave int
	Octaves     int
	// EndOnFinalC appends the closing C of the octave after the last one.
	EndOnFinalC bool
}

// Presets mirror the selectable keyboard sizes of the game.
var presets = map[string]Range{
	"4oct-c2": {StartOctave: 2, Octaves: 4, EndOnFinalC: true},
	"3oct-c3": {StartOctave: 3, Octaves: 3, EndOnFinalC: true},
	"2oct-c3": {StartOctave: 3, Octaves: 2, EndOnFinalC: true},
	"1oct-c4": {StartOctave: 4, Octaves: 1, EndOnFinalC: true},
}

var presetLabels = map[string]string{
	"1oct-c4": "1 octave",
	"2oct-c3": "2 octaves",
	"3oct-c3": "3 octaves",
	"4oct-c2": "4 octaves",
}

// DefaultPreset is the widest keyboard.
const DefaultPreset = "4oct-c2"

// Preset returns the named range, falling back to DefaultPreset for
// unknown names.
func Preset(name string) Range {
	if r, ok := presets[name]; ok {
		return r
	}
	return presets[DefaultPreset]
}

// PresetLabel returns the game-mode label for a preset name.
func PresetLabel(name string) string {
	if l, ok := presetLabels[name]; ok {
		return l
	}
	return "Custom"
}

// PresetNames lists the known presets, narrowest first.
func PresetNames() []string {
	return []string{"1oct-c4", "2oct-c3", "3oct-c3", "4oct-c2"}
}

// whiteClasses maps white-key position within an octave to pitch class.
var whiteClasses = [7]int{0, 2, 4, 5, 7, 9, 11}

// blackAfterWhite maps the octave-local white index whose right boundary
// carries a black key to that key's pitch class.
var blackAfterWhite = map[int]int{0: 1, 1: 3, 3: 6, 4: 8, 5: 10}

// Key describes one renderable keyboard key. It replaces attribute
// parsing on rendered elements: the renderer looks keys up by value.
type Key struct {
	Pitch  Pitch
	Class  int
	Octave int
	White  bool
	// WhiteIndex is the key's white-key column; for black keys it names
	// the white key to the left of the boundary the black key sits on.
	WhiteIndex int
}

// WhiteCount returns the number of white keys in the range.
func (r Range) WhiteCount() int {
	n := r.Octaves * 7
	if r.EndOnFinalC {
		n++
	}
	return n
}

// Keys returns all keys of the range, white keys first in left-to-right
// order, then black keys.
func (r Range) Keys() []Key {
	keys := make([]Key, 0, r.WhiteCount()+r.Octaves*5)

	for i := 0; i < r.WhiteCount(); i++ {
		class := whiteClasses[i%7]
		oct := r.StartOctave + i/7
		keys = append(keys, Key{
			Pitch:      FromClassOctave(class, oct),
			Class:      class,
			Octave:     oct,
			White:      true,
			WhiteIndex: i,
		})
	}

	for o := 0; o < r.Octaves; o++ {
		oct := r.StartOctave + o
		for wi := 0; wi < 7; wi++ {
			class, ok := blackAfterWhite[wi]
			if !ok {
				continue
			}
			keys = append(keys, Key{
				Pitch:      FromClassOctave(class, oct),
				Class:      class,
				Octave:     oct,
				White:      false,
				WhiteIndex: o*7 + wi,
			})
		}
	}

	return keys
}

// Pitches returns the full playable pitch set, ascending and unique.
func (r Range) Pitches() []Pitch {
	keys := r.Keys()
	out := make([]Pitch, len(keys))
	for i, k := range keys {
		out[i] = k.Pitch
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
