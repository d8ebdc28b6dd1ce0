// Package pitch maps between absolute pitch numbers, pitch classes,
// octaves, display labels and sample file stems.
package pitch

import "fmt"

// Pitch identifies a note at a specific octave: octave*12 + class.
// Pitches are plain values compared by equality.
type Pitch int

var sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
var flatNames = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// sampleStems matches the on-disk sample naming: {stem}{octave}.mp3
var sampleStems = [12]string{"c", "csharp", "d", "dsharp", "e", "f", "fsharp", "g", "gsharp", "a", "asharp", "b"}

// accidental marks the five pitch classes with both sharp and flat names
var accidental = [12]bool{false, true, false, true, false, false, true, false, true, false, true, false}

// FromClassOctave builds the absolute pitch for a class and octave.
func FromClassOctave(class, octave int) Pitch {
	return Pitch(octave*12 + class)
}

// Class returns the pitch class in [0,11], safe for negative pitches.
func (p Pitch) Class() int {
	return ((int(p) % 12) + 12) % 12
}

// Octave returns the octave number, rounding toward negative infinity.
func (p Pitch) Octave() int {
	o := int(p) / 12
	if int(p)%12 < 0 {
		o--
	}
	return o
}

// Label formats the pitch for display: sharp name plus octave, with the
// enharmonic flat spelling appended for the five accidental classes.
func (p Pitch) Label() string {
	pc := p.Class()
	oct := p.Octave()
	if !accidental[pc] {
		return fmt.Sprintf("%s%d", sharpNames[pc], oct)
	}
	return fmt.Sprintf("%s%d / %s%d", sharpNames[pc], oct, flatNames[pc], oct)
}

// SharpName returns the sharp spelling of a pitch class, or "" when the
// class is out of range.
func SharpName(class int) string {
	if class < 0 || class > 11 {
		return ""
	}
	return sharpNames[class]
}

// FlatName returns the flat spelling of a pitch class, or "" when the
// class is out of range.
func FlatName(class int) string {
	if class < 0 || class > 11 {
		return ""
	}
	return flatNames[class]
}

// SampleStem returns the sample file stem for a pitch class. An empty
// string means no sample exists for the input; callers must treat that as
// missing audio rather than an error to panic on.
func SampleStem(class int) string {
	if class < 0 || class > 11 {
		return ""
	}
	return sampleStems[class]
}

// IsAccidental reports whether the pitch class has two spellings.
func IsAccidental(class int) bool {
	if class < 0 || class > 11 {
		return false
	}
	return accidental[class]
}
