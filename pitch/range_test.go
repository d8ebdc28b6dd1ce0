package pitch

import "testing"

func TestRangePitches(t *testing.T) {
	tests := []struct {
		preset string
		first  Pitch
		last   Pitch
		count  int
	}{
		// 1 octave from C4 plus the closing C5: a full chromatic run
		{"1oct-c4", 48, 60, 13},
		{"2oct-c3", 36, 60, 25},
		{"3oct-c3", 36, 72, 37},
		{"4oct-c2", 24, 72, 49},
	}

	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			ps := Preset(tt.preset).Pitches()
			if len(ps) != tt.count {
				t.Fatalf("got %d pitches, want %d", len(ps), tt.count)
			}
			if ps[0] != tt.first || ps[len(ps)-1] != tt.last {
				t.Errorf("range [%d,%d], want [%d,%d]", ps[0], ps[len(ps)-1], tt.first, tt.last)
			}
			for i := 1; i < len(ps); i++ {
				if ps[i] <= ps[i-1] {
					t.Fatalf("pitches not strictly increasing at %d: %d then %d", i, ps[i-1], ps[i])
				}
			}
		})
	}
}

func TestRangeKeys(t *testing.T) {
	r := Preset("1oct-c4")
	keys := r.Keys()

	whites, blacks := 0, 0
	seen := make(map[Pitch]bool)
	for _, k := range keys {
		if seen[k.Pitch] {
			t.Errorf("duplicate key for pitch %d", k.Pitch)
		}
		seen[k.Pitch] = true

		if k.Pitch != FromClassOctave(k.Class, k.Octave) {
			t.Errorf("key %+v: pitch does not match class/octave", k)
		}
		if k.White {
			whites++
		} else {
			blacks++
		}
	}

	if whites != 8 || blacks != 5 {
		t.Errorf("got %d white / %d black keys, want 8 / 5", whites, blacks)
	}
	if r.WhiteCount() != whites {
		t.Errorf("WhiteCount() = %d, want %d", r.WhiteCount(), whites)
	}
}

func TestPresetFallback(t *testing.T) {
	if got := Preset("nope"); got != Preset(DefaultPreset) {
		t.Errorf("unknown preset should fall back to %s", DefaultPreset)
	}
	if got := PresetLabel("nope"); got != "Custom" {
		t.Errorf("PresetLabel(unknown) = %q, want Custom", got)
	}
	if got := PresetLabel("2oct-c3"); got != "2 octaves" {
		t.Errorf("PresetLabel(2oct-c3) = %q", got)
	}
}
