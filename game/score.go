package game

import "math"

// Score accumulates answer counters for one game. Mutated only by Begin,
// Restart and Submit.
type Score struct {
	Asked   int
	Correct int
	Streak  int

	// LongestStored is the highest streak banked at the moment of a
	// failure. The displayed longest streak also counts the live streak.
	LongestStored int
}

// Percent returns the correct-answer percentage with one decimal place,
// 0 when nothing has been asked.
func (s *Score) Percent() float64 {
	if s.Asked <= 0 {
		return 0
	}
	return math.Round(float64(s.Correct)/float64(s.Asked)*1000) / 10
}

// DisplayedLongest never under-reports an in-progress record run.
func (s *Score) DisplayedLongest() int {
	if s.Streak > s.LongestStored {
		return s.Streak
	}
	return s.LongestStored
}

func (s *Score) reset() {
	*s = Score{}
}

// Snapshot is the immutable score view handed to renderers and exporters.
type Snapshot struct {
	Asked   int
	Correct int
	Streak  int
	Longest int
	Percent float64
	Mode    string
	Player  string
}
