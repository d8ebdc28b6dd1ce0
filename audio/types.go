package audio

import "errors"

// Sentinel errors
var (
	// ErrNoDevice means the speaker could not be initialized. The engine
	// keeps running in silent mode; callers report this once, not per call.
	ErrNoDevice = errors.New("audio device unavailable")

	// ErrMissingSample means a sample failed to fetch or decode. The
	// wrapped message names the resource; the game stays playable.
	ErrMissingSample = errors.New("missing audio")
)
