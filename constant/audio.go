package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100
	AudioChannels   = 2
)

// Speaker Buffer
const (
	// AudioBufferDuration determines output latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Master Bus
const (
	MasterGain = 0.9

	// Limiter sits after the master gain to catch overlapping voices
	LimiterThresholdDB = -6.0
	LimiterRatio       = 20.0
	LimiterAttack      = 1 * time.Millisecond
	LimiterRelease     = 120 * time.Millisecond
)

// Voice Timing (seconds, matching the audio clock)
const (
	// VoiceFadeInSec ramps new voices from silence to avoid clicks
	VoiceFadeInSec = 0.004

	// StopFadeSec is the default fade used by StopAllNotes
	StopFadeSec = 0.04

	// QuestionFadeSec fades out the prior target before a new one plays
	QuestionFadeSec = 0.2

	// StopTailSec is the safety margin between fade end and hard stop
	StopTailSec = 0.02
)

// Playback Gains
const (
	TargetGain = 1.0

	// PreviewGain keeps key previews audibly below the target playback
	PreviewGain = 0.95
)
