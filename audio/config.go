package audio

import (
	"os"
	"strconv"
	"time"

	"github.com/kelsine/pitchmatch/constant"
)

// Config holds audio engine settings
type Config struct {
	Enabled        bool
	MasterVolume   float64
	SampleRate     int
	BufferDuration time.Duration

	// SampleDir is the base of the sample store, a directory path or an
	// http(s) URL. Samples live at {SampleDir}/{stem}{octave}.mp3.
	SampleDir string
}

// DefaultConfig returns the standard settings
func DefaultConfig() *Config {
	return &Config{
		Enabled:        true,
		MasterVolume:   constant.MasterGain,
		SampleRate:     constant.AudioSampleRate,
		BufferDuration: constant.AudioBufferDuration,
		SampleDir:      "audio",
	}
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv("PITCHMATCH_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume as 0-100
	if volume := os.Getenv("PITCHMATCH_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = float64(val) / 100.0
			if cfg.MasterVolume < 0 {
				cfg.MasterVolume = 0
			}
			if cfg.MasterVolume > 1 {
				cfg.MasterVolume = 1
			}
		}
	}

	if sampleRate := os.Getenv("PITCHMATCH_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	if dir := os.Getenv("PITCHMATCH_SAMPLE_DIR"); dir != "" {
		cfg.SampleDir = dir
	}

	return cfg
}
