package audio

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
)

// fetchSample reads raw sample bytes from a local path or an http(s) URL.
// No timeout is applied; a stalled fetch leaves its cache entry pending.
func fetchSample(url string) ([]byte, error) {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		res, err := http.Get(url)
		if err != nil {
			return nil, err
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			return nil, ErrMissingSample
		}
		return io.ReadAll(res.Body)
	}
	return os.ReadFile(url)
}

// decodeSample decodes mp3 bytes into a buffer at the engine format.
// Returns nil on decode failure; unavailable is a value, not a panic.
func decodeSample(data []byte, format beep.Format) *beep.Buffer {
	streamer, decoded, err := mp3.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return nil
	}
	defer streamer.Close()

	var src beep.Streamer = streamer
	if decoded.SampleRate != format.SampleRate {
		src = beep.Resample(4, decoded.SampleRate, format.SampleRate, streamer)
	}

	buf := beep.NewBuffer(format)
	buf.Append(src)
	return buf
}

// loadSample is the default cache loader: fetch then decode, collapsing
// every failure to a nil ("unavailable") buffer.
func (e *Engine) loadSample(url string) *beep.Buffer {
	data, err := fetchSample(url)
	if err != nil {
		slog.Debug("sample fetch failed", "url", url, "error", err)
		return nil
	}

	buf := decodeSample(data, e.format)
	if buf == nil {
		slog.Debug("sample decode failed", "url", url)
	}
	return buf
}
