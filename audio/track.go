package audio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"
)

// resampleQuality is passed to beep.Resample for file tracks
const resampleQuality = 4

// openTrack decodes an MP3 or WAV file into an endless stream at sr
// The returned closer releases the file
func openTrack(path string, sr beep.SampleRate) (beep.Streamer, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open track: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, nil, fmt.Errorf("unsupported track format %q", ext)
	}
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("decode track %s: %w", path, err)
	}

	var out beep.Streamer = beep.Loop(-1, streamer)
	if format.SampleRate != sr {
		out = beep.Resample(resampleQuality, format.SampleRate, sr, out)
	}
	return out, streamer, nil
}
