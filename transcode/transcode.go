package transcode

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sahithkumar1999/sdrencode/logging"
)

// ErrUnsupportedFormat is returned for file extensions no decoder handles.
var ErrUnsupportedFormat = errors.New("transcode: unsupported audio format")

// AudioData represents a decoded mono waveform.
type AudioData struct {
	PCM        []float64     `json:"-"`
	SampleRate int           `json:"sample_rate"`
	Duration   time.Duration `json:"duration"`
	Source     string        `json:"source,omitempty"`
}

// SupportedExtensions lists the file extensions DecodeFile accepts.
func SupportedExtensions() []string {
	return []string{".wav", ".mp3", ".ogg"}
}

// IsSupported reports whether path has a decodable extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedExtensions() {
		if ext == s {
			return true
		}
	}
	return false
}

// DecodeFile decodes an audio file into a mono float64 waveform,
// dispatching on the file extension. Multi-channel input is downmixed
// by averaging interleaved channels.
func DecodeFile(path string) (*AudioData, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "transcode",
		"path":      path,
	})

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("transcode: open %s: %w", path, err)
	}
	defer f.Close()

	var (
		samples    []float64
		sampleRate int
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		samples, sampleRate, err = decodeWAV(f)
	case ".mp3":
		samples, sampleRate, err = decodeMP3(f)
	case ".ogg":
		samples, sampleRate, err = decodeVorbis(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("transcode: decode %s: %w", path, err)
	}

	duration := time.Duration(len(samples)) * time.Second / time.Duration(sampleRate)

	logger.Debug("Decoded audio file", logging.Fields{
		"sample_rate": sampleRate,
		"samples":     len(samples),
		"duration":    duration.Seconds(),
	})

	return &AudioData{
		PCM:        samples,
		SampleRate: sampleRate,
		Duration:   duration,
		Source:     path,
	}, nil
}

// downmix averages interleaved multi-channel samples into mono.
// Mono input is returned unchanged.
func downmix(interleaved []float64, channels int) []float64 {
	if channels <= 1 {
		return interleaved
	}

	frames := len(interleaved) / channels
	mono := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += interleaved[i*channels+c]
		}
		mono[i] = sum / float64(channels)
	}
	return mono
}
