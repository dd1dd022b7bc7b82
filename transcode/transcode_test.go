package transcode

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func writeWAV(t *testing.T, path string, data []int, rate, channels int) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating wav: %v", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, channels, 1)
	err = enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	})
	if err != nil {
		t.Fatalf("writing wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("closing wav: %v", err)
	}
}

func TestIsSupported(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want bool
	}{
		{"song.wav", true},
		{"song.WAV", true},
		{"song.mp3", true},
		{"song.ogg", true},
		{"song.flac", false},
		{"song.txt", false},
		{"song", false},
	}

	for _, tt := range tests {
		if got := IsSupported(tt.path); got != tt.want {
			t.Errorf("IsSupported(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestDecodeFile_WAVRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tone.wav")

	const rate = 22050
	data := make([]int, 2000)
	for i := range data {
		data[i] = int(16000 * math.Sin(2*math.Pi*440*float64(i)/rate))
	}
	writeWAV(t, path, data, rate, 1)

	audio, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile() error = %v", err)
	}

	if audio.SampleRate != rate {
		t.Errorf("SampleRate = %d, want %d", audio.SampleRate, rate)
	}
	if len(audio.PCM) != len(data) {
		t.Fatalf("PCM length = %d, want %d", len(audio.PCM), len(data))
	}
	if audio.Source != path {
		t.Errorf("Source = %q, want %q", audio.Source, path)
	}

	for i, v := range audio.PCM {
		want := float64(data[i]) / 32768
		if math.Abs(v-want) > 1e-9 {
			t.Fatalf("PCM[%d] = %g, want %g", i, v, want)
		}
	}
}

func TestDecodeFile_StereoDownmix(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "stereo.wav")

	// Interleaved L/R pairs: the mono result is the average of each pair.
	data := []int{16384, -16384, 8192, 8192, 0, 16384}
	writeWAV(t, path, data, 22050, 2)

	audio, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile() error = %v", err)
	}

	want := []float64{0, 8192.0 / 32768, 8192.0 / 32768}
	if len(audio.PCM) != len(want) {
		t.Fatalf("PCM length = %d, want %d", len(audio.PCM), len(want))
	}
	for i, w := range want {
		if math.Abs(audio.PCM[i]-w) > 1e-9 {
			t.Errorf("PCM[%d] = %g, want %g", i, audio.PCM[i], w)
		}
	}
}

func TestDecodeFile_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("not audio"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	if _, err := DecodeFile(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("DecodeFile(.txt) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDecodeFile_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := DecodeFile(filepath.Join(t.TempDir(), "gone.wav")); err == nil {
		t.Error("DecodeFile(missing) expected error, got nil")
	}
}

func TestDownmix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       []float64
		channels int
		want     []float64
	}{
		{"mono passthrough", []float64{0.1, 0.2, 0.3}, 1, []float64{0.1, 0.2, 0.3}},
		{"stereo average", []float64{1, 0, 0.5, 0.5}, 2, []float64{0.5, 0.5}},
		{"four channel", []float64{1, 1, 1, 1, 0, 0, 0, 0.4}, 4, []float64{1, 0.1}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := downmix(tt.in, tt.channels)
			if len(got) != len(tt.want) {
				t.Fatalf("downmix() length = %d, want %d", len(got), len(tt.want))
			}
			for i, w := range tt.want {
				if math.Abs(got[i]-w) > 1e-12 {
					t.Errorf("downmix()[%d] = %g, want %g", i, got[i], w)
				}
			}
		})
	}
}
