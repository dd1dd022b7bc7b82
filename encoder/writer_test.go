package encoder

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFrames_Format(t *testing.T) {
	t.Parallel()

	frames := []FrameSDR{
		{1, 0, 0, 1, 1},
		{0, 0, 0, 0, 0},
		{1, 1, 1, 1, 1},
	}

	var buf bytes.Buffer
	if err := WriteFrames(&buf, frames); err != nil {
		t.Fatalf("WriteFrames() error = %v", err)
	}

	want := "10011\n00000\n11111\n"
	if buf.String() != want {
		t.Errorf("WriteFrames() = %q, want %q", buf.String(), want)
	}
}

func TestWriteFrames_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteFrames(&buf, nil); err != nil {
		t.Fatalf("WriteFrames(nil) error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("WriteFrames(nil) wrote %q", buf.String())
	}
}

func TestWriteFrameFile_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.sdr")
	frames := []FrameSDR{{0, 1, 0}, {1, 1, 0}}

	if err := WriteFrameFile(path, frames); err != nil {
		t.Fatalf("WriteFrameFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "010\n110\n" {
		t.Errorf("file content = %q", string(data))
	}
}

func TestWriteFrameFile_NoTempLeftBehind(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "out.sdr")

	if err := WriteFrameFile(path, []FrameSDR{{1, 0}}); err != nil {
		t.Fatalf("WriteFrameFile() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("listing dir: %v", err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp") {
			t.Errorf("temp file %q left behind", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want 1", len(entries))
	}
}

func TestWriteNeurogram_Format(t *testing.T) {
	t.Parallel()

	grid := &Neurogram{
		channels: 3,
		steps:    2,
		bits:     []byte{1, 0, 0, 0, 1, 1},
	}

	var buf bytes.Buffer
	if err := WriteNeurogram(&buf, grid); err != nil {
		t.Fatalf("WriteNeurogram() error = %v", err)
	}

	want := "10\n00\n11\n"
	if buf.String() != want {
		t.Errorf("WriteNeurogram() = %q, want %q", buf.String(), want)
	}
}

func TestWriteNeurogramFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "grid.sdr")
	grid := &Neurogram{channels: 2, steps: 2, bits: []byte{1, 1, 0, 1}}

	if err := WriteNeurogramFile(path, grid); err != nil {
		t.Fatalf("WriteNeurogramFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "11\n01\n" {
		t.Errorf("file content = %q", string(data))
	}
}
