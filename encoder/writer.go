package encoder

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFrames writes one text line per FrameSDR: a literal run of '0'
// and '1' characters, one per bit in index order, newline-terminated.
// No header, no delimiters between frames.
func WriteFrames(w io.Writer, frames []FrameSDR) error {
	bw := bufio.NewWriter(w)

	line := make([]byte, 0)
	for _, frame := range frames {
		if cap(line) < len(frame)+1 {
			line = make([]byte, 0, len(frame)+1)
		}
		line = line[:0]
		for _, b := range frame {
			if b != 0 {
				line = append(line, '1')
			} else {
				line = append(line, '0')
			}
		}
		line = append(line, '\n')

		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("encoder: writing frame: %w", err)
		}
	}

	return bw.Flush()
}

// WriteFrameFile writes frames to path atomically: the content goes to
// a temporary file in the same directory which is renamed into place,
// so a failed run never leaves a partial output file.
func WriteFrameFile(path string, frames []FrameSDR) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("encoder: creating output: %w", err)
	}

	if err := WriteFrames(tmp, frames); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("encoder: closing output: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("encoder: finalizing output: %w", err)
	}
	return nil
}

// WriteNeurogram writes one text line per channel in channel order,
// each a run of '0'/'1' bits across time steps.
func WriteNeurogram(w io.Writer, grid *Neurogram) error {
	bw := bufio.NewWriter(w)

	for cf := 0; cf < grid.Channels(); cf++ {
		row := grid.Row(cf)
		line := make([]byte, len(row)+1)
		for i, b := range row {
			if b != 0 {
				line[i] = '1'
			} else {
				line[i] = '0'
			}
		}
		line[len(row)] = '\n'

		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("encoder: writing neurogram channel %d: %w", cf, err)
		}
	}

	return bw.Flush()
}

// WriteNeurogramFile writes a neurogram to path with the same atomic
// temp-and-rename behavior as WriteFrameFile.
func WriteNeurogramFile(path string, grid *Neurogram) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("encoder: creating output: %w", err)
	}

	if err := WriteNeurogram(tmp, grid); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("encoder: closing output: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("encoder: finalizing output: %w", err)
	}
	return nil
}
