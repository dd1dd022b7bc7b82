package transcode

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

// decodeMP3 decodes an MP3 stream using hajimehoshi/go-mp3, which
// always emits 16-bit little-endian stereo PCM.
func decodeMP3(r io.Reader) ([]float64, int, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, 0, fmt.Errorf("mp3: %w", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, 0, fmt.Errorf("mp3: %w", err)
	}

	// Whole int16 samples only
	raw = raw[:len(raw)-(len(raw)%2)]

	interleaved := make([]float64, len(raw)/2)
	for i := range interleaved {
		v := int16(binary.LittleEndian.Uint16(raw[2*i : 2*i+2]))
		interleaved[i] = float64(v) / 32768.0
	}

	return downmix(interleaved, 2), dec.SampleRate(), nil
}
