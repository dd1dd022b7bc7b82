package transcode

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"
)

// decodeVorbis decodes an Ogg Vorbis stream using jfreymuth/oggvorbis.
func decodeVorbis(r io.Reader) ([]float64, int, error) {
	data, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("vorbis: %w", err)
	}

	interleaved := make([]float64, len(data))
	for i, v := range data {
		interleaved[i] = float64(v)
	}

	return downmix(interleaved, format.Channels), format.SampleRate, nil
}
