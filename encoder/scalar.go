package encoder

import (
	"fmt"
	"math"
)

// bandRadius is the number of positions set on each side of the band
// center. The active band is always 2*bandRadius+1 = 21 contiguous
// circular positions, independent of the configured ActiveWidth; see
// ScalarConfig.ActiveWidth.
const bandRadius = 10

// ScalarConfig configures a ScalarEncoder.
type ScalarConfig struct {
	// Resolution is the input distance corresponding to a one-bit
	// shift of the active band. Must be strictly positive.
	Resolution float64 `json:"resolution"`

	// Width is the output bit vector length n. Must be strictly positive.
	Width int `json:"width"`

	// ActiveWidth is accepted for configuration compatibility but does
	// not affect encoding: the band is always min(21, Width) distinct
	// bits.
	ActiveWidth int `json:"active_width"`

	// Offset is subtracted from the value before bucketing.
	Offset float64 `json:"offset"`
}

// ScalarEncoder encodes one scalar into a fixed-width sparse bit
// vector: a contiguous band of 21 positions centered on the value's
// resolution bucket, wrapped circularly into the output width. It is
// pure and immutable after construction, so a single instance is safe
// to share across goroutines.
type ScalarEncoder struct {
	resolution float64
	width      int
	offset     float64
}

// NewScalarEncoder validates the configuration and creates an encoder.
func NewScalarEncoder(cfg ScalarConfig) (*ScalarEncoder, error) {
	if cfg.Resolution <= 0 {
		return nil, fmt.Errorf("%w: resolution %g must be > 0", ErrInvalidConfig, cfg.Resolution)
	}
	if cfg.Width <= 0 {
		return nil, fmt.Errorf("%w: width %d must be > 0", ErrInvalidConfig, cfg.Width)
	}

	return &ScalarEncoder{
		resolution: cfg.Resolution,
		width:      cfg.Width,
		offset:     cfg.Offset,
	}, nil
}

// Width returns the output bit vector length.
func (e *ScalarEncoder) Width() int {
	return e.width
}

// ActiveBits returns the number of distinct bits set per encoding.
func (e *ScalarEncoder) ActiveBits() int {
	return min(2*bandRadius+1, e.width)
}

// Encode allocates and returns the SDR for value.
func (e *ScalarEncoder) Encode(value float64) SDR {
	out := make(SDR, e.width)
	_ = e.EncodeInto(value, out)
	return out
}

// EncodeInto writes the SDR for value into dst, which the caller owns
// and must size to exactly Width. dst is cleared before the band is
// written. Widths below 21 alias band positions through the wraparound,
// leaving fewer distinct bits set; that is expected, not an error.
func (e *ScalarEncoder) EncodeInto(value float64, dst SDR) error {
	if len(dst) != e.width {
		return fmt.Errorf("%w: got %d, want %d", ErrBufferSize, len(dst), e.width)
	}

	for i := range dst {
		dst[i] = 0
	}

	center := int(math.Floor((value - e.offset) / e.resolution))
	for i := center - bandRadius; i <= center+bandRadius; i++ {
		dst[((i%e.width)+e.width)%e.width] = 1
	}

	return nil
}
