package encoder

import "errors"

var (
	// ErrInvalidConfig is returned when an encoder is constructed with
	// a non-positive resolution or output width.
	ErrInvalidConfig = errors.New("encoder: invalid configuration")

	// ErrBufferSize is returned when a caller-owned output buffer does
	// not match the configured encoder width.
	ErrBufferSize = errors.New("encoder: output buffer size must equal encoder width")
)
