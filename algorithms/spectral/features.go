package spectral

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/sahithkumar1999/sdrencode/logging"
)

// Features computes one coefficient vector per analysis frame. The
// frame index and the raw frame samples are both available so that
// implementations can use temporal context, but the result must be a
// deterministic function of its inputs.
type Features interface {
	// NumCoefficients returns the fixed length of every vector
	// produced by Compute.
	NumCoefficients() int

	// Compute returns the coefficient vector for one frame.
	Compute(frameIndex int, frame []float64) []float64
}

// FeatureExtractor splits a signal into non-overlapping fixed-length
// frames and runs a Features implementation over each of them. Any
// trailing partial frame is dropped.
type FeatureExtractor struct {
	frameLength int
	features    Features
	logger      logging.Logger
}

// NewFeatureExtractor creates an extractor with the given frame length.
func NewFeatureExtractor(frameLength int, features Features) (*FeatureExtractor, error) {
	if frameLength <= 0 {
		return nil, fmt.Errorf("spectral: frame length must be positive: %d", frameLength)
	}
	if features == nil {
		return nil, fmt.Errorf("spectral: features implementation is nil")
	}
	if features.NumCoefficients() <= 0 {
		return nil, fmt.Errorf("spectral: features must produce at least one coefficient")
	}

	return &FeatureExtractor{
		frameLength: frameLength,
		features:    features,
		logger: logging.WithFields(logging.Fields{
			"component": "feature_extractor",
		}),
	}, nil
}

// Extract produces the numFrames x numCoefficients feature matrix for
// the signal. Every entry is guaranteed finite; a Features
// implementation returning NaN, Inf, or a wrong-length vector is a
// contract violation reported as an error.
func (fe *FeatureExtractor) Extract(samples []float64) (*mat.Dense, error) {
	numFrames := len(samples) / fe.frameLength
	if numFrames == 0 {
		return nil, fmt.Errorf("spectral: signal of %d samples is shorter than one frame (%d)",
			len(samples), fe.frameLength)
	}

	numCoeffs := fe.features.NumCoefficients()

	fe.logger.Debug("Extracting features", logging.Fields{
		"samples":      len(samples),
		"frame_length": fe.frameLength,
		"frames":       numFrames,
		"coefficients": numCoeffs,
	})

	features := mat.NewDense(numFrames, numCoeffs, nil)

	for i := 0; i < numFrames; i++ {
		frame := samples[i*fe.frameLength : (i+1)*fe.frameLength]

		coeffs := fe.features.Compute(i, frame)
		if len(coeffs) != numCoeffs {
			return nil, fmt.Errorf("spectral: frame %d produced %d coefficients, want %d",
				i, len(coeffs), numCoeffs)
		}

		for j, c := range coeffs {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return nil, fmt.Errorf("spectral: non-finite coefficient %g at frame %d index %d", c, i, j)
			}
			features.Set(i, j, c)
		}
	}

	return features, nil
}

// FrameLength returns the configured analysis frame length.
func (fe *FeatureExtractor) FrameLength() int {
	return fe.frameLength
}
