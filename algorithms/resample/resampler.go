package resample

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/interp"

	"github.com/sahithkumar1999/sdrencode/logging"
)

// ErrInsufficientSamples is returned when the input has fewer than two
// samples, which is not enough to fit an interpolant.
var ErrInsufficientSamples = errors.New("resample: need at least 2 samples")

// Resampler converts a signal from its source rate to a target rate by
// fitting a natural cubic spline over the sample sequence and evaluating
// it at evenly spaced query times.
type Resampler struct {
	targetRate int
	logger     logging.Logger
}

// NewResampler creates a resampler for the given target rate.
func NewResampler(targetRate int) (*Resampler, error) {
	if targetRate <= 0 {
		return nil, fmt.Errorf("resample: target rate must be positive: %d", targetRate)
	}

	return &Resampler{
		targetRate: targetRate,
		logger: logging.WithFields(logging.Fields{
			"component": "resampler",
		}),
	}, nil
}

// TargetRate returns the configured target sample rate.
func (r *Resampler) TargetRate() int {
	return r.targetRate
}

// Resample interpolates samples recorded at inputRate onto the target
// rate. The output length is exactly floor(len(samples)*target/input).
// The input slice is never modified; a new slice is returned, also when
// inputRate equals the target rate.
func (r *Resampler) Resample(samples []float64, inputRate int) ([]float64, error) {
	if inputRate <= 0 {
		return nil, fmt.Errorf("resample: input rate must be positive: %d", inputRate)
	}
	if len(samples) < 2 {
		return nil, fmt.Errorf("%w, got %d", ErrInsufficientSamples, len(samples))
	}

	newLength := OutputLength(len(samples), inputRate, r.targetRate)

	r.logger.Debug("Resampling signal", logging.Fields{
		"input_rate":    inputRate,
		"target_rate":   r.targetRate,
		"input_length":  len(samples),
		"output_length": newLength,
	})

	if inputRate == r.targetRate {
		out := make([]float64, newLength)
		copy(out, samples)
		return out, nil
	}

	xs := make([]float64, len(samples))
	for i := range xs {
		xs[i] = float64(i)
	}

	var spline interp.NaturalCubic
	if err := spline.Fit(xs, samples); err != nil {
		return nil, fmt.Errorf("resample: spline fit failed: %w", err)
	}

	step := float64(inputRate) / float64(r.targetRate)
	maxX := float64(len(samples) - 1)

	out := make([]float64, newLength)
	for t := range out {
		x := float64(t) * step
		// Query times can land a fraction past the last knot when the
		// rate ratio does not divide evenly; hold the boundary value.
		if x > maxX {
			x = maxX
		}
		out[t] = spline.Predict(x)
	}

	return out, nil
}

// OutputLength returns the exact resampled length for a signal of n
// samples going from inputRate to targetRate.
func OutputLength(n, inputRate, targetRate int) int {
	return int(int64(n) * int64(targetRate) / int64(inputRate))
}
