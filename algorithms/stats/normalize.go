package stats

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/sahithkumar1999/sdrencode/logging"
)

// ErrDegenerateStats is returned when the feature matrix has zero
// variance and cannot be z-score normalized.
var ErrDegenerateStats = errors.New("stats: zero variance in feature matrix")

// Normalizer z-score normalizes a feature matrix in place. Mean and
// standard deviation are computed across all coefficients of all frames
// flattened together, not per coefficient column.
type Normalizer struct {
	logger logging.Logger
}

// NewNormalizer creates a new feature matrix normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		logger: logging.WithFields(logging.Fields{
			"component": "normalizer",
		}),
	}
}

// Normalize subtracts the global mean and divides by the global standard
// deviation, mutating features in place. It fails with ErrDegenerateStats
// when the matrix is constant so that NaN/Inf never reaches the encoder.
func (n *Normalizer) Normalize(features *mat.Dense) error {
	if features == nil {
		return fmt.Errorf("stats: nil feature matrix")
	}

	rows, cols := features.Dims()
	if rows == 0 || cols == 0 {
		return fmt.Errorf("stats: empty feature matrix (%dx%d)", rows, cols)
	}

	flat := Flatten(features)
	mean := stat.Mean(flat, nil)
	// Population standard deviation over the flattened matrix.
	std := stat.PopStdDev(flat, nil)

	n.logger.Debug("Feature matrix statistics", logging.Fields{
		"frames": rows,
		"coeffs": cols,
		"mean":   mean,
		"std":    std,
	})

	if std == 0 {
		return fmt.Errorf("%w (%d values, mean=%g)", ErrDegenerateStats, len(flat), mean)
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			features.Set(i, j, (features.At(i, j)-mean)/std)
		}
	}

	return nil
}

// Flatten returns the matrix contents as a single slice in row-major
// order. When the backing array is contiguous it is returned directly,
// so callers must treat the result as read-only.
func Flatten(m *mat.Dense) []float64 {
	rm := m.RawMatrix()
	if rm.Stride == rm.Cols {
		return rm.Data[:rm.Rows*rm.Cols]
	}

	flat := make([]float64, 0, rm.Rows*rm.Cols)
	for i := 0; i < rm.Rows; i++ {
		flat = append(flat, rm.Data[i*rm.Stride:i*rm.Stride+rm.Cols]...)
	}
	return flat
}

// MeanStd returns the flattened global mean and population standard
// deviation of the matrix.
func MeanStd(m *mat.Dense) (mean, std float64) {
	flat := Flatten(m)
	return stat.Mean(flat, nil), stat.PopStdDev(flat, nil)
}
