package spectral

import "math"

// BandEnergy is a stand-in spectral feature: it divides a frame into
// numCoefficients equal time blocks and reports the RMS energy of each
// block. It is deterministic and purely a function of the frame
// contents, so a constant signal yields a constant feature matrix.
// Any real spectral feature (see MFCC) can replace it behind the
// Features interface without touching the rest of the pipeline.
type BandEnergy struct {
	numCoefficients int
}

// NewBandEnergy creates a band energy feature with the given number of
// coefficients per frame.
func NewBandEnergy(numCoefficients int) *BandEnergy {
	return &BandEnergy{numCoefficients: numCoefficients}
}

// NumCoefficients implements Features.
func (be *BandEnergy) NumCoefficients() int {
	return be.numCoefficients
}

// Compute implements Features. Frames shorter than the coefficient
// count produce all-zero vectors.
func (be *BandEnergy) Compute(_ int, frame []float64) []float64 {
	coeffs := make([]float64, be.numCoefficients)

	blockSize := len(frame) / be.numCoefficients
	if blockSize == 0 {
		return coeffs
	}

	for j := range coeffs {
		block := frame[j*blockSize : (j+1)*blockSize]
		sumSquares := 0.0
		for _, v := range block {
			sumSquares += v * v
		}
		coeffs[j] = math.Sqrt(sumSquares / float64(blockSize))
	}

	return coeffs
}
