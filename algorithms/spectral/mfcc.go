package spectral

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// MFCC computes Mel-Frequency Cepstral Coefficients and implements the
// Features interface, so it can replace BandEnergy in the pipeline.
type MFCC struct {
	numCoefficients int
	numMelFilters   int
	sampleRate      int
	lowFreq         float64
	highFreq        float64

	// Built lazily for the first frame length seen; frame length is
	// fixed for the lifetime of an extraction run.
	filterBank [][]float64
	dctMatrix  [][]float64
	fftSize    int
}

// MFCCParams contains parameters for MFCC computation
type MFCCParams struct {
	NumCoefficients int     `json:"num_coefficients"` // default: 13
	NumMelFilters   int     `json:"num_mel_filters"`  // default: 26
	LowFreq         float64 `json:"low_freq"`         // default: 0
	HighFreq        float64 `json:"high_freq"`        // default: sampleRate/2
}

// NewMFCC creates an MFCC feature with default filter bank parameters.
func NewMFCC(sampleRate, numCoefficients int) *MFCC {
	return NewMFCCWithParams(sampleRate, MFCCParams{
		NumCoefficients: numCoefficients,
	})
}

// NewMFCCWithParams creates an MFCC feature with custom parameters.
func NewMFCCWithParams(sampleRate int, params MFCCParams) *MFCC {
	if params.NumCoefficients <= 0 {
		params.NumCoefficients = 13
	}
	if params.NumMelFilters <= 0 {
		params.NumMelFilters = 26
	}
	if params.HighFreq <= 0 {
		params.HighFreq = float64(sampleRate) / 2.0
	}

	return &MFCC{
		numCoefficients: params.NumCoefficients,
		numMelFilters:   params.NumMelFilters,
		sampleRate:      sampleRate,
		lowFreq:         params.LowFreq,
		highFreq:        params.HighFreq,
	}
}

// NumCoefficients implements Features.
func (m *MFCC) NumCoefficients() int {
	return m.numCoefficients
}

// Compute implements Features. It windows the frame, computes the
// magnitude spectrum with go-dsp, applies the mel filter bank, and
// takes the DCT of the log mel energies.
func (m *MFCC) Compute(_ int, frame []float64) []float64 {
	if m.fftSize != len(frame) {
		m.initialize(len(frame))
	}

	windowed := make([]float64, len(frame))
	for i, v := range frame {
		// Hann window
		windowed[i] = v * 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(len(frame)-1)))
	}

	spectrum := fft.FFTReal(windowed)

	numBins := len(frame)/2 + 1
	power := make([]float64, numBins)
	for i := 0; i < numBins; i++ {
		mag := cmplx.Abs(spectrum[i])
		power[i] = mag * mag
	}

	// Mel filter bank + log with floor to avoid log(0)
	logMel := make([]float64, m.numMelFilters)
	for f, filter := range m.filterBank {
		sum := 0.0
		for i, w := range filter {
			sum += power[i] * w
		}
		if sum > 0 {
			logMel[f] = math.Log(sum)
		} else {
			logMel[f] = math.Log(1e-10)
		}
	}

	// DCT-II down to the requested coefficient count
	coeffs := make([]float64, m.numCoefficients)
	for k := range coeffs {
		sum := 0.0
		for n, v := range logMel {
			sum += v * m.dctMatrix[k][n]
		}
		coeffs[k] = sum
	}

	return coeffs
}

// initialize builds the mel filter bank and DCT matrix for a frame length.
func (m *MFCC) initialize(fftSize int) {
	m.fftSize = fftSize
	numBins := fftSize/2 + 1

	lowMel := hzToMel(m.lowFreq)
	highMel := hzToMel(m.highFreq)

	// Center frequencies spaced evenly on the mel scale, expressed as
	// FFT bin positions.
	centers := make([]float64, m.numMelFilters+2)
	for i := range centers {
		mel := lowMel + (highMel-lowMel)*float64(i)/float64(m.numMelFilters+1)
		centers[i] = melToHz(mel) * float64(fftSize) / float64(m.sampleRate)
	}

	m.filterBank = make([][]float64, m.numMelFilters)
	for f := range m.filterBank {
		filter := make([]float64, numBins)
		left, center, right := centers[f], centers[f+1], centers[f+2]

		for i := 0; i < numBins; i++ {
			bin := float64(i)
			switch {
			case bin > left && bin < center:
				filter[i] = (bin - left) / (center - left)
			case bin >= center && bin < right:
				filter[i] = (right - bin) / (right - center)
			}
		}
		m.filterBank[f] = filter
	}

	m.dctMatrix = make([][]float64, m.numCoefficients)
	for k := range m.dctMatrix {
		row := make([]float64, m.numMelFilters)
		for n := range row {
			row[n] = math.Cos(math.Pi * float64(k) * (float64(n) + 0.5) / float64(m.numMelFilters))
			if k == 0 {
				row[n] *= math.Sqrt(1.0 / float64(m.numMelFilters))
			} else {
				row[n] *= math.Sqrt(2.0 / float64(m.numMelFilters))
			}
		}
		m.dctMatrix[k] = row
	}
}

func hzToMel(hz float64) float64 {
	return 2595.0 * math.Log10(1.0+hz/700.0)
}

func melToHz(mel float64) float64 {
	return 700.0 * (math.Pow(10.0, mel/2595.0) - 1.0)
}
