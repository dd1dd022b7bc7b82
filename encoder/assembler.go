package encoder

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/sahithkumar1999/sdrencode/algorithms/stats"
	"github.com/sahithkumar1999/sdrencode/logging"
)

// resolutionBuckets is the number of buckets the feature dynamic range
// is divided into when deriving the encoder resolution.
const resolutionBuckets = 1024

// AssemblerConfig configures a FrameAssembler.
type AssemblerConfig struct {
	// Width is the per-coefficient SDR length n.
	Width int `json:"width"`

	// ActiveWidth is forwarded to the scalar encoder; see
	// ScalarConfig.ActiveWidth.
	ActiveWidth int `json:"active_width"`

	// ResolutionFloor keeps the derived resolution strictly positive
	// when the feature dynamic range collapses.
	ResolutionFloor float64 `json:"resolution_floor"`

	// Workers sets the number of goroutines encoding frames. Values
	// below 2 encode serially. Frame order is preserved either way.
	Workers int `json:"workers"`
}

// FrameAssembler derives the scalar encoder parameters from a
// normalized feature matrix and encodes every coefficient of every
// frame, concatenating per-frame results into FrameSDRs in temporal
// frame order.
type FrameAssembler struct {
	width           int
	activeWidth     int
	resolutionFloor float64
	workers         int
	logger          logging.Logger
}

// NewFrameAssembler validates the configuration and creates an assembler.
func NewFrameAssembler(cfg AssemblerConfig) (*FrameAssembler, error) {
	if cfg.Width <= 0 {
		return nil, fmt.Errorf("%w: SDR width %d must be > 0", ErrInvalidConfig, cfg.Width)
	}
	if cfg.ResolutionFloor <= 0 {
		return nil, fmt.Errorf("%w: resolution floor %g must be > 0", ErrInvalidConfig, cfg.ResolutionFloor)
	}

	return &FrameAssembler{
		width:           cfg.Width,
		activeWidth:     cfg.ActiveWidth,
		resolutionFloor: cfg.ResolutionFloor,
		workers:         cfg.Workers,
		logger: logging.WithFields(logging.Fields{
			"component": "frame_assembler",
		}),
	}, nil
}

// Assemble encodes a normalized feature matrix into one FrameSDR per
// frame. The result preserves the temporal frame order of the input,
// also when frames are encoded on the worker pool.
func (fa *FrameAssembler) Assemble(features *mat.Dense) ([]FrameSDR, error) {
	if features == nil {
		return nil, fmt.Errorf("encoder: nil feature matrix")
	}

	rows, cols := features.Dims()
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("encoder: empty feature matrix (%dx%d)", rows, cols)
	}

	flat := stats.Flatten(features)
	minVal := floats.Min(flat)
	maxVal := floats.Max(flat)

	resolution := max(fa.resolutionFloor, (maxVal-minVal)/resolutionBuckets)
	// Offset is the global mean of the matrix as handed to Assemble,
	// i.e. after normalization it sits near zero.
	offset := stat.Mean(flat, nil)

	scalar, err := NewScalarEncoder(ScalarConfig{
		Resolution:  resolution,
		Width:       fa.width,
		ActiveWidth: fa.activeWidth,
		Offset:      offset,
	})
	if err != nil {
		return nil, err
	}

	fa.logger.Debug("Assembling frame SDRs", logging.Fields{
		"frames":     rows,
		"coeffs":     cols,
		"width":      fa.width,
		"resolution": resolution,
		"offset":     offset,
	})

	out := make([]FrameSDR, rows)

	encodeFrame := func(i int) {
		frameSDR := make(FrameSDR, cols*fa.width)
		for j := 0; j < cols; j++ {
			// Encoders are immutable, one instance serves all workers.
			_ = scalar.EncodeInto(features.At(i, j), SDR(frameSDR[j*fa.width:(j+1)*fa.width]))
		}
		out[i] = frameSDR
	}

	if fa.workers < 2 || rows < 2 {
		for i := 0; i < rows; i++ {
			encodeFrame(i)
		}
		return out, nil
	}

	// Once resolution and offset are fixed, frames are independent;
	// each worker writes only its own output slot, so temporal order
	// holds without reassembly.
	jobs := make(chan int, rows)

	var wg sync.WaitGroup
	for w := 0; w < min(fa.workers, rows); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				encodeFrame(i)
			}
		}()
	}

	for i := 0; i < rows; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return out, nil
}
