package encoder

import (
	"fmt"

	"github.com/sahithkumar1999/sdrencode/logging"
)

// pcmFullScale is the 16-bit PCM full-scale divisor used by optional
// amplitude normalization.
const pcmFullScale = 1 << 15

// Neurogram is a binary channel-by-time activation grid approximating
// auditory nerve firing patterns. The shape is fixed at construction.
type Neurogram struct {
	channels int
	steps    int
	bits     []byte // row-major, one row of steps bits per channel
}

// Channels returns the channel count of the grid.
func (n *Neurogram) Channels() int { return n.channels }

// Steps returns the number of time steps in the grid.
func (n *Neurogram) Steps() int { return n.steps }

// At returns the activation bit for a channel and time step.
func (n *Neurogram) At(channel, step int) byte {
	return n.bits[channel*n.steps+step]
}

// Row returns the time series for one channel. The slice aliases the
// grid's backing array.
func (n *Neurogram) Row(channel int) []byte {
	return n.bits[channel*n.steps : (channel+1)*n.steps]
}

// CochleaConfig configures a CochleaEncoder.
type CochleaConfig struct {
	// Channels is the fixed channel count W of the output grid.
	Channels int `json:"channels"`

	// NormalizePCM divides every sample by 2^15 before thresholding,
	// assuming 16-bit PCM full-scale input.
	NormalizePCM bool `json:"normalize_pcm"`
}

// CochleaEncoder reshapes a raw amplitude sequence directly into a
// binary channel x time grid by thresholding each sample against zero.
// It is independent of the scalar encoding path.
type CochleaEncoder struct {
	channels  int
	normalize bool
	logger    logging.Logger
}

// NewCochleaEncoder validates the configuration and creates an encoder.
func NewCochleaEncoder(cfg CochleaConfig) (*CochleaEncoder, error) {
	if cfg.Channels <= 0 {
		return nil, fmt.Errorf("%w: cochlea channels %d must be > 0", ErrInvalidConfig, cfg.Channels)
	}

	return &CochleaEncoder{
		channels:  cfg.Channels,
		normalize: cfg.NormalizePCM,
		logger: logging.WithFields(logging.Fields{
			"component": "cochlea_encoder",
		}),
	}, nil
}

// Encode maps sample[t*W + cf] to grid cell [cf][t], setting the cell
// when the (possibly normalized) value is strictly greater than zero.
// Trailing samples that do not fill a complete time column are dropped;
// fewer than W samples yields a valid grid with zero time steps.
func (c *CochleaEncoder) Encode(samples []float64) *Neurogram {
	steps := len(samples) / c.channels

	c.logger.Debug("Encoding neurogram", logging.Fields{
		"samples":  len(samples),
		"channels": c.channels,
		"steps":    steps,
	})

	grid := &Neurogram{
		channels: c.channels,
		steps:    steps,
		bits:     make([]byte, c.channels*steps),
	}

	for t := 0; t < steps; t++ {
		for cf := 0; cf < c.channels; cf++ {
			v := samples[t*c.channels+cf]
			if c.normalize {
				v /= pcmFullScale
			}
			if v > 0 {
				grid.bits[cf*steps+t] = 1
			}
		}
	}

	return grid
}
