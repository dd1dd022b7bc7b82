package encoder

import "runtime"

// Feature type names accepted by Config.FeatureType.
const (
	FeatureBandEnergy = "band_energy"
	FeatureMFCC       = "mfcc"
)

// Config holds the full pipeline configuration.
type Config struct {
	// TargetSampleRate is the rate every waveform is resampled to
	// before feature extraction.
	TargetSampleRate int `json:"target_sample_rate"`

	// FrameLength is the analysis frame length L in samples.
	FrameLength int `json:"frame_length"`

	// NumCoefficients is the coefficient count C per frame.
	NumCoefficients int `json:"num_coefficients"`

	// FeatureType selects the frame feature implementation.
	FeatureType string `json:"feature_type"`

	// SDRWidth is the per-coefficient SDR length n.
	SDRWidth int `json:"sdr_width"`

	// ActiveWidth is the nominal active band width w; see
	// ScalarConfig.ActiveWidth.
	ActiveWidth int `json:"active_width"`

	// ResolutionFloor bounds the derived encoder resolution away from zero.
	ResolutionFloor float64 `json:"resolution_floor"`

	// CochleaChannels is the neurogram channel count W.
	CochleaChannels int `json:"cochlea_channels"`

	// NormalizePCM enables 16-bit full-scale normalization on the
	// neurogram path.
	NormalizePCM bool `json:"normalize_pcm"`

	// Workers sets the frame encoding parallelism.
	Workers int `json:"workers"`
}

// DefaultConfig returns the reference pipeline configuration.
func DefaultConfig() *Config {
	return &Config{
		TargetSampleRate: 22050,
		FrameLength:      400,
		NumCoefficients:  16,
		FeatureType:      FeatureBandEnergy,
		SDRWidth:         512,
		ActiveWidth:      21,
		ResolutionFloor:  0.001,
		CochleaChannels:  1024,
		NormalizePCM:     false,
		Workers:          runtime.NumCPU(),
	}
}
