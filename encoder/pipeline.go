package encoder

import (
	"fmt"

	"github.com/sahithkumar1999/sdrencode/algorithms/resample"
	"github.com/sahithkumar1999/sdrencode/algorithms/spectral"
	"github.com/sahithkumar1999/sdrencode/algorithms/stats"
	"github.com/sahithkumar1999/sdrencode/logging"
	"github.com/sahithkumar1999/sdrencode/transcode"
)

// Pipeline runs the full waveform-to-SDR sequence: resampling, framed
// feature extraction, global z-score normalization, and per-coefficient
// scalar encoding into FrameSDRs. It also exposes the independent
// neurogram path. A failure in any stage aborts the run for that
// waveform; no partial results are returned.
type Pipeline struct {
	config     *Config
	resampler  *resample.Resampler
	extractor  *spectral.FeatureExtractor
	normalizer *stats.Normalizer
	assembler  *FrameAssembler
	cochlea    *CochleaEncoder
	logger     logging.Logger
}

// NewPipeline builds a pipeline from the configuration. A nil config
// selects DefaultConfig.
func NewPipeline(cfg *Config) (*Pipeline, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	resampler, err := resample.NewResampler(cfg.TargetSampleRate)
	if err != nil {
		return nil, err
	}

	features, err := newFeatures(cfg)
	if err != nil {
		return nil, err
	}

	extractor, err := spectral.NewFeatureExtractor(cfg.FrameLength, features)
	if err != nil {
		return nil, err
	}

	assembler, err := NewFrameAssembler(AssemblerConfig{
		Width:           cfg.SDRWidth,
		ActiveWidth:     cfg.ActiveWidth,
		ResolutionFloor: cfg.ResolutionFloor,
		Workers:         cfg.Workers,
	})
	if err != nil {
		return nil, err
	}

	cochlea, err := NewCochleaEncoder(CochleaConfig{
		Channels:     cfg.CochleaChannels,
		NormalizePCM: cfg.NormalizePCM,
	})
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		config:     cfg,
		resampler:  resampler,
		extractor:  extractor,
		normalizer: stats.NewNormalizer(),
		assembler:  assembler,
		cochlea:    cochlea,
		logger: logging.WithFields(logging.Fields{
			"component": "pipeline",
		}),
	}, nil
}

// newFeatures selects the frame feature implementation for the config.
func newFeatures(cfg *Config) (spectral.Features, error) {
	switch cfg.FeatureType {
	case FeatureBandEnergy, "":
		return spectral.NewBandEnergy(cfg.NumCoefficients), nil
	case FeatureMFCC:
		return spectral.NewMFCC(cfg.TargetSampleRate, cfg.NumCoefficients), nil
	default:
		return nil, fmt.Errorf("%w: unknown feature type %q", ErrInvalidConfig, cfg.FeatureType)
	}
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() *Config {
	return p.config
}

// EncodeAudio transforms one decoded waveform into its ordered FrameSDR
// sequence.
func (p *Pipeline) EncodeAudio(audio *transcode.AudioData) ([]FrameSDR, error) {
	if audio == nil {
		return nil, fmt.Errorf("encoder: nil audio data")
	}

	p.logger.Debug("Encoding waveform", logging.Fields{
		"source":      audio.Source,
		"sample_rate": audio.SampleRate,
		"samples":     len(audio.PCM),
	})

	samples, err := p.resampler.Resample(audio.PCM, audio.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("resampling: %w", err)
	}

	features, err := p.extractor.Extract(samples)
	if err != nil {
		return nil, fmt.Errorf("feature extraction: %w", err)
	}

	if err := p.normalizer.Normalize(features); err != nil {
		return nil, fmt.Errorf("normalization: %w", err)
	}

	frames, err := p.assembler.Assemble(features)
	if err != nil {
		return nil, fmt.Errorf("frame assembly: %w", err)
	}

	p.logger.Debug("Waveform encoded", logging.Fields{
		"frames":     len(frames),
		"frame_bits": p.config.NumCoefficients * p.config.SDRWidth,
	})

	return frames, nil
}

// EncodeNeurogram runs the independent cochlea path on the raw,
// unresampled waveform.
func (p *Pipeline) EncodeNeurogram(audio *transcode.AudioData) (*Neurogram, error) {
	if audio == nil {
		return nil, fmt.Errorf("encoder: nil audio data")
	}
	return p.cochlea.Encode(audio.PCM), nil
}

// EncodeFile decodes inPath, encodes it, and writes the FrameSDR lines
// to outPath. The output file only appears when the whole run succeeds.
func (p *Pipeline) EncodeFile(inPath, outPath string) error {
	audio, err := transcode.DecodeFile(inPath)
	if err != nil {
		return err
	}

	frames, err := p.EncodeAudio(audio)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", inPath, err)
	}

	return WriteFrameFile(outPath, frames)
}
