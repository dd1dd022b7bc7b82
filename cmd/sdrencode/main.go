package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/sahithkumar1999/sdrencode/encoder"
	"github.com/sahithkumar1999/sdrencode/logging"
	"github.com/sahithkumar1999/sdrencode/transcode"
)

func main() {
	_ = godotenv.Load()

	cfg := encoder.DefaultConfig()
	applyEnv(cfg)

	var (
		rate      = flag.Int("rate", cfg.TargetSampleRate, "target sample rate in Hz")
		width     = flag.Int("width", cfg.SDRWidth, "per-coefficient SDR width")
		coeffs    = flag.Int("coeffs", cfg.NumCoefficients, "coefficients per frame")
		features  = flag.String("features", cfg.FeatureType, "frame features: band_energy or mfcc")
		workers   = flag.Int("workers", cfg.Workers, "frame encoding workers")
		suffix    = flag.String("suffix", ".sdr", "output file suffix")
		neurogram = flag.Bool("neurogram", false, "emit cochlea neurogram instead of frame SDRs")
		force     = flag.Bool("force", false, "re-encode files whose output already exists")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Usage = usage
	flag.Parse()

	if *verbose {
		logging.SetLevel(logging.DebugLevel)
	}

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cfg.TargetSampleRate = *rate
	cfg.SDRWidth = *width
	cfg.NumCoefficients = *coeffs
	cfg.FeatureType = *features
	cfg.Workers = *workers

	pipeline, err := encoder.NewPipeline(cfg)
	if err != nil {
		logging.Error(err, "Invalid configuration")
		os.Exit(2)
	}

	paths, err := collectInputs(flag.Args())
	if err != nil {
		logging.Error(err, "Collecting inputs")
		os.Exit(1)
	}
	if len(paths) == 0 {
		logging.Warn("No supported audio files found", logging.Fields{
			"extensions": transcode.SupportedExtensions(),
		})
		os.Exit(1)
	}

	encoded, skipped, failed := 0, 0, 0
	for _, inPath := range paths {
		outPath := inPath + *suffix

		if !*force {
			if _, err := os.Stat(outPath); err == nil {
				logging.Debug("Output exists, skipping", logging.Fields{"path": inPath})
				skipped++
				continue
			}
		}

		if err := encodeOne(pipeline, inPath, outPath, *neurogram); err != nil {
			logging.Error(err, "Encoding failed", logging.Fields{"path": inPath})
			failed++
			continue
		}

		logging.Info("Encoded", logging.Fields{"input": inPath, "output": outPath})
		encoded++
	}

	logging.Info("Done", logging.Fields{
		"encoded": encoded,
		"skipped": skipped,
		"failed":  failed,
	})
	if failed > 0 {
		os.Exit(1)
	}
}

func encodeOne(pipeline *encoder.Pipeline, inPath, outPath string, neurogram bool) error {
	if !neurogram {
		return pipeline.EncodeFile(inPath, outPath)
	}

	audio, err := transcode.DecodeFile(inPath)
	if err != nil {
		return err
	}
	grid, err := pipeline.EncodeNeurogram(audio)
	if err != nil {
		return err
	}
	return encoder.WriteNeurogramFile(outPath, grid)
}

// collectInputs expands the argument list: directories contribute their
// supported audio files (non-recursive), plain paths pass through when
// supported.
func collectInputs(args []string) ([]string, error) {
	var paths []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}

		if !info.IsDir() {
			if transcode.IsSupported(arg) {
				paths = append(paths, arg)
			} else {
				logging.Warn("Skipping unsupported file", logging.Fields{"path": arg})
			}
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", arg, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			p := filepath.Join(arg, e.Name())
			if transcode.IsSupported(p) {
				paths = append(paths, p)
			}
		}
	}

	return paths, nil
}

// applyEnv overrides defaults from the environment, so a .env file can
// carry per-deployment settings without flags.
func applyEnv(cfg *encoder.Config) {
	if v := os.Getenv("SDRENCODE_TARGET_RATE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TargetSampleRate = n
		}
	}
	if v := os.Getenv("SDRENCODE_SDR_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SDRWidth = n
		}
	}
	if v := os.Getenv("SDRENCODE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("SDRENCODE_FEATURES"); v != "" {
		cfg.FeatureType = v
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: sdrencode [flags] <file-or-dir>...

Encodes audio files (%v) into sparse distributed representation text
files, one '0'/'1' line per analysis frame.

Flags:
`, transcode.SupportedExtensions())
	flag.PrintDefaults()
}
