package spectralgate

import (
	"fmt"
	"math"
	"runtime"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFrameLen        = 1024
	DefaultHop             = 256
	DefaultNoisePercentile = 40.0
	DefaultFloorMarginDB   = 10.0
	DefaultMaskPower       = 2.5
	DefaultSmoothingAlpha  = 0.7

	// Epsilon keeps the magnitude-to-threshold ratio finite in bins whose
	// noise threshold is zero (silence or a never-energized frequency).
	Epsilon = 1e-12
)

type Config struct {
	// FrameLen is the analysis window and FFT length in samples.
	// Powers of two are recommended (and required by TransformerFourier).
	FrameLen int `yaml:"frame_len"`

	// Hop is the distance between the starts of consecutive frames. The
	// squared Hann window overlap-adds to a constant at Hop = FrameLen/4,
	// see Framer.
	Hop int `yaml:"hop"`

	// Center pads the signal with FrameLen/2 zeros on both sides, so that
	// frame t is centered at sample t*Hop.
	Center bool `yaml:"center"`

	// NoisePercentile selects which percentile of a bin's magnitudes over
	// time is taken as its noise floor.
	NoisePercentile float64 `yaml:"noise_percentile"`

	// FloorMarginDB is the headroom above the noise floor below which
	// content gets attenuated.
	FloorMarginDB float64 `yaml:"floor_margin_db"`

	// MaskPower shapes the gain curve: higher values attenuate content near
	// the threshold harder.
	MaskPower float64 `yaml:"mask_power"`

	// SmoothingAlpha is the weight of the previous frame in the exponential
	// smoothing of the mask over time. Zero disables smoothing.
	SmoothingAlpha float64 `yaml:"smoothing_alpha"`

	Transformer TransformerKind `yaml:"transformer"`

	// Workers limits the parallelism; zero means GOMAXPROCS.
	Workers int `yaml:"workers"`
}

func DefaultConfig() Config {
	return Config{
		FrameLen:        DefaultFrameLen,
		Hop:             DefaultHop,
		Center:          true,
		NoisePercentile: DefaultNoisePercentile,
		FloorMarginDB:   DefaultFloorMarginDB,
		MaskPower:       DefaultMaskPower,
		SmoothingAlpha:  DefaultSmoothingAlpha,
		Transformer:     TransformerGonum,
	}
}

// Validate reports every violated constraint; each reported error wraps
// ErrInvalidParameter.
func (cfg Config) Validate() error {
	var mErr *multierror.Error
	invalid := func(format string, args ...any) {
		mErr = multierror.Append(mErr, fmt.Errorf("%w: "+format, append([]any{ErrInvalidParameter}, args...)...))
	}

	if cfg.FrameLen < 2 {
		invalid("frame length must be at least 2: got %d", cfg.FrameLen)
	}
	if cfg.Hop <= 0 {
		invalid("hop must be positive: got %d", cfg.Hop)
	} else if cfg.FrameLen > 0 && cfg.Hop > cfg.FrameLen {
		invalid("hop (%d) must not exceed the frame length (%d)", cfg.Hop, cfg.FrameLen)
	}
	if !(cfg.NoisePercentile > 0 && cfg.NoisePercentile < 100) {
		invalid("noise percentile must be within (0, 100): got %v", cfg.NoisePercentile)
	}
	if !(cfg.FloorMarginDB >= 0) || math.IsInf(cfg.FloorMarginDB, 0) {
		invalid("floor margin must be a finite non-negative amount of dB: got %v", cfg.FloorMarginDB)
	}
	if !(cfg.MaskPower > 0) || math.IsInf(cfg.MaskPower, 0) {
		invalid("mask power must be a finite positive number: got %v", cfg.MaskPower)
	}
	if !(cfg.SmoothingAlpha >= 0 && cfg.SmoothingAlpha < 1) {
		invalid("smoothing alpha must be within [0, 1): got %v", cfg.SmoothingAlpha)
	}
	if cfg.Workers < 0 {
		invalid("workers must not be negative: got %d", cfg.Workers)
	}
	if err := cfg.Transformer.validateSize(cfg.FrameLen); err != nil {
		mErr = multierror.Append(mErr, err)
	}

	return mErr.ErrorOrNil()
}

func (cfg Config) workers() int {
	if cfg.Workers > 0 {
		return cfg.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// ThresholdFactor is the linear gain corresponding to FloorMarginDB.
func (cfg Config) ThresholdFactor() float64 {
	return dbToGain(cfg.FloorMarginDB)
}

func dbToGain(db float64) float64 {
	return math.Pow(10, db/20)
}

// ParseConfigYAML overlays the YAML document onto DefaultConfig and
// validates the result.
func ParseConfigYAML(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("unable to parse the config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
