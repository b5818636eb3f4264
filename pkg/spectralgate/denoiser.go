package spectralgate

import (
	"context"
	"fmt"

	"github.com/facebookincubator/go-belt/tool/logger"
)

// Denoiser removes stationary background noise from mono recordings by
// spectral gating. It is safe for concurrent use.
type Denoiser struct {
	config Config
	framer *Framer
}

func New(cfg Config) (*Denoiser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	framer, err := NewFramer(cfg.FrameLen, cfg.Hop, cfg.Center)
	if err != nil {
		return nil, err
	}
	return &Denoiser{
		config: cfg,
		framer: framer,
	}, nil
}

func (d *Denoiser) Config() Config {
	return d.config
}

func (d *Denoiser) Framer() *Framer {
	return d.framer
}

// Result holds the denoised signal together with the intermediate data it
// was derived from.
type Result struct {
	Input        Signal
	Output       Signal
	Spectrogram  *Spectrogram
	Magnitudes   *Matrix
	NoiseProfile *NoiseProfile
	Mask         *GainMask
	Denoised     *Spectrogram

	framer *Framer
}

// Denoise returns the denoised copy of the signal.
func (d *Denoiser) Denoise(ctx context.Context, signal Signal) (Signal, error) {
	result, err := d.Process(ctx, signal)
	if err != nil {
		return Signal{}, err
	}
	return result.Output, nil
}

// Process runs the whole pipeline: analysis, noise floor estimation, mask
// synthesis and smoothing, masking and resynthesis. It either denoises the
// whole signal or fails without a partial result.
func (d *Denoiser) Process(ctx context.Context, signal Signal) (_ret *Result, _err error) {
	logger.Tracef(ctx, "Process, len:%d", len(signal.Samples))
	defer func() { logger.Tracef(ctx, "/Process, len:%d: %v", len(signal.Samples), _err) }()

	if err := signal.Validate(); err != nil {
		return nil, err
	}
	cfg := d.config
	workers := cfg.workers()

	spec, err := Analyze(ctx, d.framer, cfg.Transformer, signal.Samples, workers)
	if err != nil {
		return nil, fmt.Errorf("unable to compute the spectrogram: %w", err)
	}
	logger.Debugf(ctx, "STFT computed: %d frequency bins × %d frames", spec.Bins, spec.Frames)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mags := spec.Magnitudes()
	profile, err := EstimateNoiseProfile(ctx, mags, cfg.NoisePercentile, cfg.FloorMarginDB, workers)
	if err != nil {
		return nil, fmt.Errorf("unable to estimate the noise profile: %w", err)
	}
	logger.Debugf(ctx, "noise profile: %d bins, %d of them silent", len(profile.Floor), countZeros(profile.Threshold))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mask, err := SynthesizeMask(ctx, mags, profile, cfg.MaskPower, workers)
	if err != nil {
		return nil, fmt.Errorf("unable to synthesize the gain mask: %w", err)
	}
	if err := mask.Smooth(ctx, cfg.SmoothingAlpha, workers); err != nil {
		return nil, fmt.Errorf("unable to smooth the gain mask: %w", err)
	}
	logger.Debugf(ctx, "mean gain: %f", mask.Mean())
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	denoised, err := ApplyMask(ctx, spec, mask, workers)
	if err != nil {
		return nil, fmt.Errorf("unable to apply the gain mask: %w", err)
	}

	samples, err := Reconstruct(ctx, d.framer, cfg.Transformer, denoised, len(signal.Samples), workers)
	if err != nil {
		return nil, fmt.Errorf("unable to reconstruct the signal: %w", err)
	}

	return &Result{
		Input:  signal,
		Output: Signal{
			Samples:    samples,
			SampleRate: signal.SampleRate,
		},
		Spectrogram:  spec,
		Magnitudes:   mags,
		NoiseProfile: profile,
		Mask:         mask,
		Denoised:     denoised,
		framer:       d.framer,
	}, nil
}

func countZeros(values []float64) int {
	count := 0
	for _, v := range values {
		if v == 0 {
			count++
		}
	}
	return count
}
