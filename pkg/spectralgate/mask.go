package spectralgate

import (
	"context"
	"fmt"
	"math"
)

// GainMask is a bins × frames matrix of gains within [0, 1].
type GainMask struct {
	*Matrix
}

// SynthesizeMask computes the raw gains
//
//	clip(magnitude / (threshold + Epsilon), 0, 1) ^ maskPower
//
// Powers above 1 sharpen the transition between suppressed and passed
// content.
func SynthesizeMask(
	ctx context.Context,
	mags *Matrix,
	profile *NoiseProfile,
	maskPower float64,
	workers int,
) (*GainMask, error) {
	if !(maskPower > 0) || math.IsInf(maskPower, 0) {
		return nil, fmt.Errorf("%w: mask power must be a finite positive number: got %v", ErrInvalidParameter, maskPower)
	}
	if len(profile.Threshold) != mags.Bins {
		return nil, fmt.Errorf("%w: the noise profile has %d bins, the spectrogram has %d", ErrShapeMismatch, len(profile.Threshold), mags.Bins)
	}

	mask := &GainMask{Matrix: NewMatrix(mags.Bins, mags.Frames)}
	err := parallelRange(ctx, workers, mags.Bins, func(ctx context.Context, lo, hi int) error {
		for bin := lo; bin < hi; bin++ {
			threshold := profile.Threshold[bin] + Epsilon
			gains := mask.Bin(bin)
			for t, magnitude := range mags.Bin(bin) {
				ratio := min(max(magnitude/threshold, 0), 1)
				gains[t] = math.Pow(ratio, maskPower)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mask, nil
}

// Smooth applies, in place, the first-order recursive low-pass
//
//	mask[bin][t] = alpha*mask[bin][t-1] + (1-alpha)*mask[bin][t]
//
// along time, which suppresses "musical noise" (isolated gain flickers) at
// the cost of smearing transients. Every bin is a strictly sequential scan
// in increasing t; bins are processed in parallel.
func (m *GainMask) Smooth(
	ctx context.Context,
	alpha float64,
	workers int,
) error {
	if !(alpha >= 0 && alpha < 1) {
		return fmt.Errorf("%w: smoothing alpha must be within [0, 1): got %v", ErrInvalidParameter, alpha)
	}
	if alpha == 0 {
		return nil
	}
	return parallelRange(ctx, workers, m.Bins, func(ctx context.Context, lo, hi int) error {
		for bin := lo; bin < hi; bin++ {
			gains := m.Bin(bin)
			for t := 1; t < len(gains); t++ {
				v := alpha*gains[t-1] + (1-alpha)*gains[t]
				// a convex combination stays within [0, 1] up to rounding
				gains[t] = min(max(v, 0), 1)
			}
		}
		return nil
	})
}

// FrameMean returns the average gain of frame t over all bins.
func (m *GainMask) FrameMean(t int) float64 {
	if m.Bins == 0 {
		return 0
	}
	var sum float64
	for bin := 0; bin < m.Bins; bin++ {
		sum += m.At(bin, t)
	}
	return sum / float64(m.Bins)
}

// Mean returns the average gain.
func (m *GainMask) Mean() float64 {
	if len(m.Values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range m.Values {
		sum += v
	}
	return sum / float64(len(m.Values))
}
