package spectralgate

import (
	"context"
	"fmt"
	"math"
	"slices"
)

// NoiseProfile is the stationary noise estimate of a recording.
type NoiseProfile struct {
	// Floor is the noise floor magnitude of each frequency bin.
	Floor []float64

	// Threshold is Floor raised by the floor margin; magnitudes at or above
	// it pass unattenuated.
	Threshold []float64
}

// EstimateNoiseProfile takes the given percentile of each bin's magnitudes
// over all frames as that bin's noise floor, assuming that the quieter
// part of every bin's history is noise. This holds when the wanted signal
// is sparse relative to the recording duration.
func EstimateNoiseProfile(
	ctx context.Context,
	mags *Matrix,
	noisePercentile float64,
	floorMarginDB float64,
	workers int,
) (*NoiseProfile, error) {
	if !(noisePercentile > 0 && noisePercentile < 100) {
		return nil, fmt.Errorf("%w: noise percentile must be within (0, 100): got %v", ErrInvalidParameter, noisePercentile)
	}
	if !(floorMarginDB >= 0) || math.IsInf(floorMarginDB, 0) {
		return nil, fmt.Errorf("%w: floor margin must be a finite non-negative amount of dB: got %v", ErrInvalidParameter, floorMarginDB)
	}
	if mags.Bins <= 0 || mags.Frames <= 0 {
		return nil, fmt.Errorf("%w: the magnitude matrix is empty: %d×%d", ErrShapeMismatch, mags.Bins, mags.Frames)
	}

	factor := dbToGain(floorMarginDB)
	profile := &NoiseProfile{
		Floor:     make([]float64, mags.Bins),
		Threshold: make([]float64, mags.Bins),
	}
	err := parallelRange(ctx, workers, mags.Bins, func(ctx context.Context, lo, hi int) error {
		sorted := make([]float64, mags.Frames)
		for bin := lo; bin < hi; bin++ {
			copy(sorted, mags.Bin(bin))
			slices.Sort(sorted)
			floor := percentile(sorted, noisePercentile)
			profile.Floor[bin] = floor
			profile.Threshold[bin] = floor * factor
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// percentile linearly interpolates between the closest ranks of the sorted values.
func percentile(sorted []float64, p float64) float64 {
	pos := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
