package spectralgate

import (
	"context"
)

// ApplyMask returns a new spectrogram with every magnitude multiplied by its
// gain and the original phase kept.
func ApplyMask(
	ctx context.Context,
	spec *Spectrogram,
	mask *GainMask,
	workers int,
) (*Spectrogram, error) {
	if err := checkShape("the gain mask", mask.Bins, mask.Frames, spec.Bins, spec.Frames); err != nil {
		return nil, err
	}

	out := NewSpectrogram(spec.Bins, spec.Frames)
	err := parallelRange(ctx, workers, spec.Frames, func(ctx context.Context, lo, hi int) error {
		for t := lo; t < hi; t++ {
			dst := out.Frame(t)
			for bin, c := range spec.Frame(t) {
				dst[bin] = c.WithMagnitude(c.Magnitude() * mask.At(bin, t))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
