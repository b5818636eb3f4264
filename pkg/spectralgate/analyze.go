package spectralgate

import (
	"context"
	"fmt"
)

// Analyze computes the spectrogram of samples (the forward STFT). Frames
// are transformed independently and in parallel.
func Analyze(
	ctx context.Context,
	framer *Framer,
	kind TransformerKind,
	samples []float64,
	workers int,
) (*Spectrogram, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyInput
	}

	frameLen := framer.FrameLen()
	spec := NewSpectrogram(numBins(frameLen), framer.NumFrames(len(samples)))
	err := parallelRange(ctx, workers, spec.Frames, func(ctx context.Context, lo, hi int) error {
		transformer, err := NewTransformer(kind, frameLen)
		if err != nil {
			return err
		}
		frame := make([]float64, frameLen)
		coeffs := make([]complex128, transformer.Bins())
		for t := lo; t < hi; t++ {
			frame = framer.Frame(frame, samples, t)
			coeffs, err = transformer.Forward(coeffs, frame)
			if err != nil {
				return fmt.Errorf("unable to transform frame %d: %w", t, err)
			}
			dst := spec.Frame(t)
			for bin, c := range coeffs {
				dst[bin] = Coefficient(c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return spec, nil
}
