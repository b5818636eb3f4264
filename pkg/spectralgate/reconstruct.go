package spectralgate

import (
	"context"
	"fmt"
)

const (
	// minWindowEnergy is the smallest normal float64: samples with less
	// accumulated window energy are not recoverable and are output as 0.
	minWindowEnergy = 2.2250738585072014e-308

	// synthesisBatchPerWorker is how many frames each worker synthesizes
	// before the batch gets overlap-added.
	synthesisBatchPerWorker = 16
)

// Reconstruct inverts every frame of spec and overlap-adds the frames
// (weighted by the synthesis window) into a signal of signalLen samples,
// normalizing every sample by the accumulated squared window.
//
// Frames are synthesized in parallel in batches, while the accumulation is
// a sequential pass in frame order, so the result does not depend on the
// amount of workers.
func Reconstruct(
	ctx context.Context,
	framer *Framer,
	kind TransformerKind,
	spec *Spectrogram,
	signalLen int,
	workers int,
) ([]float64, error) {
	if signalLen <= 0 {
		return nil, ErrEmptyInput
	}
	frameLen := framer.FrameLen()
	if err := checkShape("the spectrogram", spec.Bins, spec.Frames, numBins(frameLen), framer.NumFrames(signalLen)); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}

	hop := framer.Hop()
	window := framer.Window()
	paddedLen := (spec.Frames-1)*hop + frameLen
	acc := make([]float64, paddedLen)
	energy := make([]float64, paddedLen)

	batchSize := workers * synthesisBatchPerWorker
	batch := make([][]float64, batchSize)
	for i := range batch {
		batch[i] = make([]float64, frameLen)
	}

	for first := 0; first < spec.Frames; first += batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		count := min(batchSize, spec.Frames-first)
		err := parallelRange(ctx, workers, count, func(ctx context.Context, lo, hi int) error {
			transformer, err := NewTransformer(kind, frameLen)
			if err != nil {
				return err
			}
			coeffs := make([]complex128, transformer.Bins())
			for i := lo; i < hi; i++ {
				t := first + i
				for bin, c := range spec.Frame(t) {
					coeffs[bin] = complex128(c)
				}
				if _, err := transformer.Inverse(batch[i], coeffs); err != nil {
					return fmt.Errorf("unable to inverse-transform frame %d: %w", t, err)
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		for i := 0; i < count; i++ {
			start := (first + i) * hop
			for j, v := range batch[i] {
				w := window[j]
				acc[start+j] += v * w
				energy[start+j] += w * w
			}
		}
	}

	out := make([]float64, signalLen)
	pad := framer.Pad()
	for i := range out {
		idx := i + pad
		if idx >= paddedLen || energy[idx] < minWindowEnergy {
			continue
		}
		out[i] = acc[idx] / energy[idx]
	}
	return out, nil
}
