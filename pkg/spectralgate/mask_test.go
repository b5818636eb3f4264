package spectralgate

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomMagnitudes(seed int64, bins, frames int) *Matrix {
	mags := NewMatrix(bins, frames)
	for i, v := range whiteNoise(seed, bins*frames, 1) {
		mags.Values[i] = math.Abs(v)
	}
	return mags
}

func TestSynthesizeMask(t *testing.T) {
	ctx := context.Background()

	mags := NewMatrix(2, 4)
	copy(mags.Bin(0), []float64{0, 1, 2, 4})
	copy(mags.Bin(1), []float64{0, 1e-9, 1, 0})
	profile := &NoiseProfile{
		Floor:     []float64{1, 0},
		Threshold: []float64{2, 0},
	}

	mask, err := SynthesizeMask(ctx, mags, profile, 2, 1)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.25, 1, 1}, mask.Bin(0), 1e-9)
	// a zero threshold passes any non-zero magnitude and blocks silence
	assert.InDeltaSlice(t, []float64{0, 1, 1, 0}, mask.Bin(1), 1e-12)
}

func TestSynthesizeMaskInvalid(t *testing.T) {
	ctx := context.Background()
	mags := NewMatrix(2, 3)
	profile := &NoiseProfile{Floor: make([]float64, 2), Threshold: make([]float64, 2)}

	for _, power := range []float64{0, -1, math.Inf(1), math.NaN()} {
		_, err := SynthesizeMask(ctx, mags, profile, power, 1)
		require.ErrorIs(t, err, ErrInvalidParameter, "power:%v", power)
	}

	profile = &NoiseProfile{Floor: make([]float64, 3), Threshold: make([]float64, 3)}
	_, err := SynthesizeMask(ctx, mags, profile, 2, 1)
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestGainMaskSmooth(t *testing.T) {
	ctx := context.Background()

	mask := &GainMask{Matrix: NewMatrix(1, 5)}
	copy(mask.Bin(0), []float64{1, 0, 0, 1, 1})
	require.NoError(t, mask.Smooth(ctx, 0.5, 1))
	assert.InDeltaSlice(t, []float64{1, 0.5, 0.25, 0.625, 0.8125}, mask.Bin(0), 1e-15)

	raw := []float64{0.2, 0.9, 0.4}
	mask = &GainMask{Matrix: NewMatrix(1, 3)}
	copy(mask.Bin(0), raw)
	require.NoError(t, mask.Smooth(ctx, 0, 1))
	assert.Equal(t, raw, mask.Bin(0))

	for _, alpha := range []float64{1, -0.5, math.NaN()} {
		require.ErrorIs(t, mask.Smooth(ctx, alpha, 1), ErrInvalidParameter, "alpha:%v", alpha)
	}
}

func TestGainMaskBounds(t *testing.T) {
	ctx := context.Background()
	mags := randomMagnitudes(1, 64, 200)
	profile, err := EstimateNoiseProfile(ctx, mags, 40, 10, 4)
	require.NoError(t, err)

	mask, err := SynthesizeMask(ctx, mags, profile, 2.5, 4)
	require.NoError(t, err)
	checkBounds := func() {
		for i, v := range mask.Values {
			require.False(t, v < 0 || v > 1, "index:%d value:%v", i, v)
		}
	}
	checkBounds()

	firstFrame := make([]float64, mask.Bins)
	for bin := range firstFrame {
		firstFrame[bin] = mask.At(bin, 0)
	}
	require.NoError(t, mask.Smooth(ctx, 0.7, 4))
	checkBounds()
	for bin, v := range firstFrame {
		assert.Equal(t, v, mask.At(bin, 0), "bin:%d", bin)
	}
}

func TestMaskPowerMonotonic(t *testing.T) {
	ctx := context.Background()
	mags := randomMagnitudes(2, 32, 100)
	profile, err := EstimateNoiseProfile(ctx, mags, 40, 10, 2)
	require.NoError(t, err)

	spec := NewSpectrogram(mags.Bins, mags.Frames)
	for frame := 0; frame < mags.Frames; frame++ {
		for bin := 0; bin < mags.Bins; bin++ {
			spec.Set(bin, frame, Coefficient(complex(mags.At(bin, frame), 0)))
		}
	}

	var prev *Matrix
	for _, power := range []float64{1, 1.5, 2.5, 4} {
		mask, err := SynthesizeMask(ctx, mags, profile, power, 2)
		require.NoError(t, err)
		require.NoError(t, mask.Smooth(ctx, 0.7, 2))
		denoised, err := ApplyMask(ctx, spec, mask, 2)
		require.NoError(t, err)
		cur := denoised.Magnitudes()
		if prev != nil {
			for i := range cur.Values {
				require.LessOrEqual(t, cur.Values[i], prev.Values[i]+1e-12, "power:%v index:%d", power, i)
			}
		}
		prev = cur
	}
}

func TestGainMaskMean(t *testing.T) {
	mask := &GainMask{Matrix: NewMatrix(2, 2)}
	copy(mask.Values, []float64{0, 0.5, 1, 0.5})
	assert.Equal(t, 0.5, mask.Mean())
	assert.Equal(t, 0.5, mask.FrameMean(0))
	assert.Equal(t, 0.5, mask.FrameMean(1))
	assert.Equal(t, 0.0, (&GainMask{Matrix: NewMatrix(0, 0)}).Mean())
}
