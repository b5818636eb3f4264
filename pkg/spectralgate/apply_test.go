package spectralgate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMask(t *testing.T) {
	ctx := context.Background()

	spec := NewSpectrogram(2, 2)
	spec.Set(0, 0, 3+4i)
	spec.Set(1, 0, -2)
	spec.Set(0, 1, 1i)
	spec.Set(1, 1, -1-1i)

	mask := &GainMask{Matrix: NewMatrix(2, 2)}
	mask.Set(0, 0, 0.5)
	mask.Set(1, 0, 1)
	mask.Set(0, 1, 0)
	mask.Set(1, 1, 0.25)

	out, err := ApplyMask(ctx, spec, mask, 2)
	require.NoError(t, err)
	for frame := 0; frame < 2; frame++ {
		for bin := 0; bin < 2; bin++ {
			in := spec.At(bin, frame)
			got := out.At(bin, frame)
			assert.InDelta(t, in.Magnitude()*mask.At(bin, frame), got.Magnitude(), 1e-15)
			if got.Magnitude() > 0 {
				assert.InDelta(t, in.Phase(), got.Phase(), 1e-15)
			}
		}
	}

	// the input is left intact
	assert.Equal(t, Coefficient(3+4i), spec.At(0, 0))
}

func TestApplyMaskShapeMismatch(t *testing.T) {
	ctx := context.Background()
	spec := NewSpectrogram(3, 4)
	for _, mask := range []*GainMask{
		{Matrix: NewMatrix(3, 3)},
		{Matrix: NewMatrix(4, 4)},
	} {
		_, err := ApplyMask(ctx, spec, mask, 1)
		require.ErrorIs(t, err, ErrShapeMismatch)
	}
}
