package spectralgate

import (
	"fmt"
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allTransformerKinds = []TransformerKind{
	TransformerGonum,
	TransformerGoDSP,
	TransformerFourier,
}

func TestNewTransformerInvalid(t *testing.T) {
	_, err := NewTransformer(TransformerFourier, 1000)
	require.ErrorIs(t, err, ErrInvalidParameter)
	_, err = NewTransformer(TransformerKind("fftw"), 1024)
	require.ErrorIs(t, err, ErrInvalidParameter)
	for _, kind := range allTransformerKinds {
		_, err = NewTransformer(kind, 1)
		require.ErrorIs(t, err, ErrInvalidParameter)
	}
}

func TestTransformerRoundTrip(t *testing.T) {
	for _, kind := range allTransformerKinds {
		sizes := []int{2, 16, 1024}
		if kind != TransformerFourier {
			sizes = append(sizes, 15, 1000)
		}
		for _, size := range sizes {
			t.Run(fmt.Sprintf("%s/%d", kind, size), func(t *testing.T) {
				transformer, err := NewTransformer(kind, size)
				require.NoError(t, err)
				require.Equal(t, size, transformer.Size())
				require.Equal(t, size/2+1, transformer.Bins())

				frame := whiteNoise(int64(size), size, 1)
				spectrum, err := transformer.Forward(nil, frame)
				require.NoError(t, err)
				require.Len(t, spectrum, transformer.Bins())

				restored, err := transformer.Inverse(nil, spectrum)
				require.NoError(t, err)
				require.Len(t, restored, size)
				assert.Less(t, maxAbsDiff(frame, restored), 1e-10)
			})
		}
	}
}

func TestTransformerTwoPoints(t *testing.T) {
	for _, kind := range allTransformerKinds {
		t.Run(kind.String(), func(t *testing.T) {
			transformer, err := NewTransformer(kind, 2)
			require.NoError(t, err)

			spectrum, err := transformer.Forward(nil, []float64{0.75, -0.25})
			require.NoError(t, err)
			require.Len(t, spectrum, 2)
			assert.InDelta(t, 0.5, real(spectrum[0]), 1e-15)
			assert.InDelta(t, 1.0, real(spectrum[1]), 1e-15)
			assert.InDelta(t, 0, imag(spectrum[0]), 1e-15)
			assert.InDelta(t, 0, imag(spectrum[1]), 1e-15)

			restored, err := transformer.Inverse(nil, []complex128{0.5, 1})
			require.NoError(t, err)
			assert.InDeltaSlice(t, []float64{0.75, -0.25}, restored, 1e-15)
		})
	}
}

func TestTransformerCosine(t *testing.T) {
	const (
		size      = 16
		bin       = 3
		amplitude = 0.75
	)
	frame := make([]float64, size)
	for i := range frame {
		frame[i] = amplitude * math.Cos(2*math.Pi*bin*float64(i)/size)
	}

	for _, kind := range allTransformerKinds {
		t.Run(kind.String(), func(t *testing.T) {
			transformer, err := NewTransformer(kind, size)
			require.NoError(t, err)
			spectrum, err := transformer.Forward(make([]complex128, transformer.Bins()), frame)
			require.NoError(t, err)
			for k, c := range spectrum {
				expected := 0.0
				if k == bin {
					expected = amplitude * size / 2
				}
				assert.InDelta(t, expected, cmplx.Abs(c), 1e-12, "bin:%d", k)
			}
		})
	}
}

func TestTransformersAgree(t *testing.T) {
	const size = 512
	frame := whiteNoise(1, size, 1)

	var reference []complex128
	for _, kind := range allTransformerKinds {
		transformer, err := NewTransformer(kind, size)
		require.NoError(t, err)
		spectrum, err := transformer.Forward(nil, frame)
		require.NoError(t, err)
		if reference == nil {
			reference = spectrum
			continue
		}
		for k := range spectrum {
			assert.InDelta(t, cmplx.Abs(reference[k]), cmplx.Abs(spectrum[k]), 1e-9, "%s bin:%d", kind, k)
		}
	}
}

func TestTransformerShapeMismatch(t *testing.T) {
	for _, kind := range allTransformerKinds {
		transformer, err := NewTransformer(kind, 16)
		require.NoError(t, err)

		_, err = transformer.Forward(nil, make([]float64, 15))
		require.ErrorIs(t, err, ErrShapeMismatch)
		_, err = transformer.Inverse(nil, make([]complex128, 16))
		require.ErrorIs(t, err, ErrShapeMismatch)
	}
}

func TestHermitianExtend(t *testing.T) {
	spectrum := []complex128{1 + 1i, 2 + 3i, 4 - 5i, 6 + 7i}
	full := hermitianExtend(nil, spectrum, 6)
	assert.Equal(t, []complex128{1, 2 + 3i, 4 - 5i, 6, 4 + 5i, 2 - 3i}, full)

	full = hermitianExtend(nil, spectrum[:3], 5)
	assert.Equal(t, []complex128{1, 2 + 3i, 4 - 5i, 4 + 5i, 2 - 3i}, full)
}

func BenchmarkTransformer(b *testing.B) {
	for _, kind := range allTransformerKinds {
		for _, size := range []int{256, 1024, 4096} {
			b.Run(fmt.Sprintf("%s/%d", kind, size), func(b *testing.B) {
				transformer, err := NewTransformer(kind, size)
				require.NoError(b, err)
				frame := whiteNoise(1, size, 1)
				spectrum := make([]complex128, transformer.Bins())
				restored := make([]float64, size)
				b.ReportAllocs()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					spectrum, _ = transformer.Forward(spectrum, frame)
					restored, _ = transformer.Inverse(restored, spectrum)
				}
			})
		}
	}
}
