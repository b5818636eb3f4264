package spectralgate

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalValidate(t *testing.T) {
	require.NoError(t, Signal{Samples: []float64{0}, SampleRate: 8000}.Validate())
	require.ErrorIs(t, Signal{SampleRate: 8000}.Validate(), ErrEmptyInput)
	require.ErrorIs(t, Signal{Samples: []float64{0}}.Validate(), ErrInvalidParameter)
	require.ErrorIs(t, Signal{Samples: []float64{0, math.NaN()}, SampleRate: 8000}.Validate(), ErrInvalidParameter)
	require.ErrorIs(t, Signal{Samples: []float64{math.Inf(-1)}, SampleRate: 8000}.Validate(), ErrInvalidParameter)
}

func TestSignalDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, Signal{Samples: make([]float64, 24000), SampleRate: 16000}.Duration())
	assert.Equal(t, time.Duration(0), Signal{Samples: make([]float64, 10)}.Duration())
}
