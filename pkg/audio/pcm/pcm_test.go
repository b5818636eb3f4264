package pcm

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/spectralgate/pkg/audio"
	"github.com/xaionaro-go/spectralgate/pkg/audio/types"
)

func TestDecode(t *testing.T) {
	t.Run("S16LE_Mono", func(t *testing.T) {
		data := make([]byte, 6)
		binary.LittleEndian.PutUint16(data[0:], uint16(0))
		binary.LittleEndian.PutUint16(data[2:], uint16(16384))
		v := int16(-32768)
		binary.LittleEndian.PutUint16(data[4:], uint16(v))

		samples, err := Decode(audio.PCMFormatS16LE, 1, data)
		require.NoError(t, err)
		assert.Equal(t, []float64{0, 0.5, -1}, samples, spew.Sdump(data))
	})

	t.Run("U8_Stereo_Downmix", func(t *testing.T) {
		samples, err := Decode(audio.PCMFormatU8, 2, []byte{128, 192, 0, 128})
		require.NoError(t, err)
		require.Len(t, samples, 2)
		assert.InDelta(t, 0.25, samples[0], 1e-9)
		assert.InDelta(t, -0.5, samples[1], 1e-9)
	})

	t.Run("S24BE_Negative", func(t *testing.T) {
		data := []byte{0xC0, 0x00, 0x00}
		samples, err := Decode(audio.PCMFormatS24BE, 1, data)
		require.NoError(t, err)
		assert.Equal(t, []float64{-0.5}, samples, spew.Sdump(data))
	})

	t.Run("TruncatedInput", func(t *testing.T) {
		_, err := Decode(audio.PCMFormatS16LE, 2, make([]byte, 6))
		require.Error(t, err)
	})

	t.Run("ZeroChannels", func(t *testing.T) {
		_, err := Decode(audio.PCMFormatS16LE, 0, make([]byte, 4))
		require.Error(t, err)
	})
}

func TestEncodeDecode(t *testing.T) {
	samples := []float64{0, 0.25, -0.25, 0.5, -0.999}
	for f := types.PCMFormatU8; f < types.EndOfPCMFormat; f++ {
		t.Run(f.String(), func(t *testing.T) {
			data, err := Encode(f, samples)
			require.NoError(t, err)
			require.Len(t, data, len(samples)*int(f.Size()))

			decoded, err := Decode(f, 1, data)
			require.NoError(t, err)
			require.Len(t, decoded, len(samples))
			for idx := range samples {
				assert.InDelta(t, samples[idx], decoded[idx], 1.0/64, "sample %d: %s", idx, spew.Sdump(data))
			}
		})
	}
}

func TestEncodeSaturates(t *testing.T) {
	data, err := Encode(audio.PCMFormatS16LE, []float64{1.5, -1.5, 1})
	require.NoError(t, err)
	assert.Equal(t, int16(math.MaxInt16), int16(binary.LittleEndian.Uint16(data[0:])))
	assert.Equal(t, int16(math.MinInt16), int16(binary.LittleEndian.Uint16(data[2:])))
	assert.Equal(t, int16(math.MaxInt16), int16(binary.LittleEndian.Uint16(data[4:])))

	data, err = Encode(audio.PCMFormatS64LE, []float64{1})
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), int64(binary.LittleEndian.Uint64(data)))
}

func TestEncodeToLengthMismatch(t *testing.T) {
	err := EncodeTo(audio.PCMFormatFloat32LE, make([]byte, 3), []float64{0})
	require.Error(t, err)
}
