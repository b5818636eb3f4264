package noisesuppression

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/spectralgate/pkg/audio"
)

func TestDummy(t *testing.T) {
	ctx := context.Background()
	d := NewDummy(audio.EncodingPCM{PCMFormat: audio.PCMFormatS16LE, SampleRate: 16000}, 2)
	defer d.Close()

	require.Equal(t, uint(4), d.ChunkSize())
	channels, err := d.Channels(ctx)
	require.NoError(t, err)
	require.Equal(t, audio.Channel(2), channels)

	input := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	output := make([]byte, len(input))
	confidence, err := d.SuppressNoise(ctx, input, output)
	require.NoError(t, err)
	require.Equal(t, 1.0, confidence)
	require.Equal(t, input, output)

	_, err = d.SuppressNoise(ctx, input, output[:4])
	require.Error(t, err)
}
