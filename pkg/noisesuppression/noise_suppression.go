package noisesuppression

import (
	"context"

	"github.com/xaionaro-go/spectralgate/pkg/audio"
)

// NoiseSuppression removes noise from PCM buffers of the Encoding and
// Channels it reports.
type NoiseSuppression interface {
	audio.AbstractAnalyzer

	// ChunkSize is the granularity (in bytes) the input length must be a
	// multiple of.
	ChunkSize() uint

	// SuppressNoise writes the denoised input into outputVoice (of the same
	// length) and returns the implementation-specific confidence that the
	// input contained anything but noise, within [0, 1].
	SuppressNoise(ctx context.Context, input []byte, outputVoice []byte) (float64, error)
}
