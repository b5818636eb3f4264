// Package spectralgate exposes the spectral-gating denoiser as a
// noisesuppression.NoiseSuppression working on whole mono PCM buffers.
package spectralgate

import (
	"context"
	"fmt"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/spectralgate/pkg/audio"
	"github.com/xaionaro-go/spectralgate/pkg/audio/pcm"
	"github.com/xaionaro-go/spectralgate/pkg/noisesuppression"
	gate "github.com/xaionaro-go/spectralgate/pkg/spectralgate"
)

// SpectralGate estimates the noise floor over the whole buffer, so a
// buffer should contain the whole recording rather than a short chunk of it.
type SpectralGate struct {
	Denoiser      *gate.Denoiser
	EncodingValue audio.EncodingPCM
}

var _ noisesuppression.NoiseSuppression = (*SpectralGate)(nil)

func New(
	cfg gate.Config,
	encoding audio.EncodingPCM,
) (*SpectralGate, error) {
	if encoding.PCMFormat.Size() == 0 {
		return nil, fmt.Errorf("%w: unsupported PCM format: %v", gate.ErrInvalidParameter, encoding.PCMFormat)
	}
	if encoding.SampleRate == 0 {
		return nil, fmt.Errorf("%w: the sample rate must be positive", gate.ErrInvalidParameter)
	}
	denoiser, err := gate.New(cfg)
	if err != nil {
		return nil, err
	}
	return &SpectralGate{
		Denoiser:      denoiser,
		EncodingValue: encoding,
	}, nil
}

func (s *SpectralGate) Close() error {
	return nil
}

func (s *SpectralGate) Encoding(context.Context) (audio.Encoding, error) {
	return s.EncodingValue, nil
}

func (s *SpectralGate) Channels(context.Context) (audio.Channel, error) {
	return 1, nil
}

func (s *SpectralGate) ChunkSize() uint {
	return s.EncodingValue.BytesPerSample()
}

// SuppressNoise returns the mean gain applied.
func (s *SpectralGate) SuppressNoise(ctx context.Context, input []byte, outputVoice []byte) (_ret float64, _err error) {
	logger.Tracef(ctx, "SuppressNoise, len:%d", len(input))
	defer func() { logger.Tracef(ctx, "/SuppressNoise, len:%d: %v", len(input), _err) }()

	if len(input) != len(outputVoice) {
		return 0, fmt.Errorf("lengths of input and output slices are not equal: %d != %d", len(input), len(outputVoice))
	}
	if len(input)%int(s.ChunkSize()) != 0 {
		return 0, fmt.Errorf("the size of the input is not a multiple of ChunkSize: %d %% %d != 0", len(input), s.ChunkSize())
	}

	format := s.EncodingValue.PCMFormat
	samples, err := pcm.Decode(format, 1, input)
	if err != nil {
		return 0, fmt.Errorf("unable to decode: %w", err)
	}
	result, err := s.Denoiser.Process(ctx, gate.Signal{
		Samples:    samples,
		SampleRate: s.EncodingValue.SampleRate,
	})
	if err != nil {
		return 0, err
	}
	if err := pcm.EncodeTo(format, outputVoice, result.Output.Samples); err != nil {
		return 0, fmt.Errorf("unable to encode: %w", err)
	}
	return result.Mask.Mean(), nil
}
