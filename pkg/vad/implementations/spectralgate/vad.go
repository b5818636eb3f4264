// Package spectralgate detects activity by the share of every frame's
// energy that the spectral-gating mask lets through.
package spectralgate

import (
	"context"
	"fmt"
	"time"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/spectralgate/pkg/audio"
	"github.com/xaionaro-go/spectralgate/pkg/audio/pcm"
	gate "github.com/xaionaro-go/spectralgate/pkg/spectralgate"
	"github.com/xaionaro-go/spectralgate/pkg/vad"
)

type VAD struct {
	Denoiser      *gate.Denoiser
	EncodingValue audio.EncodingPCM
	ChannelCount  audio.Channel
}

var _ vad.VAD = (*VAD)(nil)

func NewVAD(
	ctx context.Context,
	cfg gate.Config,
	encoding audio.EncodingPCM,
	channels audio.Channel,
) (*VAD, error) {
	if encoding.PCMFormat.Size() == 0 {
		return nil, fmt.Errorf("%w: unsupported PCM format: %v", gate.ErrInvalidParameter, encoding.PCMFormat)
	}
	if encoding.SampleRate == 0 {
		return nil, fmt.Errorf("%w: the sample rate must be positive", gate.ErrInvalidParameter)
	}
	if channels == 0 {
		return nil, fmt.Errorf("%w: channels must be greater than 0", gate.ErrInvalidParameter)
	}
	denoiser, err := gate.New(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debugf(ctx, "resulting chunkDuration:%v", time.Duration(cfg.Hop)*time.Second/time.Duration(encoding.SampleRate))
	return &VAD{
		Denoiser:      denoiser,
		EncodingValue: encoding,
		ChannelCount:  channels,
	}, nil
}

func (v *VAD) Close() error {
	return nil
}

func (v *VAD) Encoding(context.Context) (audio.Encoding, error) {
	return v.EncodingValue, nil
}

func (v *VAD) Channels(context.Context) (audio.Channel, error) {
	return v.ChannelCount, nil
}

// FindNextVoice treats every STFT frame as a chunk; the channels are
// downmixed first.
func (v *VAD) FindNextVoice(
	ctx context.Context,
	samples []byte,
	confidenceThreshold float64,
	minDuration time.Duration,
) (float64, time.Duration, error) {
	if len(samples) == 0 {
		return 0, -1, nil
	}

	mono, err := pcm.Decode(v.EncodingValue.PCMFormat, v.ChannelCount, samples)
	if err != nil {
		return 0, -1, fmt.Errorf("unable to decode: %w", err)
	}
	result, err := v.Denoiser.Process(ctx, gate.Signal{
		Samples:    mono,
		SampleRate: v.EncodingValue.SampleRate,
	})
	if err != nil {
		return 0, -1, err
	}

	var maxConfidence float64
	var foundVoiceFor time.Duration
	firstVoiceDetection := time.Duration(-1)
	chunkDuration := result.FrameDuration()
	for t, voiceConfidence := range result.Activity() {
		if voiceConfidence > maxConfidence {
			maxConfidence = voiceConfidence
		}

		if voiceConfidence >= confidenceThreshold {
			foundVoiceFor += chunkDuration
			if firstVoiceDetection < 0 {
				firstVoiceDetection = result.FrameCenter(t)
			}
		}

		if foundVoiceFor >= minDuration {
			break
		}
	}
	return maxConfidence, firstVoiceDetection, nil
}
