package vad

import (
	"context"
	"time"

	"github.com/xaionaro-go/spectralgate/pkg/audio"
)

// VAD finds where a recording has content other than background noise.
type VAD interface {
	audio.AbstractAnalyzer

	// FindNextVoice returns the highest confidence seen and the position of
	// the first chunk with confidence at or above confidenceThreshold (-1 if
	// none). The scan stops once minDuration of such chunks is accumulated.
	FindNextVoice(
		_ context.Context,
		samples []byte,
		confidenceThreshold float64,
		minDuration time.Duration,
	) (float64, time.Duration, error)
}
