package spectralgate

import (
	"fmt"
	"math"
	"time"

	"github.com/xaionaro-go/spectralgate/pkg/audio"
)

// Signal is a mono recording. The denoiser never modifies Samples.
type Signal struct {
	Samples    []float64
	SampleRate audio.SampleRate
}

func (s Signal) Duration() time.Duration {
	if s.SampleRate == 0 {
		return 0
	}
	return time.Duration(float64(len(s.Samples)) / float64(s.SampleRate) * float64(time.Second))
}

func (s Signal) Validate() error {
	if len(s.Samples) == 0 {
		return ErrEmptyInput
	}
	if s.SampleRate == 0 {
		return fmt.Errorf("%w: the sample rate must be positive", ErrInvalidParameter)
	}
	for idx, v := range s.Samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: sample %d is not a finite number: %v", ErrInvalidParameter, idx, v)
		}
	}
	return nil
}
