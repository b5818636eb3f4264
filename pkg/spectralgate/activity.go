package spectralgate

import (
	"time"
)

// Activity returns, for every frame, the share of the frame's spectral
// energy that passed the gain mask. Frames made of content well above the
// noise floor are close to 1, noise-only frames are close to 0. Silent
// frames are 0.
func (r *Result) Activity() []float64 {
	activity := make([]float64, r.Mask.Frames)
	for t := range activity {
		var total, passed float64
		for bin := 0; bin < r.Mask.Bins; bin++ {
			magnitude := r.Magnitudes.At(bin, t)
			gain := r.Mask.At(bin, t)
			total += magnitude * magnitude
			passed += gain * gain * magnitude * magnitude
		}
		if total > 0 {
			activity[t] = passed / total
		}
	}
	return activity
}

// FrameCenter returns the time of the center of frame t relative to the
// beginning of the signal.
func (r *Result) FrameCenter(t int) time.Duration {
	center := r.framer.Offset(t) + r.framer.FrameLen()/2
	return time.Duration(center) * time.Second / time.Duration(r.Input.SampleRate)
}

// FrameDuration is the time between the starts of consecutive frames.
func (r *Result) FrameDuration() time.Duration {
	return time.Duration(r.framer.Hop()) * time.Second / time.Duration(r.Input.SampleRate)
}
