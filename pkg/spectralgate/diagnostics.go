package spectralgate

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultAmin is the magnitude floor of the dB conversion.
	DefaultAmin = 1e-5

	// DefaultTopDB is the dynamic range kept below the reference.
	DefaultTopDB = 80.0
)

// Diagnostics are the magnitude spectrograms before and after denoising in
// dB relative to their respective maxima, for visualization.
type Diagnostics struct {
	Original *Matrix
	Denoised *Matrix

	SampleRate float64
	FrameLen   int
	Hop        int
	Pad        int
}

func (r *Result) Diagnostics() Diagnostics {
	return Diagnostics{
		Original:   AmplitudeToDB(r.Magnitudes, DefaultAmin, DefaultTopDB),
		Denoised:   AmplitudeToDB(r.Denoised.Magnitudes(), DefaultAmin, DefaultTopDB),
		SampleRate: float64(r.Input.SampleRate),
		FrameLen:   r.framer.FrameLen(),
		Hop:        r.framer.Hop(),
		Pad:        r.framer.Pad(),
	}
}

// FrameTime returns the time of the center of frame t in seconds.
func (d Diagnostics) FrameTime(t int) float64 {
	return float64(t*d.Hop-d.Pad+d.FrameLen/2) / d.SampleRate
}

// BinFrequency returns the center frequency of the bin in Hz.
func (d Diagnostics) BinFrequency(bin int) float64 {
	return float64(bin) * d.SampleRate / float64(d.FrameLen)
}

// AmplitudeToDB converts magnitudes to 20*log10(magnitude/reference) with
// the maximum magnitude as the reference. The reference is the maximum of
// mags alone, so two matrices converted separately are not on a shared scale. Magnitudes are floored at amin
// and the result is floored at topDB below the maximum (topDB <= 0 disables
// the latter).
func AmplitudeToDB(mags *Matrix, amin, topDB float64) *Matrix {
	out := NewMatrix(mags.Bins, mags.Frames)
	if len(mags.Values) == 0 {
		return out
	}
	ref := math.Max(amin, floats.Max(mags.Values))
	refDB := 20 * math.Log10(ref)
	for i, v := range mags.Values {
		out.Values[i] = 20*math.Log10(math.Max(amin, v)) - refDB
	}
	if topDB > 0 {
		lowest := floats.Max(out.Values) - topDB
		for i, v := range out.Values {
			out.Values[i] = math.Max(v, lowest)
		}
	}
	return out
}
