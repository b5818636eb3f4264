package spectralgate

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Coefficient is a single time-frequency value. Magnitude and phase are
// both derived from the stored complex number, so replacing one of them
// never leaves the other stale.
type Coefficient complex128

func (c Coefficient) Magnitude() float64 {
	return cmplx.Abs(complex128(c))
}

// Phase returns the angle in (-π, π].
func (c Coefficient) Phase() float64 {
	phase := cmplx.Phase(complex128(c))
	if phase == -math.Pi {
		return math.Pi
	}
	return phase
}

// WithMagnitude returns the coefficient of the given magnitude and the same phase.
func (c Coefficient) WithMagnitude(magnitude float64) Coefficient {
	return Coefficient(cmplx.Rect(magnitude, c.Phase()))
}

// Spectrogram is a sequence of one-sided spectra in chronological order.
type Spectrogram struct {
	Bins   int
	Frames int

	// frame-major: the spectrum of frame t is values[t*Bins:(t+1)*Bins]
	values []Coefficient
}

func NewSpectrogram(bins, frames int) *Spectrogram {
	return &Spectrogram{
		Bins:   bins,
		Frames: frames,
		values: make([]Coefficient, bins*frames),
	}
}

func (s *Spectrogram) At(bin, frame int) Coefficient {
	return s.values[frame*s.Bins+bin]
}

func (s *Spectrogram) Set(bin, frame int, c Coefficient) {
	s.values[frame*s.Bins+bin] = c
}

// Frame returns the spectrum of the frame; it shares memory with the spectrogram.
func (s *Spectrogram) Frame(frame int) []Coefficient {
	return s.values[frame*s.Bins : (frame+1)*s.Bins]
}

// Magnitudes returns the bins × frames magnitude matrix.
func (s *Spectrogram) Magnitudes() *Matrix {
	m := NewMatrix(s.Bins, s.Frames)
	for t := 0; t < s.Frames; t++ {
		for bin, c := range s.Frame(t) {
			m.Set(bin, t, c.Magnitude())
		}
	}
	return m
}

// Matrix is a dense bins × frames matrix of real values, stored bin-major
// so that a bin's history over time is contiguous.
type Matrix struct {
	Bins   int
	Frames int
	Values []float64
}

func NewMatrix(bins, frames int) *Matrix {
	return &Matrix{
		Bins:   bins,
		Frames: frames,
		Values: make([]float64, bins*frames),
	}
}

func (m *Matrix) At(bin, frame int) float64 {
	return m.Values[bin*m.Frames+frame]
}

func (m *Matrix) Set(bin, frame int, v float64) {
	m.Values[bin*m.Frames+frame] = v
}

// Bin returns the row of the bin; it shares memory with the matrix.
func (m *Matrix) Bin(bin int) []float64 {
	return m.Values[bin*m.Frames : (bin+1)*m.Frames]
}

func checkShape(what string, bins, frames, expectedBins, expectedFrames int) error {
	if bins != expectedBins || frames != expectedFrames {
		return fmt.Errorf("%w: %s is %d×%d, expected %d×%d", ErrShapeMismatch, what, bins, frames, expectedBins, expectedFrames)
	}
	return nil
}
