package spectralgate

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/window"
)

// Framer slices a signal into overlapping frames and applies a periodic
// Hann window to them.
//
// Frame t starts at offset t*Hop of the (optionally center-padded) signal.
// Samples outside of the signal are zeros. The frame count is chosen so
// that every sample of the padded signal belongs to at least one frame.
//
// Reconstruction divides the overlap-added frames by the accumulated
// squared window (the window is applied on analysis and on synthesis). For
// the periodic Hann window the squared window is constant-overlap-add at
// Hop = FrameLen/4, where it sums to 3*FrameLen/(8*Hop) = 1.5, so an
// identity mask reproduces the input exactly. Other hops still reconstruct
// exactly wherever the accumulated window energy is non-zero, which with
// Center enabled holds for every sample of the signal as long as
// Hop < FrameLen.
type Framer struct {
	frameLen int
	hop      int
	pad      int
	window   []float64
}

func NewFramer(frameLen, hop int, center bool) (*Framer, error) {
	if frameLen < 2 {
		return nil, fmt.Errorf("%w: frame length must be at least 2: got %d", ErrInvalidParameter, frameLen)
	}
	if hop <= 0 || hop > frameLen {
		return nil, fmt.Errorf("%w: hop must be within (0, %d]: got %d", ErrInvalidParameter, frameLen, hop)
	}

	// the symmetric window of length N+1 without its last point is the
	// periodic window of length N
	w := make([]float64, frameLen+1)
	for i := range w {
		w[i] = 1
	}
	w = window.Hann(w)[:frameLen]

	f := &Framer{
		frameLen: frameLen,
		hop:      hop,
		window:   w,
	}
	if center {
		f.pad = frameLen / 2
	}
	return f, nil
}

func (f *Framer) FrameLen() int { return f.frameLen }
func (f *Framer) Hop() int      { return f.hop }

// Pad is the amount of zeros virtually prepended to the signal.
func (f *Framer) Pad() int { return f.pad }

// Window returns the analysis (and synthesis) window. It must not be modified.
func (f *Framer) Window() []float64 { return f.window }

// NumFrames returns the amount of frames produced for a signal of the given length.
func (f *Framer) NumFrames(signalLen int) int {
	paddedLen := signalLen + 2*f.pad
	if paddedLen <= f.frameLen {
		return 1
	}
	return 1 + (paddedLen-f.frameLen+f.hop-1)/f.hop
}

// Offset returns the start of frame t relative to the first sample of the
// signal (negative for centered leading frames).
func (f *Framer) Offset(t int) int {
	return t*f.hop - f.pad
}

// Frame writes the windowed frame t of samples into dst (reallocated if its
// length is not FrameLen) and returns it.
func (f *Framer) Frame(dst []float64, samples []float64, t int) []float64 {
	if len(dst) != f.frameLen {
		dst = make([]float64, f.frameLen)
	}
	offset := f.Offset(t)
	for j := range dst {
		idx := offset + j
		if idx < 0 || idx >= len(samples) {
			dst[j] = 0
			continue
		}
		dst[j] = samples[idx] * f.window[j]
	}
	return dst
}
