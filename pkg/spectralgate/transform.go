package spectralgate

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Transformer converts a real frame into its one-sided spectrum
// (Size/2+1 bins) and back.
//
// A Transformer may keep scratch buffers and is not safe for concurrent
// use: each worker creates its own.
type Transformer interface {
	Size() int
	Bins() int

	// Forward writes the unnormalized one-sided spectrum of frame into dst
	// (reallocated if its length is not Bins) and returns it.
	Forward(dst []complex128, frame []float64) ([]complex128, error)

	// Inverse is the exact inverse of Forward: the spectrum is extended
	// conjugate-symmetrically, transformed back and scaled by 1/Size; the
	// imaginary residue is discarded.
	Inverse(dst []float64, spectrum []complex128) ([]float64, error)
}

type TransformerKind string

const (
	// TransformerGonum is a real-input FFT of any length.
	TransformerGonum = TransformerKind("gonum")

	// TransformerGoDSP is a complex FFT of any length.
	TransformerGoDSP = TransformerKind("godsp")

	// TransformerFourier is a radix-2 complex FFT, the frame length must
	// be a power of two.
	TransformerFourier = TransformerKind("fourier")
)

func (k TransformerKind) String() string {
	return string(k)
}

// Set implements pflag.Value.
func (k *TransformerKind) Set(s string) error {
	candidate := TransformerKind(strings.ToLower(strings.TrimSpace(s)))
	switch candidate {
	case TransformerGonum, TransformerGoDSP, TransformerFourier:
	default:
		return fmt.Errorf("unknown transformer '%s', expected one of: %s, %s, %s", s, TransformerGonum, TransformerGoDSP, TransformerFourier)
	}
	*k = candidate
	return nil
}

// Type implements pflag.Value.
func (k *TransformerKind) Type() string {
	return "transformer"
}

func (k TransformerKind) validateSize(size int) error {
	switch k {
	case TransformerGonum, TransformerGoDSP:
		return nil
	case TransformerFourier:
		if size >= 2 && size&(size-1) != 0 {
			return fmt.Errorf("%w: transformer '%s' requires a power-of-two frame length: got %d", ErrInvalidParameter, k, size)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown transformer '%s'", ErrInvalidParameter, k)
	}
}

func NewTransformer(kind TransformerKind, size int) (Transformer, error) {
	if size < 2 {
		return nil, fmt.Errorf("%w: transform size must be at least 2: got %d", ErrInvalidParameter, size)
	}
	if err := kind.validateSize(size); err != nil {
		return nil, err
	}
	switch kind {
	case TransformerGonum:
		return newGonumTransformer(size), nil
	case TransformerGoDSP:
		return newGoDSPTransformer(size), nil
	case TransformerFourier:
		return newFourierTransformer(size), nil
	}
	panic("unreachable")
}

func numBins(size int) int {
	return size/2 + 1
}

func checkFrame(size int, frame []float64) error {
	if len(frame) != size {
		return fmt.Errorf("%w: expected a frame of %d samples, got %d", ErrShapeMismatch, size, len(frame))
	}
	return nil
}

func checkSpectrum(size int, spectrum []complex128) error {
	if len(spectrum) != numBins(size) {
		return fmt.Errorf("%w: expected a spectrum of %d bins, got %d", ErrShapeMismatch, numBins(size), len(spectrum))
	}
	return nil
}

type gonumTransformer struct {
	fft *fourier.FFT
	n   int
}

func newGonumTransformer(size int) *gonumTransformer {
	return &gonumTransformer{
		fft: fourier.NewFFT(size),
		n:   size,
	}
}

func (t *gonumTransformer) Size() int { return t.n }
func (t *gonumTransformer) Bins() int { return numBins(t.n) }

func (t *gonumTransformer) Forward(dst []complex128, frame []float64) ([]complex128, error) {
	if err := checkFrame(t.n, frame); err != nil {
		return nil, err
	}
	if len(dst) != t.Bins() {
		dst = make([]complex128, t.Bins())
	}
	return t.fft.Coefficients(dst, frame), nil
}

func (t *gonumTransformer) Inverse(dst []float64, spectrum []complex128) ([]float64, error) {
	if err := checkSpectrum(t.n, spectrum); err != nil {
		return nil, err
	}
	if len(dst) != t.n {
		dst = make([]float64, t.n)
	}
	// the real inverse implies the conjugate-symmetric extension and
	// ignores the imaginary parts of the DC and Nyquist bins
	dst = t.fft.Sequence(dst, spectrum)
	scale := 1 / float64(t.n)
	for i := range dst {
		dst[i] *= scale
	}
	return dst, nil
}

// hermitianExtend writes the full length-n spectrum whose first n/2+1 bins
// are spectrum and whose remaining bins are their mirrored conjugates.
func hermitianExtend(dst []complex128, spectrum []complex128, n int) []complex128 {
	if len(dst) != n {
		dst = make([]complex128, n)
	}
	copy(dst, spectrum)
	dst[0] = complex(real(dst[0]), 0)
	if n%2 == 0 {
		dst[n/2] = complex(real(dst[n/2]), 0)
	}
	for k := 1; k < len(spectrum); k++ {
		if n-k < len(spectrum) {
			continue
		}
		c := spectrum[k]
		dst[n-k] = complex(real(c), -imag(c))
	}
	return dst
}
