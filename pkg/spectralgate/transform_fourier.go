package spectralgate

import (
	"fmt"

	"github.com/brettbuddin/fourier"
)

type fourierTransformer struct {
	n   int
	buf []complex128
}

func newFourierTransformer(size int) *fourierTransformer {
	return &fourierTransformer{
		n:   size,
		buf: make([]complex128, size),
	}
}

// forward transforms t.buf in place. fourier.Forward leaves 2-point
// buffers untouched, so that butterfly is done here.
func (t *fourierTransformer) forward() error {
	if len(t.buf) == 2 {
		a, b := t.buf[0], t.buf[1]
		t.buf[0], t.buf[1] = a+b, a-b
		return nil
	}
	return fourier.Forward(t.buf)
}

func (t *fourierTransformer) Size() int { return t.n }
func (t *fourierTransformer) Bins() int { return numBins(t.n) }

func (t *fourierTransformer) Forward(dst []complex128, frame []float64) ([]complex128, error) {
	if err := checkFrame(t.n, frame); err != nil {
		return nil, err
	}
	for i, v := range frame {
		t.buf[i] = complex(v, 0)
	}
	if err := t.forward(); err != nil {
		return nil, fmt.Errorf("unable to compute the forward FFT: %w", err)
	}
	if len(dst) != t.Bins() {
		dst = make([]complex128, t.Bins())
	}
	copy(dst, t.buf)
	return dst, nil
}

func (t *fourierTransformer) Inverse(dst []float64, spectrum []complex128) ([]float64, error) {
	if err := checkSpectrum(t.n, spectrum); err != nil {
		return nil, err
	}
	if len(dst) != t.n {
		dst = make([]float64, t.n)
	}

	// ifft(X) = conj(fft(conj(X)))/n; only the real part is kept, so the
	// outer conjugation is a no-op
	t.buf = hermitianExtend(t.buf, spectrum, t.n)
	for i, c := range t.buf {
		t.buf[i] = complex(real(c), -imag(c))
	}
	if err := t.forward(); err != nil {
		return nil, fmt.Errorf("unable to compute the inverse FFT: %w", err)
	}
	scale := 1 / float64(t.n)
	for i, c := range t.buf {
		dst[i] = real(c) * scale
	}
	return dst, nil
}
