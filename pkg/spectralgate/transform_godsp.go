package spectralgate

import (
	"github.com/mjibson/go-dsp/fft"
)

type goDSPTransformer struct {
	n    int
	full []complex128
}

func newGoDSPTransformer(size int) *goDSPTransformer {
	return &goDSPTransformer{
		n:    size,
		full: make([]complex128, size),
	}
}

func (t *goDSPTransformer) Size() int { return t.n }
func (t *goDSPTransformer) Bins() int { return numBins(t.n) }

func (t *goDSPTransformer) Forward(dst []complex128, frame []float64) ([]complex128, error) {
	if err := checkFrame(t.n, frame); err != nil {
		return nil, err
	}
	if len(dst) != t.Bins() {
		dst = make([]complex128, t.Bins())
	}
	copy(dst, fft.FFTReal(frame))
	return dst, nil
}

func (t *goDSPTransformer) Inverse(dst []float64, spectrum []complex128) ([]float64, error) {
	if err := checkSpectrum(t.n, spectrum); err != nil {
		return nil, err
	}
	if len(dst) != t.n {
		dst = make([]float64, t.n)
	}
	t.full = hermitianExtend(t.full, spectrum, t.n)
	// IFFT is normalized by 1/n already
	for i, v := range fft.IFFT(t.full) {
		dst[i] = real(v)
	}
	return dst, nil
}
