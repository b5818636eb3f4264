// Package spectralgate implements a spectral-gating noise suppressor for
// mono recordings.
//
// The signal is analyzed with a short-time Fourier transform. A noise floor
// is estimated per frequency bin as a low percentile of that bin's
// magnitudes over the whole recording, and every time-frequency cell gets a
// gain in [0, 1] depending on how far its magnitude is above the floor. The
// gains are smoothed over time, applied to the magnitudes (keeping the
// original phase) and the signal is resynthesized by overlap-add.
//
// The estimation is non-causal: the whole recording must be available
// before any output can be produced.
package spectralgate
