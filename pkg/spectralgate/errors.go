package spectralgate

import (
	"errors"
)

var (
	// ErrInvalidParameter is returned for out-of-range or inconsistent
	// configuration and for malformed input signals. It is always reported
	// before any processing starts.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrEmptyInput is returned for a zero-length signal.
	ErrEmptyInput = errors.New("empty input")

	// ErrShapeMismatch is returned when derived arrays disagree about their
	// dimensions. It indicates a programming error on the caller side.
	ErrShapeMismatch = errors.New("shape mismatch")
)
