package vector

import "errors"

var (
	// ErrEmptyVectorSet is returned when aggregating zero vectors.
	ErrEmptyVectorSet = errors.New("empty vector set")

	// ErrDimensionMismatch is returned when input vectors differ in length.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)
