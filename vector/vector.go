package vector

import (
	"fmt"
	"math"
)

// Average computes the mean of the given vectors and normalizes the result
// to unit length. Callers may pass the vectors in any order; summation order
// does not affect the result beyond floating-point tolerance.
//
// Returns ErrEmptyVectorSet for an empty input and ErrDimensionMismatch when
// any vector's length differs from the first vector's length. If the mean is
// the zero vector it is returned as-is rather than dividing by zero.
func Average(vectors [][]float32) ([]float32, error) {
	if len(vectors) == 0 {
		return nil, ErrEmptyVectorSet
	}

	dim := len(vectors[0])
	sums := make([]float64, dim)
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector %d has dimension %d, expected %d",
				ErrDimensionMismatch, i, len(v), dim)
		}
		for j, val := range v {
			sums[j] += float64(val)
		}
	}

	mean := make([]float32, dim)
	count := float64(len(vectors))
	for j, sum := range sums {
		mean[j] = float32(sum / count)
	}

	return Normalize(mean), nil
}

// Normalize normalizes a vector to unit length.
// Returns a new vector. If the input is a zero vector, returns a zero vector.
func Normalize(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	// Calculate magnitude
	var magnitude float32
	for _, val := range v {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))

	// Can't normalize zero vector
	if magnitude == 0 {
		result := make([]float32, len(v))
		return result
	}

	// Normalize
	result := make([]float32, len(v))
	for i, val := range v {
		result[i] = val / magnitude
	}
	return result
}

// Dot calculates the dot product of two vectors. For unit-normalized vectors
// this equals their cosine similarity.
func Dot(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
