package vector

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverage_TwoOrthogonalUnitVectors(t *testing.T) {
	result, err := Average([][]float32{{1, 0}, {0, 1}})
	require.NoError(t, err)
	require.Len(t, result, 2)

	// Unit vector at 45 degrees.
	assert.InDelta(t, 0.7071, result[0], 0.0001)
	assert.InDelta(t, 0.7071, result[1], 0.0001)
}

func TestAverage_SingleVectorReturnsNormalized(t *testing.T) {
	result, err := Average([][]float32{{3, 4}})
	require.NoError(t, err)

	assert.InDelta(t, 0.6, result[0], 0.0001)
	assert.InDelta(t, 0.8, result[1], 0.0001)
}

func TestAverage_EmptyInput(t *testing.T) {
	_, err := Average(nil)
	assert.ErrorIs(t, err, ErrEmptyVectorSet)

	_, err = Average([][]float32{})
	assert.ErrorIs(t, err, ErrEmptyVectorSet)
}

func TestAverage_DimensionMismatch(t *testing.T) {
	_, err := Average([][]float32{{1, 0}, {0, 1, 0}})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestAverage_ZeroVectorsStayZero(t *testing.T) {
	result, err := Average([][]float32{{0, 0, 0}, {0, 0, 0}})
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0}, result)
}

func TestAverage_PermutationInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	vectors := make([][]float32, 20)
	for i := range vectors {
		v := make([]float32, 32)
		for j := range v {
			v[j] = rng.Float32()*2 - 1
		}
		vectors[i] = v
	}

	base, err := Average(vectors)
	require.NoError(t, err)

	shuffled := make([][]float32, len(vectors))
	copy(shuffled, vectors)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	permuted, err := Average(shuffled)
	require.NoError(t, err)

	for i := range base {
		assert.InDelta(t, base[i], permuted[i], 1e-5)
	}
}

func TestAverage_ResultIsUnitLength(t *testing.T) {
	result, err := Average([][]float32{{2, 0, 0}, {0, 3, 0}, {0, 0, 5}})
	require.NoError(t, err)

	var norm float64
	for _, v := range result {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-5)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input []float32
		want  []float32
	}{
		{"empty", []float32{}, []float32{}},
		{"zero vector", []float32{0, 0}, []float32{0, 0}},
		{"already unit", []float32{1, 0}, []float32{1, 0}},
		{"scaled", []float32{0, 5}, []float32{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestDot(t *testing.T) {
	assert.InDelta(t, 1.0, Dot([]float32{1, 0}, []float32{1, 0}), 1e-6)
	assert.InDelta(t, 0.0, Dot([]float32{1, 0}, []float32{0, 1}), 1e-6)
	assert.InDelta(t, -1.0, Dot([]float32{1, 0}, []float32{-1, 0}), 1e-6)

	// Mismatched lengths use the shorter prefix.
	assert.InDelta(t, 2.0, Dot([]float32{1, 2}, []float32{2}), 1e-6)
}
