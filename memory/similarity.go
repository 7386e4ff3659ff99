package memory

import (
	"github.com/habiliai/memorybank/errors"
	"gonum.org/v1/gonum/floats"
)

// CosineSimilarity returns the normalized dot product of two embeddings in
// [-1, 1]. A zero-magnitude vector cannot be normalized; instead of
// propagating a NaN the function falls back to 0.0. Comparing embeddings of
// different dimensions indicates an embedder contract violation and fails
// fast.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, errors.Wrapf(errors.ErrDimensionMismatch, "got %d and %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, errors.Wrapf(errors.ErrInvalidParams, "embedding is empty")
	}

	v1 := toFloat64(a)
	v2 := toFloat64(b)

	norm1 := floats.Norm(v1, 2)
	norm2 := floats.Norm(v2, 2)
	if norm1 == 0 || norm2 == 0 {
		// degenerate vector, defined fallback instead of dividing by zero
		return 0, nil
	}

	floats.Scale(1/norm1, v1)
	floats.Scale(1/norm2, v2)

	return floats.Dot(v1, v2), nil
}

func toFloat64(v []float32) []float64 {
	result := make([]float64, len(v))
	for i, x := range v {
		result[i] = float64(x)
	}
	return result
}
