package memory_test

import (
	"testing"

	"github.com/habiliai/memorybank/errors"
	"github.com/habiliai/memorybank/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity_Identity(t *testing.T) {
	v := []float32{0.3, -1.2, 4.5}

	similarity, err := memory.CosineSimilarity(v, v)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, similarity, 1e-9)
}

func TestCosineSimilarity_Negation(t *testing.T) {
	v := []float32{2, -3, 1}
	neg := []float32{-2, 3, -1}

	similarity, err := memory.CosineSimilarity(v, neg)
	require.NoError(t, err)
	assert.InDelta(t, -1.0, similarity, 1e-9)
}

func TestCosineSimilarity_Orthogonal(t *testing.T) {
	similarity, err := memory.CosineSimilarity([]float32{1, 0}, []float32{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, similarity, 1e-9)
}

func TestCosineSimilarity_NotNormalizedInputs(t *testing.T) {
	// magnitude must not matter, direction does
	similarity, err := memory.CosineSimilarity([]float32{10, 0}, []float32{0.5, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, similarity, 1e-9)
}

func TestCosineSimilarity_ZeroVectorFallback(t *testing.T) {
	similarity, err := memory.CosineSimilarity([]float32{0, 0, 0}, []float32{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 0.0, similarity)
}

func TestCosineSimilarity_DimensionMismatch(t *testing.T) {
	_, err := memory.CosineSimilarity([]float32{1, 2}, []float32{1, 2, 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDimensionMismatch))
}
