package memory_test

import (
	"testing"
	"time"

	"github.com/habiliai/memorybank/errors"
	"github.com/habiliai/memorybank/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_Create(t *testing.T) {
	store := memory.NewInMemoryStore()
	ctx := t.Context()

	mem, err := store.Create(ctx, "I live in Paris", []float32{1, 0, 0}, 0.5)
	require.NoError(t, err)
	assert.Equal(t, uint(1), mem.ID)
	assert.Equal(t, "I live in Paris", mem.Content)
	assert.Equal(t, 0.5, mem.ImportanceScore)
	assert.False(t, mem.CreatedAt.IsZero())

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestInMemoryStore_CreateValidation(t *testing.T) {
	store := memory.NewInMemoryStore()
	ctx := t.Context()

	_, err := store.Create(ctx, "", []float32{1, 0}, 0.5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidParams))

	_, err = store.Create(ctx, "no embedding", nil, 0.5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidParams))
}

func TestInMemoryStore_DimensionInvariant(t *testing.T) {
	store := memory.NewInMemoryStore()
	ctx := t.Context()

	_, err := store.Create(ctx, "first", []float32{1, 0, 0}, 0.5)
	require.NoError(t, err)

	_, err = store.Create(ctx, "second", []float32{1, 0}, 0.5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDimensionMismatch))
}

func TestInMemoryStore_ListMostRecentFirst(t *testing.T) {
	store := memory.NewInMemoryStore()
	ctx := t.Context()

	for _, content := range []string{"first", "second", "third"} {
		_, err := store.Create(ctx, content, []float32{1, 0}, 0.5)
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
	}

	memories, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, memories, 3)
	assert.Equal(t, "third", memories[0].Content)
	assert.Equal(t, "second", memories[1].Content)
	assert.Equal(t, "first", memories[2].Content)
}

func TestInMemoryStore_AllKeepsInsertionOrder(t *testing.T) {
	store := memory.NewInMemoryStore()
	ctx := t.Context()

	for _, content := range []string{"first", "second", "third"} {
		_, err := store.Create(ctx, content, []float32{1, 0}, 0.5)
		require.NoError(t, err)
	}

	memories, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, memories, 3)
	assert.Equal(t, "first", memories[0].Content)
	assert.Equal(t, "second", memories[1].Content)
	assert.Equal(t, "third", memories[2].Content)
}

func TestInMemoryStore_ScanReturnsCopies(t *testing.T) {
	store := memory.NewInMemoryStore()
	ctx := t.Context()

	_, err := store.Create(ctx, "fact", []float32{1, 0}, 0.5)
	require.NoError(t, err)

	memories, err := store.All(ctx)
	require.NoError(t, err)
	memories[0].Embedding[0] = 42
	memories[0].Content = "mutated"

	fresh, err := store.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, float32(1), fresh[0].Embedding[0])
	assert.Equal(t, "fact", fresh[0].Content)
}

func TestInMemoryStore_Delete(t *testing.T) {
	store := memory.NewInMemoryStore()
	ctx := t.Context()

	mem, err := store.Create(ctx, "fact", []float32{1, 0}, 0.5)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, mem.ID))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestInMemoryStore_DeleteNotFound(t *testing.T) {
	store := memory.NewInMemoryStore()
	ctx := t.Context()

	_, err := store.Create(ctx, "fact", []float32{1, 0}, 0.5)
	require.NoError(t, err)

	err = store.Delete(ctx, 999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "failed delete must not change the record count")
}

func TestInMemoryStore_Clear(t *testing.T) {
	store := memory.NewInMemoryStore()
	ctx := t.Context()

	for range 3 {
		_, err := store.Create(ctx, "fact", []float32{1, 0}, 0.5)
		require.NoError(t, err)
	}

	require.NoError(t, store.Clear(ctx))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
