package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/habiliai/memorybank/errors"
)

type (
	// Store owns the collection of memory records. All embeddings within one
	// store share the same dimension; Create rejects a mismatch against the
	// first stored record.
	Store interface {
		// Create persists a new memory and assigns its id.
		Create(ctx context.Context, content string, embedding []float32, importance float64) (*Memory, error)

		// List returns all memories ordered by creation time, most recent first.
		List(ctx context.Context) ([]*Memory, error)

		// All returns every memory in insertion order. It is the scan used by
		// deduplication and ranking and reflects writes made earlier in the
		// same logical operation.
		All(ctx context.Context) ([]*Memory, error)

		// Delete removes a memory by id. Returns ErrNotFound when absent.
		Delete(ctx context.Context, id uint) error

		// Clear removes every memory.
		Clear(ctx context.Context) error

		// Count returns the number of stored memories.
		Count(ctx context.Context) (int64, error)

		// Close releases store resources.
		Close() error
	}

	// InMemoryStore is a process-local Store used by tests and by
	// deployments that do not need persistence.
	InMemoryStore struct {
		mu       sync.RWMutex
		memories []*Memory
		nextID   uint
	}
)

var (
	_ Store = (*InMemoryStore)(nil)
)

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		nextID: 1,
	}
}

func (s *InMemoryStore) Create(ctx context.Context, content string, embedding []float32, importance float64) (*Memory, error) {
	if content == "" {
		return nil, errors.Wrapf(errors.ErrInvalidParams, "content is empty")
	}
	if len(embedding) == 0 {
		return nil, errors.Wrapf(errors.ErrInvalidParams, "embedding is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.memories) > 0 && len(s.memories[0].Embedding) != len(embedding) {
		return nil, errors.Wrapf(errors.ErrDimensionMismatch,
			"store holds %d-dimensional embeddings, got %d", len(s.memories[0].Embedding), len(embedding))
	}

	mem := &Memory{
		ID:              s.nextID,
		Content:         content,
		Embedding:       copyEmbedding(embedding),
		ImportanceScore: importance,
		CreatedAt:       time.Now(),
	}
	s.nextID++
	s.memories = append(s.memories, mem)

	return copyMemory(mem), nil
}

func (s *InMemoryStore) List(ctx context.Context) ([]*Memory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*Memory, 0, len(s.memories))
	for _, mem := range s.memories {
		results = append(results, copyMemory(mem))
	}

	sort.SliceStable(results, func(i, j int) bool {
		if !results[i].CreatedAt.Equal(results[j].CreatedAt) {
			return results[i].CreatedAt.After(results[j].CreatedAt)
		}
		return results[i].ID > results[j].ID
	})

	return results, nil
}

func (s *InMemoryStore) All(ctx context.Context) ([]*Memory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*Memory, 0, len(s.memories))
	for _, mem := range s.memories {
		results = append(results, copyMemory(mem))
	}

	return results, nil
}

func (s *InMemoryStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, mem := range s.memories {
		if mem.ID == id {
			s.memories = append(s.memories[:i], s.memories[i+1:]...)
			return nil
		}
	}

	return errors.Wrapf(errors.ErrNotFound, "memory %d", id)
}

func (s *InMemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.memories = nil
	return nil
}

func (s *InMemoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.memories)), nil
}

func (s *InMemoryStore) Close() error {
	return nil
}

// copies keep callers from aliasing a record across ranking calls
func copyMemory(mem *Memory) *Memory {
	result := *mem
	result.Embedding = copyEmbedding(mem.Embedding)
	return &result
}

func copyEmbedding(embedding []float32) []float32 {
	if embedding == nil {
		return nil
	}
	result := make([]float32, len(embedding))
	copy(result, embedding)
	return result
}
