package memory

import (
	"context"
)

// Deduplicator decides whether a candidate fact is a near-duplicate of an
// existing memory. Every check is a full linear scan of the store, O(N) per
// candidate and O(F*N) for a batch of F facts. There is no index; this is a
// known scaling ceiling for large corpora.
type Deduplicator struct {
	store     Store
	threshold float64
}

const DefaultDuplicateThreshold = 0.90

func NewDeduplicator(store Store, threshold float64) *Deduplicator {
	if threshold <= 0 {
		threshold = DefaultDuplicateThreshold
	}
	return &Deduplicator{
		store:     store,
		threshold: threshold,
	}
}

// IsDuplicate reports whether any stored memory has cosine similarity at or
// above the threshold with the candidate embedding. The scan goes through
// Store.All, so facts inserted earlier in the same batch are visible to
// later checks.
func (d *Deduplicator) IsDuplicate(ctx context.Context, embedding []float32) (bool, error) {
	existing, err := d.store.All(ctx)
	if err != nil {
		return false, err
	}

	for _, mem := range existing {
		similarity, err := CosineSimilarity(embedding, mem.Embedding)
		if err != nil {
			return false, err
		}
		if similarity >= d.threshold {
			return true, nil
		}
	}

	return false, nil
}
