package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/habiliai/memorybank/config"
	"github.com/habiliai/memorybank/errors"
)

type (
	// Service ties the store, embedder, extractor, deduplicator and ranker
	// together into the operations the outer surfaces call.
	Service interface {
		// RememberText extracts durable facts from free text and stores the
		// ones that are not near-duplicates of existing memories. Returns
		// the newly stored memories.
		RememberText(ctx context.Context, text string) ([]*Memory, error)

		// Remember stores a single pre-extracted fact unless it is a
		// near-duplicate. The returned bool reports whether it was stored.
		Remember(ctx context.Context, content string, importance float64) (*Memory, bool, error)

		// Search ranks stored memories against the query with the hybrid
		// score and returns the top results.
		Search(ctx context.Context, query string, topK int) ([]ScoredResult, error)

		// Retrieve ranks stored memories by plain semantic similarity. Chat
		// grounding and the evaluation harness use this policy; it is
		// intentionally distinct from Search.
		Retrieve(ctx context.Context, query string, topK int) ([]ScoredResult, error)

		// List returns all memories, most recent first.
		List(ctx context.Context) ([]*Memory, error)

		// Forget deletes a memory by id.
		Forget(ctx context.Context, id uint) error

		// Clear removes every memory.
		Clear(ctx context.Context) error
	}

	service struct {
		logger    *slog.Logger
		store     Store
		embedder  Embedder
		extractor Extractor
		dedup     *Deduplicator

		hybridRanker   *HybridRanker
		semanticRanker *HybridRanker

		defaultImportance float64

		// serializes dedup-check-then-write so concurrent insertions cannot
		// both pass the duplicate check, and so later facts in a batch see
		// earlier ones
		writeMu sync.Mutex
	}
)

var (
	_ Service = (*service)(nil)
)

func NewService(
	logger *slog.Logger,
	store Store,
	embedder Embedder,
	extractor Extractor,
	conf *config.MemoryConfig,
) Service {
	return &service{
		logger:    logger,
		store:     store,
		embedder:  embedder,
		extractor: extractor,
		dedup:     NewDeduplicator(store, conf.DuplicateThreshold),
		hybridRanker: NewHybridRanker(RankWeights{
			Semantic:   conf.SemanticWeight,
			Keyword:    conf.KeywordWeight,
			Importance: conf.ImportanceWeight,
		}),
		semanticRanker:    NewHybridRanker(SemanticOnlyWeights()),
		defaultImportance: conf.DefaultImportance,
	}
}

func (s *service) RememberText(ctx context.Context, text string) ([]*Memory, error) {
	if text == "" {
		return nil, errors.Wrapf(errors.ErrInvalidParams, "text is required")
	}

	facts, err := s.extractor.ExtractFacts(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(facts) == 0 {
		s.logger.Info("no durable facts extracted")
		return nil, nil
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var created []*Memory
	for _, fact := range facts {
		mem, stored, err := s.insert(ctx, fact, s.defaultImportance)
		if err != nil {
			return nil, err
		}
		if !stored {
			s.logger.Info("skipped near-duplicate fact", "fact", fact)
			continue
		}
		created = append(created, mem)
	}

	s.logger.Info("stored memories", "extracted", len(facts), "stored", len(created))

	return created, nil
}

func (s *service) Remember(ctx context.Context, content string, importance float64) (*Memory, bool, error) {
	if content == "" {
		return nil, false, errors.Wrapf(errors.ErrInvalidParams, "content is required")
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	return s.insert(ctx, content, importance)
}

// insert embeds, dedup-checks and stores one fact. Callers must hold writeMu.
func (s *service) insert(ctx context.Context, content string, importance float64) (*Memory, bool, error) {
	embeddings, err := s.embedder.Embed(ctx, content)
	if err != nil {
		return nil, false, err
	}

	duplicate, err := s.dedup.IsDuplicate(ctx, embeddings[0])
	if err != nil {
		return nil, false, err
	}
	if duplicate {
		return nil, false, nil
	}

	mem, err := s.store.Create(ctx, content, embeddings[0], importance)
	if err != nil {
		return nil, false, err
	}

	return mem, true, nil
}

func (s *service) Search(ctx context.Context, query string, topK int) ([]ScoredResult, error) {
	return s.rank(ctx, s.hybridRanker, query, topK)
}

func (s *service) Retrieve(ctx context.Context, query string, topK int) ([]ScoredResult, error) {
	return s.rank(ctx, s.semanticRanker, query, topK)
}

func (s *service) rank(ctx context.Context, ranker *HybridRanker, query string, topK int) ([]ScoredResult, error) {
	if query == "" {
		return nil, errors.Wrapf(errors.ErrInvalidParams, "query is required")
	}

	embeddings, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	memories, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}

	return ranker.Rank(query, embeddings[0], memories, topK)
}

func (s *service) List(ctx context.Context) ([]*Memory, error) {
	return s.store.List(ctx)
}

func (s *service) Forget(ctx context.Context, id uint) error {
	return s.store.Delete(ctx, id)
}

func (s *service) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}
