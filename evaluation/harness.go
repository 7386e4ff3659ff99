package evaluation

import (
	"context"
	"log/slog"

	"github.com/habiliai/memorybank/errors"
	"github.com/habiliai/memorybank/memory"
)

type (
	// Harness replays a labeled dataset through the store and measures
	// retrieval quality. A run is destructive: it clears the store, inserts
	// every dataset memory without deduplication, then ranks each query by
	// plain semantic similarity. Runs assume no concurrent writers.
	Harness struct {
		logger   *slog.Logger
		store    memory.Store
		embedder memory.Embedder
		ranker   *memory.HybridRanker
	}

	// CaseResult is the per-query outcome of an evaluation run.
	CaseResult struct {
		Query    string
		Expected string

		Top1Correct bool
		Top3Hit     bool

		// RankPosition is the 1-indexed rank of the expected memory in the
		// full ranking, or 0 when it was not found.
		RankPosition int

		Top []memory.ScoredResult
	}
)

func NewHarness(logger *slog.Logger, store memory.Store, embedder memory.Embedder) *Harness {
	return &Harness{
		logger:   logger,
		store:    store,
		embedder: embedder,
		ranker:   memory.NewHybridRanker(memory.SemanticOnlyWeights()),
	}
}

// Run executes the full evaluation state machine: reset, populate, evaluate,
// aggregate. The empty-dataset case is guarded so aggregates never divide by
// zero.
func (h *Harness) Run(ctx context.Context, cases []Case) (*Report, error) {
	if len(cases) == 0 {
		return nil, errors.WithStack(errors.ErrEmptyDataset)
	}

	if err := h.store.Clear(ctx); err != nil {
		return nil, err
	}

	// every dataset memory is stored, even textual duplicates
	for _, c := range cases {
		embeddings, err := h.embedder.Embed(ctx, c.Memory)
		if err != nil {
			return nil, err
		}
		if _, err := h.store.Create(ctx, c.Memory, embeddings[0], 0.5); err != nil {
			return nil, err
		}
	}

	report := &Report{
		Total: len(cases),
		Cases: make([]CaseResult, 0, len(cases)),
	}

	var (
		correctTop1       int
		correctTop3       int
		reciprocalRankSum float64
	)

	for i, c := range cases {
		result, err := h.evaluateCase(ctx, c)
		if err != nil {
			return nil, err
		}

		if result.Top1Correct {
			correctTop1++
		}
		if result.Top3Hit {
			correctTop3++
		}
		if result.RankPosition > 0 {
			reciprocalRankSum += 1 / float64(result.RankPosition)
		}

		h.logger.Info("evaluated query",
			"index", i+1,
			"query", c.Query,
			"top1_correct", result.Top1Correct,
			"top3_hit", result.Top3Hit,
			"rank", result.RankPosition,
		)

		report.Cases = append(report.Cases, *result)
	}

	total := float64(report.Total)
	report.Top1Accuracy = float64(correctTop1) / total
	report.Top3HitRate = float64(correctTop3) / total
	// a case whose expected memory is never found contributes 0 but still
	// counts toward the mean
	report.MRR = reciprocalRankSum / total

	return report, nil
}

func (h *Harness) evaluateCase(ctx context.Context, c Case) (*CaseResult, error) {
	embeddings, err := h.embedder.Embed(ctx, c.Query)
	if err != nil {
		return nil, err
	}

	memories, err := h.store.All(ctx)
	if err != nil {
		return nil, err
	}

	// full ranking, no cutoff
	ranked, err := h.ranker.Rank(c.Query, embeddings[0], memories, 0)
	if err != nil {
		return nil, err
	}

	result := &CaseResult{
		Query:    c.Query,
		Expected: c.ExpectedMemory,
	}

	if len(ranked) > 0 {
		result.Top1Correct = ranked[0].Content == c.ExpectedMemory
	}
	for rank, r := range ranked {
		if r.Content == c.ExpectedMemory {
			result.RankPosition = rank + 1
			break
		}
	}
	result.Top3Hit = result.RankPosition >= 1 && result.RankPosition <= 3

	topN := 3
	if len(ranked) < topN {
		topN = len(ranked)
	}
	result.Top = ranked[:topN]

	return result, nil
}
