package evaluation_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/habiliai/memorybank/errors"
	"github.com/habiliai/memorybank/evaluation"
	"github.com/habiliai/memorybank/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	vectors map[string][]float32
}

func (e *fakeEmbedder) Embed(ctx context.Context, texts ...string) ([][]float32, error) {
	embeddings := make([][]float32, 0, len(texts))
	for _, text := range texts {
		vector, ok := e.vectors[text]
		if !ok {
			return nil, errors.Errorf("no fixture embedding for %q", text)
		}
		embeddings = append(embeddings, vector)
	}
	return embeddings, nil
}

func newHarness(embedder memory.Embedder) (*evaluation.Harness, memory.Store) {
	store := memory.NewInMemoryStore()
	return evaluation.NewHarness(slog.New(slog.DiscardHandler), store, embedder), store
}

func TestHarness_PerfectRetrieval(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"I live in Paris":    {1, 0, 0},
		"I own a cat":        {0, 1, 0},
		"Where do I live?":   {0.9, 0.1, 0},
		"Do I have any pet?": {0.1, 0.9, 0},
	}}
	harness, _ := newHarness(embedder)

	cases := []evaluation.Case{
		{Memory: "I live in Paris", Query: "Where do I live?", ExpectedMemory: "I live in Paris"},
		{Memory: "I own a cat", Query: "Do I have any pet?", ExpectedMemory: "I own a cat"},
	}

	report, err := harness.Run(t.Context(), cases)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1.0, report.Top1Accuracy)
	assert.Equal(t, 1.0, report.Top3HitRate)
	assert.Equal(t, 1.0, report.MRR)
}

func TestHarness_ExpectedNeverFound(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"I live in Paris":  {1, 0},
		"Where do I live?": {1, 0},
	}}
	harness, _ := newHarness(embedder)

	// expected content matches no stored memory, so the case contributes 0
	// yet still counts toward the mean
	cases := []evaluation.Case{
		{Memory: "I live in Paris", Query: "Where do I live?", ExpectedMemory: "I live in Berlin"},
	}

	report, err := harness.Run(t.Context(), cases)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Total)
	assert.Equal(t, 0.0, report.Top1Accuracy)
	assert.Equal(t, 0.0, report.Top3HitRate)
	assert.Equal(t, 0.0, report.MRR)
	require.Len(t, report.Cases, 1)
	assert.Equal(t, 0, report.Cases[0].RankPosition)
}

func TestHarness_RankPositions(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"memory A": {1, 0, 0},
		"memory B": {0, 1, 0},
		"query":    {0.2, 1, 0},
	}}
	harness, _ := newHarness(embedder)

	cases := []evaluation.Case{
		// expected memory ranks second behind B
		{Memory: "memory A", Query: "query", ExpectedMemory: "memory A"},
		{Memory: "memory B", Query: "query", ExpectedMemory: "memory B"},
	}

	report, err := harness.Run(t.Context(), cases)
	require.NoError(t, err)

	assert.Equal(t, 0.5, report.Top1Accuracy)
	assert.Equal(t, 1.0, report.Top3HitRate)
	assert.InDelta(t, (0.5+1.0)/2, report.MRR, 1e-9)
	assert.Equal(t, 2, report.Cases[0].RankPosition)
	assert.Equal(t, 1, report.Cases[1].RankPosition)
}

func TestHarness_EmptyDataset(t *testing.T) {
	harness, _ := newHarness(&fakeEmbedder{})

	_, err := harness.Run(t.Context(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEmptyDataset))
}

func TestHarness_ClearsStoreBeforePopulating(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"I live in Paris":  {1, 0},
		"Where do I live?": {1, 0},
	}}
	harness, store := newHarness(embedder)

	_, err := store.Create(t.Context(), "stale memory", []float32{0, 1}, 0.5)
	require.NoError(t, err)

	cases := []evaluation.Case{
		{Memory: "I live in Paris", Query: "Where do I live?", ExpectedMemory: "I live in Paris"},
	}

	report, err := harness.Run(t.Context(), cases)
	require.NoError(t, err)
	assert.Equal(t, 1.0, report.Top1Accuracy)

	count, err := store.Count(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestHarness_DuplicateDatasetMemoriesAllStored(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"I live in Paris":  {1, 0},
		"Where do I live?": {1, 0},
	}}
	harness, store := newHarness(embedder)

	// population skips deduplication, textual duplicates included
	cases := []evaluation.Case{
		{Memory: "I live in Paris", Query: "Where do I live?", ExpectedMemory: "I live in Paris"},
		{Memory: "I live in Paris", Query: "Where do I live?", ExpectedMemory: "I live in Paris"},
	}

	_, err := harness.Run(t.Context(), cases)
	require.NoError(t, err)

	count, err := store.Count(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestReport_WriteFile(t *testing.T) {
	report := &evaluation.Report{
		Total:        3,
		Top1Accuracy: 2.0 / 3.0,
		Top3HitRate:  1.0,
		MRR:          0.8333,
	}

	path := filepath.Join(t.TempDir(), "evaluation_report.txt")
	require.NoError(t, report.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "Total Queries: 3")
	assert.Contains(t, content, "Top-1 Accuracy: 0.6667")
	assert.Contains(t, content, "Top-3 Hit Rate: 1.0000")
	assert.Contains(t, content, "Mean Reciprocal Rank (MRR): 0.8333")
}

func TestReport_Summary(t *testing.T) {
	report := &evaluation.Report{
		Total:        1,
		Top1Accuracy: 1,
		Top3HitRate:  1,
		MRR:          1,
		Cases: []evaluation.CaseResult{
			{
				Query:        "Where do I live?",
				Expected:     "I live in Paris",
				Top1Correct:  true,
				Top3Hit:      true,
				RankPosition: 1,
				Top: []memory.ScoredResult{
					{Content: "I live in Paris", FinalScore: 0.97},
				},
			},
		},
	}

	summary := report.Summary()
	assert.Contains(t, summary, "Query 1: Where do I live?")
	assert.Contains(t, summary, "Expected Memory: I live in Paris")
	assert.Contains(t, summary, "Expected Memory Rank: 1")
	assert.Contains(t, summary, "Top-1 Accuracy: 1.0000")
}
