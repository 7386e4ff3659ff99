package memory

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

type (
	// RankWeights blend the three ranking signals into one score. The ranker
	// does not validate that they sum to 1; supplying sane weights is the
	// caller's responsibility.
	RankWeights struct {
		Semantic   float64
		Keyword    float64
		Importance float64
	}

	// HybridRanker scores stored memories against a query by blending
	// semantic similarity, lexical overlap and the stored importance weight.
	HybridRanker struct {
		weights RankWeights
	}
)

func DefaultRankWeights() RankWeights {
	return RankWeights{
		Semantic:   0.7,
		Keyword:    0.2,
		Importance: 0.1,
	}
}

// SemanticOnlyWeights degrade the hybrid score to plain semantic similarity.
// The evaluation harness ranks with these.
func SemanticOnlyWeights() RankWeights {
	return RankWeights{
		Semantic:   1,
		Keyword:    0,
		Importance: 0,
	}
}

func NewHybridRanker(weights RankWeights) *HybridRanker {
	return &HybridRanker{weights: weights}
}

// Rank scores every memory against the query and returns at most topK
// results ordered by final score, highest first. The sort is stable so ties
// keep their original scan order, which makes rankings deterministic. Pass
// topK <= 0 to get the full ranking.
func (r *HybridRanker) Rank(query string, queryEmbedding []float32, memories []*Memory, topK int) ([]ScoredResult, error) {
	results := make([]ScoredResult, 0, len(memories))

	for _, mem := range memories {
		similarity, err := CosineSimilarity(queryEmbedding, mem.Embedding)
		if err != nil {
			return nil, err
		}

		semantic := (similarity + 1) / 2 // [-1,1] -> [0,1]
		keyword := KeywordOverlapScore(query, mem.Content)
		importance := mem.ImportanceScore

		results = append(results, ScoredResult{
			MemoryID:        mem.ID,
			Content:         mem.Content,
			SemanticScore:   semantic,
			KeywordScore:    keyword,
			ImportanceScore: importance,
			FinalScore:      r.weights.Semantic*semantic + r.weights.Keyword*keyword + r.weights.Importance*importance,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FinalScore > results[j].FinalScore
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}

	return results, nil
}

// KeywordOverlapScore measures lexical overlap as the fraction of the
// query's distinct lowercased whitespace tokens that also occur in the
// memory content. The normalization is by query length only, not a
// symmetric Jaccard index. An empty query scores 0.0.
func KeywordOverlapScore(query, content string) float64 {
	queryTokens := lo.Uniq(strings.Fields(strings.ToLower(query)))
	if len(queryTokens) == 0 {
		return 0
	}

	contentTokens := lo.Uniq(strings.Fields(strings.ToLower(content)))
	shared := lo.Intersect(queryTokens, contentTokens)

	return float64(len(shared)) / float64(len(queryTokens))
}
