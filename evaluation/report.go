package evaluation

import (
	"fmt"
	"os"
	"strings"

	"github.com/habiliai/memorybank/errors"
)

// Report aggregates retrieval quality over one evaluation run.
type Report struct {
	Total        int
	Top1Accuracy float64
	Top3HitRate  float64
	MRR          float64

	Cases []CaseResult
}

// Summary renders the per-case detail plus the final aggregate as
// human-readable text.
func (r *Report) Summary() string {
	var b strings.Builder

	b.WriteString("========== MEMORY SYSTEM EVALUATION ==========\n\n")

	for i, c := range r.Cases {
		fmt.Fprintf(&b, "Query %d: %s\n", i+1, c.Query)
		fmt.Fprintf(&b, "Expected Memory: %s\n", c.Expected)
		b.WriteString("Top 3 Retrieved:\n")
		for rank, result := range c.Top {
			fmt.Fprintf(&b, "  Rank %d: %s  (Score: %.4f)\n", rank+1, result.Content, result.FinalScore)
		}
		fmt.Fprintf(&b, "Top-1 Correct: %v\n", c.Top1Correct)
		fmt.Fprintf(&b, "Top-3 Hit: %v\n", c.Top3Hit)
		if c.RankPosition > 0 {
			fmt.Fprintf(&b, "Expected Memory Rank: %d\n", c.RankPosition)
		} else {
			b.WriteString("Expected Memory Rank: Not Found\n")
		}
		b.WriteString(strings.Repeat("-", 60) + "\n")
	}

	b.WriteString("\n========== FINAL RESULTS ==========\n")
	b.WriteString(r.aggregateText())

	return b.String()
}

// WriteFile persists the plain-text report artifact with aggregate metrics
// at fixed precision.
func (r *Report) WriteFile(path string) error {
	var b strings.Builder
	b.WriteString("========== MEMORY SYSTEM EVALUATION REPORT ==========\n\n")
	b.WriteString(r.aggregateText())

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return errors.Wrapf(err, "failed to write report: %s", path)
	}

	return nil
}

func (r *Report) aggregateText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total Queries: %d\n", r.Total)
	fmt.Fprintf(&b, "Top-1 Accuracy: %.4f\n", r.Top1Accuracy)
	fmt.Fprintf(&b, "Top-3 Hit Rate: %.4f\n", r.Top3HitRate)
	fmt.Fprintf(&b, "Mean Reciprocal Rank (MRR): %.4f\n", r.MRR)
	return b.String()
}
