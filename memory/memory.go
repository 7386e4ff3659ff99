package memory

import (
	"time"
)

type (
	// Memory is a durable fact extracted from conversation text.
	Memory struct {
		ID              uint      `json:"id"`
		Content         string    `json:"content"`
		ImportanceScore float64   `json:"importance_score"`
		CreatedAt       time.Time `json:"created_at"`

		Embedding []float32 `json:"-"`
	}

	// ScoredResult holds a memory with the per-signal scores produced by a
	// ranking pass. It is ephemeral and never persisted.
	ScoredResult struct {
		MemoryID        uint    `json:"memory_id"`
		Content         string  `json:"content"`
		SemanticScore   float64 `json:"semantic_score"`
		KeywordScore    float64 `json:"keyword_score"`
		ImportanceScore float64 `json:"importance_score"`
		FinalScore      float64 `json:"final_score"`
	}
)
