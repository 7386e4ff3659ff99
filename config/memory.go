package config

type MemoryConfig struct {
	// SqliteEnabled controls whether memories are persisted in SQLite.
	// When false an in-memory store is used.
	// Default: true
	SqliteEnabled bool `json:"sqliteEnabled" yaml:"sqliteEnabled"`

	// SqlitePath specifies the file path for the SQLite database.
	// ":memory:" keeps everything in process memory.
	SqlitePath string `json:"sqlitePath" yaml:"sqlitePath"`

	// DuplicateThreshold is the cosine similarity above which a new fact is
	// treated as already known and skipped.
	// Default: 0.90
	DuplicateThreshold float64 `json:"duplicateThreshold" yaml:"duplicateThreshold"`

	// SemanticWeight, KeywordWeight and ImportanceWeight blend the three
	// ranking signals. Callers are expected to keep them summing to 1;
	// the ranker does not enforce it.
	SemanticWeight   float64 `json:"semanticWeight" yaml:"semanticWeight"`
	KeywordWeight    float64 `json:"keywordWeight" yaml:"keywordWeight"`
	ImportanceWeight float64 `json:"importanceWeight" yaml:"importanceWeight"`

	// SearchTopK is the number of results returned by the search endpoint.
	// Default: 5
	SearchTopK int `json:"searchTopK" yaml:"searchTopK"`

	// ChatTopK is the number of memories retrieved to ground a chat answer.
	// Default: 3
	ChatTopK int `json:"chatTopK" yaml:"chatTopK"`

	// DefaultImportance is assigned to memories created without an explicit
	// importance score.
	// Default: 0.5
	DefaultImportance float64 `json:"defaultImportance" yaml:"defaultImportance"`
}

func NewMemoryConfig() *MemoryConfig {
	return &MemoryConfig{
		SqliteEnabled:      true,
		SqlitePath:         ":memory:",
		DuplicateThreshold: 0.90,
		SemanticWeight:     0.7,
		KeywordWeight:      0.2,
		ImportanceWeight:   0.1,
		SearchTopK:         5,
		ChatTopK:           3,
		DefaultImportance:  0.5,
	}
}
