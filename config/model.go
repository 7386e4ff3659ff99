package config

type ModelConfig struct {
	// OpenAIAPIKey authorizes embedding, extraction and chat calls.
	OpenAIAPIKey string `json:"openaiApiKey" yaml:"openaiApiKey"`

	// AnthropicAPIKey enables the Anthropic chat fallback when no OpenAI
	// key is configured.
	AnthropicAPIKey string `json:"anthropicApiKey" yaml:"anthropicApiKey"`

	// EmbeddingModel names the embedding model. The dimension of every
	// stored memory follows from it and must not change for a given store.
	// Default: "text-embedding-3-small"
	EmbeddingModel string `json:"embeddingModel" yaml:"embeddingModel"`

	// ExtractionModel names the chat model used to extract durable facts
	// from free text.
	// Default: "gpt-4o-mini"
	ExtractionModel string `json:"extractionModel" yaml:"extractionModel"`

	// ChatModel names the chat model used to phrase conversational answers.
	// Default: "gpt-4o-mini"
	ChatModel string `json:"chatModel" yaml:"chatModel"`
}

func NewModelConfig() *ModelConfig {
	return &ModelConfig{
		EmbeddingModel:  "text-embedding-3-small",
		ExtractionModel: "gpt-4o-mini",
		ChatModel:       "gpt-4o-mini",
	}
}
