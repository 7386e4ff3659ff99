package memorybank

import (
	"context"
	"log/slog"

	"github.com/habiliai/memorybank/chat"
	"github.com/habiliai/memorybank/config"
	"github.com/habiliai/memorybank/errors"
	"github.com/habiliai/memorybank/evaluation"
	"github.com/habiliai/memorybank/internal/mylog"
	"github.com/habiliai/memorybank/memory"
)

type (
	// MemoryBank wires the store, embedder, extractor, ranker and chat
	// responder into one long-term-memory service.
	MemoryBank struct {
		logger *slog.Logger
		store  memory.Store

		memoryService memory.Service
		chatService   chat.Service

		embedder  memory.Embedder
		extractor memory.Extractor
		responder chat.Responder

		logConfig    *config.LogConfig
		memoryConfig *config.MemoryConfig
		modelConfig  *config.ModelConfig
	}
	Option func(*MemoryBank)
)

func WithLogger(logger *slog.Logger) Option {
	return func(b *MemoryBank) { b.logger = logger }
}

func WithOpenAIAPIKey(apiKey string) Option {
	return func(b *MemoryBank) { b.modelConfig.OpenAIAPIKey = apiKey }
}

func WithAnthropicAPIKey(apiKey string) Option {
	return func(b *MemoryBank) { b.modelConfig.AnthropicAPIKey = apiKey }
}

func WithLogConfig(conf *config.LogConfig) Option {
	return func(b *MemoryBank) { b.logConfig = conf }
}

func WithMemoryConfig(conf *config.MemoryConfig) Option {
	return func(b *MemoryBank) { b.memoryConfig = conf }
}

func WithModelConfig(conf *config.ModelConfig) Option {
	return func(b *MemoryBank) { b.modelConfig = conf }
}

// WithStore injects a store, overriding the SQLite/in-memory choice made by
// MemoryConfig. Tests use this for isolated fixtures.
func WithStore(store memory.Store) Option {
	return func(b *MemoryBank) { b.store = store }
}

func WithEmbedder(embedder memory.Embedder) Option {
	return func(b *MemoryBank) { b.embedder = embedder }
}

func WithExtractor(extractor memory.Extractor) Option {
	return func(b *MemoryBank) { b.extractor = extractor }
}

func WithResponder(responder chat.Responder) Option {
	return func(b *MemoryBank) { b.responder = responder }
}

func New(ctx context.Context, optionFuncs ...Option) (*MemoryBank, error) {
	b := &MemoryBank{
		logConfig:    config.NewLogConfig(),
		memoryConfig: config.NewMemoryConfig(),
		modelConfig:  config.NewModelConfig(),
	}
	for _, f := range optionFuncs {
		f(b)
	}

	if b.logger == nil {
		b.logger = mylog.NewLogger(b.logConfig.LogLevel, b.logConfig.LogHandler)
	}

	if b.store == nil {
		if b.memoryConfig.SqliteEnabled {
			store, err := memory.NewSqliteStore(b.memoryConfig.SqlitePath)
			if err != nil {
				return nil, err
			}
			b.store = store
		} else {
			b.store = memory.NewInMemoryStore()
		}
	}

	if b.embedder == nil {
		if b.modelConfig.OpenAIAPIKey == "" {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "an OpenAI API key is required for embeddings")
		}
		b.embedder = memory.NewOpenAIEmbedder(b.modelConfig.OpenAIAPIKey, b.modelConfig.EmbeddingModel)
	}

	if b.extractor == nil {
		if b.modelConfig.OpenAIAPIKey == "" {
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "an OpenAI API key is required for fact extraction")
		}
		b.extractor = memory.NewOpenAIExtractor(b.modelConfig.OpenAIAPIKey, b.modelConfig.ExtractionModel)
	}

	if b.responder == nil {
		switch {
		case b.modelConfig.OpenAIAPIKey != "":
			b.responder = chat.NewOpenAIResponder(b.modelConfig.OpenAIAPIKey, b.modelConfig.ChatModel)
		case b.modelConfig.AnthropicAPIKey != "":
			b.responder = chat.NewAnthropicResponder(b.modelConfig.AnthropicAPIKey)
		default:
			return nil, errors.Wrapf(errors.ErrInvalidConfig, "an OpenAI or Anthropic API key is required for chat")
		}
	}

	b.memoryService = memory.NewService(b.logger, b.store, b.embedder, b.extractor, b.memoryConfig)
	b.chatService = chat.NewService(b.logger, b.memoryService, b.responder, b.memoryConfig.ChatTopK)

	return b, nil
}

// RememberText extracts durable facts from free text and stores the
// non-duplicate ones.
func (b *MemoryBank) RememberText(ctx context.Context, text string) ([]*memory.Memory, error) {
	return b.memoryService.RememberText(ctx, text)
}

// Memories returns all stored memories, most recent first.
func (b *MemoryBank) Memories(ctx context.Context) ([]*memory.Memory, error) {
	return b.memoryService.List(ctx)
}

// Search ranks stored memories against the query with the hybrid score.
func (b *MemoryBank) Search(ctx context.Context, query string) ([]memory.ScoredResult, error) {
	return b.memoryService.Search(ctx, query, b.memoryConfig.SearchTopK)
}

// Forget deletes a memory by id.
func (b *MemoryBank) Forget(ctx context.Context, id uint) error {
	return b.memoryService.Forget(ctx, id)
}

// Chat answers a query grounded in the most relevant stored memories.
func (b *MemoryBank) Chat(ctx context.Context, query string) (*chat.Response, error) {
	return b.chatService.Chat(ctx, query)
}

// Evaluate replays a labeled dataset through the store and reports retrieval
// quality. It clears the store first.
func (b *MemoryBank) Evaluate(ctx context.Context, cases []evaluation.Case) (*evaluation.Report, error) {
	harness := evaluation.NewHarness(b.logger, b.store, b.embedder)
	return harness.Run(ctx, cases)
}

func (b *MemoryBank) Close() error {
	return b.store.Close()
}
