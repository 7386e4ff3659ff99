package memory

import (
	"context"

	"github.com/habiliai/memorybank/errors"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type (
	// Embedder converts text into fixed-dimension vectors. Implementations
	// must be deterministic for identical text within a process lifetime.
	Embedder interface {
		Embed(ctx context.Context, texts ...string) ([][]float32, error)
	}

	// OpenAIEmbedder implements Embedder using the OpenAI embeddings API.
	OpenAIEmbedder struct {
		client openai.Client
		model  openai.EmbeddingModel
	}
)

var (
	_ Embedder = (*OpenAIEmbedder)(nil)
)

func NewOpenAIEmbedder(apiKey string, model string) *OpenAIEmbedder {
	return &OpenAIEmbedder{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  openai.EmbeddingModel(model),
	}
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, texts ...string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, errors.Wrapf(errors.ErrInvalidParams, "no texts to embed")
	}

	res, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input:          openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Model:          e.model,
		EncodingFormat: openai.EmbeddingNewParamsEncodingFormatFloat,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to embed texts")
	}

	embeddings := make([][]float32, len(res.Data))
	for i, emb := range res.Data {
		embedding := make([]float32, len(emb.Embedding))
		for j, val := range emb.Embedding {
			embedding[j] = float32(val)
		}
		embeddings[i] = embedding
	}

	return embeddings, nil
}
