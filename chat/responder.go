package chat

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/habiliai/memorybank/errors"
	"github.com/openai/openai-go"
	openaioption "github.com/openai/openai-go/option"
)

type (
	// Responder phrases the final conversational answer. It is an external
	// collaborator behind a narrow interface; retrieval quality does not
	// depend on it.
	Responder interface {
		GenerateAnswer(ctx context.Context, prompt string) (string, error)
	}

	// OpenAIResponder generates answers through the OpenAI chat API.
	OpenAIResponder struct {
		client openai.Client
		model  openai.ChatModel
	}

	// AnthropicResponder generates answers through the Anthropic messages
	// API. Used as a fallback when no OpenAI key is configured.
	AnthropicResponder struct {
		client anthropic.Client
		model  anthropic.Model
	}
)

var (
	_ Responder = (*OpenAIResponder)(nil)
	_ Responder = (*AnthropicResponder)(nil)
)

func NewOpenAIResponder(apiKey string, model string) *OpenAIResponder {
	return &OpenAIResponder{
		client: openai.NewClient(openaioption.WithAPIKey(apiKey)),
		model:  openai.ChatModel(model),
	}
}

func (r *OpenAIResponder) GenerateAnswer(ctx context.Context, prompt string) (string, error) {
	res, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: r.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to generate answer")
	}
	if len(res.Choices) == 0 {
		return "", errors.Wrapf(errors.ErrInternal, "no choices in chat response")
	}

	return res.Choices[0].Message.Content, nil
}

func NewAnthropicResponder(apiKey string) *AnthropicResponder {
	return &AnthropicResponder{
		client: anthropic.NewClient(anthropicoption.WithAPIKey(apiKey)),
		model:  anthropic.ModelClaude3_5HaikuLatest,
	}
}

func (r *AnthropicResponder) GenerateAnswer(ctx context.Context, prompt string) (string, error) {
	res, err := r.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     r.model,
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to generate answer")
	}

	var answer string
	for _, block := range res.Content {
		answer += block.Text
	}

	return answer, nil
}
