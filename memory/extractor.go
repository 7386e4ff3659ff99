package memory

import (
	"bytes"
	"context"
	_ "embed"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/habiliai/memorybank/errors"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var (
	//go:embed data/prompts/extract_facts.md.tmpl
	extractFactsInst     string
	extractFactsInstTmpl = template.Must(template.New("extractFacts").Funcs(sprig.FuncMap()).Parse(extractFactsInst))
)

type (
	// Extractor pulls durable facts out of free conversation text. It is an
	// external collaborator; the core never depends on how extraction works.
	Extractor interface {
		ExtractFacts(ctx context.Context, text string) ([]string, error)
	}

	// OpenAIExtractor implements Extractor with a chat completion call.
	OpenAIExtractor struct {
		client openai.Client
		model  openai.ChatModel
	}

	extractFactsValues struct {
		Text string
	}
)

var (
	_ Extractor = (*OpenAIExtractor)(nil)
)

func NewOpenAIExtractor(apiKey string, model string) *OpenAIExtractor {
	return &OpenAIExtractor{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  openai.ChatModel(model),
	}
}

func (e *OpenAIExtractor) ExtractFacts(ctx context.Context, text string) ([]string, error) {
	var buf bytes.Buffer
	if err := extractFactsInstTmpl.Execute(&buf, extractFactsValues{Text: text}); err != nil {
		return nil, errors.Wrapf(err, "failed to build extraction prompt")
	}

	res, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: e.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(buf.String()),
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to extract facts")
	}
	if len(res.Choices) == 0 {
		return nil, errors.Wrapf(errors.ErrInternal, "no choices in extraction response")
	}

	return ParseFactLines(res.Choices[0].Message.Content), nil
}

// ParseFactLines splits model output into individual facts, dropping blank
// lines and leading bullet markers.
func ParseFactLines(output string) []string {
	var facts []string
	for _, line := range strings.Split(output, "\n") {
		fact := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-* "))
		if fact == "" {
			continue
		}
		facts = append(facts, fact)
	}
	return facts
}
