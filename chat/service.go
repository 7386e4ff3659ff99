package chat

import (
	"bytes"
	"context"
	_ "embed"
	"log/slog"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/habiliai/memorybank/errors"
	"github.com/habiliai/memorybank/memory"
	"github.com/samber/lo"
)

var (
	//go:embed data/prompts/chat.md.tmpl
	chatInst     string
	chatInstTmpl = template.Must(template.New("chatInst").Funcs(sprig.FuncMap()).Parse(chatInst))
)

type (
	Service interface {
		// Chat answers a query grounded in the most relevant stored
		// memories.
		Chat(ctx context.Context, query string) (*Response, error)
	}

	Response struct {
		Answer       string   `json:"answer"`
		MemoriesUsed []string `json:"memories_used"`
	}

	service struct {
		logger    *slog.Logger
		memories  memory.Service
		responder Responder
		topK      int
	}

	chatInstValues struct {
		Query    string
		Memories []string
	}
)

var (
	_ Service = (*service)(nil)
)

func NewService(logger *slog.Logger, memories memory.Service, responder Responder, topK int) Service {
	return &service{
		logger:    logger,
		memories:  memories,
		responder: responder,
		topK:      topK,
	}
}

func (s *service) Chat(ctx context.Context, query string) (*Response, error) {
	if query == "" {
		return nil, errors.Wrapf(errors.ErrInvalidParams, "query is required")
	}

	results, err := s.memories.Retrieve(ctx, query, s.topK)
	if err != nil {
		return nil, err
	}

	memoriesUsed := lo.Map(results, func(r memory.ScoredResult, _ int) string {
		return r.Content
	})

	var buf bytes.Buffer
	if err := chatInstTmpl.Execute(&buf, chatInstValues{
		Query:    query,
		Memories: memoriesUsed,
	}); err != nil {
		return nil, errors.Wrapf(err, "failed to build chat prompt")
	}

	answer, err := s.responder.GenerateAnswer(ctx, buf.String())
	if err != nil {
		return nil, err
	}

	s.logger.Debug("generated chat answer", "query", query, "memories_used", len(memoriesUsed))

	return &Response{
		Answer:       answer,
		MemoriesUsed: memoriesUsed,
	}, nil
}
