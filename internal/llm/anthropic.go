package llm

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/freight-cli/pkg/anthropic"
)

const jsonOnlyInstruction = "Respond with the JSON array only. No prose, no markdown code fences."

const defaultAnthropicMaxTokens = 16000

type anthropicProvider struct {
	client    anthropic.Client
	maxTokens int64
}

// NewAnthropic adapts an Anthropic client. Grounding tools and thinking
// budgets have no equivalent and are ignored; JSON output is requested via a
// system instruction.
func NewAnthropic(c anthropic.Client, maxTokens int64) Provider {
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}
	return &anthropicProvider{client: c, maxTokens: maxTokens}
}

func (p *anthropicProvider) Name() string { return "anthropic" }

func (p *anthropicProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if req.Options.SearchGrounding || req.Options.MapsGrounding {
		zap.L().Debug("llm: grounding not supported by provider, ignoring",
			zap.String("provider", p.Name()),
			zap.String("model", req.Model),
		)
	}

	mr := anthropic.MessageRequest{
		Model:     req.Model,
		MaxTokens: p.maxTokens,
		Messages:  []anthropic.Message{{Role: "user", Content: req.Prompt}},
	}
	if req.Options.ForceJSON {
		mr.System = []anthropic.SystemBlock{{Text: jsonOnlyInstruction}}
	}

	resp, err := p.client.CreateMessage(ctx, mr)
	if err != nil {
		return nil, err
	}

	model := resp.Model
	if model == "" {
		model = req.Model
	}
	return &Response{
		Provider: p.Name(),
		Model:    model,
		Text:     resp.Text(),
		Usage: Usage{
			InputTokens:  resp.Usage.InputTokens + resp.Usage.CacheReadInputTokens + resp.Usage.CacheCreationInputTokens,
			OutputTokens: resp.Usage.OutputTokens,
		},
	}, nil
}
