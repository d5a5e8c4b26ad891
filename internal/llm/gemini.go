package llm

import (
	"context"

	"github.com/sells-group/freight-cli/pkg/gemini"
)

type geminiProvider struct {
	client gemini.Client
}

// NewGemini adapts a Gemini client. All options are supported natively.
func NewGemini(c gemini.Client) Provider {
	return &geminiProvider{client: c}
}

func (p *geminiProvider) Name() string { return "gemini" }

func (p *geminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	resp, err := p.client.GenerateContent(ctx, gemini.Request{
		Model:  req.Model,
		Prompt: req.Prompt,
		Config: gemini.CallConfig{
			ForceJSON:       req.Options.ForceJSON,
			SearchGrounding: req.Options.SearchGrounding,
			MapsGrounding:   req.Options.MapsGrounding,
			ThinkingBudget:  req.Options.ThinkingBudget,
		},
	})
	if err != nil {
		return nil, err
	}

	out := &Response{
		Provider: p.Name(),
		Model:    resp.Model,
		Text:     resp.Text,
		Usage: Usage{
			InputTokens:    resp.Usage.PromptTokens,
			OutputTokens:   resp.Usage.CandidatesTokens,
			ThinkingTokens: resp.Usage.ThoughtsTokens,
		},
	}
	if out.Model == "" {
		out.Model = req.Model
	}
	for _, g := range resp.Grounding {
		out.Grounding = append(out.Grounding, Grounding{Kind: g.Kind, URI: g.URI, Title: g.Title})
	}
	return out, nil
}
