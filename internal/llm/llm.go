// Package llm defines the provider-neutral model call surface used by the
// executor. Gemini and Anthropic clients are adapted onto it.
package llm

import "context"

// Options are the call options the orchestration core relies on.
type Options struct {
	ForceJSON       bool
	SearchGrounding bool
	MapsGrounding   bool
	ThinkingBudget  int32
}

// Request is a single prompt sent to a model.
type Request struct {
	Model   string
	Prompt  string
	Options Options
}

// Grounding is one web or maps reference attached to a response.
type Grounding struct {
	Kind  string // "web" or "maps"
	URI   string
	Title string
}

// Usage is token consumption for one call.
type Usage struct {
	InputTokens    int64
	OutputTokens   int64
	ThinkingTokens int64
}

// Response is the raw text of a model answer plus its envelope.
type Response struct {
	Provider  string
	Model     string
	Text      string
	Grounding []Grounding
	Usage     Usage
}

// FirstMapsURI returns the first maps grounding reference, or "".
func (r *Response) FirstMapsURI() string {
	if r == nil {
		return ""
	}
	for _, g := range r.Grounding {
		if g.Kind == "maps" && g.URI != "" {
			return g.URI
		}
	}
	return ""
}

// Provider issues one model call.
type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (*Response, error)
}
