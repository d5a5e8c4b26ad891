// Package gemini wraps the Google Gen AI SDK behind a small request/response
// surface: one prompt in, response text plus grounding references out.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// Client defines the Gemini operations used by the orchestration core.
type Client interface {
	GenerateContent(ctx context.Context, req Request) (*Response, error)
}

// Request is our own request type for GenerateContent.
type Request struct {
	Model  string
	Prompt string
	Config CallConfig
}

// CallConfig carries the provider options the core relies on.
type CallConfig struct {
	ForceJSON       bool  // response MIME type application/json
	SearchGrounding bool  // Google Search tool
	MapsGrounding   bool  // Google Maps tool
	ThinkingBudget  int32 // 0 leaves the model default
}

// Response is our own response type from GenerateContent.
type Response struct {
	Model     string
	Text      string
	Grounding []GroundingChunk
	Usage     TokenUsage
}

// GroundingChunk is one web or maps reference backing the answer.
type GroundingChunk struct {
	Kind  string // "web" or "maps"
	URI   string
	Title string
}

// TokenUsage tracks token consumption.
type TokenUsage struct {
	PromptTokens     int64
	CandidatesTokens int64
	ThoughtsTokens   int64
	TotalTokens      int64
}

// APIError is a non-success response from the Gemini API.
type APIError struct {
	Code    int
	Status  string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: api error %d %s: %s", e.Code, e.Status, e.Message)
}

// RateLimited reports whether the error is quota exhaustion.
func (e *APIError) RateLimited() bool {
	return e.Code == 429 || strings.EqualFold(e.Status, "RESOURCE_EXHAUSTED")
}

// Option configures the client.
type Option func(*sdkClient)

// WithRequestsPerMinute paces outgoing requests process-wide. Zero disables
// pacing.
func WithRequestsPerMinute(n int) Option {
	return func(c *sdkClient) {
		if n > 0 {
			c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), 1)
		}
	}
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) Option {
	return func(c *sdkClient) {
		c.baseURL = url
	}
}

// sdkClient implements Client using google.golang.org/genai.
type sdkClient struct {
	models  *genai.Models
	limiter *rate.Limiter
	baseURL string
}

// NewClient creates a Gemini client backed by the SDK. The API key is read
// once here and never again.
func NewClient(ctx context.Context, apiKey string, opts ...Option) (Client, error) {
	if apiKey == "" {
		return nil, eris.New("gemini: api key is required")
	}

	c := &sdkClient{}
	for _, o := range opts {
		o(c)
	}

	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if c.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, eris.Wrap(err, "gemini: create client")
	}
	c.models = client.Models
	return c, nil
}

func (c *sdkClient) GenerateContent(ctx context.Context, req Request) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "gemini: limiter wait")
		}
	}

	resp, err := c.models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), toSDKConfig(req.Config))
	if err != nil {
		return nil, wrapError(err)
	}

	out := fromSDKResponse(resp)
	if out.Model == "" {
		out.Model = req.Model
	}
	return out, nil
}

// --- SDK type conversion helpers ---

func toSDKConfig(cfg CallConfig) *genai.GenerateContentConfig {
	out := &genai.GenerateContentConfig{}
	if cfg.ForceJSON {
		out.ResponseMIMEType = "application/json"
	}
	if cfg.ThinkingBudget > 0 {
		out.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(cfg.ThinkingBudget)}
	}
	if cfg.SearchGrounding {
		out.Tools = append(out.Tools, &genai.Tool{GoogleSearch: &genai.GoogleSearch{}})
	}
	if cfg.MapsGrounding {
		out.Tools = append(out.Tools, &genai.Tool{GoogleMaps: &genai.GoogleMaps{}})
	}
	return out
}

func fromSDKResponse(resp *genai.GenerateContentResponse) *Response {
	if resp == nil {
		return &Response{}
	}

	out := &Response{
		Model: resp.ModelVersion,
		Text:  resp.Text(),
	}

	if u := resp.UsageMetadata; u != nil {
		out.Usage = TokenUsage{
			PromptTokens:     int64(u.PromptTokenCount),
			CandidatesTokens: int64(u.CandidatesTokenCount),
			ThoughtsTokens:   int64(u.ThoughtsTokenCount),
			TotalTokens:      int64(u.TotalTokenCount),
		}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return out
	}
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil {
			continue
		}
		switch {
		case chunk.Maps != nil && chunk.Maps.URI != "":
			out.Grounding = append(out.Grounding, GroundingChunk{Kind: "maps", URI: chunk.Maps.URI, Title: chunk.Maps.Title})
		case chunk.Web != nil && chunk.Web.URI != "":
			out.Grounding = append(out.Grounding, GroundingChunk{Kind: "web", URI: chunk.Web.URI, Title: chunk.Web.Title})
		}
	}
	return out
}

// wrapError converts SDK API errors into *APIError so callers can classify
// them without importing the SDK.
func wrapError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &APIError{Code: apiErr.Code, Status: apiErr.Status, Message: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &APIError{Code: apiErrPtr.Code, Status: apiErrPtr.Status, Message: apiErrPtr.Message}
	}
	return eris.Wrap(err, "gemini: generate content")
}
