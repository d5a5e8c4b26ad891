package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/sells-group/freight-cli/internal/resilience"
)

func TestNewClient_RequiresKey(t *testing.T) {
	c, err := NewClient(context.Background(), "")
	assert.Error(t, err)
	assert.Nil(t, c)
}

func TestNewClient_WithOptions(t *testing.T) {
	c, err := NewClient(context.Background(), "test-key", WithRequestsPerMinute(30), WithBaseURL("http://localhost:1"))
	require.NoError(t, err)
	sc, ok := c.(*sdkClient)
	require.True(t, ok)
	assert.NotNil(t, sc.limiter)
	assert.Equal(t, "http://localhost:1", sc.baseURL)
}

func TestToSDKConfig_JSONAndThinking(t *testing.T) {
	cfg := toSDKConfig(CallConfig{ForceJSON: true, ThinkingBudget: 32768})

	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	require.NotNil(t, cfg.ThinkingConfig)
	require.NotNil(t, cfg.ThinkingConfig.ThinkingBudget)
	assert.Equal(t, int32(32768), *cfg.ThinkingConfig.ThinkingBudget)
	assert.Empty(t, cfg.Tools)
}

func TestToSDKConfig_Grounding(t *testing.T) {
	cfg := toSDKConfig(CallConfig{SearchGrounding: true, MapsGrounding: true})

	assert.Empty(t, cfg.ResponseMIMEType)
	assert.Nil(t, cfg.ThinkingConfig)
	require.Len(t, cfg.Tools, 2)
	assert.NotNil(t, cfg.Tools[0].GoogleSearch)
	assert.NotNil(t, cfg.Tools[1].GoogleMaps)
}

func TestFromSDKResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		ModelVersion: "gemini-2.5-flash",
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: `[{"name":"Port of Tanjung Priok"}]`}}},
			GroundingMetadata: &genai.GroundingMetadata{
				GroundingChunks: []*genai.GroundingChunk{
					{Maps: &genai.GroundingChunkMaps{URI: "https://maps.google.com/?cid=1", Title: "Tanjung Priok"}},
					{Web: &genai.GroundingChunkWeb{URI: "https://example.com/priok", Title: "Priok"}},
					nil,
					{Web: &genai.GroundingChunkWeb{}},
				},
			},
		}},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     120,
			CandidatesTokenCount: 340,
			ThoughtsTokenCount:   80,
			TotalTokenCount:      540,
		},
	}

	out := fromSDKResponse(resp)

	assert.Equal(t, "gemini-2.5-flash", out.Model)
	assert.Equal(t, `[{"name":"Port of Tanjung Priok"}]`, out.Text)
	assert.Equal(t, []GroundingChunk{
		{Kind: "maps", URI: "https://maps.google.com/?cid=1", Title: "Tanjung Priok"},
		{Kind: "web", URI: "https://example.com/priok", Title: "Priok"},
	}, out.Grounding)
	assert.Equal(t, TokenUsage{PromptTokens: 120, CandidatesTokens: 340, ThoughtsTokens: 80, TotalTokens: 540}, out.Usage)
}

func TestFromSDKResponse_Nil(t *testing.T) {
	out := fromSDKResponse(nil)
	require.NotNil(t, out)
	assert.Empty(t, out.Text)
	assert.Empty(t, out.Grounding)
}

func TestWrapError_APIError(t *testing.T) {
	err := wrapError(genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED", Message: "quota"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 429, apiErr.Code)
	assert.True(t, apiErr.RateLimited())
	assert.True(t, resilience.IsRateLimited(err))
}

func TestWrapError_Terminal(t *testing.T) {
	err := wrapError(genai.APIError{Code: 400, Status: "INVALID_ARGUMENT", Message: "bad model"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.False(t, apiErr.RateLimited())
	assert.False(t, resilience.IsRateLimited(err))
}

func TestWrapError_Other(t *testing.T) {
	err := wrapError(errors.New("dial tcp: connection refused"))
	assert.Contains(t, err.Error(), "gemini: generate content")
}

func TestGenerateContent_LimiterDeadlineNotRateLimited(t *testing.T) {
	lim := rate.NewLimiter(rate.Every(time.Hour), 1)
	require.True(t, lim.Allow())
	c := &sdkClient{limiter: lim}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	resp, err := c.GenerateContent(ctx, Request{Model: "m", Prompt: "p"})
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "gemini: limiter wait")
	assert.False(t, resilience.IsRateLimited(err))
}
