package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/freight-cli/internal/config"
	"github.com/sells-group/freight-cli/internal/cost"
	"github.com/sells-group/freight-cli/internal/executor"
	"github.com/sells-group/freight-cli/internal/freight"
	"github.com/sells-group/freight-cli/internal/llm"
	"github.com/sells-group/freight-cli/internal/orchestrator"
	"github.com/sells-group/freight-cli/internal/resilience"
	"github.com/sells-group/freight-cli/internal/verify"
	anthropicpkg "github.com/sells-group/freight-cli/pkg/anthropic"
	"github.com/sells-group/freight-cli/pkg/gemini"
	"github.com/sells-group/freight-cli/pkg/google"
)

// initService validates the config for mode and wires provider, executor,
// orchestrator and verifier into a freight.Service.
func initService(ctx context.Context, mode string) (*freight.Service, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	provider, err := initProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}

	exec := executor.New(provider,
		executor.WithRetry(resilience.FromRetryConfig(
			cfg.Retry.MaxAttempts,
			cfg.Retry.InitialBackoffMs,
			cfg.Retry.MaxBackoffMs,
			cfg.Retry.Multiplier,
			cfg.Retry.JitterMs,
		)),
		executor.WithCost(cost.NewCalculator(cfg.Rates())),
	)

	orch := orchestrator.New(exec,
		orchestrator.WithPacing(time.Duration(cfg.Fanout.PacingMs)*time.Millisecond),
	)

	var verifyOpts []verify.Option
	if cfg.Google.PlacesKey != "" {
		verifyOpts = append(verifyOpts, verify.WithPlaces(
			google.NewClient(cfg.Google.PlacesKey, google.WithRequestsPerMinute(cfg.Google.RequestsPerMinute)),
		))
		zap.L().Info("google places lookup enabled for verification")
	} else {
		zap.L().Debug("FREIGHT_GOOGLE_PLACES_KEY not set, verification uses grounding and search links only")
	}
	verifier := verify.New(exec, cfg.VerifyModel(), verifyOpts...)

	zap.L().Info("freight service ready",
		zap.String("provider", provider.Name()),
		zap.String("extraction_model", cfg.ExtractionModel()),
		zap.String("verify_model", cfg.VerifyModel()),
	)

	return freight.NewService(orch, verifier, freight.Models{
		Extraction:     cfg.ExtractionModel(),
		ThinkingBudget: thinkingBudget(cfg),
	}), nil
}

// initProvider builds the model provider selected by config. The credential
// is read here once and never again.
func initProvider(ctx context.Context, c *config.Config) (llm.Provider, error) {
	switch c.Provider {
	case config.ProviderAnthropic:
		var opts []anthropicpkg.Option
		if c.Anthropic.BaseURL != "" {
			opts = append(opts, anthropicpkg.WithBaseURL(c.Anthropic.BaseURL))
		}
		return llm.NewAnthropic(anthropicpkg.NewClient(c.Anthropic.Key, opts...), c.Anthropic.MaxTokens), nil
	case config.ProviderGemini:
		opts := []gemini.Option{gemini.WithRequestsPerMinute(c.Gemini.RequestsPerMinute)}
		if c.Gemini.BaseURL != "" {
			opts = append(opts, gemini.WithBaseURL(c.Gemini.BaseURL))
		}
		client, err := gemini.NewClient(ctx, c.Gemini.Key, opts...)
		if err != nil {
			return nil, eris.Wrap(err, "init gemini client")
		}
		return llm.NewGemini(client), nil
	default:
		return nil, eris.Errorf("unknown provider %q", c.Provider)
	}
}

// thinkingBudget only applies to Gemini.
func thinkingBudget(c *config.Config) int32 {
	if c.Provider != config.ProviderGemini {
		return 0
	}
	return c.Gemini.ThinkingBudget
}
