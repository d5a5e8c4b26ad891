// Package executor runs single model calls with bounded retry on rate
// limiting.
package executor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/freight-cli/internal/cost"
	"github.com/sells-group/freight-cli/internal/llm"
	"github.com/sells-group/freight-cli/internal/metrics"
	"github.com/sells-group/freight-cli/internal/resilience"
)

// ModelCallError is a model call that failed terminally or exhausted its
// retries. No partial response accompanies it.
type ModelCallError struct {
	Provider    string
	Model       string
	Attempts    int
	RateLimited bool
	Err         error
}

func (e *ModelCallError) Error() string {
	return fmt.Sprintf("executor: %s call to %s failed after %d attempt(s): %v", e.Provider, e.Model, e.Attempts, e.Err)
}

func (e *ModelCallError) Unwrap() error { return e.Err }

// Executor issues model calls through a provider.
type Executor struct {
	provider llm.Provider
	retry    resilience.RetryConfig
	costs    *cost.Calculator
	now      func() time.Time
}

// Option configures an Executor.
type Option func(*Executor)

// WithRetry overrides the retry policy.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(e *Executor) { e.retry = cfg }
}

// WithCost enables per-call cost attribution.
func WithCost(c *cost.Calculator) Option {
	return func(e *Executor) { e.costs = c }
}

// New creates an Executor. The provider carries the credential; it is fixed
// for the Executor's lifetime.
func New(p llm.Provider, opts ...Option) *Executor {
	e := &Executor{
		provider: p,
		retry:    resilience.DefaultRetryConfig(),
		now:      time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Provider returns the provider name.
func (e *Executor) Provider() string { return e.provider.Name() }

// Execute invokes the model once and retries the identical request on
// rate-limit errors. Any other error is terminal.
func (e *Executor) Execute(ctx context.Context, req llm.Request) (*llm.Response, error) {
	provider := e.provider.Name()
	log := zap.L().With(zap.String("provider", provider), zap.String("model", req.Model))

	attempts := 0
	cfg := e.retry
	cfg.ShouldRetry = resilience.IsRateLimited
	onRetry := resilience.RetryLogger(provider, "generate")
	userOnRetry := e.retry.OnRetry
	cfg.OnRetry = func(attempt int, delay time.Duration, err error) {
		metrics.ObserveRetry(provider, req.Model)
		onRetry(attempt, delay, err)
		if userOnRetry != nil {
			userOnRetry(attempt, delay, err)
		}
	}

	start := e.now()
	resp, err := resilience.DoVal(ctx, cfg, func(ctx context.Context) (*llm.Response, error) {
		attempts++
		return e.provider.Generate(ctx, req)
	})
	elapsed := e.now().Sub(start)

	if err != nil {
		outcome := resilience.Classify(err)
		metrics.ObserveModelCall(provider, req.Model, outcome, elapsed)
		log.Warn("executor: model call failed",
			zap.Int("attempts", attempts),
			zap.String("class", outcome),
			zap.Error(err),
		)
		return nil, &ModelCallError{
			Provider:    provider,
			Model:       req.Model,
			Attempts:    attempts,
			RateLimited: resilience.IsRateLimited(err),
			Err:         err,
		}
	}

	metrics.ObserveModelCall(provider, req.Model, "ok", elapsed)
	e.attribute(log, provider, req.Model, resp.Usage)
	return resp, nil
}

func (e *Executor) attribute(log *zap.Logger, provider, model string, u llm.Usage) {
	usd := e.costs.Call(provider, model, u.InputTokens, u.OutputTokens, u.ThinkingTokens)
	metrics.ObserveUsage(provider, model, u.InputTokens, u.OutputTokens, u.ThinkingTokens, usd)

	log.Debug("executor: model call cost",
		zap.Int64("input_tokens", u.InputTokens),
		zap.Int64("output_tokens", u.OutputTokens),
		zap.Int64("thinking_tokens", u.ThinkingTokens),
		zap.Float64("cost_usd", usd),
	)
}
