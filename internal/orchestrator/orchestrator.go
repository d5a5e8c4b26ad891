// Package orchestrator fans a query out over its scope slices, runs them
// one after another and merges the results.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/freight-cli/internal/llm"
	"github.com/sells-group/freight-cli/internal/metrics"
	"github.com/sells-group/freight-cli/internal/model"
	"github.com/sells-group/freight-cli/internal/normalize"
	"github.com/sells-group/freight-cli/internal/resilience"
)

// DefaultPacing is the delay between consecutive slice calls.
const DefaultPacing = 500 * time.Millisecond

// userMessage is shown to end users when a fan-out produced nothing.
const userMessage = "No data received from the AI service. Please try again in a moment."

// SliceFailure records why one slice contributed nothing.
type SliceFailure struct {
	Slice model.ScopeSlice
	Err   error
}

// OrchestrationError means every slice failed or the merged result was
// empty. It is the only error a fan-out surfaces.
type OrchestrationError struct {
	Domain   model.Domain
	Slices   int
	Failures []SliceFailure
}

func (e *OrchestrationError) Error() string {
	return fmt.Sprintf("orchestrator: no data received for %s (%d slice(s), %d failed)", e.Domain, e.Slices, len(e.Failures))
}

// UserMessage returns the text to display instead of Error().
func (e *OrchestrationError) UserMessage() string { return userMessage }

// Caller issues one model call. *executor.Executor implements it.
type Caller interface {
	Execute(ctx context.Context, req llm.Request) (*llm.Response, error)
}

// Orchestrator runs fan-out plans against a Caller.
type Orchestrator struct {
	caller Caller
	pacing time.Duration
	sleep  func(ctx context.Context, d time.Duration) error
	newID  func() string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithPacing sets the delay between consecutive slices.
func WithPacing(d time.Duration) Option {
	return func(o *Orchestrator) { o.pacing = d }
}

// WithSleep replaces the pacing wait.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(o *Orchestrator) { o.sleep = fn }
}

// WithIDs replaces the item identifier generator.
func WithIDs(fn func() string) Option {
	return func(o *Orchestrator) { o.newID = fn }
}

// New creates an Orchestrator.
func New(c Caller, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		caller: c,
		pacing: DefaultPacing,
		sleep:  resilience.SleepContext,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Plan describes one fan-out: the slices to run and how to build, parse,
// finish and deduplicate each slice's items.
type Plan[T any] struct {
	Domain  model.Domain
	Slices  []model.ScopeSlice
	Request func(s model.ScopeSlice) llm.Request
	Parse   func(raw string, c normalize.Context) ([]T, error)
	// Finish optionally stamps query-level values onto each item.
	Finish func(item *T, s model.ScopeSlice)
	// Key returns the natural key. Nil disables deduplication; items with
	// an empty key are never merged.
	Key func(item T) string
}

// Run executes the plan's slices strictly in order. A slice that fails
// with a model call or parse error contributes nothing and the run
// continues. Run fails with *OrchestrationError when the merged result is
// empty.
func Run[T any](ctx context.Context, o *Orchestrator, p Plan[T]) ([]T, error) {
	log := zap.L().With(zap.String("domain", string(p.Domain)), zap.Int("slices", len(p.Slices)))

	var all []T
	var failures []SliceFailure

	for i, s := range p.Slices {
		if i > 0 && len(p.Slices) > 1 {
			if err := o.sleep(ctx, o.pacing); err != nil {
				return nil, eris.Wrap(err, "orchestrator: pacing")
			}
		}
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "orchestrator: canceled")
		}

		items, err := runSlice(ctx, o, p, s)
		if err != nil {
			failures = append(failures, SliceFailure{Slice: s, Err: err})
			metrics.ObserveSlice(string(p.Domain), "failed")
			log.Warn("orchestrator: slice failed, continuing",
				zap.String("slice", s.Label()),
				zap.Int("index", i),
				zap.Error(err),
			)
			continue
		}

		outcome := "ok"
		if len(items) == 0 {
			outcome = "empty"
		}
		metrics.ObserveSlice(string(p.Domain), outcome)
		log.Debug("orchestrator: slice done", zap.String("slice", s.Label()), zap.Int("items", len(items)))

		all = append(all, items...)
	}

	if p.Key != nil {
		all = dedupe(all, p.Key)
	}

	if len(all) == 0 {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "orchestrator: canceled")
		}
		return nil, &OrchestrationError{Domain: p.Domain, Slices: len(p.Slices), Failures: failures}
	}

	log.Info("orchestrator: fan-out complete",
		zap.Int("items", len(all)),
		zap.Int("failed_slices", len(failures)),
	)
	return all, nil
}

func runSlice[T any](ctx context.Context, o *Orchestrator, p Plan[T], s model.ScopeSlice) ([]T, error) {
	resp, err := o.caller.Execute(ctx, p.Request(s))
	if err != nil {
		return nil, err
	}

	items, err := p.Parse(resp.Text, normalize.Context{Sources: sources(resp), NewID: o.newID})
	if err != nil {
		return nil, err
	}

	if p.Finish != nil {
		for i := range items {
			p.Finish(&items[i], s)
		}
	}
	return items, nil
}

func sources(resp *llm.Response) []model.SourceRef {
	var out []model.SourceRef
	for _, g := range resp.Grounding {
		out = append(out, model.SourceRef{Kind: g.Kind, URI: g.URI, Title: g.Title})
	}
	return out
}

// dedupe keeps one item per key. The item sits at the position where its
// key first appeared and carries the values of the last occurrence.
func dedupe[T any](items []T, key func(T) string) []T {
	pos := make(map[string]int, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		k := key(it)
		if k == "" {
			out = append(out, it)
			continue
		}
		if i, ok := pos[k]; ok {
			out[i] = it
			continue
		}
		pos[k] = len(out)
		out = append(out, it)
	}
	return out
}
