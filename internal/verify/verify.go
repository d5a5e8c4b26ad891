// Package verify grounds a single result item against a maps-capable model
// call. Verification never fails: problems degrade to an unverified result.
package verify

import (
	"context"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/sells-group/freight-cli/internal/llm"
	"github.com/sells-group/freight-cli/internal/metrics"
	"github.com/sells-group/freight-cli/internal/model"
	"github.com/sells-group/freight-cli/internal/prompt"
	"github.com/sells-group/freight-cli/pkg/google"
)

const searchBase = "https://www.google.com/maps/search/?api=1&query="

// Caller issues one model call.
type Caller interface {
	Execute(ctx context.Context, req llm.Request) (*llm.Response, error)
}

// Verifier resolves map references for facilities and rate destinations.
type Verifier struct {
	caller Caller
	model  string
	places google.Client
	group  singleflight.Group
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithPlaces adds a Places text search between the grounded call and the
// search URL fallback.
func WithPlaces(c google.Client) Option {
	return func(v *Verifier) { v.places = c }
}

// New creates a Verifier that calls the given model.
func New(c Caller, modelName string, opts ...Option) *Verifier {
	v := &Verifier{caller: c, model: modelName}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Verify locates the target. On a failed model call it returns
// {Verified: false} and no reference. Otherwise Verified is true and MapsURI
// is the grounded reference, a Places match, or a search URL for the name.
// Identical concurrent requests share one call. The shared call is detached
// from any single caller's cancellation; a caller whose ctx ends first gets
// {Verified: false} while the others keep waiting.
func (v *Verifier) Verify(ctx context.Context, t model.LocateTarget) model.Verification {
	shared := context.WithoutCancel(ctx)
	ch := v.group.DoChan(key(t), func() (any, error) {
		return v.verify(shared, t), nil
	})

	select {
	case res := <-ch:
		return res.Val.(model.Verification)
	case <-ctx.Done():
		zap.L().Debug("verify: caller canceled", zap.String("target", t.Name), zap.Error(ctx.Err()))
		return model.Verification{Verified: false}
	}
}

func (v *Verifier) verify(ctx context.Context, t model.LocateTarget) model.Verification {
	log := zap.L().With(zap.String("target", t.Name), zap.String("country", t.Country))

	resp, err := v.caller.Execute(ctx, llm.Request{
		Model:   v.model,
		Prompt:  prompt.Locate(t).Render(),
		Options: llm.Options{MapsGrounding: true},
	})
	if err != nil {
		metrics.ObserveVerification("failed")
		log.Warn("verify: locate call failed", zap.Error(err))
		return model.Verification{Verified: false}
	}

	if uri := resp.FirstMapsURI(); uri != "" {
		metrics.ObserveVerification("grounding")
		return model.Verification{Verified: true, MapsURI: uri}
	}

	if uri := v.lookupPlaces(ctx, t, log); uri != "" {
		metrics.ObserveVerification("places")
		return model.Verification{Verified: true, MapsURI: uri}
	}

	metrics.ObserveVerification("fallback")
	log.Debug("verify: no maps grounding, using search fallback")
	return model.Verification{Verified: true, MapsURI: FallbackURI(t.Name)}
}

func (v *Verifier) lookupPlaces(ctx context.Context, t model.LocateTarget, log *zap.Logger) string {
	if v.places == nil {
		return ""
	}

	q := t.Name
	if t.Country != "" {
		q += ", " + t.Country
	}

	resp, err := v.places.TextSearch(ctx, q)
	if err != nil {
		log.Debug("verify: places lookup failed", zap.Error(err))
		return ""
	}
	for _, p := range resp.Places {
		if p.GoogleMapsURI != "" {
			return p.GoogleMapsURI
		}
	}
	return ""
}

// FallbackURI builds the deterministic maps search URL for a name.
func FallbackURI(name string) string {
	return searchBase + strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
}

func key(t model.LocateTarget) string {
	return strings.Join([]string{t.Name, t.Code, t.City, t.Country}, "\x00")
}
