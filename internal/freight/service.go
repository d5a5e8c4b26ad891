// Package freight is the caller-facing API of the orchestration core: one
// entry point per query domain plus the two verification flows.
package freight

import (
	"context"
	"strings"

	"github.com/sells-group/freight-cli/internal/llm"
	"github.com/sells-group/freight-cli/internal/model"
	"github.com/sells-group/freight-cli/internal/normalize"
	"github.com/sells-group/freight-cli/internal/orchestrator"
	"github.com/sells-group/freight-cli/internal/prompt"
	"github.com/sells-group/freight-cli/internal/verify"
)

// Models selects the extraction model and its reasoning budget. The
// verification model belongs to the Verifier.
type Models struct {
	Extraction     string
	ThinkingBudget int32
}

// Service runs queries and verifications.
type Service struct {
	orch     *orchestrator.Orchestrator
	verifier *verify.Verifier
	models   Models
}

// NewService creates a Service.
func NewService(orch *orchestrator.Orchestrator, verifier *verify.Verifier, models Models) *Service {
	return &Service{orch: orch, verifier: verifier, models: models}
}

func (s *Service) request(p string) llm.Request {
	return llm.Request{
		Model:  s.models.Extraction,
		Prompt: p,
		Options: llm.Options{
			ForceJSON:      true,
			ThinkingBudget: s.models.ThinkingBudget,
		},
	}
}

// ExtractFacilities lists the ports and airports of a geographic scope. A
// continent without a region fans out over every region.
func (s *Service) ExtractFacilities(ctx context.Context, q model.FacilityQuery) ([]model.Facility, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	return orchestrator.Run(ctx, s.orch, orchestrator.Plan[model.Facility]{
		Domain: model.DomainFacilities,
		Slices: orchestrator.FacilitySlices(q),
		Request: func(sl model.ScopeSlice) llm.Request {
			return s.request(prompt.Facilities(q, sl).Render())
		},
		Parse: normalize.Facilities,
		Key:   facilityKey,
	})
}

// FetchSeaRates builds an export ocean-freight rate sheet. ALL destination
// regions fan out over every named region.
func (s *Service) FetchSeaRates(ctx context.Context, q model.SeaRateQuery) ([]model.SeaRate, error) {
	q = q.Canonical()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	return orchestrator.Run(ctx, s.orch, orchestrator.Plan[model.SeaRate]{
		Domain: model.DomainSeaRates,
		Slices: orchestrator.DestinationSlices(q.DestinationRegion, q.DestinationPort),
		Request: func(sl model.ScopeSlice) llm.Request {
			return s.request(prompt.SeaRates(q, sl).Render())
		},
		Parse: normalize.SeaRates,
		Finish: func(r *model.SeaRate, sl model.ScopeSlice) {
			r.OriginPort = fill(r.OriginPort, q.OriginPort)
			r.Region = fill(r.Region, string(sl.Destination))
			r.Commodity = string(q.Commodity)
			r.ContainerSize = string(q.ContainerSize)
		},
		Key: func(r model.SeaRate) string {
			return naturalKey(r.OriginPort, r.DestinationPort, r.CarrierIndication, r.ContainerSize)
		},
	})
}

// FetchAirRates builds an export air-freight rate sheet.
func (s *Service) FetchAirRates(ctx context.Context, q model.AirRateQuery) ([]model.AirRate, error) {
	q = q.Canonical()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	return orchestrator.Run(ctx, s.orch, orchestrator.Plan[model.AirRate]{
		Domain: model.DomainAirRates,
		Slices: orchestrator.DestinationSlices(q.DestinationRegion, q.DestinationAirport),
		Request: func(sl model.ScopeSlice) llm.Request {
			return s.request(prompt.AirRates(q, sl).Render())
		},
		Parse: normalize.AirRates,
		Finish: func(r *model.AirRate, sl model.ScopeSlice) {
			r.OriginAirport = q.OriginAirport
			r.Region = fill(r.Region, string(sl.Destination))
			r.Commodity = string(q.Commodity)
			r.WeightBreak = string(q.WeightBreak)
		},
		Key: func(r model.AirRate) string {
			return naturalKey(r.OriginAirport, r.DestinationAirport, r.AirlineIndication, r.WeightBreak)
		},
	})
}

// AnalyzeLocalCharges builds the origin-side charge sheet for one facility
// or every major facility of the transport mode.
func (s *Service) AnalyzeLocalCharges(ctx context.Context, q model.LocalChargesQuery) ([]model.LocalCharge, error) {
	q = q.Canonical()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	return orchestrator.Run(ctx, s.orch, orchestrator.Plan[model.LocalCharge]{
		Domain: model.DomainLocalCharges,
		Slices: orchestrator.LocalChargeSlices(q),
		Request: func(sl model.ScopeSlice) llm.Request {
			return s.request(prompt.LocalCharges(q, sl).Render())
		},
		Parse: normalize.LocalCharges,
		Key: func(c model.LocalCharge) string {
			return naturalKey(c.LocationName)
		},
	})
}

// VerifyFacility grounds a facility on a map. It never fails.
func (s *Service) VerifyFacility(ctx context.Context, f model.Facility) model.Verification {
	return s.verifier.Verify(ctx, f.Target())
}

// VerifyAirRate grounds an air rate's destination airport on a map. It
// never fails.
func (s *Service) VerifyAirRate(ctx context.Context, a model.AirRate) model.Verification {
	return s.verifier.Verify(ctx, a.Target())
}

func facilityKey(f model.Facility) string {
	if f.Code != "" {
		return f.Code
	}
	if f.Name == "" {
		return ""
	}
	return naturalKey("name", f.Name)
}

// naturalKey joins case-folded parts. It is empty when every part is empty
// or N/A, which disables merging for that item.
func naturalKey(parts ...string) string {
	meaningful := false
	for i, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" && p != strings.ToLower(normalize.NA) {
			meaningful = true
		}
		parts[i] = p
	}
	if !meaningful {
		return ""
	}
	return strings.Join(parts, "|")
}

func fill(v, def string) string {
	if (v == "" || v == normalize.NA) && def != "" {
		return def
	}
	return v
}
