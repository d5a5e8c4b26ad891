package orchestrator

import (
	"github.com/sells-group/freight-cli/internal/model"
	"github.com/sells-group/freight-cli/internal/prompt"
)

// FacilitySlices returns one slice per region of the continent when no
// region is chosen, otherwise the single fully-specified slice.
func FacilitySlices(q model.FacilityQuery) []model.ScopeSlice {
	if q.Region == "" {
		regions := model.Regions(q.Continent)
		out := make([]model.ScopeSlice, 0, len(regions))
		for _, r := range regions {
			out = append(out, model.ScopeSlice{Continent: q.Continent, Region: r})
		}
		return out
	}
	return []model.ScopeSlice{{Continent: q.Continent, Region: q.Region, Country: q.Country}}
}

// DestinationSlices returns the slices of a rate-sheet query. A named
// destination port or airport is a single slice; otherwise ALL (or an
// empty region) expands to every named destination region.
func DestinationSlices(region model.RegionDestination, destination string) []model.ScopeSlice {
	if r, ok := model.ParseRegionDestination(string(region)); ok {
		region = r
	}

	if destination != "" {
		s := model.ScopeSlice{Location: destination}
		if region != model.DestinationAll {
			s.Destination = region
		}
		return []model.ScopeSlice{s}
	}

	if region == "" || region == model.DestinationAll {
		out := make([]model.ScopeSlice, 0, len(model.NamedDestinations))
		for _, d := range model.NamedDestinations {
			out = append(out, model.ScopeSlice{Destination: d})
		}
		return out
	}
	return []model.ScopeSlice{{Destination: region}}
}

// LocalChargeSlices returns the single slice of a local-charges query. The
// "all major" selections expand inside that slice, not across slices.
func LocalChargeSlices(q model.LocalChargesQuery) []model.ScopeSlice {
	return []model.ScopeSlice{{Location: prompt.LocalChargesScope(q)}}
}
