package model

import "strings"

// ScopeSlice is one fully-scoped unit of work derived from a query: a
// (continent, region, country) triple for facilities, a destination region
// or port for rate sheets, or an origin location for local charges.
type ScopeSlice struct {
	Continent   string            `json:"continent,omitempty"`
	Region      string            `json:"region,omitempty"`
	Country     string            `json:"country,omitempty"`
	Destination RegionDestination `json:"destination,omitempty"`
	Location    string            `json:"location,omitempty"`
}

// Label renders the slice for logs and error reports.
func (s ScopeSlice) Label() string {
	var parts []string
	for _, p := range []string{s.Continent, s.Region, s.Country, string(s.Destination), s.Location} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "(global)"
	}
	return strings.Join(parts, " / ")
}
