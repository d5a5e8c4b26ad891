package model

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// ErrInvalidQuery is the root of every query validation failure.
var ErrInvalidQuery = eris.New("invalid query")

// DateLayout is the layout of every reference date carried by a query.
const DateLayout = "2006-01-02"

// Domain identifies which kind of data a query asks for.
type Domain string

const (
	DomainFacilities   Domain = "facilities"
	DomainSeaRates     Domain = "sea_rates"
	DomainAirRates     Domain = "air_rates"
	DomainLocalCharges Domain = "local_charges"
)

// FacilityQuery asks for the ports and airports of a geographic scope. An
// empty Region means every region of the continent.
type FacilityQuery struct {
	Continent        string `json:"continent"`
	Region           string `json:"region,omitempty"`
	Country          string `json:"country,omitempty"`
	ExcludeCountries string `json:"exclude_countries,omitempty"`
}

// Validate checks that the scope selectors are mutually consistent.
func (q FacilityQuery) Validate() error {
	if strings.TrimSpace(q.Continent) == "" {
		return eris.Wrap(ErrInvalidQuery, "continent is required")
	}
	if Regions(q.Continent) == nil {
		return eris.Wrapf(ErrInvalidQuery, "unknown continent %q", q.Continent)
	}
	if q.Country != "" && q.Region == "" {
		return eris.Wrapf(ErrInvalidQuery, "country %q requires a region", q.Country)
	}
	if q.Region != "" && !HasRegion(q.Continent, q.Region) {
		return eris.Wrapf(ErrInvalidQuery, "region %q is not part of %s", q.Region, q.Continent)
	}
	if q.Country != "" && !HasCountry(q.Continent, q.Region, q.Country) {
		return eris.Wrapf(ErrInvalidQuery, "country %q is not part of %s", q.Country, q.Region)
	}
	return nil
}

// SeaRateQuery asks for an export ocean-freight rate sheet.
type SeaRateQuery struct {
	OriginPort        string            `json:"origin_port"`
	Commodity         Commodity         `json:"commodity"`
	ContainerSize     ContainerSize     `json:"container_size"`
	TargetDate        string            `json:"target_date"`
	DestinationRegion RegionDestination `json:"destination_region"`
	DestinationPort   string            `json:"destination_port,omitempty"`
}

// Validate checks required fields and enum membership.
func (q SeaRateQuery) Validate() error {
	if strings.TrimSpace(q.OriginPort) == "" {
		return eris.Wrap(ErrInvalidQuery, "origin port is required")
	}
	if _, ok := ParseCommodity(string(q.Commodity)); !ok {
		return eris.Wrapf(ErrInvalidQuery, "unknown commodity %q", q.Commodity)
	}
	if _, ok := ParseContainerSize(string(q.ContainerSize)); !ok {
		return eris.Wrapf(ErrInvalidQuery, "unknown container size %q", q.ContainerSize)
	}
	if err := validateDate(q.TargetDate); err != nil {
		return err
	}
	return validateDestination(q.DestinationRegion)
}

// AirRateQuery asks for an export air-freight rate sheet.
type AirRateQuery struct {
	OriginAirport      string            `json:"origin_airport"`
	Commodity          Commodity         `json:"commodity"`
	WeightBreak        WeightBreak       `json:"weight_break"`
	TargetDate         string            `json:"target_date"`
	DestinationRegion  RegionDestination `json:"destination_region"`
	DestinationAirport string            `json:"destination_airport,omitempty"`
}

// Validate checks required fields and enum membership.
func (q AirRateQuery) Validate() error {
	if strings.TrimSpace(q.OriginAirport) == "" {
		return eris.Wrap(ErrInvalidQuery, "origin airport is required")
	}
	if _, ok := ParseCommodity(string(q.Commodity)); !ok {
		return eris.Wrapf(ErrInvalidQuery, "unknown commodity %q", q.Commodity)
	}
	if _, ok := ParseWeightBreak(string(q.WeightBreak)); !ok {
		return eris.Wrapf(ErrInvalidQuery, "unknown weight break %q", q.WeightBreak)
	}
	if err := validateDate(q.TargetDate); err != nil {
		return err
	}
	return validateDestination(q.DestinationRegion)
}

// LocalChargesQuery asks for origin-side handling charges at one facility or
// at every major Indonesian facility of a transport mode.
type LocalChargesQuery struct {
	Date           string        `json:"date"`
	Commodity      Commodity     `json:"commodity"`
	TransportMode  TransportType `json:"transport_mode"`
	OriginLocation string        `json:"origin_location"`
}

// Validate checks required fields and enum membership.
func (q LocalChargesQuery) Validate() error {
	if strings.TrimSpace(q.OriginLocation) == "" {
		return eris.Wrap(ErrInvalidQuery, "origin location is required")
	}
	if _, ok := ParseTransportType(string(q.TransportMode)); !ok {
		return eris.Wrapf(ErrInvalidQuery, "unknown transport mode %q", q.TransportMode)
	}
	if _, ok := ParseCommodity(string(q.Commodity)); !ok {
		return eris.Wrapf(ErrInvalidQuery, "unknown commodity %q", q.Commodity)
	}
	return validateDate(q.Date)
}

// AllLocations reports whether the origin asks for every major facility.
func (q LocalChargesQuery) AllLocations() bool {
	return strings.Contains(q.OriginLocation, "All Major Ports") ||
		strings.Contains(q.OriginLocation, "All Major Airports")
}

func validateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return eris.Wrapf(ErrInvalidQuery, "date %q must be YYYY-MM-DD", s)
	}
	return nil
}

func validateDestination(r RegionDestination) error {
	if r == "" {
		return nil
	}
	if _, ok := ParseRegionDestination(string(r)); !ok {
		return eris.Wrapf(ErrInvalidQuery, "unknown destination region %q", r)
	}
	return nil
}

// Canonical returns the query with enum fields mapped to their display
// values. Unrecognised values are left as given; Validate reports them.
func (q SeaRateQuery) Canonical() SeaRateQuery {
	if c, ok := ParseCommodity(string(q.Commodity)); ok {
		q.Commodity = c
	}
	if c, ok := ParseContainerSize(string(q.ContainerSize)); ok {
		q.ContainerSize = c
	}
	q.DestinationRegion = canonicalDestination(q.DestinationRegion)
	return q
}

// Canonical returns the query with enum fields mapped to their display
// values.
func (q AirRateQuery) Canonical() AirRateQuery {
	if c, ok := ParseCommodity(string(q.Commodity)); ok {
		q.Commodity = c
	}
	if w, ok := ParseWeightBreak(string(q.WeightBreak)); ok {
		q.WeightBreak = w
	}
	q.DestinationRegion = canonicalDestination(q.DestinationRegion)
	return q
}

// Canonical returns the query with enum fields mapped to their display
// values.
func (q LocalChargesQuery) Canonical() LocalChargesQuery {
	if c, ok := ParseCommodity(string(q.Commodity)); ok {
		q.Commodity = c
	}
	if t, ok := ParseTransportType(string(q.TransportMode)); ok {
		q.TransportMode = t
	}
	return q
}

func canonicalDestination(r RegionDestination) RegionDestination {
	if r == "" {
		return DestinationAll
	}
	if d, ok := ParseRegionDestination(string(r)); ok {
		return d
	}
	return r
}
