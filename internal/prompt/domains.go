package prompt

import (
	"fmt"
	"strings"

	"github.com/sells-group/freight-cli/internal/model"
)

// Facilities builds the extraction prompt for one (continent, region,
// country) slice.
func Facilities(q model.FacilityQuery, s model.ScopeSlice) Template {
	return Template{
		Persona: "a high-precision global logistics data engine",
		Task:    "Extract a dataset of commercial Seaports and Airports.",
		Scope: []Line{
			{"Scope", fmt.Sprintf("%s, %s, %s", s.Continent, s.Region, orDefault(s.Country, "ALL"))},
			{"Exclusions", orDefault(q.ExcludeCountries, "None")},
		},
		Schema: []Field{
			{"name", "string"},
			{"code", "string (UN/LOCODE for ports, IATA for airports)"},
			{"type", `"Port" | "Airport"`},
			{"category", "string (e.g. International, Regional, Deep Sea)"},
			{"country", "string"},
			{"region", "string (state or province)"},
			{"latitude", "number"},
			{"longitude", "number"},
			{"city", "string"},
			{"description", "string"},
		},
		Directives: []string{
			"Enumerate EVERY commercial seaport and cargo airport in scope. Do not truncate or summarise the list.",
			"Every item must carry a unique code.",
			"Latitude and longitude are decimal degrees, not strings.",
		},
	}
}

// SeaRates builds the ocean-freight rate sheet prompt for one destination
// slice.
func SeaRates(q model.SeaRateQuery, s model.ScopeSlice) Template {
	t := Template{
		Persona: "a Senior Global Freight Forwarder & Pricing Analyst",
		Task:    fmt.Sprintf(`Produce a High-Density "Weekly Ocean Freight Rate Sheet" for EXPORT from %s, Indonesia.`, q.OriginPort),
		Scope:   destinationScope(q.DestinationPort, s),
		Schema: []Field{
			{"originPort", "string (Origin port in Indonesia)"},
			{"destinationPort", "string (Destination port)"},
			{"country", "string"},
			{"region", "string"},
			{"containerSize", fmt.Sprintf("string (%s)", q.ContainerSize)},
			{"commodity", fmt.Sprintf("string (%s)", q.Commodity)},
			{"currency", "string (USD)"},
			{"estimatedPrice", "string (numbers only)"},
			{"validity", "string"},
			{"transitTime", "string (e.g. 25-30 Days)"},
			{"frequency", "string (e.g. Weekly)"},
			{"carrierIndication", "string (e.g. MSC, Maersk, Evergreen)"},
		},
	}
	t.Scope = append(t.Scope, Line{"Reference date", q.TargetDate})
	t.Directives = rateDirectives(q.DestinationPort == "", "carriers")
	return t
}

// AirRates builds the air-freight rate sheet prompt for one destination
// slice.
func AirRates(q model.AirRateQuery, s model.ScopeSlice) Template {
	t := Template{
		Persona: "an Air Freight Pricing Manager",
		Task:    fmt.Sprintf("Generate exhaustive Air Freight Rates for EXPORT from %s, Indonesia.", q.OriginAirport),
		Scope:   destinationScope(q.DestinationAirport, s),
		Schema: []Field{
			{"originAirport", "string"},
			{"destinationAirport", "string (IATA code + city)"},
			{"country", "string"},
			{"region", "string"},
			{"currency", "string (USD)"},
			{"estimatedPrice", fmt.Sprintf("string (numbers only, per kg at %s)", q.WeightBreak)},
			{"fuelSurcharge", "string"},
			{"warRiskSurcharge", "string"},
			{"uld", "string"},
			{"dgHandling", "string"},
			{"tempControl", "string"},
			{"perishableFee", "string"},
			{"oversizeFee", "string"},
			{"transitTime", "string"},
			{"frequency", "string"},
			{"validity", "string"},
			{"airlineIndication", "string"},
		},
	}
	t.Scope = append(t.Scope,
		Line{"Commodity", string(q.Commodity)},
		Line{"Weight break", string(q.WeightBreak)},
		Line{"Reference date", q.TargetDate},
	)
	t.Directives = append(rateDirectives(q.DestinationAirport == "", "airlines"),
		"Include surcharge details: fuel, war risk, ULD, DG handling, temperature control, perishable and oversize fees.",
	)
	return t
}

// LocalCharges builds the origin-side charge sheet prompt. The slice
// Location is the resolved facility scope: a single facility or the full
// list of major facilities.
func LocalCharges(q model.LocalChargesQuery, s model.ScopeSlice) Template {
	mode, _ := model.ParseTransportType(string(q.TransportMode))

	t := Template{
		Persona: "a Senior Freight Forwarder",
		Task:    fmt.Sprintf("Generate Local Charges for %s.", s.Location),
		Scope: []Line{
			{"Transport mode", string(mode)},
			{"Commodity", string(q.Commodity)},
			{"Reference date", q.Date},
		},
		Schema: []Field{
			{"locationName", "string (name of port or airport)"},
			{"thc20", "string"},
			{"thc40", "string"},
			{"lolo", "string"},
			{"gateIn", "string"},
			{"sealFee", "string"},
			{"detentionDays", "string"},
			{"tsc", "string (per kg)"},
			{"ra", "string (per kg)"},
			{"awbFee", "string"},
			{"handling", "string"},
			{"inspectionFee", "string"},
			{"storageFee", "string"},
			{"specialTreatment", "string"},
			{"adminFee", "string"},
			{"docFee", "string"},
			{"cooFee", "string"},
			{"note", "string"},
		},
		Directives: []string{
			"Provide real market estimates in IDR or USD with the currency written in each value.",
		},
	}

	if mode == model.TransportAirport {
		t.Directives = append(t.Directives, `Sea-only keys (thc20, thc40, lolo, gateIn, sealFee, detentionDays) must be "N/A".`)
	} else {
		t.Directives = append(t.Directives, `Air-only keys (tsc, ra, awbFee) must be "N/A".`)
	}
	if q.AllLocations() {
		t.Directives = append(t.Directives, "You must generate a row for EVERY facility listed. Do not skip any.")
	}
	return t
}

// Locate builds the maps-grounded verification prompt.
func Locate(target model.LocateTarget) Template {
	name := target.Name
	if target.Code != "" {
		name = fmt.Sprintf("%s (%s)", name, target.Code)
	}

	var where []string
	for _, p := range []string{target.City, target.Country} {
		if strings.TrimSpace(p) != "" {
			where = append(where, p)
		}
	}

	task := fmt.Sprintf("Locate %s.", name)
	if len(where) > 0 {
		task = fmt.Sprintf("Locate %s in %s.", name, strings.Join(where, ", "))
	}
	return Template{Task: task}
}

// LocalChargesScope resolves the facility scope string for a local-charges
// query, expanding the "all major" selections to the reference lists.
func LocalChargesScope(q model.LocalChargesQuery) string {
	switch {
	case strings.Contains(q.OriginLocation, "All Major Ports"):
		return "ALL PORTS: " + strings.Join(model.IndonesianPorts, ", ")
	case strings.Contains(q.OriginLocation, "All Major Airports"):
		return "ALL AIRPORTS: " + strings.Join(model.IndonesianAirports, ", ")
	default:
		return q.OriginLocation
	}
}

func destinationScope(port string, s model.ScopeSlice) []Line {
	if port != "" {
		return []Line{{"Destination", port}}
	}
	lines := []Line{{"Region", string(s.Destination)}}
	if hint := model.RegionHint(s.Destination); hint != "" {
		lines = append(lines, Line{"Hints", hint})
	}
	return lines
}

func rateDirectives(broad bool, providers string) []string {
	d := []string{
		"estimatedPrice is a single numeric value without currency symbols or separators. The currency goes in currency.",
		fmt.Sprintf("Provide multiple %s for each major route.", providers),
		"Match exactly the OUTPUT keys.",
	}
	if broad {
		d = append([]string{"The region is broad: provide at least 50-80 rows of unique data covering every listed hub."}, d...)
	}
	return d
}
