package model

import (
	"strings"

	"golang.org/x/text/cases"
)

// TransportType distinguishes seaports from airports.
type TransportType string

const (
	TransportPort    TransportType = "Port"
	TransportAirport TransportType = "Airport"
)

// Commodity is the cargo category shared by the sea and air domains.
type Commodity string

const (
	CommodityGeneral    Commodity = "General Cargo"
	CommodityValuable   Commodity = "Valuable Cargo (VAL)"
	CommodityPharma     Commodity = "Pharma / Drugs (PIL)"
	CommodityHeavy      Commodity = "Heavy Cargo (HEA)"
	CommodityHuman      Commodity = "Human Remains (HUM)"
	CommodityDryBulk    Commodity = "Dry Bulk"
	CommodityLiquidBulk Commodity = "Liquid Bulk"
	CommodityBreakBulk  Commodity = "Break Bulk"
	CommodityProject    Commodity = "Project Cargo"
	CommodityRoRo       Commodity = "Ro-Ro (Kendaraan)"
	CommodityReefer     Commodity = "Reefer / Perishable"
	CommodityDangerous  Commodity = "Dangerous Goods (DG)"
	CommodityLiveAnimal Commodity = "Live Animals (AVI)"
)

// Commodities lists every commodity in display order.
var Commodities = []Commodity{
	CommodityGeneral, CommodityValuable, CommodityPharma, CommodityHeavy, CommodityHuman,
	CommodityDryBulk, CommodityLiquidBulk, CommodityBreakBulk, CommodityProject,
	CommodityRoRo, CommodityReefer, CommodityDangerous, CommodityLiveAnimal,
}

// ContainerSize is the sea-freight equipment type.
type ContainerSize string

const (
	Container20GP     ContainerSize = "20' Standard (20GP)"
	Container40GP     ContainerSize = "40' Standard (40GP)"
	Container40HC     ContainerSize = "40' High Cube (40HC)"
	ContainerLCL      ContainerSize = "LCL (Per CBM)"
	ContainerISOTank  ContainerSize = "ISO Tank (20')"
	ContainerFlatRack ContainerSize = "Flat Rack / Open Top (OOG)"
)

// ContainerSizes lists every container size in display order.
var ContainerSizes = []ContainerSize{
	Container20GP, Container40GP, Container40HC, ContainerLCL, ContainerISOTank, ContainerFlatRack,
}

// WeightBreak is the air-freight chargeable weight tier.
type WeightBreak string

const (
	WeightMin   WeightBreak = "Min (Minimum)"
	WeightN45   WeightBreak = "-45 Kg"
	WeightP45   WeightBreak = "+45 Kg"
	WeightP100  WeightBreak = "+100 Kg"
	WeightP300  WeightBreak = "+300 Kg"
	WeightP500  WeightBreak = "+500 Kg"
	WeightP1000 WeightBreak = "+1000 Kg"
)

// WeightBreaks lists every weight break in display order.
var WeightBreaks = []WeightBreak{
	WeightMin, WeightN45, WeightP45, WeightP100, WeightP300, WeightP500, WeightP1000,
}

// RegionDestination is a destination trade lane for rate sheets.
type RegionDestination string

const (
	DestinationAll          RegionDestination = "All Global Regions"
	DestinationAsia         RegionDestination = "Asia"
	DestinationEurope       RegionDestination = "Europe"
	DestinationNorthAmerica RegionDestination = "North America"
	DestinationSouthAmerica RegionDestination = "South America"
	DestinationMiddleEast   RegionDestination = "Middle East & Red Sea"
	DestinationAfrica       RegionDestination = "Africa"
	DestinationOceania      RegionDestination = "Oceania"
)

// NamedDestinations lists the concrete destination regions in enumeration
// order. DestinationAll expands to exactly this list.
var NamedDestinations = []RegionDestination{
	DestinationAsia,
	DestinationEurope,
	DestinationNorthAmerica,
	DestinationSouthAmerica,
	DestinationMiddleEast,
	DestinationAfrica,
	DestinationOceania,
}

// sameFold reports whether a and b are equal under Unicode case folding.
// Casers carry state, so each comparison gets its own.
func sameFold(a, b string) bool {
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(a)) == fold.String(strings.TrimSpace(b))
}

// ParseTransportType maps free text onto the transport vocabulary. The
// second return value is false when the input was not recognised and the
// Port default was applied.
func ParseTransportType(s string) (TransportType, bool) {
	switch {
	case sameFold(s, string(TransportAirport)), sameFold(s, "air"), sameFold(s, "airport cargo"):
		return TransportAirport, true
	case sameFold(s, string(TransportPort)), sameFold(s, "sea"), sameFold(s, "seaport"):
		return TransportPort, true
	default:
		return TransportPort, false
	}
}

// ParseCommodity resolves a commodity by its display value or its short
// code (e.g. "DG", "VAL").
func ParseCommodity(s string) (Commodity, bool) {
	for _, c := range Commodities {
		if sameFold(s, string(c)) {
			return c, true
		}
		if code := commodityCode(c); code != "" && sameFold(s, code) {
			return c, true
		}
	}
	return "", false
}

func commodityCode(c Commodity) string {
	v := string(c)
	open := strings.LastIndex(v, "(")
	if open < 0 || !strings.HasSuffix(v, ")") {
		return ""
	}
	return v[open+1 : len(v)-1]
}

// ParseContainerSize resolves a container size by display value or by the
// bracketed code (e.g. "40HC").
func ParseContainerSize(s string) (ContainerSize, bool) {
	for _, c := range ContainerSizes {
		if sameFold(s, string(c)) {
			return c, true
		}
		v := string(c)
		if open := strings.Index(v, "("); open >= 0 && strings.HasSuffix(v, ")") {
			if sameFold(s, v[open+1:len(v)-1]) {
				return c, true
			}
		}
	}
	return "", false
}

// ParseWeightBreak resolves a weight break by display value.
func ParseWeightBreak(s string) (WeightBreak, bool) {
	for _, w := range WeightBreaks {
		if sameFold(s, string(w)) {
			return w, true
		}
	}
	if sameFold(s, "min") {
		return WeightMin, true
	}
	return "", false
}

// ParseRegionDestination resolves a destination region. "ALL", "global"
// and the display value of DestinationAll all map to DestinationAll.
func ParseRegionDestination(s string) (RegionDestination, bool) {
	if sameFold(s, "all") || sameFold(s, "global") || sameFold(s, string(DestinationAll)) {
		return DestinationAll, true
	}
	for _, d := range NamedDestinations {
		if sameFold(s, string(d)) {
			return d, true
		}
	}
	if sameFold(s, "middle east") {
		return DestinationMiddleEast, true
	}
	return "", false
}
