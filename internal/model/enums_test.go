package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTransportType(t *testing.T) {
	tests := []struct {
		in   string
		want TransportType
		ok   bool
	}{
		{"Port", TransportPort, true},
		{"airport", TransportAirport, true},
		{" AIR ", TransportAirport, true},
		{"seaport", TransportPort, true},
		{"Airport Cargo", TransportAirport, true},
		{"Dry Port", TransportPort, false},
		{"", TransportPort, false},
	}
	for _, tt := range tests {
		got, ok := ParseTransportType(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestParseCommodity(t *testing.T) {
	got, ok := ParseCommodity("general cargo")
	assert.True(t, ok)
	assert.Equal(t, CommodityGeneral, got)

	got, ok = ParseCommodity("dg")
	assert.True(t, ok)
	assert.Equal(t, CommodityDangerous, got)

	got, ok = ParseCommodity("AVI")
	assert.True(t, ok)
	assert.Equal(t, CommodityLiveAnimal, got)

	_, ok = ParseCommodity("Furniture")
	assert.False(t, ok)
}

func TestCommodities_Complete(t *testing.T) {
	assert.Len(t, Commodities, 13)
	assert.Equal(t, CommodityGeneral, Commodities[0])
	assert.Equal(t, "VAL", commodityCode(CommodityValuable))
	assert.Equal(t, "", commodityCode(CommodityDryBulk))
}

func TestParseContainerSize(t *testing.T) {
	tests := map[string]ContainerSize{
		"40HC":                Container40HC,
		"20gp":                Container20GP,
		"LCL":                 ContainerLCL,
		"OOG":                 ContainerFlatRack,
		"40' Standard (40GP)": Container40GP,
		"ISO Tank (20')":      ContainerISOTank,
	}
	for in, want := range tests {
		got, ok := ParseContainerSize(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseContainerSize("45HC")
	assert.False(t, ok)
}

func TestParseWeightBreak(t *testing.T) {
	got, ok := ParseWeightBreak("+100 kg")
	assert.True(t, ok)
	assert.Equal(t, WeightP100, got)

	got, ok = ParseWeightBreak("MIN")
	assert.True(t, ok)
	assert.Equal(t, WeightMin, got)

	_, ok = ParseWeightBreak("+2000 Kg")
	assert.False(t, ok)
	assert.Len(t, WeightBreaks, 7)
}

func TestParseRegionDestination(t *testing.T) {
	for _, in := range []string{"ALL", "global", "All Global Regions"} {
		got, ok := ParseRegionDestination(in)
		assert.True(t, ok, in)
		assert.Equal(t, DestinationAll, got, in)
	}

	got, ok := ParseRegionDestination("middle east")
	assert.True(t, ok)
	assert.Equal(t, DestinationMiddleEast, got)

	got, ok = ParseRegionDestination("oceania")
	assert.True(t, ok)
	assert.Equal(t, DestinationOceania, got)

	_, ok = ParseRegionDestination("Antarctica")
	assert.False(t, ok)
}

func TestNamedDestinations_Order(t *testing.T) {
	assert.Equal(t, []RegionDestination{
		DestinationAsia, DestinationEurope, DestinationNorthAmerica, DestinationSouthAmerica,
		DestinationMiddleEast, DestinationAfrica, DestinationOceania,
	}, NamedDestinations)
	assert.NotContains(t, NamedDestinations, DestinationAll)
}
