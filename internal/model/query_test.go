package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacilityQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		q       FacilityQuery
		wantErr string
	}{
		{"continent only", FacilityQuery{Continent: "Asia"}, ""},
		{"region", FacilityQuery{Continent: "Europe", Region: "Northern Europe"}, ""},
		{"country", FacilityQuery{Continent: "Asia", Region: "South-Eastern Asia", Country: "Indonesia"}, ""},
		{"missing continent", FacilityQuery{}, "continent is required"},
		{"unknown continent", FacilityQuery{Continent: "Atlantis"}, "unknown continent"},
		{"country without region", FacilityQuery{Continent: "Asia", Country: "Japan"}, "requires a region"},
		{"region of other continent", FacilityQuery{Continent: "Asia", Region: "Western Europe"}, "not part of Asia"},
		{"country of other region", FacilityQuery{Continent: "Asia", Region: "Eastern Asia", Country: "Indonesia"}, "not part of Eastern Asia"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidQuery))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func validSea() SeaRateQuery {
	return SeaRateQuery{
		OriginPort:        "Tanjung Priok",
		Commodity:         CommodityGeneral,
		ContainerSize:     Container40HC,
		TargetDate:        "2025-01-15",
		DestinationRegion: DestinationAsia,
	}
}

func TestSeaRateQuery_Validate(t *testing.T) {
	assert.NoError(t, validSea().Validate())

	q := validSea()
	q.OriginPort = " "
	assert.ErrorIs(t, q.Validate(), ErrInvalidQuery)

	q = validSea()
	q.TargetDate = "15/01/2025"
	err := q.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")

	q = validSea()
	q.DestinationRegion = "Mars"
	assert.ErrorContains(t, q.Validate(), "unknown destination region")

	q = validSea()
	q.ContainerSize = "53ft"
	assert.ErrorContains(t, q.Validate(), "unknown container size")

	q = validSea()
	q.DestinationRegion = ""
	assert.NoError(t, q.Validate())
}

func TestSeaRateQuery_Canonical(t *testing.T) {
	q := SeaRateQuery{Commodity: "dg", ContainerSize: "40hc", DestinationRegion: "all"}.Canonical()
	assert.Equal(t, CommodityDangerous, q.Commodity)
	assert.Equal(t, Container40HC, q.ContainerSize)
	assert.Equal(t, DestinationAll, q.DestinationRegion)

	q = SeaRateQuery{Commodity: "Furniture"}.Canonical()
	assert.Equal(t, Commodity("Furniture"), q.Commodity)
	assert.Equal(t, DestinationAll, q.DestinationRegion)
}

func TestAirRateQuery(t *testing.T) {
	q := AirRateQuery{
		OriginAirport:     "CGK",
		Commodity:         "PIL",
		WeightBreak:       "min",
		TargetDate:        "2025-02-01",
		DestinationRegion: "europe",
	}.Canonical()
	assert.Equal(t, CommodityPharma, q.Commodity)
	assert.Equal(t, WeightMin, q.WeightBreak)
	assert.Equal(t, DestinationEurope, q.DestinationRegion)
	assert.NoError(t, q.Validate())

	q.WeightBreak = "+5000 Kg"
	assert.ErrorContains(t, q.Validate(), "unknown weight break")

	q = AirRateQuery{Commodity: CommodityGeneral, WeightBreak: WeightP45, TargetDate: "2025-02-01"}
	assert.ErrorContains(t, q.Validate(), "origin airport is required")
}

func TestLocalChargesQuery(t *testing.T) {
	q := LocalChargesQuery{
		Date:           "2025-03-10",
		Commodity:      "reefer / perishable",
		TransportMode:  "air",
		OriginLocation: "Jakarta (CGK)",
	}.Canonical()
	assert.Equal(t, CommodityReefer, q.Commodity)
	assert.Equal(t, TransportAirport, q.TransportMode)
	assert.NoError(t, q.Validate())
	assert.False(t, q.AllLocations())

	q.OriginLocation = AllMajorAirports
	assert.True(t, q.AllLocations())

	q.TransportMode = "rail"
	assert.ErrorContains(t, q.Validate(), "unknown transport mode")

	q = LocalChargesQuery{Date: "2025-03-10", Commodity: CommodityGeneral, TransportMode: TransportPort}
	assert.ErrorContains(t, q.Validate(), "origin location is required")
}
