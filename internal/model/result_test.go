package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerification_Apply(t *testing.T) {
	m := ItemMeta{ID: "a", MapsURI: "https://old"}

	Verification{Verified: true, MapsURI: "https://maps.google.com/?cid=1"}.Apply(&m)
	assert.True(t, m.Verified)
	assert.Equal(t, "https://maps.google.com/?cid=1", m.MapsURI)
	assert.Equal(t, "a", m.ID)

	// A failed verification keeps the previous link.
	Verification{Verified: false}.Apply(&m)
	assert.False(t, m.Verified)
	assert.Equal(t, "https://maps.google.com/?cid=1", m.MapsURI)

	// Verified without a link keeps the existing one.
	Verification{Verified: true}.Apply(&m)
	assert.True(t, m.Verified)
	assert.Equal(t, "https://maps.google.com/?cid=1", m.MapsURI)
}

func TestTargets(t *testing.T) {
	f := Facility{Name: "Port of Belawan", Code: "IDBLW", City: "Medan", Country: "Indonesia"}
	assert.Equal(t, LocateTarget{Name: "Port of Belawan", Code: "IDBLW", City: "Medan", Country: "Indonesia"}, f.Target())

	a := AirRate{DestinationAirport: "NRT - Narita", Country: "Japan", OriginAirport: "CGK"}
	assert.Equal(t, LocateTarget{Name: "NRT - Narita", Country: "Japan"}, a.Target())
}

func TestItemMeta_Meta(t *testing.T) {
	r := SeaRate{ItemMeta: ItemMeta{ID: "x"}}
	r.Meta().Verified = true
	assert.True(t, r.Verified)
}
