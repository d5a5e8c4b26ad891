package model

// SourceRef is a grounding reference attached by the provider to an answer.
type SourceRef struct {
	Kind  string `json:"kind"` // "web" or "maps"
	URI   string `json:"uri"`
	Title string `json:"title,omitempty"`
}

// ItemMeta is the metadata common to every result item. Items are created
// unverified by the normalizer; only verification mutates Verified and
// MapsURI.
type ItemMeta struct {
	ID       string      `json:"id"`
	Verified bool        `json:"verified"`
	MapsURI  string      `json:"maps_uri,omitempty"`
	Sources  []SourceRef `json:"sources,omitempty"`
}

// Meta returns a pointer to the embedded metadata.
func (m *ItemMeta) Meta() *ItemMeta { return m }

// Facility is a seaport or airport.
type Facility struct {
	ItemMeta
	Name        string        `json:"name"`
	Code        string        `json:"code"` // UN/LOCODE for ports, IATA/ICAO for airports
	Type        TransportType `json:"type"`
	Category    string        `json:"category"`
	Country     string        `json:"country"`
	Region      string        `json:"region"` // state or province
	City        string        `json:"city"`
	Latitude    float64       `json:"latitude"`
	Longitude   float64       `json:"longitude"`
	Description string        `json:"description"`
}

// SeaRate is one row of an ocean-freight rate sheet. Prices are passed
// through as the model returned them.
type SeaRate struct {
	ItemMeta
	OriginPort        string `json:"origin_port"`
	DestinationPort   string `json:"destination_port"`
	Country           string `json:"country"`
	Region            string `json:"region"`
	Currency          string `json:"currency"`
	EstimatedPrice    string `json:"estimated_price"`
	TransitTime       string `json:"transit_time"`
	Frequency         string `json:"frequency"`
	Validity          string `json:"validity"`
	CarrierIndication string `json:"carrier_indication"`
	Commodity         string `json:"commodity"`
	ContainerSize     string `json:"container_size"`
}

// AirRate is one row of an air-freight rate sheet.
type AirRate struct {
	ItemMeta
	OriginAirport      string `json:"origin_airport"`
	DestinationAirport string `json:"destination_airport"`
	Country            string `json:"country"`
	Region             string `json:"region"`
	Currency           string `json:"currency"`
	EstimatedPrice     string `json:"estimated_price"`
	FuelSurcharge      string `json:"fuel_surcharge"`
	WarRiskSurcharge   string `json:"war_risk_surcharge"`
	ULD                string `json:"uld"`
	DGHandling         string `json:"dg_handling"`
	TempControl        string `json:"temp_control"`
	PerishableFee      string `json:"perishable_fee"`
	OversizeFee        string `json:"oversize_fee"`
	TransitTime        string `json:"transit_time"`
	Frequency          string `json:"frequency"`
	Validity           string `json:"validity"`
	AirlineIndication  string `json:"airline_indication"`
	Commodity          string `json:"commodity"`
	WeightBreak        string `json:"weight_break"`
}

// LocalCharge is one facility's origin-side charge sheet. Sea-only and
// air-only columns hold the N/A sentinel for the other mode.
type LocalCharge struct {
	ItemMeta
	LocationName string `json:"location_name"`

	THC20         string `json:"thc_20"`
	THC40         string `json:"thc_40"`
	LOLO          string `json:"lolo"`
	GateIn        string `json:"gate_in"`
	SealFee       string `json:"seal_fee"`
	DetentionDays string `json:"detention_days"`

	TSC    string `json:"tsc"`
	RA     string `json:"ra"`
	AWBFee string `json:"awb_fee"`

	Handling         string `json:"handling"`
	InspectionFee    string `json:"inspection_fee"`
	StorageFee       string `json:"storage_fee"`
	SpecialTreatment string `json:"special_treatment"`
	AdminFee         string `json:"admin_fee"`
	DocFee           string `json:"doc_fee"`
	COOFee           string `json:"coo_fee"`
	Note             string `json:"note"`
}

// Verification is the partial update produced by the verification flow.
type Verification struct {
	Verified bool   `json:"verified"`
	MapsURI  string `json:"maps_uri,omitempty"`
}

// Apply merges the verification into an item's metadata. A failed
// verification only clears Verified; every other field is left as it was.
func (v Verification) Apply(m *ItemMeta) {
	m.Verified = v.Verified
	if v.Verified && v.MapsURI != "" {
		m.MapsURI = v.MapsURI
	}
}

// LocateTarget describes the entity a verification call should find on a
// map.
type LocateTarget struct {
	Name    string `json:"name"`
	Code    string `json:"code,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

// Target returns the locate target for a facility.
func (f Facility) Target() LocateTarget {
	return LocateTarget{Name: f.Name, Code: f.Code, City: f.City, Country: f.Country}
}

// Target returns the locate target for an air rate's destination airport.
func (a AirRate) Target() LocateTarget {
	return LocateTarget{Name: a.DestinationAirport, Country: a.Country}
}
