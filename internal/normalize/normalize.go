package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/sells-group/freight-cli/internal/model"
)

// Sentinels for missing optional fields.
const (
	NA      = "N/A"
	General = "General"
)

// Context carries the response envelope data stamped onto every item.
type Context struct {
	// Sources are the grounding references of the response, if any.
	Sources []model.SourceRef
	// NewID generates item identifiers. Defaults to random UUIDs.
	NewID func() string
}

func (c Context) id() string {
	if c.NewID != nil {
		return c.NewID()
	}
	return uuid.NewString()
}

func (c Context) meta() model.ItemMeta {
	m := model.ItemMeta{ID: c.id()}
	if len(c.Sources) > 0 {
		m.Sources = append([]model.SourceRef(nil), c.Sources...)
	}
	return m
}

// mapArray extracts the array from raw and maps every object element.
// Non-object elements are skipped.
func mapArray[T any](raw string, fn func(obj gjson.Result) T) ([]T, error) {
	arr, err := ExtractArray(raw)
	if err != nil {
		return nil, err
	}

	var out []T
	skipped := 0
	gjson.Parse(arr).ForEach(func(_, v gjson.Result) bool {
		if !v.IsObject() {
			skipped++
			return true
		}
		out = append(out, fn(v))
		return true
	})
	if skipped > 0 {
		zap.L().Debug("normalize: skipped non-object array elements", zap.Int("count", skipped))
	}
	return out, nil
}

// str returns the first non-empty value among keys, rendered as a string.
func str(obj gjson.Result, keys ...string) string {
	for _, k := range keys {
		v := obj.Get(k)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		if s := strings.TrimSpace(v.String()); s != "" {
			return s
		}
	}
	return ""
}

func orNA(s string) string {
	if s == "" {
		return NA
	}
	return s
}

// Facilities maps a facility extraction response.
func Facilities(raw string, c Context) ([]model.Facility, error) {
	return mapArray(raw, func(o gjson.Result) model.Facility {
		rawType := str(o, "type")
		typ, ok := model.ParseTransportType(rawType)
		if !ok {
			zap.L().Warn("normalize: unrecognised transport type, defaulting to Port",
				zap.String("value", rawType),
				zap.String("name", str(o, "name")),
			)
		}

		category := str(o, "category")
		if category == "" {
			category = General
		}

		return model.Facility{
			ItemMeta:    c.meta(),
			Name:        str(o, "name"),
			Code:        strings.ToUpper(str(o, "code")),
			Type:        typ,
			Category:    category,
			Country:     orNA(str(o, "country")),
			Region:      orNA(str(o, "region")),
			City:        orNA(str(o, "city")),
			Latitude:    o.Get("latitude").Float(),
			Longitude:   o.Get("longitude").Float(),
			Description: orNA(str(o, "description")),
		}
	})
}

// SeaRates maps an ocean-freight rate sheet response. Older key names
// (origin, destination, rate, carrier, validUntil, containerType) are
// accepted.
func SeaRates(raw string, c Context) ([]model.SeaRate, error) {
	return mapArray(raw, func(o gjson.Result) model.SeaRate {
		return model.SeaRate{
			ItemMeta:          c.meta(),
			OriginPort:        orNA(str(o, "originPort", "origin")),
			DestinationPort:   orNA(str(o, "destinationPort", "destination")),
			Country:           orNA(str(o, "country")),
			Region:            orNA(str(o, "region")),
			Currency:          orNA(str(o, "currency")),
			EstimatedPrice:    orNA(str(o, "estimatedPrice", "rate", "price")),
			TransitTime:       orNA(str(o, "transitTime")),
			Frequency:         orNA(str(o, "frequency")),
			Validity:          orNA(str(o, "validity", "validUntil")),
			CarrierIndication: orNA(str(o, "carrierIndication", "carrier")),
			Commodity:         orNA(str(o, "commodity")),
			ContainerSize:     orNA(str(o, "containerSize", "containerType")),
		}
	})
}

// AirRates maps an air-freight rate sheet response.
func AirRates(raw string, c Context) ([]model.AirRate, error) {
	return mapArray(raw, func(o gjson.Result) model.AirRate {
		return model.AirRate{
			ItemMeta:           c.meta(),
			OriginAirport:      orNA(str(o, "originAirport", "origin")),
			DestinationAirport: orNA(str(o, "destinationAirport", "destination")),
			Country:            orNA(str(o, "country")),
			Region:             orNA(str(o, "region")),
			Currency:           orNA(str(o, "currency")),
			EstimatedPrice:     orNA(str(o, "estimatedPrice", "rate", "price")),
			FuelSurcharge:      orNA(str(o, "fuelSurcharge")),
			WarRiskSurcharge:   orNA(str(o, "warRiskSurcharge")),
			ULD:                orNA(str(o, "uld")),
			DGHandling:         orNA(str(o, "dgHandling")),
			TempControl:        orNA(str(o, "tempControl")),
			PerishableFee:      orNA(str(o, "perishableFee")),
			OversizeFee:        orNA(str(o, "oversizeFee")),
			TransitTime:        orNA(str(o, "transitTime")),
			Frequency:          orNA(str(o, "frequency")),
			Validity:           orNA(str(o, "validity", "validUntil")),
			AirlineIndication:  orNA(str(o, "airlineIndication", "airline")),
			Commodity:          orNA(str(o, "commodity")),
			WeightBreak:        orNA(str(o, "weightBreak")),
		}
	})
}

// LocalCharges maps a local charge sheet response.
func LocalCharges(raw string, c Context) ([]model.LocalCharge, error) {
	return mapArray(raw, func(o gjson.Result) model.LocalCharge {
		return model.LocalCharge{
			ItemMeta:         c.meta(),
			LocationName:     orNA(str(o, "locationName", "location")),
			THC20:            orNA(str(o, "thc20")),
			THC40:            orNA(str(o, "thc40")),
			LOLO:             orNA(str(o, "lolo")),
			GateIn:           orNA(str(o, "gateIn")),
			SealFee:          orNA(str(o, "sealFee")),
			DetentionDays:    orNA(str(o, "detentionDays")),
			TSC:              orNA(str(o, "tsc")),
			RA:               orNA(str(o, "ra")),
			AWBFee:           orNA(str(o, "awbFee")),
			Handling:         orNA(str(o, "handling")),
			InspectionFee:    orNA(str(o, "inspectionFee")),
			StorageFee:       orNA(str(o, "storageFee")),
			SpecialTreatment: orNA(str(o, "specialTreatment")),
			AdminFee:         orNA(str(o, "adminFee")),
			DocFee:           orNA(str(o, "docFee")),
			COOFee:           orNA(str(o, "cooFee")),
			Note:             orNA(str(o, "note")),
		}
	})
}

var numberRe = regexp.MustCompile(`-?\d[\d,]*(?:\.\d+)?`)

// Numeric extracts the first number from a price string such as
// "USD 1,250.00" or "$1500-1800". Prices are otherwise passed through as
// text; this is only for comparisons and numeric export cells.
func Numeric(s string) (float64, bool) {
	m := numberRe.FindString(s)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
