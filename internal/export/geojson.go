package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/sells-group/freight-cli/internal/model"
)

// FacilityFeatures converts facilities to a GeoJSON feature collection.
// Facilities without coordinates (0,0) or outside the WGS84 range are left
// out.
func FacilityFeatures(items []model.Facility) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(items))}
	for _, f := range items {
		if !plausible(f.Latitude, f.Longitude) {
			zap.L().Debug("export: facility has no usable coordinates",
				zap.String("name", f.Name),
				zap.Float64("lat", f.Latitude),
				zap.Float64("lon", f.Longitude),
			)
			continue
		}

		props := map[string]any{
			"name":     f.Name,
			"code":     f.Code,
			"type":     string(f.Type),
			"category": f.Category,
			"country":  f.Country,
			"region":   f.Region,
			"city":     f.City,
			"verified": f.Verified,
		}
		if f.MapsURI != "" {
			props["maps_uri"] = f.MapsURI
		}

		fc.Features = append(fc.Features, &geojson.Feature{
			ID:         f.ID,
			Geometry:   geom.NewPointFlat(geom.XY, []float64{f.Longitude, f.Latitude}),
			Properties: props,
		})
	}
	return fc
}

// WriteGeoJSON writes facilities as a GeoJSON feature collection.
func WriteGeoJSON(w io.Writer, items []model.Facility) error {
	data, err := FacilityFeatures(items).MarshalJSON()
	if err != nil {
		return eris.Wrap(err, "export: encode geojson")
	}
	if _, err := w.Write(data); err != nil {
		return eris.Wrap(err, "export: write geojson")
	}
	return nil
}

func plausible(lat, lon float64) bool {
	if lat == 0 && lon == 0 {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
