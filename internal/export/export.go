// Package export renders result sets for collaborators: JSON, XLSX rate
// sheets and GeoJSON facility layers.
package export

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatXLSX    Format = "xlsx"
	FormatGeoJSON Format = "geojson"
)

// ParseFormat resolves a format name. An empty name means JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatGeoJSON:
		return FormatGeoJSON, nil
	default:
		return "", eris.Errorf("export: unknown format %q (want json, xlsx or geojson)", s)
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "export: encode json")
	}
	return nil
}
