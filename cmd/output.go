package main

import (
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/freight-cli/internal/export"
	"github.com/sells-group/freight-cli/internal/model"
)

// result is what a query command hands to writeResult. Table and Geo are
// optional; a format whose input is missing is rejected.
type result struct {
	Items any
	Table *export.Table
	Geo   []model.Facility
}

func writeResult(w io.Writer, format export.Format, r result) error {
	switch format {
	case export.FormatXLSX:
		if r.Table == nil {
			return eris.New("xlsx output is not available for this command")
		}
		return export.WriteXLSX(w, *r.Table)
	case export.FormatGeoJSON:
		if r.Geo == nil {
			return eris.New("geojson output is only available for facilities")
		}
		return export.WriteGeoJSON(w, r.Geo)
	default:
		return export.WriteJSON(w, r.Items)
	}
}

// emit resolves --out and --output and writes the result.
func emit(stdout io.Writer, r result) error {
	format, err := export.ParseFormat(outFormat)
	if err != nil {
		return err
	}

	if outFile == "" {
		if format == export.FormatXLSX {
			return eris.New("xlsx output needs --output <file>")
		}
		return writeResult(stdout, format, r)
	}

	f, err := os.Create(outFile)
	if err != nil {
		return eris.Wrap(err, "create output file")
	}
	if err := writeResult(f, format, r); err != nil {
		_ = f.Close()
		return err
	}
	return eris.Wrap(f.Close(), "close output file")
}
