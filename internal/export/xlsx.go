package export

import (
	"io"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/freight-cli/internal/model"
	"github.com/sells-group/freight-cli/internal/normalize"
)

// Column is one spreadsheet column. Numeric columns are written as number
// cells when the value parses as a price; everything else stays text.
type Column struct {
	Header  string
	Numeric bool
}

// Table is one worksheet.
type Table struct {
	Sheet   string
	Columns []Column
	Rows    [][]string
}

// WriteXLSX writes each table to its own worksheet.
func WriteXLSX(w io.Writer, tables ...Table) error {
	if len(tables) == 0 {
		return eris.New("export: no tables to write")
	}

	f := xlsx.NewFile()
	for _, t := range tables {
		sheet, err := f.AddSheet(t.Sheet)
		if err != nil {
			return eris.Wrapf(err, "export: add sheet %q", t.Sheet)
		}

		header := sheet.AddRow()
		for _, c := range t.Columns {
			cell := header.AddCell()
			cell.SetString(c.Header)
			cell.GetStyle().Font.Bold = true
		}

		for _, r := range t.Rows {
			row := sheet.AddRow()
			for i, v := range r {
				cell := row.AddCell()
				if i < len(t.Columns) && t.Columns[i].Numeric {
					if n, ok := normalize.Numeric(v); ok {
						cell.SetFloat(n)
						continue
					}
				}
				cell.SetString(v)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write xlsx")
	}
	return nil
}

func text(headers ...string) []Column {
	cols := make([]Column, len(headers))
	for i, h := range headers {
		cols[i] = Column{Header: h}
	}
	return cols
}

func numeric(headers ...string) []Column {
	cols := text(headers...)
	for i := range cols {
		cols[i].Numeric = true
	}
	return cols
}

func concat(groups ...[]Column) []Column {
	var out []Column
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// FacilitiesTable lays out facilities as a worksheet.
func FacilitiesTable(items []model.Facility) Table {
	t := Table{
		Sheet: "Facilities",
		Columns: concat(
			text("Name", "Code", "Type", "Category", "Country", "Region", "City"),
			numeric("Latitude", "Longitude"),
			text("Description", "Verified", "Maps URI"),
		),
	}
	for _, f := range items {
		t.Rows = append(t.Rows, []string{
			f.Name, f.Code, string(f.Type), f.Category, f.Country, f.Region, f.City,
			strconv.FormatFloat(f.Latitude, 'f', -1, 64),
			strconv.FormatFloat(f.Longitude, 'f', -1, 64),
			f.Description, yesNo(f.Verified), f.MapsURI,
		})
	}
	return t
}

// SeaRatesTable lays out an ocean rate sheet.
func SeaRatesTable(items []model.SeaRate) Table {
	t := Table{
		Sheet: "Sea Rates",
		Columns: concat(
			text("Origin", "Destination", "Country", "Region", "Currency"),
			numeric("Estimated Price"),
			text("Transit Time", "Frequency", "Validity", "Carriers", "Commodity", "Container"),
		),
	}
	for _, r := range items {
		t.Rows = append(t.Rows, []string{
			r.OriginPort, r.DestinationPort, r.Country, r.Region, r.Currency,
			r.EstimatedPrice,
			r.TransitTime, r.Frequency, r.Validity, r.CarrierIndication, r.Commodity, r.ContainerSize,
		})
	}
	return t
}

// AirRatesTable lays out an air rate sheet.
func AirRatesTable(items []model.AirRate) Table {
	t := Table{
		Sheet: "Air Rates",
		Columns: concat(
			text("Origin", "Destination", "Country", "Region", "Currency"),
			numeric("Estimated Price", "Fuel Surcharge", "War Risk Surcharge"),
			text("ULD", "DG Handling", "Temp Control", "Perishable Fee", "Oversize Fee"),
			text("Transit Time", "Frequency", "Validity", "Airlines", "Commodity", "Weight Break"),
			text("Verified", "Maps URI"),
		),
	}
	for _, r := range items {
		t.Rows = append(t.Rows, []string{
			r.OriginAirport, r.DestinationAirport, r.Country, r.Region, r.Currency,
			r.EstimatedPrice, r.FuelSurcharge, r.WarRiskSurcharge,
			r.ULD, r.DGHandling, r.TempControl, r.PerishableFee, r.OversizeFee,
			r.TransitTime, r.Frequency, r.Validity, r.AirlineIndication, r.Commodity, r.WeightBreak,
			yesNo(r.Verified), r.MapsURI,
		})
	}
	return t
}

// LocalChargesTable lays out local charges. Columns that do not apply to
// the transport mode are dropped.
func LocalChargesTable(items []model.LocalCharge, mode model.TransportType) Table {
	var modeCols []Column
	pick := func(c model.LocalCharge) []string { return []string{c.THC20, c.THC40, c.LOLO, c.GateIn, c.SealFee, c.DetentionDays} }
	if mode == model.TransportAirport {
		modeCols = numeric("TSC", "RA", "AWB Fee")
		pick = func(c model.LocalCharge) []string { return []string{c.TSC, c.RA, c.AWBFee} }
	} else {
		modeCols = concat(numeric("THC 20", "THC 40", "LOLO", "Gate In", "Seal Fee"), text("Detention"))
	}

	t := Table{
		Sheet: "Local Charges",
		Columns: concat(
			text("Location"),
			modeCols,
			numeric("Handling", "Inspection", "Storage"),
			text("Special Treatment"),
			numeric("Admin", "Doc", "COO"),
			text("Note"),
		),
	}
	for _, c := range items {
		row := []string{c.LocationName}
		row = append(row, pick(c)...)
		row = append(row, c.Handling, c.InspectionFee, c.StorageFee, c.SpecialTreatment, c.AdminFee, c.DocFee, c.COOFee, c.Note)
		t.Rows = append(t.Rows, row)
	}
	return t
}
