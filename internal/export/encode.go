// internal/export/encode.go
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Encoder writes a table in one output format.
type Encoder interface {
	Encode(w io.Writer, t Table) error
	ContentType() string
	Extension() string
}

// EncoderFor returns the encoder for a format name, or nil if the format is
// not supported.
func EncoderFor(format string) Encoder {
	switch format {
	case "csv":
		return CSVEncoder{}
	case "xlsx":
		return ExcelEncoder{}
	default:
		return nil
	}
}

type CSVEncoder struct{}

func (CSVEncoder) ContentType() string { return "text/csv" }
func (CSVEncoder) Extension() string   { return "csv" }

func (CSVEncoder) Encode(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

type ExcelEncoder struct{}

func (ExcelEncoder) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
func (ExcelEncoder) Extension() string { return "xlsx" }

func (ExcelEncoder) Encode(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if t.Title != "" {
		f.SetSheetName(sheet, t.Title)
		sheet = t.Title
	}

	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing sheet header: %w", err)
	}

	for i, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("addressing sheet row: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("writing sheet row: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
