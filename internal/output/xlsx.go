package output

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/a3tai/customs-pdf-extract/internal/batch"
)

// SheetName is the worksheet holding the records
const SheetName = "Declarations"

var sheetHeader = []string{
	"File",
	"Exporter",
	"MRN",
	"Declaration date",
	"Container",
	"Error",
}

// XLSXWriter emits a workbook with one row per record, failures included
type XLSXWriter struct{}

// Write encodes records to w
func (XLSXWriter) Write(w io.Writer, records []batch.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	// Rename the default sheet rather than leaving an empty one behind.
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, h := range sheetHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, r := range records {
		row := i + 2
		values := []string{r.File, r.ExporterName, r.MRN, r.DeclarationDate, r.ContainerNumber, r.Error}
		for col, v := range values {
			if v == "" {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			// Explicit strings keep codes such as container numbers from being read as numbers
			if err := f.SetCellStr(SheetName, cell, v); err != nil {
				return fmt.Errorf("failed to write row for %s: %w", r.File, err)
			}
		}
	}

	_ = f.SetColWidth(SheetName, "A", "A", 28) // file
	_ = f.SetColWidth(SheetName, "B", "B", 30) // exporter
	_ = f.SetColWidth(SheetName, "C", "C", 22) // mrn
	_ = f.SetColWidth(SheetName, "D", "E", 16)
	_ = f.SetColWidth(SheetName, "F", "F", 60) // error

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx write: %w", err)
	}
	return nil
}
