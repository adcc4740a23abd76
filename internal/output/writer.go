// Package output serializes batch records. JSON is the primary format; CSV
// produces the invoicing import sheet and XLSX a reviewable workbook.
package output

import (
	"fmt"
	"io"

	"github.com/a3tai/customs-pdf-extract/internal/batch"
)

// Supported formats
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Writer serializes the complete list of records in one go
type Writer interface {
	Write(w io.Writer, records []batch.Record) error
}

// Formats lists the accepted format names
func Formats() []string {
	return []string{FormatJSON, FormatCSV, FormatXLSX}
}

// NewWriter returns the writer for format. invoice configures the CSV rows.
func NewWriter(format string, invoice InvoiceDefaults) (Writer, error) {
	switch format {
	case FormatJSON:
		return JSONWriter{}, nil
	case FormatCSV:
		return NewCSVWriter(invoice), nil
	case FormatXLSX:
		return XLSXWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
