package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a3tai/customs-pdf-extract/internal/batch"
)

// InvoiceDefaults holds the constant columns of the invoicing import sheet
type InvoiceDefaults struct {
	CIF      string // tax id of the invoiced party
	Currency string
	Product  string
	Quantity string
	Unit     string
	Price    string // net unit price
	VATRate  string
}

// DefaultInvoiceDefaults returns the values used by the customs brokerage the
// sheet was designed for.
func DefaultInvoiceDefaults() InvoiceDefaults {
	return InvoiceDefaults{
		CIF:      "RO33706828",
		Currency: "EUR",
		Product:  "PREST. VAMALE IMP/EXP",
		Quantity: "1",
		Unit:     "BUC",
		Price:    "50",
		VATRate:  "21",
	}
}

var invoiceHeader = []string{
	"nr.crt",
	"CIF/CNP",
	"client",
	"deviz",
	"produs",
	"Serie produs",
	"Cant",
	"UM",
	"Pret FTVA",
	"cota TVA",
	"nota produs",
	"scutit TVA (0/1)",
	"motiv scutire TVA",
}

// CSVWriter emits one invoice line per successfully processed declaration.
// Records carrying an error are skipped.
type CSVWriter struct {
	defaults InvoiceDefaults
}

// NewCSVWriter creates a CSV writer with the given constant columns
func NewCSVWriter(defaults InvoiceDefaults) *CSVWriter {
	return &CSVWriter{defaults: defaults}
}

// Write encodes records to w
func (c *CSVWriter) Write(w io.Writer, records []batch.Record) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(invoiceHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	counter := 1
	for _, r := range records {
		if r.Failed() {
			continue
		}
		row := []string{
			strconv.Itoa(counter),
			c.defaults.CIF,
			r.ExporterName,
			c.defaults.Currency,
			c.defaults.Product,
			"",
			c.defaults.Quantity,
			c.defaults.Unit,
			c.defaults.Price,
			c.defaults.VATRate,
			InvoiceNote(r),
			"",
			"",
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", r.File, err)
		}
		counter++
	}

	writer.Flush()
	return writer.Error()
}

// InvoiceNote formats the product note: DVE:<mrn>/<DD.MM>/<container>-<exporter>
func InvoiceNote(r batch.Record) string {
	return "DVE:" + r.MRN +
		"/" + strings.ReplaceAll(r.DeclarationDate, "-", ".") +
		"/" + r.ContainerNumber +
		"-" + r.ExporterName
}
