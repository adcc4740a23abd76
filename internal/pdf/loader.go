package pdf

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// Glyphs whose baselines differ by less than this share a line
const baselineTolerance = 0.5

// Document is the text layer of a PDF, one entry per page in page order
type Document struct {
	Path  string
	Pages []string
	Info  *Info
}

// Text joins the page texts with a newline
func (d *Document) Text() string {
	return strings.Join(d.Pages, "\n")
}

// Loader handles opening PDF files and reading their text layer
type Loader struct {
	validator *Validator
	inspector *Inspector
	logger    *zap.Logger
}

// NewLoader creates a new loader with the specified constraints
func NewLoader(maxFileSize int64, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		validator: NewValidator(maxFileSize),
		inspector: NewInspector(),
		logger:    logger,
	}
}

// Load opens the PDF at path and extracts the text of every page.
// Pages without extractable text contribute an empty string.
func (l *Loader) Load(ctx context.Context, path string) (doc *Document, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := l.validator.Check(path); err != nil {
		return nil, &LoadError{Path: path, Op: OpValidate, Err: err}
	}

	doc = &Document{Path: path}

	// Structure probe only; ledongthuc decides whether the file loads.
	if info, inspectErr := l.inspector.Inspect(path); inspectErr != nil {
		l.logger.Debug("structure inspection failed", zap.String("path", path), zap.Error(inspectErr))
	} else {
		doc.Info = info
		l.logger.Debug("structure inspected",
			zap.String("path", path),
			zap.Int("pages", info.Pages),
			zap.String("version", info.Version),
			zap.Bool("encrypted", info.Encrypted),
		)
	}

	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = &LoadError{Path: path, Op: OpParse, Err: fmt.Errorf("%v", r)}
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Op: OpOpen, Err: err}
	}
	defer f.Close()

	numPages := reader.NumPage()
	doc.Pages = make([]string, 0, numPages)
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		doc.Pages = append(doc.Pages, l.pageText(reader, pageNum))
	}

	return doc, nil
}

// pageText returns the text of one page with a newline between text lines.
func (l *Loader) pageText(reader *pdf.Reader, pageNum int) string {
	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return ""
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		// Rebuild the lines from the positioned glyphs instead.
		l.logger.Debug("plain text extraction failed", zap.Int("page", pageNum), zap.Error(err))
		text = linesByY(page.Content().Text)
	}
	return norm.NFC.String(text)
}

// linesByY concatenates text runs in content order, starting a new line
// whenever the baseline moves.
func linesByY(texts []pdf.Text) string {
	var b strings.Builder
	for i, t := range texts {
		if i > 0 && math.Abs(t.Y-texts[i-1].Y) > baselineTolerance {
			b.WriteByte('\n')
		}
		b.WriteString(t.S)
	}
	return b.String()
}
