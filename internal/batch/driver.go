// Package batch runs the extractor over every PDF in a folder, one file at a
// time, turning per-file failures into error records.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/a3tai/customs-pdf-extract/internal/extract"
	"github.com/a3tai/customs-pdf-extract/internal/pdf"
)

// Pattern selects the files processed in a folder.
const Pattern = "*.pdf"

// DocumentLoader produces the text layer of a PDF file
type DocumentLoader interface {
	Load(ctx context.Context, path string) (*pdf.Document, error)
}

// Driver processes folders of declarations sequentially
type Driver struct {
	loader DocumentLoader
	logger *zap.Logger
}

// NewDriver creates a new driver using loader for every file
func NewDriver(loader DocumentLoader, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		loader: loader,
		logger: logger,
	}
}

// Run processes every PDF directly inside dir, in enumeration order, and
// returns exactly one record per file. Only a failure to list the folder or a
// canceled context aborts the run.
func (d *Driver) Run(ctx context.Context, dir string) ([]Record, error) {
	logger := d.logger.With(zap.String("run_id", uuid.NewString()), zap.String("dir", dir))
	start := time.Now()

	paths, err := ListPDFs(dir)
	if err != nil {
		return nil, err
	}
	logger.Debug("found files", zap.Int("count", len(paths)))

	records := make([]Record, 0, len(paths))
	failed := 0
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record := d.processFile(ctx, logger, path)
		if record.Failed() {
			failed++
		}
		records = append(records, record)
	}

	logger.Info("batch complete",
		zap.Int("files", len(records)),
		zap.Int("failed", failed),
		zap.Int64("elapsed_ms", time.Since(start).Milliseconds()),
	)
	return records, nil
}

// ProcessFile loads and extracts a single file
func (d *Driver) ProcessFile(ctx context.Context, path string) Record {
	return d.processFile(ctx, d.logger, path)
}

func (d *Driver) processFile(ctx context.Context, logger *zap.Logger, path string) (record Record) {
	name := filepath.Base(path)
	logger = logger.With(zap.String("file", name))

	defer func() {
		if r := recover(); r != nil {
			record = failureRecord(name, fmt.Errorf("%v", r))
			logger.Warn("extraction panicked", zap.Any("panic", r))
		}
	}()

	doc, err := d.loader.Load(ctx, path)
	if err != nil {
		logger.Warn("failed to load document", zap.Error(err))
		return failureRecord(name, err)
	}

	fields := extract.Extract(doc.Text())
	logger.Debug("extracted fields",
		zap.Int("pages", len(doc.Pages)),
		zap.String("exporter", fields.ExporterName),
		zap.String("mrn", fields.MRN),
		zap.String("date", fields.DeclarationDate),
		zap.String("container", fields.ContainerNumber),
	)
	return successRecord(name, fields)
}

// ListPDFs returns the entries directly inside dir whose names match Pattern,
// sorted by name. A folder that does not exist holds no files.
func ListPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if matchesPattern(entry.Name()) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}

// matchesPattern follows the host's case sensitivity for file names.
func matchesPattern(name string) bool {
	if runtime.GOOS == "windows" {
		name = strings.ToLower(name)
	}
	ok, _ := filepath.Match(Pattern, name)
	return ok
}
