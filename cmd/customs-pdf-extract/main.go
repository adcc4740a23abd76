package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/a3tai/customs-pdf-extract/internal/batch"
	"github.com/a3tai/customs-pdf-extract/internal/config"
	"github.com/a3tai/customs-pdf-extract/internal/logging"
	"github.com/a3tai/customs-pdf-extract/internal/mcp"
	"github.com/a3tai/customs-pdf-extract/internal/output"
	"github.com/a3tai/customs-pdf-extract/internal/pdf"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the tool and returns the process exit status
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.LoadFromArgs(args, stderr)
	switch {
	case errors.Is(err, config.ErrVersionRequested):
		printVersion(stdout)
		return 0
	case errors.Is(err, pflag.ErrHelp):
		return 0
	case errors.Is(err, config.ErrUsage):
		return 1
	case err != nil:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer logging.Sync(logger)

	logger.Debug("starting", zap.Stringer("config", cfg))

	driver := batch.NewDriver(pdf.NewLoader(cfg.MaxFileSize, logger), logger)

	if cfg.IsMCPMode() {
		return runMCPMode(ctx, cfg, driver, logger, stdin, stdout)
	}
	return runCLIMode(ctx, cfg, driver, logger, stdout)
}

// runCLIMode processes the folder once and writes the result document
func runCLIMode(ctx context.Context, cfg *config.Config, driver *batch.Driver, logger *zap.Logger, stdout io.Writer) int {
	writer, err := output.NewWriter(cfg.Format, cfg.Invoice)
	if err != nil {
		logger.Error("invalid output format", zap.Error(err))
		return 1
	}

	records, err := driver.Run(ctx, cfg.Folder)
	if err != nil {
		logger.Error("batch failed", zap.String("dir", cfg.Folder), zap.Error(err))
		return 1
	}

	if cfg.Output == "" {
		if err := writer.Write(stdout, records); err != nil {
			logger.Error("failed to write result", zap.Error(err))
			return 1
		}
		return 0
	}

	if err := writeFile(cfg.Output, writer, records); err != nil {
		logger.Error("failed to write result", zap.String("output", cfg.Output), zap.Error(err))
		return 1
	}
	logger.Info("result written", zap.String("output", cfg.Output), zap.Int("records", len(records)))
	return 0
}

func writeFile(path string, writer output.Writer, records []batch.Record) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("cannot close output file: %w", cerr)
		}
	}()
	return writer.Write(f, records)
}

// runMCPMode serves the MCP tools over stdio until the client disconnects
func runMCPMode(ctx context.Context, cfg *config.Config, driver *batch.Driver, logger *zap.Logger,
	stdin io.Reader, stdout io.Writer,
) int {
	server, err := mcp.NewServer(cfg, driver, logger)
	if err != nil {
		logger.Error("failed to create MCP server", zap.Error(err))
		return 1
	}

	err = server.Run(ctx, stdin, stdout)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		logger.Error("server error", zap.Error(err))
		return 1
	}
	return 0
}

// printVersion prints version information
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "Customs PDF Extract\n")
	fmt.Fprintf(w, "Version: %s\n", version)
	fmt.Fprintf(w, "Build Time: %s\n", buildTime)
	fmt.Fprintf(w, "Git Commit: %s\n", gitCommit)
	fmt.Fprintf(w, "Built with: %s\n", runtime.Version())
}
