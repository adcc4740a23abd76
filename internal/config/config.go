package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/a3tai/customs-pdf-extract/internal/logging"
	"github.com/a3tai/customs-pdf-extract/internal/output"
)

const (
	// Mode constants
	ModeCLI = "cli"
	ModeMCP = "mcp"

	// Default values
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = logging.FormatConsole
	DefaultFormat      = output.FormatJSON
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB

	// EnvPrefix is prepended to every environment override, e.g. CUSTOMS_EXTRACT_LOGLEVEL
	EnvPrefix = "CUSTOMS_EXTRACT"
)

var (
	// ErrUsage is returned when the folder argument is missing in cli mode.
	// The usage text has already been written when it is returned.
	ErrUsage = errors.New("missing folder argument")

	// ErrVersionRequested is returned when --version was given
	ErrVersionRequested = errors.New("version requested")
)

// Config holds all configuration for the extractor
type Config struct {
	Mode string // "cli" or "mcp"

	// Input and output
	Folder string
	Format string
	Output string // empty means stdout

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	LogFormat   string
	MaxFileSize int64 // Maximum PDF file size in bytes

	// Constant columns of the CSV invoice sheet
	Invoice output.InvoiceDefaults
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Mode:        ModeCLI,
		Format:      DefaultFormat,
		Version:     "1.0.0",
		ServerName:  "customs-pdf-extract",
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
		MaxFileSize: DefaultMaxFileSize,
		Invoice:     output.DefaultInvoiceDefaults(),
	}
}

// LoadFromArgs parses args (without the program name), applies environment
// overrides and validates the result. Usage and flag errors are written to
// stderr.
func LoadFromArgs(args []string, stderr io.Writer) (*Config, error) {
	cfg := DefaultConfig()

	fs := pflag.NewFlagSet("customs-pdf-extract", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	defineFlags(fs, cfg)
	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if showVersion, _ := fs.GetBool("version"); showVersion {
		return nil, ErrVersionRequested
	}

	v := viper.New()
	setupViperEnvironment(v, cfg)
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}
	populateConfigFromViper(v, cfg)

	if fs.NArg() > 1 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args()[1:], " "))
		fs.Usage()
		return nil, ErrUsage
	}
	if fs.NArg() == 1 {
		cfg.Folder = fs.Arg(0)
	}

	if cfg.Folder == "" {
		if cfg.Mode == ModeCLI {
			fs.Usage()
			return nil, ErrUsage
		}
		if wd, err := os.Getwd(); err == nil {
			cfg.Folder = wd
		} else {
			cfg.Folder = "."
		}
	}

	// MCP clients pass paths relative to nothing in particular
	if cfg.Mode == ModeMCP {
		if abs, err := filepath.Abs(cfg.Folder); err == nil {
			cfg.Folder = abs
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defineFlags sets up all command line flags
func defineFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.String("mode", cfg.Mode, "Run mode: 'cli' for a single batch, 'mcp' for an MCP stdio server")
	fs.String("format", cfg.Format, "Output format: "+strings.Join(output.Formats(), ", "))
	fs.StringP("output", "o", cfg.Output, "Write the result to this file instead of stdout")
	fs.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.String("logformat", cfg.LogFormat, "Log format (console, json)")
	fs.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	fs.String("cif", cfg.Invoice.CIF, "CIF/CNP column of the CSV invoice sheet")
	fs.String("price", cfg.Invoice.Price, "Net unit price column of the CSV invoice sheet")
	fs.String("vat", cfg.Invoice.VATRate, "VAT rate column of the CSV invoice sheet")
	fs.BoolP("version", "v", false, "Print version information and exit")
}

// envKeys are the only settings read from the environment. None of them
// changes the result document, only diagnostics and the size guard.
var envKeys = []string{"loglevel", "logformat", "maxfilesize"}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(v *viper.Viper, cfg *Config) {
	v.SetEnvPrefix(EnvPrefix)
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}

	v.SetDefault("mode", cfg.Mode)
	v.SetDefault("format", cfg.Format)
	v.SetDefault("output", cfg.Output)
	v.SetDefault("loglevel", cfg.LogLevel)
	v.SetDefault("logformat", cfg.LogFormat)
	v.SetDefault("maxfilesize", cfg.MaxFileSize)
	v.SetDefault("cif", cfg.Invoice.CIF)
	v.SetDefault("price", cfg.Invoice.Price)
	v.SetDefault("vat", cfg.Invoice.VATRate)
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(v *viper.Viper, cfg *Config) {
	cfg.Mode = v.GetString("mode")
	cfg.Format = v.GetString("format")
	cfg.Output = v.GetString("output")
	cfg.LogLevel = v.GetString("loglevel")
	cfg.LogFormat = v.GetString("logformat")
	cfg.MaxFileSize = v.GetInt64("maxfilesize")
	cfg.Invoice.CIF = v.GetString("cif")
	cfg.Invoice.Price = v.GetString("price")
	cfg.Invoice.VATRate = v.GetString("vat")
}

func printUsage(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage: customs-pdf-extract [options] <folder>\n")
	fmt.Fprintf(w, "\nExtracts exporter, MRN, date and container from customs declaration PDFs\n\n")
	fmt.Fprintf(w, "Options:\n")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintf(w, "\nExamples:\n")
	fmt.Fprintf(w, "  customs-pdf-extract ./declarations                       # JSON to stdout\n")
	fmt.Fprintf(w, "  customs-pdf-extract --format=csv -o facturi.csv ./dve    # invoice import sheet\n")
	fmt.Fprintf(w, "  customs-pdf-extract --format=xlsx -o review.xlsx ./dve   # workbook\n")
	fmt.Fprintf(w, "  customs-pdf-extract --mode=mcp ./dve                     # MCP stdio server\n")
	fmt.Fprintf(w, "\nEnvironment Variables:\n")
	fmt.Fprintf(w, "  %s_LOGLEVEL     Log level\n", EnvPrefix)
	fmt.Fprintf(w, "  %s_LOGFORMAT    Log format\n", EnvPrefix)
	fmt.Fprintf(w, "  %s_MAXFILESIZE  Maximum file size\n", EnvPrefix)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModeCLI && c.Mode != ModeMCP {
		return errors.New("mode must be either 'cli' or 'mcp'")
	}

	if c.Folder == "" {
		return errors.New("folder cannot be empty")
	}

	validFormat := false
	for _, f := range output.Formats() {
		if c.Format == f {
			validFormat = true
			break
		}
	}
	if !validFormat {
		return fmt.Errorf("invalid format: %s (must be one of: %s)", c.Format, strings.Join(output.Formats(), ", "))
	}

	// A workbook on a terminal is useless
	if c.Mode == ModeCLI && c.Format == output.FormatXLSX && c.Output == "" {
		return errors.New("xlsx format requires --output")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	if c.LogFormat != logging.FormatConsole && c.LogFormat != logging.FormatJSON {
		return fmt.Errorf("invalid log format: %s (must be %s or %s)", c.LogFormat, logging.FormatConsole, logging.FormatJSON)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// IsMCPMode returns true if the tool runs as an MCP server
func (c *Config) IsMCPMode() bool {
	return c.Mode == ModeMCP
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Folder: %s, Format: %s, Output: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.Folder, c.Format, c.Output, c.LogLevel, c.MaxFileSize)
}
