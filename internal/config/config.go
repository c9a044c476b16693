package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeServer = "server"
	ModeBatch  = "batch"

	// Default values
	DefaultPort        = 8080
	DefaultHost        = "127.0.0.1"
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 50 * 1024 * 1024 // 50MB per PDF
	DefaultMaxUpload   = 200 * 1024 * 1024
)

// Config holds all configuration for the form filler.
type Config struct {
	// Mode selects between the HTTP front end and the one-shot CLI.
	Mode string
	Host string
	Port int

	// Batch mode I/O
	InputZip  string
	OutputZip string

	// Optional YAML table overrides
	MappingFile  string
	PatternsFile string

	// Limits
	MaxFileSize   int64 // per-PDF ceiling
	MaxUploadSize int64 // whole-ZIP ceiling
	Workers       int

	// Values holds the raw input values in batch mode, keyed by
	// logical field name (name, email, phone, address, ein, ssn, dob).
	Values map[string]string

	Version  string
	LogLevel string
}

// valueKeys are the logical field keys accepted as batch-mode flags.
var valueKeys = []string{"name", "email", "phone", "address", "ein", "ssn", "dob"}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Mode:          ModeServer,
		Host:          DefaultHost,
		Port:          DefaultPort,
		MaxFileSize:   DefaultMaxFileSize,
		MaxUploadSize: DefaultMaxUpload,
		Workers:       runtime.NumCPU(),
		Version:       "1.0.0",
		LogLevel:      DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and environment variables
// (prefix PDF_FILL_) and returns a validated configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("PDF_FILL")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("in", cfg.InputZip)
	viper.SetDefault("out", cfg.OutputZip)
	viper.SetDefault("mapping", cfg.MappingFile)
	viper.SetDefault("patterns", cfg.PatternsFile)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("maxupload", cfg.MaxUploadSize)
	viper.SetDefault("workers", cfg.Workers)
	viper.SetDefault("loglevel", cfg.LogLevel)
}

func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'server' for the HTTP front end, 'batch' for one-shot ZIP processing")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("in", cfg.InputZip, "Input ZIP of PDFs (batch mode)")
	pflag.String("out", cfg.OutputZip, "Output ZIP path (batch mode)")
	pflag.String("mapping", cfg.MappingFile, "Optional mapping.yaml overriding field aliases and write geometry")
	pflag.String("patterns", cfg.PatternsFile, "Optional patterns.yaml with extra label keyword variants")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum size of a single PDF in bytes")
	pflag.Int64("maxupload", cfg.MaxUploadSize, "Maximum upload (ZIP) size in bytes")
	pflag.Int("workers", cfg.Workers, "Concurrent documents processed per batch")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")

	for _, key := range valueKeys {
		pflag.String(key, "", fmt.Sprintf("Value for the %q field (batch mode)", key))
	}
}

func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("in", pflag.Lookup("in"))
	_ = viper.BindPFlag("out", pflag.Lookup("out"))
	_ = viper.BindPFlag("mapping", pflag.Lookup("mapping"))
	_ = viper.BindPFlag("patterns", pflag.Lookup("patterns"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
	_ = viper.BindPFlag("maxupload", pflag.Lookup("maxupload"))
	_ = viper.BindPFlag("workers", pflag.Lookup("workers"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))

	for _, key := range valueKeys {
		_ = viper.BindPFlag(key, pflag.Lookup(key))
	}
}

func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nPDF Form Filler - fills blank fields on batches of PDF documents\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                        # HTTP front end on 127.0.0.1:8080\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --mode=batch --in=docs.zip --out=filled.zip --name=\"Jane Doe\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  PDF_FILL_MODE        Run mode\n")
		fmt.Fprintf(os.Stderr, "  PDF_FILL_HOST        Server host\n")
		fmt.Fprintf(os.Stderr, "  PDF_FILL_PORT        Server port\n")
		fmt.Fprintf(os.Stderr, "  PDF_FILL_MAPPING     mapping.yaml override path\n")
		fmt.Fprintf(os.Stderr, "  PDF_FILL_PATTERNS    patterns.yaml override path\n")
		fmt.Fprintf(os.Stderr, "  PDF_FILL_LOGLEVEL    Log level\n")
	}
}

func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.InputZip = viper.GetString("in")
	cfg.OutputZip = viper.GetString("out")
	cfg.MappingFile = viper.GetString("mapping")
	cfg.PatternsFile = viper.GetString("patterns")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.MaxUploadSize = viper.GetInt64("maxupload")
	cfg.Workers = viper.GetInt("workers")
	cfg.LogLevel = viper.GetString("loglevel")

	cfg.Values = make(map[string]string, len(valueKeys))
	for _, key := range valueKeys {
		if v := viper.GetString(key); v != "" {
			cfg.Values[key] = v
		}
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Mode != ModeServer && c.Mode != ModeBatch {
		return errors.New("mode must be either 'server' or 'batch'")
	}

	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.Mode == ModeBatch {
		if c.InputZip == "" {
			return errors.New("batch mode requires --in")
		}
		if c.OutputZip == "" {
			return errors.New("batch mode requires --out")
		}
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}
	if c.MaxUploadSize <= 0 {
		return errors.New("maximum upload size must be positive")
	}
	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// Address returns the server address as host:port.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// IsServerMode returns true when running the HTTP front end.
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}
