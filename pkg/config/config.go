package config

import (
	"fmt"
)

// Default values applied by New and by the command-line flags.
const (
	// DefaultSampleRows caps how many rows schema inference reads per file
	DefaultSampleRows = 8192
	// DefaultBatchSize sets the rows decoded per record batch during conversion
	DefaultBatchSize = 1024
	// DefaultLogLevel is the logging verbosity used when none is configured
	DefaultLogLevel = "info"
	// DefaultLogEncoding is the log output format used when none is configured
	DefaultLogEncoding = "console"
)

// Config is the complete runtime configuration for one csvpq invocation.
// It is organized into logical sections. Values are resolved in layers:
// built-in defaults, optional YAML config file, CSVPQ_* environment
// variables, and finally explicit command-line flags.
type Config struct {
	// Conversion settings control sampling, batching, and per-file behavior
	Conversion ConversionConfig `yaml:"conversion" json:"conversion"`

	// Logging settings control diagnostic output
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// ConversionConfig contains the settings that shape how input files are
// read and converted.
type ConversionConfig struct {
	// SampleRows caps the rows read during the schema inference pass
	SampleRows int `yaml:"sample_rows" json:"sample_rows"`
	// BatchSize sets the rows decoded per Arrow record batch
	BatchSize int `yaml:"batch_size" json:"batch_size"`
	// RemoveInputs deletes each input file after its successful conversion
	RemoveInputs bool `yaml:"remove_inputs" json:"remove_inputs"`
	// PrintSchema renders the resolved schema instead of converting
	PrintSchema bool `yaml:"print_schema" json:"print_schema"`
}

// LoggingConfig contains diagnostic output settings.
type LoggingConfig struct {
	// Level sets logging verbosity (debug, info, warn, error)
	Level string `yaml:"level" json:"level"`
	// Encoding selects the log output format (console or json)
	Encoding string `yaml:"encoding" json:"encoding"`
	// Development enables colored output with stack traces on errors
	Development bool `yaml:"development" json:"development"`
}

// New creates a Config with built-in defaults. Callers layer file, env,
// and flag values on top, then call Validate.
func New() *Config {
	return &Config{
		Conversion: ConversionConfig{
			SampleRows: DefaultSampleRows,
			BatchSize:  DefaultBatchSize,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Encoding: DefaultLogEncoding,
		},
	}
}

// Validate checks that all configured values are within acceptable ranges.
// Callers should invoke it after loading configuration to catch errors
// before any input file is touched.
func (c *Config) Validate() error {
	if c.Conversion.SampleRows <= 0 {
		return fmt.Errorf("sample_rows must be positive")
	}
	if c.Conversion.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	switch c.Logging.Encoding {
	case "console", "json":
	default:
		return fmt.Errorf("log encoding %q is not console or json", c.Logging.Encoding)
	}
	return nil
}
