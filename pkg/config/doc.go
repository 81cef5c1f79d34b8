// Package config provides configuration management for csvpq.
//
// A single Config structure holds everything a run needs, organized into
// logical sections:
//
//   - Conversion: sampling cap, batch size, per-file behavior
//   - Logging: verbosity, output encoding
//
// Configuration is resolved in layers. Built-in defaults come first, then
// an optional YAML config file, then CSVPQ_* environment variables, and
// finally explicit command-line flags applied by the caller.
//
// # Usage
//
//	cfg, err := config.Load("csvpq.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//		log.Fatal(err)
//	}
//
// Environment variables map onto config keys with the CSVPQ_ prefix and
// underscores for section separators:
//
//	CSVPQ_CONVERSION_SAMPLE_ROWS=16384
//	CSVPQ_LOGGING_LEVEL=debug
package config
