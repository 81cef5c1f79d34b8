package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// envPrefix namespaces the environment variables consulted by Load,
// e.g. CSVPQ_CONVERSION_BATCH_SIZE.
const envPrefix = "CSVPQ"

// Load builds the effective configuration from built-in defaults, an
// optional YAML config file, and CSVPQ_* environment variables. An empty
// filePath skips the file layer. Flag overrides are applied by the caller
// on the returned Config.
func Load(filePath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	def := New()
	v.SetDefault("conversion.sample_rows", def.Conversion.SampleRows)
	v.SetDefault("conversion.batch_size", def.Conversion.BatchSize)
	v.SetDefault("conversion.remove_inputs", def.Conversion.RemoveInputs)
	v.SetDefault("conversion.print_schema", def.Conversion.PrintSchema)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.encoding", def.Logging.Encoding)
	v.SetDefault("logging.development", def.Logging.Development)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if filePath != "" {
		v.SetConfigFile(filePath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := New()
	if err := v.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	}); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}
