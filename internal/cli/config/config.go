package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the Grafite CLI configuration
type Config struct {
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
}

// OutputConfig controls how edited documents are written
type OutputConfig struct {
	// Format is "pretty" or "compact"
	Format string `mapstructure:"format"`
	Indent string `mapstructure:"indent"`
}

// LogConfig controls engine trace logging
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads the configuration from grafite.yml or grafite.yaml in the
// current directory, with GRAFITE_* environment variables taking precedence
// over file values.
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("output.format", "pretty")
	v.SetDefault("output.indent", "  ")
	v.SetDefault("log.level", "info")

	// Set config name and paths
	v.SetConfigName("grafite")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Enable environment variable support
	v.SetEnvPrefix("GRAFITE")
	v.AutomaticEnv()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Output.Format != "pretty" && cfg.Output.Format != "compact" {
		return nil, fmt.Errorf("invalid output format %q (want pretty or compact)", cfg.Output.Format)
	}
	return &cfg, nil
}
