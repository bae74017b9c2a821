// Package config loads CLI configuration from file, environment, and
// defaults. Settings resolve in that order of increasing precedence:
// defaults, then fray.yaml, then FRAY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the demo CLI configuration.
type Config struct {
	// Debug enables debug logging and runtime validation.
	Debug bool `mapstructure:"debug"`

	// Pretty enables pretty-printed HTML output.
	Pretty bool `mapstructure:"pretty"`

	// Roster is an optional path to a YAML roster file. Empty uses the
	// embedded roster.
	Roster string `mapstructure:"roster"`

	// Metrics configures Prometheus instrumentation.
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// MetricsConfig configures the runtime metric set.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// Load reads configuration. An explicit path must exist; otherwise a
// fray.yaml in the working directory is used when present.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("debug", false)
	v.SetDefault("pretty", true)
	v.SetDefault("roster", "")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "fray")

	v.SetEnvPrefix("FRAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("fray")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
