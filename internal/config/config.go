// Package config loads tool configuration through Viper.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds configuration for the go-wim tool.
type Config struct {
	// WimlibPath is the wimlib-imagex executable used as the container
	// reader backend.
	WimlibPath string `mapstructure:"wimlib_path"`

	// CommandTimeout bounds each reader invocation.
	CommandTimeout time.Duration `mapstructure:"command_timeout"`

	// ApproximateSize opts into the container-bytes/image-count size
	// fallback for images without a TOTALBYTES property.
	ApproximateSize bool `mapstructure:"approximate_size"`
}

// Load reads configuration using Viper, falling back to defaults when no
// config file is found.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("go-wim")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.go-wim")
	v.AddConfigPath("/etc/go-wim")

	v.SetDefault("wimlib_path", "wimlib-imagex")
	v.SetDefault("command_timeout", 30*time.Second)
	v.SetDefault("approximate_size", false)

	v.SetEnvPrefix("GOWIM")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; anything else is a real failure
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
