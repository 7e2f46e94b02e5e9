// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for thumbgrab.
type Config struct {
	// Output
	Format    string `yaml:"format"` // jpeg or webp
	Quality   int    `yaml:"quality"`
	MaxWidth  int    `yaml:"max_width"`
	MaxHeight int    `yaml:"max_height"`

	// Input
	ChunkSize int `yaml:"chunk_size"` // bytes per source read, 0 = whole frame

	// Logging
	LogLevel string `yaml:"log_level"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Format:   "jpeg",
		Quality:  85,
		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// Validate checks the configuration for values the pipeline cannot work with.
func (c Config) Validate() error {
	switch c.Format {
	case "jpeg", "webp":
	default:
		return fmt.Errorf("config: unknown output format %q", c.Format)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("config: quality %d out of range 1-100", c.Quality)
	}
	if c.ChunkSize < 0 {
		return fmt.Errorf("config: negative chunk size")
	}
	if c.MaxWidth < 0 || c.MaxHeight < 0 {
		return fmt.Errorf("config: negative output bounds")
	}
	return nil
}
