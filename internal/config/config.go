// Package config provides configuration loading for the splitter.
// Supports YAML files, a .env file, and environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/spherical/pdf-splitter/internal/domain"
)

// Config holds all configuration for the splitter.
type Config struct {
	Workers       int           `yaml:"workers"`
	Extensions    []string      `yaml:"extensions"`
	ExtractImages bool          `yaml:"extract_images"`
	Observability Observability `yaml:"observability"`
}

// Observability holds logging settings.
type Observability struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Load reads configuration from an optional YAML file and applies
// environment overrides. An empty path loads defaults only.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // ignore error if .env doesn't exist

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, domain.ConfigError("read config file", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, domain.ConfigError("parse config file", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Workers:       4,
		Extensions:    []string{".pdf"},
		ExtractImages: false,
		Observability: Observability{
			LogLevel:  "info",
			LogFormat: "console",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return domain.ConfigError(fmt.Sprintf("workers must be at least 1, got %d", c.Workers), nil)
	}
	if len(c.Extensions) == 0 {
		return domain.ConfigError("at least one extension must be configured", nil)
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return domain.ConfigError(fmt.Sprintf("extension %q must start with a dot", ext), nil)
		}
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SPLITTER_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}

	if v := os.Getenv("SPLITTER_EXTENSIONS"); v != "" {
		parts := strings.Split(v, ",")
		exts := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				exts = append(exts, p)
			}
		}
		if len(exts) > 0 {
			cfg.Extensions = exts
		}
	}

	if v := os.Getenv("SPLITTER_EXTRACT_IMAGES"); v != "" {
		cfg.ExtractImages = v == "true" || v == "1"
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
}
