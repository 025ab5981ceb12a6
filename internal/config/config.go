// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Keyrail Contributors

// Package config loads Keyrail configuration from file, flags, and
// environment, in increasing order of precedence.
package config

import (
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Default configuration values.
const (
	DefaultScheme      = "Keyrail-Token"
	DefaultLogFormat   = "json"
	DefaultMetricsAddr = "127.0.0.1:9100"
)

// Config is the top-level Keyrail configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Auth     AuthConfig     `koanf:"auth"`
}

// ServerConfig configures the operational HTTP surface and logging.
type ServerConfig struct {
	MetricsAddr string `koanf:"metrics_addr"`
	LogFormat   string `koanf:"log_format"`
}

// DatabaseConfig configures the PostgreSQL connection.
type DatabaseConfig struct {
	URL string `koanf:"url"`
}

// AuthConfig configures the credential layer.
type AuthConfig struct {
	// Scheme is the Authorization header scheme name consumed by the
	// credential parser's collaborators.
	Scheme string `koanf:"scheme"`
}

// Load builds the configuration: defaults, then the optional YAML file,
// then command-line flags. DATABASE_URL overrides the file but not an
// explicit flag value.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			MetricsAddr: DefaultMetricsAddr,
			LogFormat:   DefaultLogFormat,
		},
		Auth: AuthConfig{
			Scheme: DefaultScheme,
		},
	}

	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code("CONFIG_FILE_FAILED").
				With("path", path).
				Wrap(err)
		}
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		if err := k.Set("database.url", url); err != nil {
			return nil, oops.Code("CONFIG_ENV_FAILED").Wrap(err)
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, oops.Code("CONFIG_FLAGS_FAILED").Wrap(err)
		}
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, oops.Code("CONFIG_UNMARSHAL_FAILED").Wrap(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is consistent.
func (c *Config) Validate() error {
	if c.Server.LogFormat != "json" && c.Server.LogFormat != "text" {
		return oops.Code("CONFIG_INVALID").
			With("log_format", c.Server.LogFormat).
			Errorf("server.log_format must be 'json' or 'text'")
	}
	if c.Auth.Scheme == "" {
		return oops.Code("CONFIG_INVALID").Errorf("auth.scheme cannot be empty")
	}
	return nil
}
