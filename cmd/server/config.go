// Package main provides the WorkFlow server CLI.
package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Auth     AuthConfig     `yaml:"auth"`
	Database DatabaseConfig `yaml:"database"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Verbose  bool           `yaml:"-"` // set via CLI flag
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Address    string `yaml:"address"`     // HTTP listen address (default: :8080)
	CORSOrigin string `yaml:"cors_origin"` // Access-Control-Allow-Origin value (default: *)
}

// AuthConfig contains authentication settings. The JWT secret comes
// from the WORKFLOW_JWT_SECRET environment variable, never the file.
type AuthConfig struct {
	RequireToken   bool   `yaml:"require_token"`    // Enforce bearer tokens on data endpoints
	TokenTTL       string `yaml:"token_ttl"`        // Access token lifetime (default: 24h)
	RateLimitPerIP int    `yaml:"rate_limit_login"` // Login attempts per IP per minute (default: 10)
}

// TTL returns the parsed token lifetime. Validate has already rejected
// unparseable values for file-loaded configs.
func (a *AuthConfig) TTL() time.Duration {
	d, err := time.ParseDuration(a.TokenTTL)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// DatabaseConfig contains SQLite settings.
type DatabaseConfig struct {
	Path string `yaml:"path"` // SQLite file path (default: data/workflow.db)
}

// MetricsConfig contains the Prometheus endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // Serve Prometheus metrics (default: true)
	Address string `yaml:"address"` // Metrics listen address (default: :9090)
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	cfg.Metrics.Enabled = true
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Metrics.Enabled = true
	cfg.setDefaults()
	return cfg
}

// setDefaults sets default values for missing config fields.
func (c *Config) setDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Server.CORSOrigin == "" {
		c.Server.CORSOrigin = "*"
	}
	if c.Auth.TokenTTL == "" {
		c.Auth.TokenTTL = "24h"
	}
	if c.Auth.RateLimitPerIP == 0 {
		c.Auth.RateLimitPerIP = 10
	}
	if c.Database.Path == "" {
		c.Database.Path = "data/workflow.db"
	}
	if c.Metrics.Address == "" {
		c.Metrics.Address = ":9090"
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server.address is required")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if d, err := time.ParseDuration(c.Auth.TokenTTL); err != nil || d <= 0 {
		return fmt.Errorf("auth.token_ttl must be a positive duration")
	}
	if c.Auth.RateLimitPerIP < 0 {
		return fmt.Errorf("auth.rate_limit_login must be positive")
	}
	if c.Metrics.Enabled && c.Metrics.Address == "" {
		return fmt.Errorf("metrics.address is required when metrics are enabled")
	}
	return nil
}
