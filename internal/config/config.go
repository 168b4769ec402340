// Package config provides the immutable configuration snapshot the
// service reads at startup: defaults, overlaid by an optional YAML file,
// overlaid by environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/lingogate/lingogate/internal/translate"
)

// Config is the complete application configuration. It is resolved once
// at startup and treated as read-only afterwards; the admission core
// receives only the resolved values.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" yaml:"server"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit" yaml:"rate_limit"`
	Throttling  ThrottlingConfig  `mapstructure:"throttling" yaml:"throttling"`
	Translation TranslationConfig `mapstructure:"translation" yaml:"translation"`
	Formats     FormatsConfig     `mapstructure:"formats" yaml:"formats"`
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging"`
	Metrics     MetricsConfig     `mapstructure:"metrics" yaml:"metrics"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host            string        `mapstructure:"host" yaml:"host"`
	Port            int           `mapstructure:"port" yaml:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// RateLimitConfig parameterizes the token-bucket gate.
type RateLimitConfig struct {
	RequestsPerMinute int  `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
	Burst             int  `mapstructure:"burst" yaml:"burst"`
	Enabled           bool `mapstructure:"enabled" yaml:"enabled"`
}

// ThrottlingConfig parameterizes the concurrency gate.
type ThrottlingConfig struct {
	ConcurrentRequests int  `mapstructure:"concurrent_requests" yaml:"concurrent_requests"`
	Enabled            bool `mapstructure:"enabled" yaml:"enabled"`
}

// TranslationConfig describes the translation collaborator.
type TranslationConfig struct {
	MaxCharsPerRequest int           `mapstructure:"max_chars_per_request" yaml:"max_chars_per_request"`
	AvailablePackages  []string      `mapstructure:"available_packages" yaml:"available_packages"`
	FallbackResponse   string        `mapstructure:"fallback_response" yaml:"fallback_response"`
	EngineURL          string        `mapstructure:"engine_url" yaml:"engine_url"`
	EngineAPIKey       string        `mapstructure:"engine_api_key" yaml:"engine_api_key"`
	EngineTimeout      time.Duration `mapstructure:"engine_timeout" yaml:"engine_timeout"`
}

// FormatsConfig lists accepted input and output formats.
type FormatsConfig struct {
	Input  []string `mapstructure:"input" yaml:"input"`
	Output []string `mapstructure:"output" yaml:"output"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level controls the minimum log level: debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

// Validate rejects configurations the admission core cannot honor.
// Called once after loading; gate constructors re-check their own
// parameters as a second line of defense.
func (c *Config) Validate() error {
	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerMinute <= 0 {
			return fmt.Errorf("rate_limit.requests_per_minute must be positive, got %d", c.RateLimit.RequestsPerMinute)
		}
		if c.RateLimit.Burst < 1 {
			return fmt.Errorf("rate_limit.burst must be at least 1, got %d", c.RateLimit.Burst)
		}
	}

	if c.Throttling.Enabled && c.Throttling.ConcurrentRequests < 1 {
		return fmt.Errorf("throttling.concurrent_requests must be at least 1, got %d", c.Throttling.ConcurrentRequests)
	}

	if c.Translation.MaxCharsPerRequest < 1 {
		return fmt.Errorf("translation.max_chars_per_request must be at least 1, got %d", c.Translation.MaxCharsPerRequest)
	}

	for _, pkg := range c.Translation.AvailablePackages {
		if _, err := translate.ParsePair(pkg); err != nil {
			return fmt.Errorf("translation.available_packages: %w", err)
		}
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}

	return nil
}

// OutputFormatAllowed reports whether format is one of the configured
// output formats.
func (c *Config) OutputFormatAllowed(format string) bool {
	for _, f := range c.Formats.Output {
		if f == format {
			return true
		}
	}
	return false
}
