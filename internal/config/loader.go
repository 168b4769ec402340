package config

import (
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Load resolves the configuration: defaults, then the YAML file (the
// given path, or ./config/lingogate.yaml if present), then environment
// variables. A missing config file is not an error; a malformed one is.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("lingogate")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		// Only the explicit-path and parse failures are fatal; an
		// absent default file just means defaults plus env.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	bindEnv(v)

	var cfg Config
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// setDefaults mirrors the shipped default configuration.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// Rate limit defaults
	v.SetDefault("rate_limit.requests_per_minute", 60)
	v.SetDefault("rate_limit.burst", 10)
	v.SetDefault("rate_limit.enabled", true)

	// Throttling defaults
	v.SetDefault("throttling.concurrent_requests", 5)
	v.SetDefault("throttling.enabled", true)

	// Translation defaults
	v.SetDefault("translation.max_chars_per_request", 5000)
	v.SetDefault("translation.available_packages", []string{
		"en-es", "es-en", "en-fr", "fr-en", "en-de", "de-en", "it-en", "en-it",
	})
	v.SetDefault("translation.fallback_response", "Translation service unavailable")
	v.SetDefault("translation.engine_url", "")
	v.SetDefault("translation.engine_api_key", "")
	v.SetDefault("translation.engine_timeout", "30s")

	// Format defaults
	v.SetDefault("formats.input", []string{"json", "text"})
	v.SetDefault("formats.output", []string{"json", "text"})

	// Logging defaults
	v.SetDefault("logging.level", "info")

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
}

// bindEnv wires the published environment variable names. These are
// part of the deployment contract, so they are bound explicitly rather
// than derived from key names.
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	_ = v.BindEnv("rate_limit.requests_per_minute", "RATE_LIMIT_RPM")
	_ = v.BindEnv("rate_limit.burst", "RATE_LIMIT_BURST")
	_ = v.BindEnv("throttling.enabled", "THROTTLING_ENABLED")
	_ = v.BindEnv("throttling.concurrent_requests", "THROTTLING_CONCURRENT")
	_ = v.BindEnv("translation.max_chars_per_request", "MAX_CHARS_PER_REQUEST")
	_ = v.BindEnv("translation.available_packages", "AVAILABLE_PACKAGES")
	_ = v.BindEnv("translation.engine_url", "TRANSLATION_ENGINE_URL")
	_ = v.BindEnv("translation.engine_api_key", "TRANSLATION_ENGINE_API_KEY")
	_ = v.BindEnv("logging.level", "LOGGING_LEVEL")
}
