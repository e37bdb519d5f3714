// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. CARDSENSE_SERVER_ADDRESS.
const EnvPrefix = "CARDSENSE"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Server struct {
		Address           string   `mapstructure:"address" yaml:"address"`
		MaxUploadMB       int      `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
		RequestsPerSecond float64  `mapstructure:"requests_per_second" yaml:"requests_per_second"`
		Burst             int      `mapstructure:"burst" yaml:"burst"`
		AllowedOrigins    []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	} `mapstructure:"server" yaml:"server"`

	Database struct {
		Path string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"database" yaml:"database"`

	AI struct {
		Enabled           bool   `mapstructure:"enabled" yaml:"enabled"`
		Model             string `mapstructure:"model" yaml:"model"`
		RequestsPerMinute int    `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
		TimeoutSeconds    int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		APIKey            string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"ai" yaml:"ai"`

	Categorization struct {
		KeywordsFile string `mapstructure:"keywords_file" yaml:"keywords_file"`
	} `mapstructure:"categorization" yaml:"categorization"`

	Cache struct {
		SummaryTTLMinutes int `mapstructure:"summary_ttl_minutes" yaml:"summary_ttl_minutes"`
	} `mapstructure:"cache" yaml:"cache"`
}

// InitializeConfig loads configuration with hierarchical precedence:
// defaults, then the config file, then environment variables.
// An empty configFile searches the standard locations.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.cardsense")
		v.AddConfigPath(".cardsense")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file. Missing files are fine unless one was named explicitly.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	// 5. The API key is read from the unprefixed variable the Gemini tooling uses.
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY environment variable: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Server defaults
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.max_upload_mb", 10)
	v.SetDefault("server.requests_per_second", 5.0)
	v.SetDefault("server.burst", 10)
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Database defaults
	v.SetDefault("database.path", "data/cardsense.db")

	// AI defaults
	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.requests_per_minute", 10)
	v.SetDefault("ai.timeout_seconds", 30)

	// Categorization defaults
	v.SetDefault("categorization.keywords_file", "")

	// Cache defaults
	v.SetDefault("cache.summary_ttl_minutes", 15)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Server.MaxUploadMB < 1 || config.Server.MaxUploadMB > 100 {
		return fmt.Errorf("server.max_upload_mb must be between 1 and 100, got: %d", config.Server.MaxUploadMB)
	}
	if config.Server.RequestsPerSecond <= 0 || config.Server.Burst < 1 {
		return fmt.Errorf("server rate limit must be positive, got: %v/s burst %d", config.Server.RequestsPerSecond, config.Server.Burst)
	}

	if config.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}

	// Validate AI configuration
	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}

		if config.AI.RequestsPerMinute < 1 || config.AI.RequestsPerMinute > 1000 {
			return fmt.Errorf("ai.requests_per_minute must be between 1 and 1000, got: %d", config.AI.RequestsPerMinute)
		}

		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	if config.Cache.SummaryTTLMinutes < 1 {
		return fmt.Errorf("cache.summary_ttl_minutes must be at least 1, got: %d", config.Cache.SummaryTTLMinutes)
	}

	return nil
}

// MaxUploadBytes is the request body limit derived from server.max_upload_mb.
func (c *Config) MaxUploadBytes() int {
	return c.Server.MaxUploadMB * 1024 * 1024
}

// AITimeout returns ai.timeout_seconds as a duration.
func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AI.TimeoutSeconds) * time.Second
}

// SummaryTTL returns cache.summary_ttl_minutes as a duration.
func (c *Config) SummaryTTL() time.Duration {
	return time.Duration(c.Cache.SummaryTTLMinutes) * time.Minute
}
