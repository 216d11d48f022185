package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Gemini    GeminiConfig
	Cache     CacheConfig
	Sizing    SizingConfig
	Search    SearchConfig
	History   HistoryConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds product catalog API configuration
type CatalogConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// GeminiConfig holds the optional generative advisor configuration.
// When disabled the deterministic rule tables run alone.
type GeminiConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type string        `mapstructure:"type"` // "memory" or "none"
	TTL  time.Duration `mapstructure:"ttl"`
}

// SizingConfig selects the size classification policy
type SizingConfig struct {
	Policy string `mapstructure:"policy"` // "table" or "bmi"
}

// SearchConfig bounds the result pipeline
type SearchConfig struct {
	MaxResults int `mapstructure:"max_results"`
}

// HistoryConfig holds the append-only search log location.
// An empty path disables history.
type HistoryConfig struct {
	Path string `mapstructure:"path"`
}

// RateLimitConfig holds rate limiting configuration: per_ip is requests per
// minute per client IP, catalog is the hourly budget for the product API.
type RateLimitConfig struct {
	PerIP   int `mapstructure:"per_ip"`
	Catalog int `mapstructure:"catalog"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/stylefinder/")

	// Environment variable settings
	v.SetEnvPrefix("STYLEFINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Catalog defaults. The empty api_key default registers the key with
	// viper so the environment variable binds through Unmarshal.
	v.SetDefault("catalog.api_key", "")
	v.SetDefault("catalog.base_url", "https://api.stylefinder.dev/catalog")

	// Gemini defaults
	v.SetDefault("gemini.enabled", false)
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "24h")

	// Sizing defaults
	v.SetDefault("sizing.policy", "table")

	// Search defaults
	v.SetDefault("search.max_results", 24)

	// History defaults
	v.SetDefault("history.path", "search_history.jsonl")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.catalog", 1000)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.APIKey == "" {
		return fmt.Errorf("catalog API key is required (set STYLEFINDER_CATALOG_API_KEY)")
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "none" {
		return fmt.Errorf("cache type must be 'memory' or 'none', got: %s", config.Cache.Type)
	}

	if config.Sizing.Policy != "table" && config.Sizing.Policy != "bmi" {
		return fmt.Errorf("sizing policy must be 'table' or 'bmi', got: %s", config.Sizing.Policy)
	}

	if config.Gemini.Enabled && config.Gemini.APIKey == "" {
		return fmt.Errorf("Gemini API key is required when gemini is enabled (set STYLEFINDER_GEMINI_API_KEY)")
	}

	return nil
}
