package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Trendyol    TrendyolConfig
	Hepsiburada HepsiburadaConfig
	Database    DatabaseConfig
	Cache       CacheConfig
	RateLimit   RateLimitConfig
	Tracking    TrackingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// TrendyolConfig holds Trendyol seller API configuration
type TrendyolConfig struct {
	APIKey   string `mapstructure:"api_key"`
	SellerID string `mapstructure:"seller_id"`
	BaseURL  string `mapstructure:"base_url"`
	PageSize int    `mapstructure:"page_size"`
}

// HepsiburadaConfig holds Hepsiburada listing API configuration
type HepsiburadaConfig struct {
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	MerchantID string `mapstructure:"merchant_id"`
	BaseURL    string `mapstructure:"base_url"`
}

// DatabaseConfig holds Postgres configuration
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds inbound rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute per client IP
}

// TrackingConfig holds price tracking behavior configuration
type TrackingConfig struct {
	// Timezone is the IANA zone observations are stamped in and day
	// boundaries are computed in. The marketplace operates on Turkey time.
	Timezone string `mapstructure:"timezone"`
	Debug    bool   `mapstructure:"debug"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pricecontrol/")

	// Environment variable settings
	v.SetEnvPrefix("PRICECTL")
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

// Location resolves the configured tracking timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Tracking.Timezone)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Trendyol defaults
	v.SetDefault("trendyol.base_url", "https://apigw.trendyol.com")
	v.SetDefault("trendyol.page_size", 200)

	// Hepsiburada defaults
	v.SetDefault("hepsiburada.base_url", "https://listing-external.hepsiburada.com")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "15m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)

	// Tracking defaults
	v.SetDefault("tracking.timezone", "Europe/Istanbul")
	v.SetDefault("tracking.debug", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Trendyol.APIKey == "" {
		return fmt.Errorf("Trendyol API key is required (set PRICECTL_TRENDYOL_API_KEY)")
	}

	if config.Trendyol.SellerID == "" {
		return fmt.Errorf("Trendyol seller ID is required (set PRICECTL_TRENDYOL_SELLER_ID)")
	}

	if config.Database.DSN == "" {
		return fmt.Errorf("database DSN is required (set PRICECTL_DATABASE_DSN)")
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if _, err := time.LoadLocation(config.Tracking.Timezone); err != nil {
		return fmt.Errorf("invalid tracking timezone %q: %w", config.Tracking.Timezone, err)
	}

	return nil
}
