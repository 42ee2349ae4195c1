// Package config provides configuration management for the cfb-edge service.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Metrics   MetricsConfig   `mapstructure:"metrics" validate:"required"`
	Providers ProvidersConfig `mapstructure:"providers" validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ServerConfig represents the public API server configuration
type ServerConfig struct {
	Port                   int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds     int      `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSeconds    int      `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" validate:"required,gt=0"`
	CORSAllowedOrigins     []string `mapstructure:"cors_allowed_origins"`
}

// MetricsConfig represents the ops server (metrics and probes) configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// ProvidersConfig groups the external data collaborators. None of them is
// required for the prediction core; each can be disabled independently.
type ProvidersConfig struct {
	CFBD    CFBDConfig          `mapstructure:"cfbd"`
	Massey  MasseyConfig        `mapstructure:"massey"`
	Weather WeatherConfig       `mapstructure:"weather"`
	Cache   ProviderCacheConfig `mapstructure:"cache"`
	HTTP    ProviderHTTPConfig  `mapstructure:"http"`
}

// CFBDConfig represents the college football data API configuration
type CFBDConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey  string `mapstructure:"api_key"`
}

// MasseyConfig represents the power ratings source configuration
type MasseyConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url" validate:"omitempty,url"`
}

// WeatherConfig represents the Open-Meteo forecast API configuration
type WeatherConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
}

// ProviderCacheConfig controls the optional in-memory response cache.
// When disabled, providers run against a no-op cache.
type ProviderCacheConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	TTLSeconds int  `mapstructure:"ttl_seconds" validate:"omitempty,gt=0"`
}

// ProviderHTTPConfig tunes the shared outbound HTTP client
type ProviderHTTPConfig struct {
	TimeoutSeconds     int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries         int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimitPerSecond float64 `mapstructure:"rate_limit_per_second" validate:"required,gt=0"`
}

// SchedulerConfig controls the periodic ratings cache refresh
type SchedulerConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	RatingsRefreshCron string `mapstructure:"ratings_refresh_cron" validate:"omitempty,cronexpr"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// ServerAddr returns the listen address for the API server
func (c *Config) ServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// ProviderTimeout returns the outbound HTTP timeout as a duration
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.Providers.HTTP.TimeoutSeconds) * time.Second
}

// CacheTTL returns the provider cache TTL as a duration
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Providers.Cache.TTLSeconds) * time.Second
}
