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
	LLM       LLMConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Discovery DiscoveryConfig
	Probe     ProbeConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LLMConfig holds configuration for the competitor candidate generator
type LLMConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	BaseURL           string        `mapstructure:"base_url"`
	Model             string        `mapstructure:"model"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// DatabaseConfig holds the relational store configuration.
// An empty URL selects the in-memory curated repository.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute per client IP
}

// DiscoveryConfig holds the verified-competitor orchestrator settings
type DiscoveryConfig struct {
	Deadline    time.Duration `mapstructure:"deadline"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	FastVerify  bool          `mapstructure:"fast_verify"`
}

// ProbeConfig holds per-mode HTTP probe settings
type ProbeConfig struct {
	Fast     ProbeModeConfig `mapstructure:"fast"`
	Thorough ProbeModeConfig `mapstructure:"thorough"`
}

// ProbeModeConfig holds timeouts and redirect limits for one probe mode
type ProbeModeConfig struct {
	HeadTimeout  time.Duration `mapstructure:"head_timeout"`
	GetTimeout   time.Duration `mapstructure:"get_timeout"`
	MaxRedirects int           `mapstructure:"max_redirects"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/nichescout/")

	// NICHESCOUT_DISCOVERY_MAX_ATTEMPTS -> discovery.max_attempts
	v.SetEnvPrefix("NICHESCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
// Every key needs a default so that AutomaticEnv overrides reach Unmarshal.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// LLM defaults
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.requests_per_minute", 60)
	v.SetDefault("llm.timeout", "20s")

	// Database defaults
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "10m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 60)

	// Discovery defaults
	v.SetDefault("discovery.deadline", "45s")
	v.SetDefault("discovery.max_attempts", 8)
	v.SetDefault("discovery.fast_verify", false)

	// Probe defaults
	v.SetDefault("probe.fast.head_timeout", "1200ms")
	v.SetDefault("probe.fast.get_timeout", "2500ms")
	v.SetDefault("probe.fast.max_redirects", 1)
	v.SetDefault("probe.thorough.head_timeout", "5s")
	v.SetDefault("probe.thorough.get_timeout", "9s")
	v.SetDefault("probe.thorough.max_redirects", 2)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.Discovery.Deadline <= 0 {
		return fmt.Errorf("discovery deadline must be positive, got: %s", config.Discovery.Deadline)
	}

	if config.Discovery.MaxAttempts < 1 {
		return fmt.Errorf("discovery max_attempts must be at least 1, got: %d", config.Discovery.MaxAttempts)
	}

	for name, mode := range map[string]ProbeModeConfig{"fast": config.Probe.Fast, "thorough": config.Probe.Thorough} {
		if mode.HeadTimeout <= 0 || mode.GetTimeout <= 0 {
			return fmt.Errorf("probe.%s timeouts must be positive", name)
		}
		if mode.MaxRedirects < 0 {
			return fmt.Errorf("probe.%s max_redirects must not be negative", name)
		}
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("ratelimit per_ip must not be negative, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
