package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Catalog sources
const (
	CatalogSourceEmbedded = "embedded"
	CatalogSourceFile     = "file"
	CatalogSourcePostgres = "postgres"
)

// EnvPrefix is the prefix of every environment variable the service reads.
const EnvPrefix = "LOADOUT_SVC"

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Sessions SessionsConfig `mapstructure:"sessions"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Timeouts TimeoutsConfig `mapstructure:"timeouts"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	InternalPort string        `mapstructure:"internal_port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// CatalogConfig selects where the item and resource catalog is loaded from
type CatalogConfig struct {
	Source string `mapstructure:"source"`
	Path   string `mapstructure:"path"`
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	URL               string        `mapstructure:"url"`
	MaxConnections    int           `mapstructure:"max_connections"`
	MaxIdleTime       time.Duration `mapstructure:"max_idle_time"`
	HealthCheckPeriod time.Duration `mapstructure:"health_check_period"`
	PingTimeout       time.Duration `mapstructure:"ping_timeout"`
}

// RedisConfig contains Redis connection configuration. Redis is optional:
// without a URL totals are always computed in process.
type RedisConfig struct {
	URL            string        `mapstructure:"url"`
	KeyPrefix      string        `mapstructure:"key_prefix"`
	MaxConnections int           `mapstructure:"max_connections"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxRetries     int           `mapstructure:"max_retries"`
	PingTimeout    time.Duration `mapstructure:"ping_timeout"`
}

// Enabled reports whether a Redis URL is configured.
func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

// CacheConfig contains totals cache configuration
type CacheConfig struct {
	TotalsTTL time.Duration `mapstructure:"totals_ttl"`
}

// SessionsConfig contains session lifecycle configuration
type SessionsConfig struct {
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	MaxSessions     int           `mapstructure:"max_sessions"`
}

// CORSConfig contains CORS configuration for the public router
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TimeoutsConfig contains various timeout configurations
type TimeoutsConfig struct {
	HTTPMiddleware   time.Duration `mapstructure:"http_middleware"`
	GracefulShutdown time.Duration `mapstructure:"graceful_shutdown"`
	DatabaseHealth   time.Duration `mapstructure:"database_health"`
	RedisHealth      time.Duration `mapstructure:"redis_health"`
}

// MetricsConfig contains metrics collection configuration
type MetricsConfig struct {
	UpdateInterval time.Duration `mapstructure:"update_interval"`
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/loadout-service")

	// Set environment variable prefix and key replacement
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults are only visible to Unmarshal when bound
	for _, key := range []string{"server.port", "server.internal_port", "catalog.path", "database.url", "redis.url"} {
		_ = v.BindEnv(key)
	}

	setDefaults(v)

	// Try to read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")

	// Catalog defaults
	v.SetDefault("catalog.source", CatalogSourceEmbedded)

	// Database defaults (used only with the postgres catalog source)
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_idle_time", "5m")
	v.SetDefault("database.health_check_period", "1m")
	v.SetDefault("database.ping_timeout", "5s")

	// Redis defaults
	v.SetDefault("redis.key_prefix", "loadout")
	v.SetDefault("redis.max_connections", 10)
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.ping_timeout", "5s")

	// Cache defaults
	v.SetDefault("cache.totals_ttl", "10m")

	// Session defaults
	v.SetDefault("sessions.idle_timeout", "30m")
	v.SetDefault("sessions.cleanup_interval", "5m")
	v.SetDefault("sessions.max_sessions", 10000)

	// CORS defaults
	v.SetDefault("cors.allowed_origins", []string{"*"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Timeout defaults
	v.SetDefault("timeouts.http_middleware", "60s")
	v.SetDefault("timeouts.graceful_shutdown", "30s")
	v.SetDefault("timeouts.database_health", "2s")
	v.SetDefault("timeouts.redis_health", "2s")

	// Metrics defaults
	v.SetDefault("metrics.update_interval", "10s")
}

// Validate validates the configuration and ensures required fields are present
func (c *Config) Validate() error {
	required := []requiredField{
		{"server.port", c.Server.Port},
		{"server.internal_port", c.Server.InternalPort},
	}

	switch c.Catalog.Source {
	case CatalogSourceEmbedded:
	case CatalogSourceFile:
		required = append(required, requiredField{"catalog.path", c.Catalog.Path})
	case CatalogSourcePostgres:
		required = append(required, requiredField{"database.url", c.Database.URL})
	default:
		return fmt.Errorf("catalog.source must be one of %s, %s, %s, got %q",
			CatalogSourceEmbedded, CatalogSourceFile, CatalogSourcePostgres, c.Catalog.Source)
	}

	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("required configuration field '%s' is not set (use environment variable %s)", r.field, envName(r.field))
		}
	}

	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	// Validate timeout values are reasonable
	timeouts := map[string]time.Duration{
		"server.read_timeout":       c.Server.ReadTimeout,
		"server.write_timeout":      c.Server.WriteTimeout,
		"database.ping_timeout":     c.Database.PingTimeout,
		"redis.ping_timeout":        c.Redis.PingTimeout,
		"sessions.cleanup_interval": c.Sessions.CleanupInterval,
	}

	for name, timeout := range timeouts {
		if timeout <= 0 {
			return fmt.Errorf("timeout '%s' must be positive, got %v", name, timeout)
		}
		if timeout > 10*time.Minute {
			return fmt.Errorf("timeout '%s' seems too large, got %v", name, timeout)
		}
	}

	if c.Sessions.IdleTimeout <= 0 {
		return fmt.Errorf("sessions.idle_timeout must be positive, got %v", c.Sessions.IdleTimeout)
	}
	if c.Cache.TotalsTTL <= 0 {
		return fmt.Errorf("cache.totals_ttl must be positive, got %v", c.Cache.TotalsTTL)
	}

	// Validate numeric values
	if c.Sessions.MaxSessions < 0 {
		return fmt.Errorf("sessions.max_sessions cannot be negative, got %d", c.Sessions.MaxSessions)
	}
	if c.Database.MaxConnections <= 0 {
		return fmt.Errorf("database.max_connections must be positive, got %d", c.Database.MaxConnections)
	}
	if c.Redis.MaxConnections <= 0 {
		return fmt.Errorf("redis.max_connections must be positive, got %d", c.Redis.MaxConnections)
	}
	if c.Redis.MaxRetries < 0 {
		return fmt.Errorf("redis.max_retries cannot be negative, got %d", c.Redis.MaxRetries)
	}

	return nil
}

type requiredField struct {
	field string
	value string
}

func envName(field string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(field, ".", "_"))
}
