// Package config provides configuration management using viper.
// It supports loading from YAML files and environment variable overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Organic chart modes, selecting how the popularity ranking is computed.
const (
	OrganicModeWindowed = "windowed" // per-game counts within the selected window
	OrganicModeAllTime  = "all_time" // running totals from the game_stats collection
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	GeoIP     GeoIPConfig     `mapstructure:"geoip"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	PoolSize        int           `mapstructure:"pool_size"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
}

// AdminConfig holds the single privileged identity.
// Only a session authenticated as exactly this email is authorized.
type AdminConfig struct {
	Email        string        `mapstructure:"email"`
	PasswordHash string        `mapstructure:"password_hash"` // bcrypt
	SessionTTL   time.Duration `mapstructure:"session_ttl"`
}

// AnalyticsConfig holds dashboard pipeline configuration.
type AnalyticsConfig struct {
	DefaultWindowDays int           `mapstructure:"default_window_days"`
	OrganicMode       string        `mapstructure:"organic_mode"`
	AuditLogLimit     int           `mapstructure:"audit_log_limit"`
	RefreshInterval   time.Duration `mapstructure:"refresh_interval"` // poll fallback when NOTIFY is quiet
}

// GeoIPConfig holds the optional MaxMind database location.
// An empty path disables geo lookups.
type GeoIPConfig struct {
	DatabasePath string `mapstructure:"database_path"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name,
	)
}

// Load reads configuration from file and environment variables.
// It looks for config.yaml in the config directory.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Configure viper
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Enable environment variable override
	// Environment variables use underscore separator and uppercase
	// e.g., SERVER_ADDR, DATABASE_HOST, ADMIN_EMAIL
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional - env vars can provide all config)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK - we can use env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Admin.Email == "" {
		return nil, fmt.Errorf("admin.email must be configured")
	}
	if cfg.Admin.PasswordHash == "" {
		return nil, fmt.Errorf("admin.password_hash must be configured")
	}
	if cfg.Analytics.OrganicMode != OrganicModeWindowed && cfg.Analytics.OrganicMode != OrganicModeAllTime {
		return nil, fmt.Errorf("analytics.organic_mode must be %q or %q", OrganicModeWindowed, OrganicModeAllTime)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "gamehub")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "gamehub")
	v.SetDefault("database.pool_size", 20)
	v.SetDefault("database.connect_timeout", "10s")
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("database.max_conn_idle_time", "30m")

	// Admin defaults. The identity keys default to empty so that
	// environment-only deployments are picked up by Unmarshal; Load still
	// rejects an empty identity after the fact.
	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password_hash", "")
	v.SetDefault("admin.session_ttl", "12h")

	// Analytics defaults
	v.SetDefault("analytics.default_window_days", 7)
	v.SetDefault("analytics.organic_mode", OrganicModeWindowed)
	v.SetDefault("analytics.audit_log_limit", 100)
	v.SetDefault("analytics.refresh_interval", "30s")

	// GeoIP defaults; empty path leaves geo lookups disabled.
	v.SetDefault("geoip.database_path", "")
}
