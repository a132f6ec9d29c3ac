package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Codes    CodeConfig
	Session  SessionConfig
}

// AppConfig holds engine-level settings
type AppConfig struct {
	Env             string        `env:"APP_ENV" envDefault:"development"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"5m"`
}

// DatabaseConfig holds SurrealDB connection settings
type DatabaseConfig struct {
	Host      string `env:"DB_HOST" envDefault:"localhost"`
	Port      string `env:"DB_PORT" envDefault:"8000"`
	Namespace string `env:"DB_NAMESPACE" envDefault:"gatherly"`
	Database  string `env:"DB_DATABASE" envDefault:"potluck"`
	User      string `env:"DB_USER" envDefault:"root"`
	Password  string `env:"DB_PASSWORD" envDefault:"root"`
}

// CacheConfig holds local snapshot store settings
type CacheConfig struct {
	Path string `env:"CACHE_PATH" envDefault:"./potluck.db"`
}

// CodeConfig holds join code generation settings
type CodeConfig struct {
	Length      int  `env:"CODE_LENGTH" envDefault:"6"`
	MaxAttempts int  `env:"CODE_MAX_ATTEMPTS" envDefault:"10"`
	Strict      bool `env:"CODE_STRICT" envDefault:"false"`
}

// SessionConfig identifies the local user. There is no account system;
// the engine trusts whatever identity the host process supplies.
type SessionConfig struct {
	UserID string `env:"SESSION_USER_ID" envDefault:"local-user"`
	Email  string `env:"SESSION_EMAIL" envDefault:""`
	Name   string `env:"SESSION_NAME" envDefault:"Host"`
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// SlogLevel maps the configured log level to its slog value
func (c *Config) SlogLevel() slog.Level {
	switch c.App.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	var errs []error

	if c.App.Env != "development" && c.App.Env != "staging" && c.App.Env != "production" {
		errs = append(errs, fmt.Errorf("APP_ENV must be development, staging, or production, got %q", c.App.Env))
	}
	switch c.App.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be debug, info, warn, or error, got %q", c.App.LogLevel))
	}
	if c.App.RefreshInterval <= 0 {
		errs = append(errs, errors.New("REFRESH_INTERVAL must be positive"))
	}

	if c.Database.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.Database.Port == "" {
		errs = append(errs, errors.New("DB_PORT is required"))
	}
	if c.Database.Namespace == "" {
		errs = append(errs, errors.New("DB_NAMESPACE is required"))
	}
	if c.Database.Database == "" {
		errs = append(errs, errors.New("DB_DATABASE is required"))
	}

	if c.Cache.Path == "" {
		errs = append(errs, errors.New("CACHE_PATH is required"))
	}

	if c.Codes.Length < 4 || c.Codes.Length > 12 {
		errs = append(errs, fmt.Errorf("CODE_LENGTH must be between 4 and 12, got %d", c.Codes.Length))
	}
	if c.Codes.MaxAttempts < 1 {
		errs = append(errs, errors.New("CODE_MAX_ATTEMPTS must be at least 1"))
	}

	if c.Session.UserID == "" {
		errs = append(errs, errors.New("SESSION_USER_ID is required"))
	}

	return errors.Join(errs...)
}
