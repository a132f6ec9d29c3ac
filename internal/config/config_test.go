package config

import (
	"strings"
	"testing"
	"time"
)

func validBaseConfig() *Config {
	return &Config{
		App: AppConfig{
			Env:             "development",
			LogLevel:        "info",
			RefreshInterval: 5 * time.Minute,
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      "8000",
			Namespace: "gatherly",
			Database:  "potluck",
		},
		Cache: CacheConfig{
			Path: "./potluck.db",
		},
		Codes: CodeConfig{
			Length:      6,
			MaxAttempts: 10,
		},
		Session: SessionConfig{
			UserID: "local-user",
			Name:   "Host",
		},
	}
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	if err := validBaseConfig().Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestConfig_Validate_InvalidEnv(t *testing.T) {
	cfg := validBaseConfig()
	cfg.App.Env = "invalid"

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for invalid APP_ENV")
	}
	if !strings.Contains(err.Error(), "APP_ENV") {
		t.Errorf("expected error to mention APP_ENV, got: %v", err)
	}
}

func TestConfig_Validate_InvalidLogLevel(t *testing.T) {
	cfg := validBaseConfig()
	cfg.App.LogLevel = "verbose"

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for invalid LOG_LEVEL")
	}
	if !strings.Contains(err.Error(), "LOG_LEVEL") {
		t.Errorf("expected error to mention LOG_LEVEL, got: %v", err)
	}
}

func TestConfig_Validate_MissingDatabaseHost(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Database.Host = ""

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for missing DB_HOST")
	}
	if !strings.Contains(err.Error(), "DB_HOST") {
		t.Errorf("expected error to mention DB_HOST, got: %v", err)
	}
}

func TestConfig_Validate_CodeLengthBounds(t *testing.T) {
	for _, length := range []int{3, 13} {
		cfg := validBaseConfig()
		cfg.Codes.Length = length
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for CODE_LENGTH %d", length)
		}
	}
	cfg := validBaseConfig()
	cfg.Codes.Length = 8
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected CODE_LENGTH 8 to be valid, got: %v", err)
	}
}

func TestConfig_Validate_CollectsAllErrors(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Database.Host = ""
	cfg.Cache.Path = ""
	cfg.Session.UserID = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"DB_HOST", "CACHE_PATH", "SESSION_USER_ID"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %s, got: %v", want, err)
		}
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	cfg := validBaseConfig()
	cfg.App.LogLevel = "debug"
	if got := cfg.SlogLevel().String(); got != "DEBUG" {
		t.Errorf("expected DEBUG, got %s", got)
	}
}
