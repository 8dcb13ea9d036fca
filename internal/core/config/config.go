package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config represents the top-level application config.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Auth      AuthConfig      `koanf:"auth"`
	Retention RetentionConfig `koanf:"retention"`
}

type ServerConfig struct {
	Port           int      `koanf:"port"`
	Host           string   `koanf:"host"`
	Mode           string   `koanf:"mode"` // debug | release
	AllowedOrigins []string `koanf:"allowed_origins"`
}

type DatabaseConfig struct {
	Type         string `koanf:"type"`
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

// AuthConfig carries the identity-gateway settings. The signing key is
// injected here and passed to the verifier explicitly — no ambient
// environment lookup and no fallback secret.
type AuthConfig struct {
	// JWTSecret is the HS256 key used to verify bearer tokens.
	JWTSecret string `koanf:"jwt_secret"`
	// Disabled skips token verification and trusts the X-User-ID header.
	// Local development only.
	Disabled bool `koanf:"disabled"`
}

type RetentionConfig struct {
	Enabled       bool   `koanf:"enabled"`
	SweepInterval string `koanf:"sweep_interval"` // parsed and validated on startup
	MinAge        string `koanf:"min_age"`        // soft-deleted rows younger than this survive sweeps
}

func (c RetentionConfig) SweepIntervalDuration() (time.Duration, error) {
	return time.ParseDuration(c.SweepInterval)
}

func (c RetentionConfig) MinAgeDuration() (time.Duration, error) {
	return time.ParseDuration(c.MinAge)
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be > 0")
	}
	if c.Database.MaxIdleConns <= 0 {
		return fmt.Errorf("database.max_idle_conns must be > 0")
	}
	if c.Database.Type != "" && c.Database.Type != "postgres" {
		return fmt.Errorf("unsupported database.type %q", c.Database.Type)
	}

	if !c.Auth.Disabled && strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("auth.jwt_secret is required when auth is enabled")
	}

	if c.Retention.Enabled {
		interval, err := c.Retention.SweepIntervalDuration()
		if err != nil {
			return fmt.Errorf("invalid retention.sweep_interval %q: %w", c.Retention.SweepInterval, err)
		}
		if interval <= 0 {
			return fmt.Errorf("retention.sweep_interval must be > 0")
		}
		minAge, err := c.Retention.MinAgeDuration()
		if err != nil {
			return fmt.Errorf("invalid retention.min_age %q: %w", c.Retention.MinAge, err)
		}
		if minAge < 0 {
			return fmt.Errorf("retention.min_age must be >= 0")
		}
	}

	return nil
}

// Load parses config from defaults + optional file + env, then validates it.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":              8080,
		"server.host":              "0.0.0.0",
		"server.mode":              "release",
		"server.allowed_origins":   []string{"*"},
		"database.type":            "postgres",
		"database.dsn":             "",
		"database.max_open_conns":  25,
		"database.max_idle_conns":  25,
		"database.auto_migrate":    true,
		"auth.jwt_secret":          "",
		"auth.disabled":            false,
		"retention.enabled":        false,
		"retention.sweep_interval": "1h",
		"retention.min_age":        "720h", // 30 days
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("SPENDLENS_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "SPENDLENS_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
