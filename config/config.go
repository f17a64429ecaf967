package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr     string         `yaml:"addr"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Docs     DocsConfig     `yaml:"documents"`
}

type DatabaseConfig struct {
	URL           string        `yaml:"url"`
	SlowThreshold time.Duration `yaml:"slow_threshold"`
	LogLevel      string        `yaml:"log_level"` // silent | error | warn | info
}

type AuthConfig struct {
	AdminSecret string        `yaml:"admin_secret"`
	UserSecret  string        `yaml:"user_secret"`
	TokenTTL    time.Duration `yaml:"token_ttl"`
}

type DocsConfig struct {
	// Days added to the issue date when an invoice has no due date.
	DefaultDueDays int `yaml:"default_due_days"`
	// Days added to the issue date when a quotation has no validity date.
	DefaultValidDays int `yaml:"default_valid_days"`
}

func Default() Config {
	return Config{
		Addr: ":8080",
		Database: DatabaseConfig{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      "warn",
		},
		Auth: AuthConfig{TokenTTL: 24 * time.Hour},
		Docs: DocsConfig{DefaultDueDays: 30, DefaultValidDays: 15},
	}
}

// Load reads an optional YAML file over the defaults, then applies the
// environment. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv(os.Getenv)
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	} else if v := getenv("DB_URL"); v != "" {
		c.Database.URL = v
	}
	if v := getenv("ADMIN_JWT_SECRET"); v != "" {
		c.Auth.AdminSecret = v
	}
	if v := getenv("USER_JWT_SECRET"); v != "" {
		c.Auth.UserSecret = v
	}
	if v := getenv("PORT"); v != "" {
		c.Addr = ":" + v
	}
}
