package config

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidPageSize = errors.New("page size must be 10, 25 or 50")

// Config holds runtime settings for the admin console.
type Config struct {
	APIBaseURL      string
	StorePath       string
	ExportDir       string
	LogLevel        string
	LogBackend      string
	NotificationTTL time.Duration
	DefaultPageSize int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080/api"
	c.StorePath = "hustleadmin.db"
	c.ExportDir = "exports"
	c.LogLevel = "info"
	c.LogBackend = "slog"
	c.NotificationTTL = 4 * time.Second
	c.DefaultPageSize = 10
}

// Validate reports settings the console cannot start with.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("api base url is empty")
	}
	switch c.DefaultPageSize {
	case 10, 25, 50:
	default:
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, c.DefaultPageSize)
	}
	if c.NotificationTTL <= 0 {
		return errors.New("notification ttl must be positive")
	}
	return nil
}

// LoadConfig builds a Config from defaults, the JSON file, the environment
// (dotenvPath may be empty) and args, in that order, and validates it.
func LoadConfig(args []string, dotenvPath string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, dotenvPath); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
