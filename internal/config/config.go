package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/alexanderramin/reqtrack/internal/db"
)

// Prefix is prepended to every environment variable name.
const Prefix = "REQTRACK"

// Config holds application configuration loaded from environment variables.
type Config struct {
	DBDriver    string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBPath      string `envconfig:"DB_PATH"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"text"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	LogUseCases bool   `envconfig:"LOG_USE_CASES" default:"false"`
}

// Load reads REQTRACK_* environment variables into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".reqtrack", "reqtrack.db")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the enumerated settings and the driver-specific DSN.
func (c *Config) Validate() error {
	dialect, err := db.ParseDialect(c.DBDriver)
	if err != nil {
		return err
	}
	if dialect == db.DialectPostgres && c.DatabaseURL == "" {
		return fmt.Errorf("%s_DATABASE_URL is required when %s_DB_DRIVER is postgres", Prefix, Prefix)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (want text or json)", c.LogFormat)
	}
	return nil
}

// Dialect returns the parsed database driver.
func (c *Config) Dialect() db.Dialect {
	d, _ := db.ParseDialect(c.DBDriver)
	return d
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.Dialect() == db.DialectPostgres {
		return c.DatabaseURL
	}
	return c.DBPath
}

// Level parses LogLevel (debug, info, warn, error).
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// NewLogger builds the process logger writing to w.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	lvl, err := c.Level()
	if err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
