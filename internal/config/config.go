// Package config loads Flaméo's configuration from ~/.flameo/config.yaml.
//
// A missing file yields the defaults. Values present in the file replace
// the defaults field by field, then FLAMEO_* environment variables
// replace both.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment overrides.
const (
	EnvDataDir     = "FLAMEO_DATA_DIR"
	EnvLogLevel    = "FLAMEO_LOG_LEVEL"
	EnvMaxSessions = "FLAMEO_MAX_SESSIONS"
)

// Config holds the runtime configuration.
type Config struct {
	// DataDir holds sessions.db when sessions are persisted.
	DataDir string `yaml:"data_dir" validate:"required"`

	LogLevel  string `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" validate:"oneof=text json"`

	// PersistSessions writes every session through to SQLite.
	PersistSessions bool `yaml:"persist_sessions"`

	// MaxSessions caps the sessions held in memory (0 = unlimited).
	MaxSessions int `yaml:"max_sessions" validate:"gte=0"`
}

var validate = validator.New()

// DefaultDir returns ~/.flameo.
func DefaultDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".flameo")
}

// DefaultPath returns ~/.flameo/config.yaml.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		DataDir:         DefaultDir(),
		LogLevel:        "info",
		LogFormat:       "text",
		PersistSessions: true,
		MaxSessions:     100,
	}
}

// Load reads the configuration at path. A missing file is not an error;
// a malformed or invalid one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.DataDir = expandHome(cfg.DataDir)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvDataDir); ok && v != "" {
		c.DataDir = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvMaxSessions); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMaxSessions, v, err)
		}
		c.MaxSessions = n
	}
	return nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
