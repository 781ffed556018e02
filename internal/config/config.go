// Package config handles the configuration directory, the config file and
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// AppName is the application directory name.
	AppName = "taskboard"

	// ConfigFile is the optional configuration filename.
	ConfigFile = "config.yaml"

	// SessionFile is the persisted session filename.
	SessionFile = "session.yaml"

	// EnvPrefix prefixes environment overrides (TASKBOARD_API_BASE_URL, ...).
	EnvPrefix = "TASKBOARD"

	// DefaultAPIBaseURL is used when no base URL is configured.
	DefaultAPIBaseURL = "https://taskmanager-1-4p9a.onrender.com"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// APIBaseURL is the root of the task REST API, without trailing slash.
	APIBaseURL string

	// APIToken, when set, is sent as a bearer token on every request.
	APIToken string

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Logger receives debug logs. Never nil after New.
	Logger *slog.Logger
}

// New creates a Config for configDir, reading config.yaml from it when
// present and applying TASKBOARD_* environment overrides.
// If configDir is empty, uses XDG_CONFIG_HOME/taskboard or $HOME/.config/taskboard.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetDefault("api_base_url", DefaultAPIBaseURL)
	v.SetDefault("api_token", "")
	v.SetDefault("timeout", "0s")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	cfg := &Config{Dir: dir, Logger: slog.New(slog.DiscardHandler)}

	path := cfg.ConfigPath()
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	timeout, err := parseTimeout(v.GetString("timeout"))
	if err != nil {
		return nil, err
	}

	cfg.APIBaseURL = NormalizeBaseURL(v.GetString("api_base_url"))
	cfg.APIToken = strings.TrimSpace(v.GetString("api_token"))
	cfg.Timeout = timeout
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// NormalizeBaseURL trims whitespace and trailing slashes. An empty value
// falls back to DefaultAPIBaseURL.
func NormalizeBaseURL(raw string) string {
	u := strings.TrimRight(strings.TrimSpace(raw), "/")
	if u == "" {
		return DefaultAPIBaseURL
	}
	return u
}

// SessionPath returns the path to the persisted session file.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Dir, SessionFile)
}

// ConfigPath returns the path to the optional config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

func parseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid timeout: %s", raw)
	}
	return d, nil
}
