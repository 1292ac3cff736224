// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and manages the velianchat configuration.
//
// Configuration lives at ~/.velianchat/config.toml with built-in defaults
// and environment variable overrides. A missing or partially filled file
// is completed from defaults rather than rejected.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete velianchat configuration.
type Config struct {
	Version string `toml:"version"`

	Backend BackendConfig `toml:"backend"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
}

// BackendConfig points at the completion endpoint.
type BackendConfig struct {
	// URL is the base URL of the completion service. Empty disables sends.
	URL string `toml:"url"`
	// APIKey is sent as a bearer token when set.
	APIKey string `toml:"api_key"`
	// TimeoutSecs bounds one completion request. Zero uses the default.
	TimeoutSecs int `toml:"timeout_secs"`
}

// StorageConfig selects the key-value store driver.
type StorageConfig struct {
	// Driver is "file" or "sqlite".
	Driver string `toml:"driver"`
	// DataDir holds the store files (default ~/.velianchat/data).
	DataDir string `toml:"data_dir"`
}

// UIConfig contains presentation preferences.
type UIConfig struct {
	// Theme is "dark", "light", or "auto".
	Theme string `toml:"theme"`
	// ShowTokens displays token counts next to assistant messages.
	ShowTokens bool `toml:"show_tokens"`
}

// LogConfig controls the application log file.
type LogConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string `toml:"level"`
	// File is the log path (default ~/.velianchat/velianchat.log).
	File string `toml:"file"`
}

// =============================================================================
// DEFAULTS AND PATHS
// =============================================================================

// Default returns a Config with the built-in values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",
		Backend: BackendConfig{
			URL:         "",
			APIKey:      "",
			TimeoutSecs: 60,
		},
		Storage: StorageConfig{
			Driver: "file",
		},
		UI: UIConfig{
			Theme:      "dark",
			ShowTokens: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Dir returns the velianchat configuration directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".velianchat"), nil
}

// Path returns the path to the TOML config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureDir ensures the config directory exists.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the config file, fills missing values from defaults, applies
// environment overrides, and validates. A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific TOML file.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	cfg.fillDefaults()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults completes zero values from the built-in defaults.
func (c *Config) fillDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Backend.TimeoutSecs == 0 {
		c.Backend.TimeoutSecs = defaults.Backend.TimeoutSecs
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = defaults.Storage.Driver
	}
	if c.Storage.DataDir == "" {
		if dir, err := Dir(); err == nil {
			c.Storage.DataDir = filepath.Join(dir, "data")
		}
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.File == "" {
		if dir, err := Dir(); err == nil {
			c.Log.File = filepath.Join(dir, "velianchat.log")
		}
	}
}

// Save writes the configuration to the default TOML file with 0600
// permissions; the file carries the API key.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the configuration to a specific TOML file.
func SaveTo(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# velianchat configuration file")
	fmt.Fprintln(file, "# Generated by velianchat - edit with care")
	fmt.Fprintln(file, "")

	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION AND OVERRIDES
// =============================================================================

// Validate checks field values, returning the first problem found.
func (c *Config) Validate() error {
	if c.Backend.URL != "" {
		if _, err := url.Parse(c.Backend.URL); err != nil {
			return fmt.Errorf("backend.url: %w", err)
		}
	}
	if c.Backend.TimeoutSecs < 0 {
		return fmt.Errorf("backend.timeout_secs: must be non-negative, got %d", c.Backend.TimeoutSecs)
	}

	switch c.Storage.Driver {
	case "file", "sqlite":
	default:
		return fmt.Errorf("storage.driver: must be file or sqlite, got %q", c.Storage.Driver)
	}

	switch strings.ToLower(c.UI.Theme) {
	case "dark", "light", "auto":
	default:
		return fmt.Errorf("ui.theme: must be dark, light, or auto, got %q", c.UI.Theme)
	}

	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	return nil
}

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported variables:
//   - VELIANCHAT_BACKEND_URL: overrides backend.url
//   - VELIANCHAT_API_KEY: overrides backend.api_key
//   - VELIANCHAT_TIMEOUT_SECS: overrides backend.timeout_secs
//   - VELIANCHAT_DATA_DIR: overrides storage.data_dir
//   - VELIANCHAT_LOG_LEVEL: overrides log.level
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("VELIANCHAT_BACKEND_URL"); v != "" {
		c.Backend.URL = v
	}
	if v := os.Getenv("VELIANCHAT_API_KEY"); v != "" {
		c.Backend.APIKey = v
	}
	if v := os.Getenv("VELIANCHAT_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			c.Backend.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("VELIANCHAT_DATA_DIR"); v != "" {
		c.Storage.DataDir = v
	}
	if v := os.Getenv("VELIANCHAT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}
