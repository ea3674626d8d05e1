// Package config persists user configuration for fittrack as a YAML file
// under the XDG config home.
//
// Only wiring lives here: the list of extra card sources layered on top of
// the embedded exercise library. Domain constants (hydration multipliers,
// the late-meal cutoff, safety tiers) are fixed at build time and are
// deliberately not configurable.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"fittrack/internal/library"
	"fittrack/internal/logging"
)

const AppName = "fittrack" // application name used for the config directory

// LibraryConfig holds the optional card sources merged on top of the
// embedded exercise library. An empty list means embedded cards only.
type LibraryConfig struct {
	Sources []library.SourceEntry `yaml:"sources,omitempty"`
}

// Config holds user configuration for fittrack.
type Config struct {
	Version  string        `yaml:"version"`
	InitTime time.Time     `yaml:"init_time"` // time of first setup
	Library  LibraryConfig `yaml:"library"`
}

// ConfigPath returns the standard config file path for the current platform.
// The FITTRACK_CONFIG_PATH environment variable overrides it, which tests
// use to redirect writes into temp directories.
func ConfigPath() string {
	if override := os.Getenv("FITTRACK_CONFIG_PATH"); override != "" {
		return override
	}

	configPath := filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
	logging.Debug("Determined config path", "path", configPath)
	return configPath
}

// FirstRun reports whether no config file has been written yet.
func FirstRun() bool {
	_, err := os.Stat(ConfigPath())
	return err != nil
}

// DefaultConfig returns a Config with sensible defaults: embedded exercise
// cards only, no extra sources.
func DefaultConfig() Config {
	return Config{Version: "1"}
}

// Load loads the config from the standard location. A missing file is not
// an error: the defaults apply, since the embedded reference data needs no
// configuration.
func Load() (*Config, error) {
	path := ConfigPath()
	if _, err := os.Stat(path); err != nil {
		logging.Debug("No config file found, using defaults", "path", path)
		cfg := DefaultConfig()
		return &cfg, nil
	}
	return LoadFrom(path)
}

// LoadFrom loads config from a specific path. Each configured card source
// is validated so a typo surfaces here rather than mid-sync. Unknown YAML
// keys are ignored.
func LoadFrom(path string) (*Config, error) {
	logging.Debug("Reading config file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file: %w", err)
	}

	cfg := new(Config)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config file is not valid YAML: %w", err)
	}

	for _, entry := range cfg.Library.Sources {
		if err := entry.Validate(); err != nil {
			return nil, fmt.Errorf("invalid card source %q: %w", entry.ID, err)
		}
	}

	return cfg, nil
}

// Save writes the config to the standard location.
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes the config to a specific path. The file is written with
// 0600 permissions; InitTime is stamped on the first save and truncated to
// seconds so it round-trips through YAML exactly.
func (c *Config) SaveTo(path string) error {
	if c.InitTime.IsZero() {
		c.InitTime = time.Now().UTC().Truncate(time.Second)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("cannot encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}

	return nil
}

// InitConfig writes a fresh default configuration. Called on first run;
// the MCP serve path does this silently, interactive commands print a
// notice.
func InitConfig() (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.Save(); err != nil {
		return nil, fmt.Errorf("cannot save initial config: %w", err)
	}

	logging.Info("Configuration created", "path", ConfigPath())
	return &cfg, nil
}

// CardSources builds the runtime sources for every configured entry, in
// config order. The catalog loader layers them on top of the embedded cards.
func (c *Config) CardSources() ([]library.Source, error) {
	sources := make([]library.Source, 0, len(c.Library.Sources))
	for _, entry := range c.Library.Sources {
		src, err := entry.Source()
		if err != nil {
			return nil, fmt.Errorf("card source %q: %w", entry.ID, err)
		}
		sources = append(sources, src)
	}
	return sources, nil
}
