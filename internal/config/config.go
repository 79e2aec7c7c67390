// Package config loads the Flick daemon configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/TheJusticeMan/flick/internal/gesture"
)

const (
	defaultListenAddr      = ":8080"
	defaultPluginTimeoutMs = 5000
)

// Config holds runtime configuration values for the daemon.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	DataDir    string `yaml:"data_dir"`
	DBPath     string `yaml:"db_path"`
	PluginDir  string `yaml:"plugin_dir"`
	StaticDir  string `yaml:"static_dir"`
	Tray       bool   `yaml:"tray"`

	// Recognition tuning. Zero values fall back to the engine
	// defaults.
	ResamplePoints  int     `yaml:"resample_points"`
	MinLength       float64 `yaml:"min_length"`
	Threshold       float64 `yaml:"threshold"`
	DampenExponent  float64 `yaml:"dampen_exponent"`
	PluginTimeoutMs int     `yaml:"plugin_timeout_ms"`
}

// Default returns the configuration used when no config file exists.
// Data lives under ~/.flick.
func Default() Config {
	dataDir := defaultDataDir()
	return Config{
		ListenAddr:      defaultListenAddr,
		DataDir:         dataDir,
		DBPath:          filepath.Join(dataDir, "flick.db"),
		PluginDir:       filepath.Join(dataDir, "plugins"),
		StaticDir:       "",
		Tray:            true,
		ResamplePoints:  gesture.DefaultResamplePoints,
		MinLength:       gesture.DefaultMinLength,
		Threshold:       gesture.DefaultThreshold,
		DampenExponent:  gesture.DefaultDampenExponent,
		PluginTimeoutMs: defaultPluginTimeoutMs,
	}
}

// Load reads configuration from the given YAML file, filling missing
// fields from the defaults. A missing file is not an error; the
// defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Paths left empty in the file follow the data directory
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "flick.db")
	}
	if cfg.PluginDir == "" {
		cfg.PluginDir = filepath.Join(cfg.DataDir, "plugins")
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// PluginTimeout returns the plugin execution timeout as a duration.
func (c Config) PluginTimeout() time.Duration {
	return time.Duration(c.PluginTimeoutMs) * time.Millisecond
}

// validate rejects values the engine cannot work with.
func (c Config) validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr must not be empty")
	}
	if c.ResamplePoints < 2 {
		return fmt.Errorf("resample_points must be at least 2, got %d", c.ResamplePoints)
	}
	if c.MinLength < 0 {
		return fmt.Errorf("min_length must be >= 0, got %v", c.MinLength)
	}
	if c.Threshold <= 0 {
		return fmt.Errorf("threshold must be > 0, got %v", c.Threshold)
	}
	if c.DampenExponent <= 0 || c.DampenExponent > 1 {
		return fmt.Errorf("dampen_exponent must be in (0, 1], got %v", c.DampenExponent)
	}
	if c.PluginTimeoutMs <= 0 {
		return fmt.Errorf("plugin_timeout_ms must be > 0, got %d", c.PluginTimeoutMs)
	}
	return nil
}

// defaultDataDir resolves ~/.flick, falling back to the working
// directory when the home directory is unknown.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".flick"
	}
	return filepath.Join(home, ".flick")
}
