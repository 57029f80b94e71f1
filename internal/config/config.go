// Package config loads tutor configuration from an optional YAML file,
// layering defaults, file values, and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/anamikapati/AI-Tutor/internal/embed"
)

// Config is the full application configuration.
type Config struct {
	// DataDir holds the index and any other generated artifacts.
	DataDir string `yaml:"data_dir"`

	// DBPath is the SQLite file for student progress. Empty means the
	// platform default location.
	DBPath string `yaml:"db_path"`

	Embedding embed.Config `yaml:"embedding"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DataDir:   defaultDataDir(),
		Embedding: embed.DefaultConfig(),
	}
}

// Load reads the config file at path, or the defaults when path is empty
// or the default file does not exist. Environment variables override
// file values for credentials.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = defaultConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// No config file is fine, run on defaults.
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.Embedding.FillFromEnv()
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	return cfg, nil
}

// IndexDir is where the vector index and chunk corpus live.
func (c Config) IndexDir() string {
	return filepath.Join(c.DataDir, "index")
}

func defaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "ai-tutor", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "ai-tutor", "config.yaml")
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "ai-tutor")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(home, ".local", "share", "ai-tutor")
}
