// Package config handles global bookrec configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/bookrec/config.yml.
type Config struct {
	DatasetPath   string `yaml:"dataset_path,omitempty" json:"dataset_path,omitempty"`     // YAML library; empty uses the built-in sample
	RatingsPath   string `yaml:"ratings_path,omitempty" json:"ratings_path,omitempty"`     // JSONL ratings layered over the dataset
	DefaultReader string `yaml:"default_reader,omitempty" json:"default_reader,omitempty"` // Reader used when none is given
	VizLayout     string `yaml:"viz_layout,omitempty" json:"viz_layout,omitempty"`         // bipartite, force, circle, grid
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "bookrec"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// EnvFile is loaded from the working directory if present.
	EnvFile = ".env"
)

// Environment variables that override config file values.
const (
	EnvDataset = "BOOKREC_DATASET"
	EnvRatings = "BOOKREC_RATINGS"
	EnvReader  = "BOOKREC_READER"
)

// configCache caches the loaded config.
var configCache *Config

// ConfigPath returns the path to the config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/bookrec/config.yml.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load loads the config file, then applies environment overrides.
// Variables from a .env file in the working directory are loaded first but
// never replace variables already set in the environment.
// Returns an empty config (not an error) if the file doesn't exist.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	_ = godotenv.Load(EnvFile)

	cfg, err := readFile(ConfigPath())
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()

	cfg.DatasetPath = ExpandTilde(cfg.DatasetPath)
	cfg.RatingsPath = ExpandTilde(cfg.RatingsPath)

	configCache = cfg
	return cfg, nil
}

func readFile(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDataset); v != "" {
		c.DatasetPath = v
	}
	if v := os.Getenv(EnvRatings); v != "" {
		c.RatingsPath = v
	}
	if v := os.Getenv(EnvReader); v != "" {
		c.DefaultReader = v
	}
}

// ResetCache clears the cached config.
// Useful for testing.
func ResetCache() {
	configCache = nil
}

// ExpandTilde expands a leading ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}

// HelpfulConfigMessage describes where the config file lives and what it holds.
func HelpfulConfigMessage() string {
	configPath := ConfigPath()
	return fmt.Sprintf(`Configuration is read from %s:
  dataset_path: ~/books/library.yml
  ratings_path: ~/books/extra.jsonl
  default_reader: Cat
  viz_layout: bipartite

%s, %s and %s override these values.`,
		configPath, EnvDataset, EnvRatings, EnvReader)
}
