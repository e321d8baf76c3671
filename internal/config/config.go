// Package config reads pathfold defaults from ~/.pathfold/config.yaml.
// Command-line flags always win over values from the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrInvalidValue is returned when a config value is out of range.
	ErrInvalidValue = errors.New("invalid config value")
)

// Defaults applied when a key is not configured.
const (
	DefaultRetention = 5
	DefaultWorkers   = 8
	DefaultSort      = "name"
	DefaultLimit     = 50
)

// Config holds user defaults. Pointer fields distinguish unset from zero.
type Config struct {
	DBDir     string   `yaml:"db_dir,omitempty"`
	Retention *int     `yaml:"retention,omitempty"`
	Workers   *int     `yaml:"workers,omitempty"`
	Sort      string   `yaml:"sort,omitempty"`
	Limit     *int     `yaml:"limit,omitempty"`
	Verbose   bool     `yaml:"verbose,omitempty"`
	Exclude   []string `yaml:"exclude,omitempty"`

	path string
}

// DefaultPath returns ~/.pathfold/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", ErrNoConfigPath
	}
	return filepath.Join(home, ".pathfold", "config.yaml"), nil
}

// Load reads the config at path. An empty path means DefaultPath. A missing
// file is not an error and yields an empty Config.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return &Config{}, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{path: path}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Validate checks that all configured values are within acceptable bounds.
func (c *Config) Validate() error {
	if c.Retention != nil && *c.Retention < 0 {
		return fmt.Errorf("%w: retention must be >= 0, got %d", ErrInvalidValue, *c.Retention)
	}
	if c.Workers != nil && (*c.Workers < 1 || *c.Workers > 1024) {
		return fmt.Errorf("%w: workers must be between 1 and 1024, got %d", ErrInvalidValue, *c.Workers)
	}
	if c.Limit != nil && *c.Limit < 0 {
		return fmt.Errorf("%w: limit must be >= 0, got %d", ErrInvalidValue, *c.Limit)
	}
	switch c.Sort {
	case "", "name", "size", "disk", "mtime", "kind":
	default:
		return fmt.Errorf("%w: sort must be one of name|size|disk|mtime|kind, got %q", ErrInvalidValue, c.Sort)
	}
	return nil
}

// DatabaseDir returns the directory holding listings.db (defaults to
// ~/.pathfold/data, or ./data when no home directory is known).
func (c *Config) DatabaseDir() string {
	if c.DBDir != "" {
		return c.DBDir
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "./data"
	}
	return filepath.Join(home, ".pathfold", "data")
}

// RetentionCount returns how many listings per directory are kept.
func (c *Config) RetentionCount() int {
	if c.Retention == nil {
		return DefaultRetention
	}
	return *c.Retention
}

// WorkerCount returns the number of stat workers.
func (c *Config) WorkerCount() int {
	if c.Workers == nil {
		return DefaultWorkers
	}
	return *c.Workers
}

// SortOrder returns the default listing sort.
func (c *Config) SortOrder() string {
	if c.Sort == "" {
		return DefaultSort
	}
	return c.Sort
}

// ListLimit returns the default number of rows shown.
func (c *Config) ListLimit() int {
	if c.Limit == nil {
		return DefaultLimit
	}
	return *c.Limit
}
