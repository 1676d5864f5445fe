// Package config loads the taskporter configuration.
//
// Precedence, lowest to highest: built-in defaults, the YAML config
// file, environment variables. Everything is optional; a bare
// `taskporter serve` works out of the box.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Backend selects the storage implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

var validBackends = map[Backend]bool{
	BackendFile:   true,
	BackendSQLite: true,
}

// ValidateBackend checks the backend name.
func ValidateBackend(b Backend) error {
	if !validBackends[b] {
		return fmt.Errorf("invalid backend: %s (must be file or sqlite)", b)
	}
	return nil
}

const (
	// ConfigFile is the default config file name, looked up in the
	// working directory when no -config flag is given.
	ConfigFile = "taskporter.yaml"

	// DefaultDir is the default storage root.
	DefaultDir = ".taskporter"

	EnvRoot     = "TASKPORTER_ROOT"
	EnvBackend  = "TASKPORTER_BACKEND"
	EnvLogLevel = "TASKPORTER_LOG_LEVEL"
)

// Config holds the resolved runtime settings.
type Config struct {
	StorageRoot string  `yaml:"storage_root"`
	Backend     Backend `yaml:"backend"`
	LogLevel    string  `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		StorageRoot: DefaultDir,
		Backend:     BackendFile,
		LogLevel:    "info",
	}
}

// Load resolves the configuration. An empty path means "use
// ./taskporter.yaml if present"; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = ConfigFile
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file is fine.
	default:
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}

	if v := os.Getenv(EnvRoot); v != "" {
		cfg.StorageRoot = v
	}
	if v := os.Getenv(EnvBackend); v != "" {
		cfg.Backend = Backend(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	if err := ValidateBackend(cfg.Backend); err != nil {
		return Config{}, err
	}

	abs, err := filepath.Abs(cfg.StorageRoot)
	if err != nil {
		return Config{}, fmt.Errorf("resolving storage root: %w", err)
	}
	cfg.StorageRoot = abs
	return cfg, nil
}
