// ABOUTME: Application configuration from a YAML file, .env and environment variables
// ABOUTME: Resolves XDG default locations for the config file and data stores
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

const appName = "activator"

type Config struct {
	Backend  string    `yaml:"backend" env:"ACTIVATOR_BACKEND"`
	DBPath   string    `yaml:"db_path,omitempty" env:"ACTIVATOR_DB_PATH"`
	HTTPAddr string    `yaml:"http_addr" env:"ACTIVATOR_HTTP_ADDR"`
	Seed     bool      `yaml:"seed,omitempty" env:"ACTIVATOR_SEED"`
	Log      LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"ACTIVATOR_LOG_LEVEL"`
	Format string `yaml:"format" env:"ACTIVATOR_LOG_FORMAT"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Backend:  BackendSQLite,
		HTTPAddr: "127.0.0.1:8080",
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultPath returns the XDG location of the config file.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// DataDir returns the XDG directory that holds on-disk stores.
func DataDir() string {
	return filepath.Join(xdg.DataHome, appName)
}

// Load builds a Config from defaults, then the YAML file at path, then .env
// and the process environment. An empty path means DefaultPath, which may be absent.
// The result is not validated; callers apply their own overrides and then call Validate.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendSQLite, BackendBadger:
	default:
		return fmt.Errorf("unknown backend %q: must be %s, %s or %s", c.Backend, BackendMemory, BackendSQLite, BackendBadger)
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("http_addr must not be empty")
	}
	return nil
}

// StoragePath is where the configured backend keeps its data. It is empty for memory.
func (c Config) StoragePath() string {
	if c.DBPath != "" || c.Backend == BackendMemory {
		return c.DBPath
	}
	if c.Backend == BackendBadger {
		return filepath.Join(DataDir(), "badger")
	}
	return filepath.Join(DataDir(), appName+".db")
}

// Save writes c as YAML to path, creating parent directories.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
