package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user preferences loaded from the TOML config file.
type Config struct {
	// DefaultFormat is the render format used when --format is not given.
	DefaultFormat string `toml:"default_format"`

	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// CacheConfig configures the rendered artifact cache.
type CacheConfig struct {
	// Dir overrides the XDG cache directory for the file backend.
	Dir string `toml:"dir"`

	// TTLDays bounds how long artifacts stay cached. Zero keeps the
	// pipeline default.
	TTLDays int `toml:"ttl_days"`

	// RedisAddr switches the cache to the Redis backend when set
	// (host:port).
	RedisAddr string `toml:"redis_addr"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `toml:"addr"`

	// MongoURI switches the diagram store to MongoDB when set.
	MongoURI string `toml:"mongo_uri"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		DefaultFormat: "svg",
		Server:        ServerConfig{Addr: ":8080"},
	}
}

// configPath returns the config file path using XDG standard
// (~/.config/zxviz/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads a TOML config file, layering it over the defaults.
// A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefaultConfig loads the config from the default path, falling back
// to the defaults on any error so the CLI always starts.
func LoadDefaultConfig() Config {
	path, err := configPath()
	if err != nil {
		return DefaultConfig()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}
