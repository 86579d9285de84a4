package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with TOML tags for the config file.
type FileConfig struct {
	Region     string `toml:"region"`
	Profile    string `toml:"profile"`
	Endpoint   string `toml:"endpoint"`
	JSON       *bool  `toml:"json"`
	Limit      int    `toml:"limit"`
	BufferSize int    `toml:"buffer_size"`
	Verbose    *bool  `toml:"verbose"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.cflog/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".cflog", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("region", fc.Region, &cfg.Region)
	s.setString("profile", fc.Profile, &cfg.Profile)
	s.setString("endpoint", fc.Endpoint, &cfg.Endpoint)

	s.setInt("limit", fc.Limit, &cfg.Limit)
	s.setInt("buffer-size", fc.BufferSize, &cfg.BufferSize)

	s.setBool("json", fc.JSON, &cfg.JSON)
	s.setBool("verbose", fc.Verbose, &cfg.Verbose)

	return nil
}
