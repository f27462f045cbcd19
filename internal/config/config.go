// Package config holds the contactbook tool configuration: where the
// address book lives on disk and how chatty the CLI is.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all contactbook configuration.
type Config struct {
	// DataFile is the path of the persisted address book document.
	DataFile string `yaml:"data_file"`

	// Verbose enables debug logging by default; the --verbose flag also
	// enables it per invocation.
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the default configuration. The book lives under
// ~/.contactbook; if the home directory cannot be resolved, the current
// directory is used.
func DefaultConfig() *Config {
	dir := ".contactbook"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".contactbook")
	}
	return &Config{
		DataFile: filepath.Join(dir, "address_book.json"),
	}
}

// DefaultPath returns the default config file location, next to the book.
func DefaultPath() string {
	dir := ".contactbook"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".contactbook")
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults; a present but unparseable file is an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv("CONTACTBOOK_DATA_FILE"); path != "" {
		c.DataFile = path
	}
}
