// Package config holds the pbfile CLI configuration: a registry of
// named file kinds and their magic numbers, plus the default
// durability choice for writes.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MagicLength must match the container format's magic size.
const MagicLength = 8

// Config represents the pbfile CLI configuration
type Config struct {
	// Magics maps a kind name (e.g. "manifest") to its 8-byte magic.
	Magics map[string]string `yaml:"magics"`

	// Sync controls whether writes are durably synced by default.
	Sync bool `yaml:"sync"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Magics: map[string]string{},
		Sync:   true,
	}
}

// Magic resolves a kind name to its magic number.
func (c *Config) Magic(kind string) (string, error) {
	magic, ok := c.Magics[kind]
	if !ok {
		return "", fmt.Errorf("unknown file kind %q", kind)
	}
	return magic, nil
}

// LoadConfig loads configuration from the specified path
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", configPath, err)
	}

	return &config, nil
}

// SaveConfig saves the configuration to the specified path
func SaveConfig(config *Config, configPath string) error {
	if err := config.validate(); err != nil {
		return err
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Config) validate() error {
	for kind, magic := range c.Magics {
		if len(magic) != MagicLength {
			return fmt.Errorf("magic for kind %q must be exactly %d bytes, got %d", kind, MagicLength, len(magic))
		}
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./pbfile.yaml"
	}

	return filepath.Join(homeDir, ".config", "pbfile", "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
