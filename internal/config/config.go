// Package config loads identificator configuration from YAML files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = ".identificator.yaml"

// JournalConfig controls the rename journal.
type JournalConfig struct {
	// Enabled turns journal recording on. Disabling it never affects the
	// rename itself.
	Enabled bool `yaml:"enabled"`

	// DBPath is the journal database location. Relative paths resolve
	// against the destination directory.
	DBPath string `yaml:"db_path"`
}

// Config represents identificator configuration options.
type Config struct {
	// Destination is the default destination directory when -d is not given.
	Destination string `yaml:"destination"`

	// IdentifierOrder controls how identifiers are listed: "sorted"
	// (lexicographic) or "scan" (directory discovery order).
	IdentifierOrder string `yaml:"identifier_order"`

	// ContinueOnError keeps attempting remaining moves after a failure,
	// reporting each one, instead of aborting on the first.
	ContinueOnError bool `yaml:"continue_on_error"`

	// Color controls console color: "auto", "always" or "never".
	Color string `yaml:"color"`

	// Journal contains rename journal configuration.
	Journal JournalConfig `yaml:"journal"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Destination:     "",
		IdentifierOrder: "sorted",
		ContinueOnError: true,
		Color:           "auto",
		Journal: JournalConfig{
			Enabled: true,
			DBPath:  ".identificator/journal.db",
		},
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks configuration values for consistency.
func (c *Config) Validate() error {
	switch c.IdentifierOrder {
	case "", "sorted", "scan":
	default:
		return fmt.Errorf("identifier_order must be \"sorted\" or \"scan\", got %q", c.IdentifierOrder)
	}

	switch c.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("color must be \"auto\", \"always\" or \"never\", got %q", c.Color)
	}

	if c.Journal.Enabled && c.Journal.DBPath == "" {
		return fmt.Errorf("journal.db_path must not be empty when the journal is enabled")
	}

	return nil
}
