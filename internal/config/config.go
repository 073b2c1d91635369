package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"sowbuilder/internal/logging"
	"sowbuilder/internal/sow"
)

// Config holds all sowbuilder configuration.
type Config struct {
	// Default service provider identity pre-filled into new records
	Provider ProviderConfig `yaml:"provider"`

	// Record defaults
	Defaults DefaultsConfig `yaml:"defaults"`

	// Export destination and formats
	Export ExportConfig `yaml:"export"`

	// Terminal UI
	UI UIConfig `yaml:"ui"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// ProviderConfig is the default service provider identity.
type ProviderConfig struct {
	CompanyName string `yaml:"company_name"`
	ContactName string `yaml:"contact_name"`
	Email       string `yaml:"email"`
	Address     string `yaml:"address"`
	Website     string `yaml:"website"`
	Title       string `yaml:"title"`
}

// DefaultsConfig seeds the terms of a new record.
type DefaultsConfig struct {
	Revisions     int    `yaml:"revisions"`
	LateFeePolicy string `yaml:"late_fee_policy"` // offered when a late fee is enabled
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	std := sow.StandardDefaults()
	return &Config{
		Provider: ProviderConfig{
			CompanyName: std.Provider.CompanyName,
			ContactName: std.Provider.ContactName,
			Email:       std.Provider.Email,
			Address:     std.Provider.Address,
			Website:     std.Provider.Website,
			Title:       std.Provider.Title,
		},
		Defaults: DefaultsConfig{
			Revisions:     std.Revisions,
			LateFeePolicy: sow.DefaultLateFeePolicy,
		},
		Export: DefaultExportConfig(),
		UI:     DefaultUIConfig(),
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath is the config file location inside a workspace.
func DefaultPath(workspace string) string {
	return filepath.Join(workspace, ".sow", "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
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

	logging.ConfigInfo("Saved config to %s", path)
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("SOW_OUTPUT_DIR"); dir != "" {
		c.Export.OutputDir = dir
	}
	if theme := os.Getenv("SOW_THEME"); theme != "" {
		c.UI.Theme = strings.ToLower(theme)
	}
	if level := os.Getenv("SOW_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}

	// Provider identity
	if v := os.Getenv("SOW_PROVIDER_COMPANY"); v != "" {
		c.Provider.CompanyName = v
	}
	if v := os.Getenv("SOW_PROVIDER_CONTACT"); v != "" {
		c.Provider.ContactName = v
	}
	if v := os.Getenv("SOW_PROVIDER_EMAIL"); v != "" {
		c.Provider.Email = v
	}
}

// ValidThemes lists the supported UI themes.
var ValidThemes = []string{"light", "dark"}

// ValidLevels lists the supported log levels.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !slices.Contains(ValidThemes, c.UI.Theme) {
		return fmt.Errorf("invalid ui theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}
	if c.Logging.Level != "" && !slices.Contains(ValidLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLevels)
	}
	if err := c.Export.validate(); err != nil {
		return err
	}
	if c.Defaults.Revisions < 0 {
		return fmt.Errorf("defaults.revisions must not be negative, got %d", c.Defaults.Revisions)
	}
	return nil
}

// RecordDefaults is the value injected into every new record.
func (c *Config) RecordDefaults() sow.Defaults {
	return sow.Defaults{
		Provider: sow.ServiceProvider{
			CompanyName: c.Provider.CompanyName,
			ContactName: c.Provider.ContactName,
			Email:       c.Provider.Email,
			Address:     c.Provider.Address,
			Website:     c.Provider.Website,
			Title:       c.Provider.Title,
		},
		Revisions: c.Defaults.Revisions,
	}
}

// FindWorkspaceRoot walks up from start looking for a .sow directory and
// falls back to start.
func FindWorkspaceRoot(start string) string {
	dir := start
	for {
		if info, err := os.Stat(filepath.Join(dir, ".sow")); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}
