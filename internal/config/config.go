package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"promptvault/internal/logging"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const APP_NAME = "promptvault" // application name used for config directory

// Default discovery tuning. The fuzzy and content cutoffs are empirically
// chosen; they live in the config so deployments can tune precision/recall.
const (
	DefaultFuzzyMinScore   = 0.3
	DefaultContentMinScore = 0.2
	DefaultMaxSuggestions  = 5
)

// defaultExtensions are the file types considered vault documents.
var defaultExtensions = []string{".md", ".markdown", ".txt"}

// Config holds user configuration for promptvault.
type Config struct {
	// VaultDirs are the allowed root directories searched for documents,
	// in priority order. Every read and listing is scoped to these roots.
	VaultDirs []string `yaml:"vault_dirs"`

	// Extensions is the file-type allow-list applied in every discovery stage.
	Extensions []string `yaml:"extensions"`

	// FuzzyMinScore is the minimum similarity for the fuzzy-name stage.
	FuzzyMinScore float64 `yaml:"fuzzy_min_score"`

	// ContentMinScore is the minimum score for the content stage and for
	// ranked name suggestions.
	ContentMinScore float64 `yaml:"content_min_score"`

	// MaxSuggestions caps the ranked "did you mean" list.
	MaxSuggestions int `yaml:"max_suggestions"`

	// EnableCache is declared for forward compatibility. The resolution
	// pipeline reads every document fresh from storage and does not
	// exercise this flag.
	EnableCache bool `yaml:"enable_cache"`

	Version  string `yaml:"version"`
	InitTime int64  `yaml:"init_time"` // Unix timestamp of first setup
}

// ConfigPath returns the standard config file path for the current platform
func ConfigPath() (string, error) {
	configDir := filepath.Join(xdg.ConfigHome, APP_NAME)
	configPath := filepath.Join(configDir, "config.yaml")

	logging.Debug("Determined config path", "path", configPath)
	return configPath, nil
}

// Load loads the config from the standard location.
// If no config exists, it returns an error indicating first run is needed.
func Load() (*Config, error) {
	configPath, exists := FindConfigFile()
	logging.Debug("Loading config from", "path", configPath)
	if !exists {
		return nil, fmt.Errorf("no configuration found, first-time setup required")
	}

	return LoadFrom(configPath)
}

// LoadFrom loads config from a specific path and fills any unset field
// with its default.
func LoadFrom(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// FindConfigFile returns the path to an existing config file, and whether it exists.
func FindConfigFile() (string, bool) {
	primary, err := ConfigPath()
	if err != nil {
		logging.Error("Failed to get config path", "error", err)
		return "", false
	}

	if _, err := os.Stat(primary); err == nil {
		logging.Debug("Config found at primary path", "path", primary)
		return primary, true
	}

	// Return primary path for new config
	return primary, false
}

// IsFirstRun checks if this is the first time the application is run
func IsFirstRun() bool {
	_, exists := FindConfigFile()
	return !exists
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home, _ = os.Getwd()
	}

	return Config{
		VaultDirs:       []string{filepath.Join(home, "vault")},
		Extensions:      append([]string(nil), defaultExtensions...),
		FuzzyMinScore:   DefaultFuzzyMinScore,
		ContentMinScore: DefaultContentMinScore,
		MaxSuggestions:  DefaultMaxSuggestions,
		EnableCache:     false,
		Version:         "1.0",
		InitTime:        0, // Will be set during first save
	}
}

// applyDefaults fills zero-valued fields so a partial config file still
// yields a usable configuration.
func (c *Config) applyDefaults() {
	if len(c.Extensions) == 0 {
		c.Extensions = append([]string(nil), defaultExtensions...)
	}
	if c.FuzzyMinScore <= 0 {
		c.FuzzyMinScore = DefaultFuzzyMinScore
	}
	if c.ContentMinScore <= 0 {
		c.ContentMinScore = DefaultContentMinScore
	}
	if c.MaxSuggestions <= 0 {
		c.MaxSuggestions = DefaultMaxSuggestions
	}
	if c.Version == "" {
		c.Version = "1.0"
	}
}

// Save writes the config to the standard location
func (c *Config) Save() error {
	configPath, _ := FindConfigFile()
	return c.SaveTo(configPath)
}

// SaveTo writes the config to a specific path
func (c *Config) SaveTo(path string) error {
	// Set init time if this is the first save
	if c.InitTime == 0 {
		c.InitTime = time.Now().Unix()
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create file with restrictive permissions (600) for security
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// SetVaultDirs updates the vault roots and saves the config.
func (c *Config) SetVaultDirs(dirs []string) error {
	c.VaultDirs = dirs
	return c.Save()
}
