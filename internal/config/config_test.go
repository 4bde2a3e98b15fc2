package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.VaultDirs) == 0 {
		t.Error("Default config should have a vault dir")
	}
	if len(cfg.Extensions) == 0 {
		t.Error("Default config should have an extension allow-list")
	}
	if cfg.FuzzyMinScore != DefaultFuzzyMinScore {
		t.Errorf("Expected fuzzy threshold %v, got %v", DefaultFuzzyMinScore, cfg.FuzzyMinScore)
	}
	if cfg.ContentMinScore != DefaultContentMinScore {
		t.Errorf("Expected content threshold %v, got %v", DefaultContentMinScore, cfg.ContentMinScore)
	}
	if cfg.MaxSuggestions != DefaultMaxSuggestions {
		t.Errorf("Expected max suggestions %d, got %d", DefaultMaxSuggestions, cfg.MaxSuggestions)
	}
	if cfg.EnableCache {
		t.Error("Caching should be off by default")
	}
}

func TestSaveToAndLoadFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.VaultDirs = []string{"/tmp/vault-a", "/tmp/vault-b"}
	cfg.MaxSuggestions = 7

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}
	if cfg.InitTime == 0 {
		t.Error("InitTime should be set on first save")
	}

	// Config files carry restrictive permissions
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("Expected mode 0600, got %v", info.Mode().Perm())
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if len(loaded.VaultDirs) != 2 || loaded.VaultDirs[0] != "/tmp/vault-a" {
		t.Errorf("Vault dirs lost in round trip: %v", loaded.VaultDirs)
	}
	if loaded.MaxSuggestions != 7 {
		t.Errorf("MaxSuggestions lost in round trip: %d", loaded.MaxSuggestions)
	}
	if loaded.InitTime != cfg.InitTime {
		t.Errorf("InitTime changed in round trip: %d vs %d", loaded.InitTime, cfg.InitTime)
	}
}

func TestLoadFromAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	partial := "vault_dirs:\n  - /tmp/vault\n"
	if err := os.WriteFile(path, []byte(partial), 0o600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.FuzzyMinScore != DefaultFuzzyMinScore {
		t.Errorf("Fuzzy threshold should default, got %v", cfg.FuzzyMinScore)
	}
	if cfg.ContentMinScore != DefaultContentMinScore {
		t.Errorf("Content threshold should default, got %v", cfg.ContentMinScore)
	}
	if cfg.MaxSuggestions != DefaultMaxSuggestions {
		t.Errorf("Max suggestions should default, got %d", cfg.MaxSuggestions)
	}
	if len(cfg.Extensions) == 0 {
		t.Error("Extensions should default")
	}
	if cfg.Version == "" {
		t.Error("Version should default")
	}
	if len(cfg.VaultDirs) != 1 || cfg.VaultDirs[0] != "/tmp/vault" {
		t.Errorf("Explicit vault dirs should survive, got %v", cfg.VaultDirs)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadFrom should fail on a missing file")
	}
}

func TestLoadFromMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("vault_dirs: [unclosed"), 0o600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom should fail on malformed YAML")
	}
}
