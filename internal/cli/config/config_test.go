package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	// Test loading with no config file (should use defaults)
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading defaults, got %v", err)
	}

	if cfg == nil {
		t.Fatal("expected config to be non-nil")
	}

	// Check defaults
	if cfg.Output.Format != "pretty" {
		t.Errorf("expected default format 'pretty', got %s", cfg.Output.Format)
	}

	if cfg.Output.Indent != "  " {
		t.Errorf("expected default two-space indent, got %q", cfg.Output.Indent)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("expected default log level 'info', got %s", cfg.Log.Level)
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	// Create temporary directory with config file
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	// Write config file
	configContent := `
output:
  format: compact
log:
  level: debug
`
	if err := os.WriteFile(filepath.Join(tmpDir, "grafite.yml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading config file, got %v", err)
	}

	if cfg.Output.Format != "compact" {
		t.Errorf("expected format 'compact', got %s", cfg.Output.Format)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Log.Level)
	}
}

func TestLoadRejectsBadFormat(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	configContent := `
output:
  format: sideways
`
	if err := os.WriteFile(filepath.Join(tmpDir, "grafite.yml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an unknown output format")
	}
}
