package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test.yaml")

	configContent := `
salesforce:
  binary: sfdx
  target_org: audit-sandbox

limits:
  string:
    attribute: length
    threshold: 100
  int:
    attribute: precision
    threshold: 18

audit:
  object_suffix: __c
  workers: 8
  call_timeout_seconds: 30

output:
  csv_file: report.csv

logging:
  level: debug
  format: json
  output: stdout
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify salesforce config
	if cfg.Salesforce.Binary != "sfdx" {
		t.Errorf("expected binary 'sfdx', got %s", cfg.Salesforce.Binary)
	}
	if cfg.Salesforce.TargetOrg != "audit-sandbox" {
		t.Errorf("expected target_org 'audit-sandbox', got %s", cfg.Salesforce.TargetOrg)
	}

	// Verify limit overrides merge over defaults
	str, exists := cfg.Limits["string"]
	if !exists {
		t.Fatal("expected 'string' limit to exist")
	}
	if str.Threshold != 100 {
		t.Errorf("expected string threshold 100, got %d", str.Threshold)
	}
	if _, exists := cfg.Limits["int"]; !exists {
		t.Error("expected added 'int' limit to exist")
	}
	if _, exists := cfg.Limits["double"]; !exists {
		t.Error("expected default 'double' limit to survive the merge")
	}

	// Verify audit config
	if cfg.Audit.ObjectSuffix != "__c" {
		t.Errorf("expected object_suffix '__c', got %s", cfg.Audit.ObjectSuffix)
	}
	if cfg.Audit.Workers != 8 {
		t.Errorf("expected workers 8, got %d", cfg.Audit.Workers)
	}

	// Verify output config
	if cfg.Output.CSVFile != "report.csv" {
		t.Errorf("expected csv_file 'report.csv', got %s", cfg.Output.CSVFile)
	}

	// Verify logging config
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected logging level 'debug', got %s", cfg.Logging.Level)
	}
}

func TestLoadPartialFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "partial.yaml")

	// Only one section set; everything else keeps defaults
	configContent := `
audit:
  workers: 2
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Audit.Workers != 2 {
		t.Errorf("expected workers 2, got %d", cfg.Audit.Workers)
	}
	if cfg.Audit.ObjectSuffix != "__mdt" {
		t.Errorf("expected default object_suffix '__mdt', got %s", cfg.Audit.ObjectSuffix)
	}
	if cfg.Salesforce.Binary != "sf" {
		t.Errorf("expected default binary 'sf', got %s", cfg.Salesforce.Binary)
	}
	if cfg.Output.CSVFile != "output.csv" {
		t.Errorf("expected default csv_file 'output.csv', got %s", cfg.Output.CSVFile)
	}
}

func TestLoadWithEnvVars(t *testing.T) {
	// Set environment variables for test
	os.Setenv("TEST_SF_ORG", "env-org")
	os.Setenv("TEST_CSV_PATH", "env-report.csv")
	defer func() {
		os.Unsetenv("TEST_SF_ORG")
		os.Unsetenv("TEST_CSV_PATH")
	}()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-env.yaml")

	configContent := `
salesforce:
  target_org: ${TEST_SF_ORG}

output:
  csv_file: ${TEST_CSV_PATH}
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Salesforce.TargetOrg != "env-org" {
		t.Errorf("expected target_org 'env-org', got %s", cfg.Salesforce.TargetOrg)
	}
	if cfg.Output.CSVFile != "env-report.csv" {
		t.Errorf("expected csv_file 'env-report.csv', got %s", cfg.Output.CSVFile)
	}
}

func TestExpandEnvVar(t *testing.T) {
	os.Setenv("TEST_VAR", "test-value")
	defer os.Unsetenv("TEST_VAR")

	tests := []struct {
		input    string
		expected string
	}{
		{"${TEST_VAR}", "test-value"},
		{"$TEST_VAR", "test-value"},
		{"prefix-${TEST_VAR}-suffix", "prefix-test-value-suffix"},
		{"${NONEXISTENT}", "${NONEXISTENT}"}, // Unset vars remain unchanged
		{"no-vars-here", "no-vars-here"},
	}

	for _, tt := range tests {
		result := expandEnvVar(tt.input)
		if result != tt.expected {
			t.Errorf("expandEnvVar(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestLoadOrDefault(t *testing.T) {
	// Missing file falls back to defaults
	cfg, err := LoadOrDefault("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("unexpected error for missing file: %v", err)
	}
	if cfg.Salesforce.Binary != "sf" {
		t.Errorf("expected default binary 'sf', got %s", cfg.Salesforce.Binary)
	}

	// Existing file is loaded normally
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "present.yaml")
	if err := os.WriteFile(configPath, []byte("audit:\n  workers: 3\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err = LoadOrDefault(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Audit.Workers != 3 {
		t.Errorf("expected workers 3, got %d", cfg.Audit.Workers)
	}
}

func TestApplyOverrides(t *testing.T) {
	// Start with a default config
	cfg := DefaultConfig()

	// Verify defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Audit.Workers != 4 {
		t.Errorf("expected default workers 4, got %d", cfg.Audit.Workers)
	}

	// Apply some overrides
	cfg.ApplyOverrides("debug", "json", "scratch-org", 8, 120)

	// Verify overrides were applied
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug' after override, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json' after override, got %s", cfg.Logging.Format)
	}
	if cfg.Salesforce.TargetOrg != "scratch-org" {
		t.Errorf("expected target_org 'scratch-org' after override, got %s", cfg.Salesforce.TargetOrg)
	}
	if cfg.Audit.Workers != 8 {
		t.Errorf("expected workers 8 after override, got %d", cfg.Audit.Workers)
	}
	if cfg.Audit.CallTimeoutSeconds != 120 {
		t.Errorf("expected call timeout 120 after override, got %d", cfg.Audit.CallTimeoutSeconds)
	}
}

func TestApplyOverridesZeroValues(t *testing.T) {
	// Start with a custom config
	cfg := &Config{
		Salesforce: SalesforceConfig{
			TargetOrg: "fixed-org",
		},
		Audit: AuditConfig{
			Workers:            6,
			CallTimeoutSeconds: 90,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "json",
		},
	}

	// Apply zero values (should NOT override)
	cfg.ApplyOverrides("", "", "", 0, 0)

	// Verify original values are preserved
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level 'warn' to be preserved, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected log format 'json' to be preserved, got %s", cfg.Logging.Format)
	}
	if cfg.Salesforce.TargetOrg != "fixed-org" {
		t.Errorf("expected target_org 'fixed-org' to be preserved, got %s", cfg.Salesforce.TargetOrg)
	}
	if cfg.Audit.Workers != 6 {
		t.Errorf("expected workers 6 to be preserved, got %d", cfg.Audit.Workers)
	}
	if cfg.Audit.CallTimeoutSeconds != 90 {
		t.Errorf("expected call timeout 90 to be preserved, got %d", cfg.Audit.CallTimeoutSeconds)
	}
}

func TestApplyOverridesPartial(t *testing.T) {
	// Start with a default config
	cfg := DefaultConfig()

	// Apply only some overrides
	cfg.ApplyOverrides("error", "", "", 0, 30)

	// Verify only specified overrides were applied
	if cfg.Logging.Level != "error" {
		t.Errorf("expected log level 'error' after override, got %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" { // Should keep default
		t.Errorf("expected log format to remain 'text', got %s", cfg.Logging.Format)
	}
	if cfg.Audit.Workers != 4 { // Should keep default (0 doesn't override)
		t.Errorf("expected workers to remain 4, got %d", cfg.Audit.Workers)
	}
	if cfg.Audit.CallTimeoutSeconds != 30 {
		t.Errorf("expected call timeout 30 after override, got %d", cfg.Audit.CallTimeoutSeconds)
	}
}
