package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataSource.Kind != "yahoo" {
		t.Errorf("expected default source yahoo, got %q", cfg.DataSource.Kind)
	}
	if len(cfg.Symbols) == 0 {
		t.Error("expected a default symbol")
	}
	if cfg.Range.Start == "" || cfg.Range.End == "" {
		t.Error("expected a default date range")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
data_source:
  kind: csv
  data_dir: ./data
symbols: [AAPL, GOOG]
range:
  start: 2020-01-01
  end: 2020-12-31
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	t.Setenv("SYMBOLS", "SPY, QQQ")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataSource.Kind != "csv" || cfg.DataSource.DataDir != "./data" {
		t.Errorf("yaml values not applied: %+v", cfg.DataSource)
	}
	if len(cfg.Symbols) != 2 || cfg.Symbols[0] != "SPY" || cfg.Symbols[1] != "QQQ" {
		t.Errorf("env override not applied: %v", cfg.Symbols)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("config should validate: %v", err)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown source", func(c *Config) { c.DataSource.Kind = "carrier-pigeon" }},
		{"alpaca without credentials", func(c *Config) { c.DataSource.Kind = "alpaca" }},
		{"csv without dir", func(c *Config) { c.DataSource.Kind = "csv" }},
		{"no symbols", func(c *Config) { c.Symbols = nil }},
		{"bad start", func(c *Config) { c.Range.Start = "yesterday" }},
		{"start after end", func(c *Config) { c.Range.Start = "2024-01-01"; c.Range.End = "2023-01-01" }},
	}
	for _, tt := range tests {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		if err != nil {
			t.Fatalf("%s: load: %v", tt.name, err)
		}
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
