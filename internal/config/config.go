package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"StockPrep/internal/model"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Kind      string `yaml:"kind"` // yahoo, alpaca, csv
		BaseURL   string `yaml:"base_url"`
		APIKey    string `yaml:"api_key"`
		APISecret string `yaml:"api_secret"`
		DataDir   string `yaml:"data_dir"`
	} `yaml:"data_source"`
	Symbols []string `yaml:"symbols"`
	Range   struct {
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	} `yaml:"range"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DATA_SOURCE"); v != "" {
		cfg.DataSource.Kind = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("DATA_API_SECRET"); v != "" {
		cfg.DataSource.APISecret = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.DataSource.DataDir = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		cfg.Symbols = nil
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				cfg.Symbols = append(cfg.Symbols, s)
			}
		}
	}
	if v := os.Getenv("RANGE_START"); v != "" {
		cfg.Range.Start = v
	}
	if v := os.Getenv("RANGE_END"); v != "" {
		cfg.Range.End = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.DataSource.Kind == "" {
		cfg.DataSource.Kind = "yahoo"
	}
	if len(cfg.Symbols) == 0 {
		cfg.Symbols = []string{"SPY"}
	}
	if cfg.Range.End == "" {
		cfg.Range.End = time.Now().Format(model.DateFormat)
	}
	if cfg.Range.Start == "" {
		end, err := time.Parse(model.DateFormat, cfg.Range.End)
		if err != nil {
			end = time.Now()
		}
		cfg.Range.Start = end.AddDate(-1, 0, 0).Format(model.DateFormat)
	}

	return cfg, nil
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	switch c.DataSource.Kind {
	case "yahoo":
	case "alpaca":
		if c.DataSource.APIKey == "" || c.DataSource.APISecret == "" {
			return fmt.Errorf("data_source.api_key and api_secret are required for alpaca")
		}
	case "csv":
		if c.DataSource.DataDir == "" {
			return fmt.Errorf("data_source.data_dir is required for csv")
		}
	default:
		return fmt.Errorf("unknown data_source.kind %q", c.DataSource.Kind)
	}
	if len(c.Symbols) == 0 {
		return fmt.Errorf("at least one symbol is required")
	}
	start, err := time.Parse(model.DateFormat, c.Range.Start)
	if err != nil {
		return fmt.Errorf("range.start: %w", err)
	}
	end, err := time.Parse(model.DateFormat, c.Range.End)
	if err != nil {
		return fmt.Errorf("range.end: %w", err)
	}
	if start.After(end) {
		return fmt.Errorf("range.start must not be after range.end")
	}
	return nil
}
