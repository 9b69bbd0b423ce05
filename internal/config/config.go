package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Locales supported by the search vocabulary. The resolver treats exactly
// these two as peers for the cross-locale collision guard.
const (
	LocaleGerman  = "de"
	LocaleEnglish = "en"
)

type ProjectConfig struct {
	Project  string         `yaml:"project"`
	Version  int            `yaml:"version"`
	Database DatabaseConfig `yaml:"database"`
	Search   SearchConfig   `yaml:"search"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type SearchConfig struct {
	Locale string `yaml:"locale"`
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return fmt.Errorf("database dsn is required")
	}
	if cfg.Search.Locale == "" {
		cfg.Search.Locale = LocaleGerman
	}
	switch cfg.Search.Locale {
	case LocaleGerman, LocaleEnglish:
	default:
		return fmt.Errorf("unsupported search locale: %s", cfg.Search.Locale)
	}
	return nil
}
