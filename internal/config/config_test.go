package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "chronicle.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadProjectConfig(t *testing.T) {
	path := writeConfig(t, `
project: shadowfen
version: 1
database:
  dsn: postgres://localhost/shadowfen
search:
  locale: en
`)

	cfg, err := LoadProjectConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Project != "shadowfen" {
		t.Errorf("expected project shadowfen, got %q", cfg.Project)
	}
	if cfg.Database.DSN != "postgres://localhost/shadowfen" {
		t.Errorf("unexpected dsn: %q", cfg.Database.DSN)
	}
	if cfg.Search.Locale != "en" {
		t.Errorf("expected locale en, got %q", cfg.Search.Locale)
	}
}

func TestLoadProjectConfigDefaultsLocale(t *testing.T) {
	path := writeConfig(t, `
project: shadowfen
version: 1
database:
  dsn: sqlite://./shadowfen.db
`)

	cfg, err := LoadProjectConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Search.Locale != LocaleGerman {
		t.Errorf("expected default locale %q, got %q", LocaleGerman, cfg.Search.Locale)
	}
}

func TestLoadProjectConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{
			name:     "missing project",
			contents: "version: 1\ndatabase:\n  dsn: sqlite://:memory:\n",
		},
		{
			name:     "wrong version",
			contents: "project: x\nversion: 2\ndatabase:\n  dsn: sqlite://:memory:\n",
		},
		{
			name:     "missing dsn",
			contents: "project: x\nversion: 1\n",
		},
		{
			name:     "unknown locale",
			contents: "project: x\nversion: 1\ndatabase:\n  dsn: sqlite://:memory:\nsearch:\n  locale: fr\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.contents)
			if _, err := LoadProjectConfig(path); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}
