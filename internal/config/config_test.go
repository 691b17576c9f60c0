package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.HTTP.MaxRetries != 6 {
		t.Errorf("default max_retries = %d, want 6", cfg.HTTP.MaxRetries)
	}
	if cfg.GetRetryDelay() != 6*time.Second {
		t.Errorf("default retry delay = %v, want 6s", cfg.GetRetryDelay())
	}
	if cfg.Search.PageSize != 25 {
		t.Errorf("default page_size = %d, want 25", cfg.Search.PageSize)
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
search:
  max_pages: 3
http:
  max_retries: 2
  retry_delay_ms: 10
export:
  output_dir: /tmp/out
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Search.MaxPages != 3 {
		t.Errorf("max_pages = %d, want 3", cfg.Search.MaxPages)
	}
	if cfg.HTTP.MaxRetries != 2 {
		t.Errorf("max_retries = %d, want 2", cfg.HTTP.MaxRetries)
	}
	if cfg.Search.PageSize != 25 {
		t.Errorf("page_size = %d, want default 25", cfg.Search.PageSize)
	}
	if cfg.GetOutputDir() != "/tmp/out" {
		t.Errorf("output dir = %q", cfg.GetOutputDir())
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadConfig error = %v, want fs.ErrNotExist", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.Search.BaseURL = "" }},
		{"negative retries", func(c *Config) { c.HTTP.MaxRetries = -1 }},
		{"zero workers", func(c *Config) { c.Pipeline.DetailWorkers = 0 }},
		{"long sheet name", func(c *Config) { c.Export.SheetName = "abcdefghijklmnopqrstuvwxyz0123456789" }},
		{"bad log level", func(c *Config) { c.Observability.LogLevel = "verbose" }},
	}

	for _, tt := range tests {
		cfg := Default()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: Validate() = nil, want error", tt.name)
		}
	}
}

func TestGetOutputDirDefaultsToWorkingDir(t *testing.T) {
	cfg := Default()
	if cfg.Export.OutputDir != "" {
		t.Fatalf("default output_dir = %q, want empty", cfg.Export.OutputDir)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	got := cfg.GetOutputDir()
	if got != wd {
		t.Errorf("GetOutputDir() = %q, want working dir %q", got, wd)
	}
}
