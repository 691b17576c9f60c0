package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPrompt(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("SQL Developer\r\nChennai, Tamil Nadu"))
	var out bytes.Buffer

	role, err := prompt(in, &out, "Enter Searching Job Role: ")
	if err != nil {
		t.Fatalf("prompt role: %v", err)
	}
	if role != "SQL Developer" {
		t.Errorf("role = %q", role)
	}

	// last line without a trailing newline
	location, err := prompt(in, &out, "Enter Searching Job Location: ")
	if err != nil {
		t.Fatalf("prompt location: %v", err)
	}
	if location != "Chennai, Tamil Nadu" {
		t.Errorf("location = %q", location)
	}

	if got := out.String(); got != "Enter Searching Job Role: Enter Searching Job Location: " {
		t.Errorf("prompts written = %q", got)
	}

	if _, err := prompt(in, &out, "again: "); err == nil {
		t.Errorf("prompt on exhausted input returned no error")
	}
}

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	// the package directory has no configs/config.yaml
	cfg, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Search.MaxPages != 10 {
		t.Errorf("MaxPages = %d, want default 10", cfg.Search.MaxPages)
	}

	_, err = loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("explicit missing path: err = %v, want fs.ErrNotExist", err)
	}
}

func writeConfig(t *testing.T, dir, baseURL, selectorsFile string) string {
	t.Helper()
	content := fmt.Sprintf(`search:
  base_url: %q
  max_pages: 1
http:
  max_retries: 0
  retry_delay_ms: 1
rate_limit:
  requests_per_second: 1000
  burst: 10
selectors_file: %q
export:
  output_dir: %q
observability:
  log_path: %q
`, baseURL, selectorsFile, dir, filepath.Join(dir, "run.log"))
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunReturnsSetupErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "http://127.0.0.1/jobs/search/", filepath.Join(dir, "missing.yaml"))

	var out bytes.Buffer
	err := run(path, strings.NewReader(""), &out)
	if err == nil || !strings.Contains(err.Error(), "failed to load selectors") {
		t.Fatalf("run() = %v, want selectors error", err)
	}

	logged, readErr := os.ReadFile(filepath.Join(dir, "run.log"))
	if readErr != nil {
		t.Fatalf("read log: %v", readErr)
	}
	if !strings.Contains(string(logged), "Failed to load selectors") {
		t.Errorf("log = %q, want selectors failure", logged)
	}
}

func TestRunExportsWorkbook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
<div class="base-search-card job-search-card">
<h3 class="base-search-card__title">Go Engineer</h3>
<h4 class="base-search-card__subtitle">Acme</h4>
<span class="job-search-card__location">Berlin</span>
<time class="job-search-card__listdate" datetime="2024-05-01">1 day ago</time>
</div></body></html>`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	path := writeConfig(t, dir, srv.URL+"/jobs/search/", "")

	var out bytes.Buffer
	if err := run(path, strings.NewReader("go engineer\nberlin\n"), &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	xlsx := filepath.Join(dir, "job_list_go_engineer.xlsx")
	if _, err := os.Stat(xlsx); err != nil {
		t.Fatalf("workbook not written: %v", err)
	}
	if want := fmt.Sprintf("Saved 1 job listings to '%s'", xlsx); !strings.Contains(out.String(), want) {
		t.Errorf("stdout missing %q: %q", want, out.String())
	}
}
