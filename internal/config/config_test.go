// # internal/config/config_test.go
package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	content := `
scan_paths = ["./src", "./lib"]

[exclude]
dirs = [".git", "node_modules"]
files = ["*.min.js"]

[watch]
debounce = "1s"
rescan_rate = 2.0
rescan_burst = 4

[output]
tsv = "levels.tsv"
dot = "levels.dot"

[history]
path = "strata.db"

[tracing]
endpoint = "localhost:4317"
`
	tmpfile, err := os.CreateTemp("", "config*.toml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.ScanPaths) != 2 || cfg.ScanPaths[0] != "./src" {
		t.Errorf("unexpected scan paths: %v", cfg.ScanPaths)
	}
	if len(cfg.Exclude.Dirs) != 2 {
		t.Errorf("expected 2 exclude dirs, got %v", cfg.Exclude.Dirs)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("expected debounce 1s, got %v", cfg.Watch.Debounce)
	}
	if cfg.Watch.RescanRate != 2.0 || cfg.Watch.RescanBurst != 4 {
		t.Errorf("unexpected rescan limits: %v / %v", cfg.Watch.RescanRate, cfg.Watch.RescanBurst)
	}
	if cfg.Output.TSV != "levels.tsv" || cfg.Output.DOT != "levels.dot" {
		t.Errorf("unexpected output config: %+v", cfg.Output)
	}
	if cfg.History.Path != "strata.db" {
		t.Errorf("unexpected history path: %q", cfg.History.Path)
	}
	if cfg.Tracing.Endpoint != "localhost:4317" {
		t.Errorf("unexpected tracing endpoint: %q", cfg.Tracing.Endpoint)
	}
}

func TestLoad_Defaults(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config*.toml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())
	tmpfile.Close()

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.ScanPaths) != 1 || cfg.ScanPaths[0] != "." {
		t.Errorf("expected default scan path '.', got %v", cfg.ScanPaths)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("expected default debounce 500ms, got %v", cfg.Watch.Debounce)
	}
	if len(cfg.Exclude.Dirs) != 0 || len(cfg.Exclude.Files) != 0 {
		t.Errorf("expected empty excludes by default, got %+v", cfg.Exclude)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if len(cfg.ScanPaths) != 1 || cfg.ScanPaths[0] != "." {
		t.Errorf("expected scan path '.', got %v", cfg.ScanPaths)
	}
	if cfg.History.Path != "" || cfg.Tracing.Endpoint != "" {
		t.Error("history and tracing must be off by default")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/strata.toml"); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
