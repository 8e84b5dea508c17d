package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"autotranscription/internal/config"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()

	result := CheckDirectoryAccess("Log directory", dir)
	if !result.Passed {
		t.Fatalf("expected pass for writable dir, got %+v", result)
	}

	missing := CheckDirectoryAccess("Log directory", filepath.Join(dir, "absent"))
	if missing.Passed {
		t.Fatalf("expected failure for missing dir, got %+v", missing)
	}
	if missing.Detail == "" {
		t.Fatal("expected detail for missing dir")
	}

	filePath := filepath.Join(dir, "file")
	if err := os.WriteFile(filePath, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	notDir := CheckDirectoryAccess("Log directory", filePath)
	if notDir.Passed {
		t.Fatalf("expected failure for non-directory, got %+v", notDir)
	}
}

func TestRunAllCoversConfiguredDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ModelCacheDir = filepath.Join(base, "models")
	cfg.Cache.Path = filepath.Join(base, "cache", "results.db")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	results := RunAll(&cfg)
	if len(results) != 2 {
		t.Fatalf("expected 2 checks with cache disabled, got %d", len(results))
	}
	for _, result := range results {
		if !result.Passed {
			t.Fatalf("expected pass, got %+v", result)
		}
	}

	cfg.Cache.Enabled = true
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories with cache: %v", err)
	}
	results = RunAll(&cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 checks with cache enabled, got %d", len(results))
	}
	if results[2].Name != "Result cache directory" || !results[2].Passed {
		t.Fatalf("unexpected cache check: %+v", results[2])
	}

	if RunAll(nil) != nil {
		t.Fatal("expected nil results for nil config")
	}
}
