package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFileConfig(t *testing.T) {
	cfg, err := newFileConfig("~/journal", "", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.HasPrefix(cfg.BasePath(), "~") || filepath.Base(cfg.BasePath()) != "journal" {
		t.Fatalf("expected expanded path, got %q", cfg.BasePath())
	}
	if cfg.Backend() != BackendDiskv {
		t.Fatalf("expected diskv default, got %q", cfg.Backend())
	}
	if cfg.Location() != nil {
		t.Fatalf("expected nil location")
	}
}

func TestNewFileConfigTimezoneAndBackend(t *testing.T) {
	cfg, err := newFileConfig("/tmp/daybook", "SQLite", "UTC", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend() != BackendSQLite {
		t.Fatalf("expected sqlite, got %q", cfg.Backend())
	}
	if cfg.Location() == nil || cfg.Location().String() != "UTC" {
		t.Fatalf("expected UTC, got %v", cfg.Location())
	}
	if !Verbose(cfg) {
		t.Fatalf("expected verbose")
	}
	if Now(cfg).Location().String() != "UTC" {
		t.Fatalf("Now ignored configured zone")
	}
}

func TestNewFileConfigRejectsBadValues(t *testing.T) {
	if _, err := newFileConfig("/tmp", "postgres", "", false); err == nil {
		t.Fatalf("expected unknown backend error")
	}
	if _, err := newFileConfig("/tmp", "", "Mars/Olympus", false); err == nil {
		t.Fatalf("expected bad timezone error")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DAYBOOK_CONFIG_PATH", dir)
	t.Setenv("DAYBOOK_PATH", filepath.Join(dir, "data"))
	t.Setenv("DAYBOOK_BACKEND", "sqlite")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BasePath() != filepath.Join(dir, "data") {
		t.Fatalf("unexpected path %q", cfg.BasePath())
	}
	if cfg.Backend() != BackendSQLite {
		t.Fatalf("unexpected backend %q", cfg.Backend())
	}
}

func TestSaveBudget(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DAYBOOK_CONFIG_PATH", dir)
	t.Setenv("DAYBOOK_PATH", filepath.Join(dir, "data"))
	if err := os.WriteFile(filepath.Join(dir, ".daybook.yaml"), []byte("backend: sqlite\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if Budget(cfg) != 0 {
		t.Fatalf("expected no budget, got %v", Budget(cfg))
	}

	file, err := SaveBudget(250.5)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if file != filepath.Join(dir, ".daybook.yaml") {
		t.Fatalf("unexpected file %q", file)
	}
	cfg, err = LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if Budget(cfg) != 250.5 {
		t.Fatalf("expected 250.5, got %v", Budget(cfg))
	}
	if cfg.Backend() != BackendSQLite {
		t.Fatalf("save dropped backend, got %q", cfg.Backend())
	}

	if _, err := SaveBudget(-1); err == nil {
		t.Fatalf("expected negative budget error")
	}
}

func TestLoadConfigRejectsNegativeBudget(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DAYBOOK_CONFIG_PATH", dir)
	t.Setenv("DAYBOOK_BUDGET", "-5")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected negative budget error")
	}
}
