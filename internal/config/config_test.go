package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/garnizeh/employees/internal/config"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("addr default: %q", cfg.Addr)
	}
	if cfg.Storage.Backend != config.BackendSQL {
		t.Errorf("backend default: %q", cfg.Storage.Backend)
	}
	if !cfg.Queue.Enabled || cfg.Queue.Workers != 2 {
		t.Errorf("queue defaults: %+v", cfg.Queue)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("EMP_STORAGE_BACKEND", config.BackendORM)
	t.Setenv("EMP_ADDR", ":9999")

	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Storage.Backend != config.BackendORM {
		t.Errorf("backend: %q", cfg.Storage.Backend)
	}
	if cfg.Addr != ":9999" {
		t.Errorf("addr: %q", cfg.Addr)
	}
}

func TestYAMLFileOverridesEnv(t *testing.T) {
	t.Setenv("EMP_ADDR", ":9999")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "addr: \":7070\"\nstorage:\n  backend: orm\nqueue:\n  enabled: false\n  workers: 8\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("addr: %q", cfg.Addr)
	}
	if cfg.Storage.Backend != config.BackendORM {
		t.Errorf("backend: %q", cfg.Storage.Backend)
	}
	if cfg.Queue.Enabled || cfg.Queue.Workers != 8 {
		t.Errorf("queue: %+v", cfg.Queue)
	}
}

func TestUnknownBackendRejected(t *testing.T) {
	t.Setenv("EMP_STORAGE_BACKEND", "mongodb")
	if _, err := config.LoadConfig(""); err == nil {
		t.Fatal("expected error for unknown storage backend")
	}
}

func TestMissingFile(t *testing.T) {
	if _, err := config.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
