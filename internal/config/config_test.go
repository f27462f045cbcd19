package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DataFile == "" {
		t.Error("expected a default data file path")
	}
	if filepath.Base(cfg.DataFile) != "address_book.json" {
		t.Errorf("expected data file address_book.json, got %s", cfg.DataFile)
	}
	if cfg.Verbose {
		t.Error("expected Verbose=false by default")
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	t.Setenv("CONTACTBOOK_DATA_FILE", "")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.DataFile = "/tmp/custom_book.json"
	cfg.Verbose = true

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.DataFile != "/tmp/custom_book.json" {
		t.Errorf("expected DataFile=/tmp/custom_book.json, got %s", loaded.DataFile)
	}
	if !loaded.Verbose {
		t.Error("expected Verbose=true")
	}
}

func TestConfig_LoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("CONTACTBOOK_DATA_FILE", "")

	loaded, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load of missing config failed: %v", err)
	}
	if loaded.DataFile != DefaultConfig().DataFile {
		t.Errorf("expected default DataFile, got %s", loaded.DataFile)
	}
}

func TestConfig_LoadUnparseableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- not yaml"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for an unparseable config")
	}
}

func TestConfig_EnvOverride(t *testing.T) {
	t.Setenv("CONTACTBOOK_DATA_FILE", "/tmp/env_book.json")

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	cfg := DefaultConfig()
	cfg.DataFile = "/tmp/file_book.json"
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DataFile != "/tmp/env_book.json" {
		t.Errorf("env override lost: got %s", loaded.DataFile)
	}
}
