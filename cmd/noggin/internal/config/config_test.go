package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.URL != "http://localhost:8000" {
		t.Errorf("backend url = %q", cfg.Backend.URL)
	}
	if cfg.Server.Port != 5173 || cfg.Server.Host != "localhost" {
		t.Errorf("server defaults = %+v", cfg.Server)
	}
	if len(cfg.Watch.Extensions) == 0 {
		t.Error("watch extensions default missing")
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	content := "backend:\n  url: https://api.example.com\nserver:\n  port: 9000\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.URL != "https://api.example.com" {
		t.Errorf("backend url = %q", cfg.Backend.URL)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("unset host should default, got %q", cfg.Server.Host)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Backend.URL = "http://10.0.0.5:8000"
	if err := Save(cfg, dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Backend.URL != cfg.Backend.URL {
		t.Errorf("round trip lost backend url: %q", loaded.Backend.URL)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("backend: [oops"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected parse error")
	}
}
