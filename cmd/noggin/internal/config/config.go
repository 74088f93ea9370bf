// Package config loads and saves noggin.yaml, the project-level
// configuration for the serve and init commands.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the project root.
const FileName = "noggin.yaml"

// Config is the noggin.yaml configuration.
type Config struct {
	// Backend is the study-assistant API the app talks to.
	Backend BackendConfig `yaml:"backend"`

	// Server configures the local serve command.
	Server ServerConfig `yaml:"server"`

	// Watch configures the rebuild-on-change loop.
	Watch WatchConfig `yaml:"watch"`
}

// BackendConfig points at the collaborator API.
type BackendConfig struct {
	// URL is the base URL proxied under /api/.
	URL string `yaml:"url"`
}

// ServerConfig holds the local HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// PublicDir is where built assets (app.wasm, wasm_exec.js) live.
	PublicDir string `yaml:"publicDir"`
}

// WatchConfig controls the file watcher used by serve --watch.
type WatchConfig struct {
	// Extensions lists the file extensions that trigger a rebuild.
	Extensions []string `yaml:"extensions"`

	// Ignore lists directory names the watcher skips.
	Ignore []string `yaml:"ignore"`
}

// Load reads noggin.yaml from projectPath, falling back to defaults
// when the file does not exist.
func Load(projectPath string) (*Config, error) {
	path := filepath.Join(projectPath, FileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FileName, err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Save writes the config to projectPath/noggin.yaml.
func Save(cfg *Config, projectPath string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(projectPath, FileName), data, 0644)
}

// Default returns the configuration used when no noggin.yaml exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Backend.URL == "" {
		cfg.Backend.URL = "http://localhost:8000"
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5173
	}
	if cfg.Server.PublicDir == "" {
		cfg.Server.PublicDir = "public"
	}
	if len(cfg.Watch.Extensions) == 0 {
		cfg.Watch.Extensions = []string{".go", ".css", ".js", ".html"}
	}
	if len(cfg.Watch.Ignore) == 0 {
		cfg.Watch.Ignore = []string{"node_modules", "public", ".git"}
	}
}
