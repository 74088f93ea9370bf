// Package cache stores build artifacts keyed by source-content hashes
// so serve --watch can skip WASM rebuilds when nothing changed.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// Cache is a disk-backed artifact store with an on-disk JSON index.
type Cache struct {
	mu      sync.Mutex
	dir     string
	maxSize int64
	entries map[string]*entry
}

type entry struct {
	Key          string    `json:"key"`
	Path         string    `json:"path"`
	Size         int64     `json:"size"`
	LastAccess   time.Time `json:"lastAccess"`
	Dependencies []string  `json:"dependencies,omitempty"`
}

type index struct {
	Version string            `json:"version"`
	Entries map[string]*entry `json:"entries"`
}

const indexVersion = "1"

// Config holds cache configuration.
type Config struct {
	Dir     string // default $HOME/.cache/noggin
	MaxSize int64  // bytes, default 512 MB
}

// DefaultConfig returns the standard cache location and limits.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Dir:     filepath.Join(home, ".cache", "noggin"),
		MaxSize: 512 << 20,
	}
}

// New opens (or creates) a cache at cfg.Dir.
func New(cfg Config) (*Cache, error) {
	if cfg.Dir == "" {
		cfg = DefaultConfig()
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 512 << 20
	}
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	c := &Cache{
		dir:     cfg.Dir,
		maxSize: cfg.MaxSize,
		entries: make(map[string]*entry),
	}
	c.loadIndex()
	return c, nil
}

// Get returns the cached artifact for key, if present.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	data, err := os.ReadFile(e.Path)
	if err != nil {
		// Index is stale; drop the entry.
		delete(c.entries, key)
		c.saveIndexLocked()
		return nil, false
	}
	e.LastAccess = time.Now()
	c.saveIndexLocked()
	return data, true
}

// Put stores an artifact with the source files it was built from.
// A later InvalidateByDependency on any of them drops the entry.
func (c *Cache) Put(key string, data []byte, deps []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureSpaceLocked(int64(len(data))); err != nil {
		return err
	}
	path := filepath.Join(c.dir, key+".bin")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	c.entries[key] = &entry{
		Key:          key,
		Path:         path,
		Size:         int64(len(data)),
		LastAccess:   time.Now(),
		Dependencies: deps,
	}
	return c.saveIndexLocked()
}

// InvalidateByDependency removes every entry built from the given file
// and returns how many were dropped.
func (c *Cache) InvalidateByDependency(dep string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	abs, _ := filepath.Abs(dep)
	dropped := 0
	for key, e := range c.entries {
		for _, d := range e.Dependencies {
			da, _ := filepath.Abs(d)
			if d == dep || da == abs {
				os.Remove(e.Path)
				delete(c.entries, key)
				dropped++
				break
			}
		}
	}
	if dropped > 0 {
		c.saveIndexLocked()
	}
	return dropped
}

// Clear removes all cached artifacts.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		os.Remove(e.Path)
		delete(c.entries, key)
	}
	return c.saveIndexLocked()
}

// Len reports how many artifacts are cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close persists the index.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveIndexLocked()
}

// KeyFromFiles hashes the contents of the given files into a cache key.
// File order does not affect the key.
func KeyFromFiles(files ...string) (string, error) {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	h := sha256.New()
	for _, path := range sorted {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("hash %s: %w", path, err)
		}
		io.WriteString(h, path)
		if _, err := io.Copy(h, f); err != nil {
			f.Close()
			return "", fmt.Errorf("hash %s: %w", path, err)
		}
		f.Close()
	}
	return hex.EncodeToString(h.Sum(nil))[:32], nil
}

// ensureSpaceLocked evicts least-recently-used entries until needed
// bytes fit under the size limit.
func (c *Cache) ensureSpaceLocked(needed int64) error {
	if needed > c.maxSize {
		return fmt.Errorf("artifact larger than cache limit (%d > %d)", needed, c.maxSize)
	}
	total := needed
	for _, e := range c.entries {
		total += e.Size
	}
	for total > c.maxSize {
		var oldest *entry
		for _, e := range c.entries {
			if oldest == nil || e.LastAccess.Before(oldest.LastAccess) {
				oldest = e
			}
		}
		if oldest == nil {
			break
		}
		os.Remove(oldest.Path)
		delete(c.entries, oldest.Key)
		total -= oldest.Size
	}
	return nil
}

func (c *Cache) loadIndex() {
	data, err := os.ReadFile(filepath.Join(c.dir, "index.json"))
	if err != nil {
		return
	}
	var idx index
	if json.Unmarshal(data, &idx) != nil || idx.Version != indexVersion {
		return
	}
	if idx.Entries != nil {
		c.entries = idx.Entries
	}
}

func (c *Cache) saveIndexLocked() error {
	idx := index{Version: indexVersion, Entries: c.entries}
	data, err := json.Marshal(idx)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, "index.json"), data, 0644)
}
