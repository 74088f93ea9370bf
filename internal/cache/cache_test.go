package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New(Config{Dir: t.TempDir(), MaxSize: 1 << 20})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCache_PutGet(t *testing.T) {
	c := newTestCache(t)

	if _, ok := c.Get("missing"); ok {
		t.Error("unexpected hit")
	}
	if err := c.Put("k1", []byte("artifact"), nil); err != nil {
		t.Fatalf("Put: %v", err)
	}
	data, ok := c.Get("k1")
	if !ok || string(data) != "artifact" {
		t.Fatalf("Get = %q, %v", data, ok)
	}
}

func TestCache_InvalidateByDependency(t *testing.T) {
	c := newTestCache(t)

	c.Put("a", []byte("1"), []string{"app/main.go", "pkg/x.go"})
	c.Put("b", []byte("2"), []string{"pkg/y.go"})

	if n := c.InvalidateByDependency("pkg/x.go"); n != 1 {
		t.Errorf("invalidated = %d, want 1", n)
	}
	if _, ok := c.Get("a"); ok {
		t.Error("entry a should be gone")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("entry b should survive")
	}
}

func TestCache_IndexSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	c, err := New(Config{Dir: dir, MaxSize: 1 << 20})
	if err != nil {
		t.Fatal(err)
	}
	c.Put("k", []byte("persisted"), nil)
	c.Close()

	c2, err := New(Config{Dir: dir, MaxSize: 1 << 20})
	if err != nil {
		t.Fatal(err)
	}
	defer c2.Close()
	data, ok := c2.Get("k")
	if !ok || string(data) != "persisted" {
		t.Fatalf("reopened Get = %q, %v", data, ok)
	}
}

func TestCache_EvictsWhenFull(t *testing.T) {
	c, err := New(Config{Dir: t.TempDir(), MaxSize: 64})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	c.Put("old", make([]byte, 40), nil)
	c.Put("new", make([]byte, 40), nil)

	if _, ok := c.Get("old"); ok {
		t.Error("oldest entry should be evicted")
	}
	if _, ok := c.Get("new"); !ok {
		t.Error("newest entry should remain")
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestKeyFromFiles(t *testing.T) {
	dir := t.TempDir()
	f1 := filepath.Join(dir, "a.go")
	f2 := filepath.Join(dir, "b.go")
	os.WriteFile(f1, []byte("package a"), 0644)
	os.WriteFile(f2, []byte("package b"), 0644)

	k1, err := KeyFromFiles(f1, f2)
	if err != nil {
		t.Fatalf("KeyFromFiles: %v", err)
	}
	k2, _ := KeyFromFiles(f2, f1)
	if k1 != k2 {
		t.Error("key should be order independent")
	}

	os.WriteFile(f1, []byte("package a // changed"), 0644)
	k3, _ := KeyFromFiles(f1, f2)
	if k3 == k1 {
		t.Error("key should change with content")
	}

	if _, err := KeyFromFiles(filepath.Join(dir, "nope.go")); err == nil {
		t.Error("missing file should error")
	}
}
