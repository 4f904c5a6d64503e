package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var (
	_ Provider = (*JSONStore)(nil)
	_ Provider = (*MemoryStore)(nil)
)

func TestJSONStore_InitCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "quitwise.json")
	store := NewJSONStore(path)

	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("store file not created: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("store file mode = %v, want 0600", info.Mode().Perm())
	}
	if _, err := store.Read("quitwise_data"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Read() on fresh store error = %v, want ErrNotFound", err)
	}
}

func TestJSONStore_WriteReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quitwise.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	if err := store.Write("quitwise_data", []byte(`{"version":1}`)); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	reloaded := NewJSONStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got, err := reloaded.Read("quitwise_data")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(got) != `{"version":1}` {
		t.Errorf("Read() = %s", got)
	}

	// Init on an existing file keeps its contents
	again := NewJSONStore(path)
	if err := again.Init(); err != nil {
		t.Fatal(err)
	}
	if _, err := again.Read("quitwise_data"); err != nil {
		t.Errorf("Init() dropped existing blob: %v", err)
	}
}

func TestJSONStore_RejectsNonJSON(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "quitwise.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	if err := store.Write("k", []byte("not json")); err == nil {
		t.Error("expected error writing non-JSON blob")
	}
}

func TestJSONStore_WriteFailureKeepsPrevious(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONStore(filepath.Join(dir, "quitwise.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	if err := store.Write("k", []byte(`"old"`)); err != nil {
		t.Fatal(err)
	}

	// make the directory read-only so the temp file cannot be created
	if err := os.Chmod(dir, 0500); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0700) })
	if f, err := os.CreateTemp(dir, "probe"); err == nil {
		f.Close()
		os.Remove(f.Name())
		t.Skip("directory still writable (running as root?)")
	}

	if err := store.Write("k", []byte(`"new"`)); err == nil {
		t.Fatal("expected Write() to fail")
	}
	got, err := store.Read("k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `"old"` {
		t.Errorf("Read() after failed write = %s, want old value", got)
	}
}

func TestJSONStore_LoadMissing(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); err == nil {
		t.Error("expected Load() to fail for missing file")
	}
	if _, err := store.Read("k"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Read() error = %v, want ErrNotLoaded", err)
	}
}

func TestJSONStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quitwise.json")
	if err := os.WriteFile(path, []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}
	store := NewJSONStore(path)
	if err := store.Load(); !errors.Is(err, ErrCorrupt) {
		t.Errorf("Load() error = %v, want ErrCorrupt", err)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Write("k", []byte("v")); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Write() before Init error = %v, want ErrNotLoaded", err)
	}
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	blob := []byte("value")
	if err := store.Write("k", blob); err != nil {
		t.Fatal(err)
	}
	blob[0] = 'X'

	got, err := store.Read("k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "value" {
		t.Errorf("Read() = %s, store must copy written blobs", got)
	}
	if _, err := store.Read("other"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Read() error = %v, want ErrNotFound", err)
	}
	if store.GetConfigPath() != ":memory:" {
		t.Errorf("GetConfigPath() = %q", store.GetConfigPath())
	}
}
