package state

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nexwatch/nexwatch/internal/errors"
)

func TestTrackCacheLoadMissingFile(t *testing.T) {
	cache := NewTrackCacheInDir(t.TempDir())
	if err := cache.Load(); err != nil {
		t.Fatalf("Load() on missing file error: %v", err)
	}
	if !cache.Empty() {
		t.Error("Empty() = false for fresh cache")
	}
}

func TestTrackCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cache := NewTrackCacheInDir(dir)
	cache.Put(42, TrackedEntry{
		Version:          "1.2.3",
		LatestFileUpdate: 1700000000,
		Adult:            true,
	})
	cache.Put(7, TrackedEntry{Version: "0.1"})
	if err := cache.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded := NewTrackCacheInDir(dir)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if reloaded.Len() != 2 {
		t.Errorf("Len() = %d, want 2", reloaded.Len())
	}

	entry, ok := reloaded.Get(42)
	if !ok {
		t.Fatal("Get(42) not found after reload")
	}
	if entry.Version != "1.2.3" || entry.LatestFileUpdate != 1700000000 || !entry.Adult {
		t.Errorf("Get(42) = %+v", entry)
	}

	if _, ok := reloaded.Get(999); ok {
		t.Error("Get(999) found, want absent")
	}
}

func TestTrackCachePutOverwrites(t *testing.T) {
	cache := NewTrackCacheInDir(t.TempDir())
	cache.Put(1, TrackedEntry{Version: "1.0"})
	cache.Put(1, TrackedEntry{Version: "2.0"})

	entry, _ := cache.Get(1)
	if entry.Version != "2.0" {
		t.Errorf("Version = %q, want 2.0", entry.Version)
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
}

func TestTrackCacheLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, TrackFilename)
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	cache := NewTrackCache(path)
	err := cache.Load()
	if !stderrors.Is(err, errors.ErrState) {
		t.Errorf("Load() = %v, want ErrState", err)
	}
}

func TestTrackCacheLoadNullMods(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, TrackFilename)
	content := `{"metadata": {"version": "1.0"}, "mods": null}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cache := NewTrackCache(path)
	if err := cache.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	// A null mods table must still accept writes.
	cache.Put(1, TrackedEntry{Version: "1.0"})
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
}
