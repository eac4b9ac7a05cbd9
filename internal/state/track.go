// Package state persists watcher state between runs.
// This file implements the tracked-mods version cache.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nexwatch/nexwatch/internal/errors"
)

// TrackedEntry is the cached view of one tracked mod.
type TrackedEntry struct {
	// Version is the last mod version we notified about (or primed with).
	Version string `json:"version"`
	// LatestFileUpdate is the epoch of the newest file upload we have seen.
	LatestFileUpdate int64 `json:"latest_file_update"`
	// Adult mirrors the mod's adult-content flag.
	Adult bool `json:"is_adult"`
}

// trackFile is the on-disk format of the tracked-mods cache.
// Map keys serialize as strings, which keeps the file readable.
type trackFile struct {
	Metadata Metadata               `json:"metadata"`
	Mods     map[int64]TrackedEntry `json:"mods"`
}

// TrackCache caches per-mod versions for the updates watcher.
type TrackCache struct {
	path    string
	mu      sync.RWMutex
	meta    Metadata
	entries map[int64]TrackedEntry
}

// NewTrackCache creates a cache for the given path.
// It does not touch the file; call Load() or Save() for that.
func NewTrackCache(path string) *TrackCache {
	return &TrackCache{
		path:    path,
		meta:    newMetadata(),
		entries: make(map[int64]TrackedEntry),
	}
}

// NewTrackCacheInDir creates a cache for the default file in the given directory.
func NewTrackCacheInDir(dir string) *TrackCache {
	return NewTrackCache(filepath.Join(dir, TrackFilename))
}

// Path returns the file path of the cache.
func (t *TrackCache) Path() string {
	return t.path
}

// Load reads the cache from disk. A missing file initializes an empty cache.
func (t *TrackCache) Load() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	data, err := os.ReadFile(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			t.meta = newMetadata()
			t.entries = make(map[int64]TrackedEntry)
			return nil
		}
		return errors.Wrap(err, errors.ErrState, "failed to read tracked-mods cache").
			WithDetails("path", t.path)
	}

	var file trackFile
	if err := json.Unmarshal(data, &file); err != nil {
		return errors.StateCorrupt(t.path, err)
	}

	t.meta = file.Metadata
	t.entries = file.Mods
	if t.entries == nil {
		t.entries = make(map[int64]TrackedEntry)
	}
	return nil
}

// Save writes the cache to disk, creating parent directories as needed.
func (t *TrackCache) Save() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.meta.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(trackFile{Metadata: t.meta, Mods: t.entries}, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrState, "failed to marshal tracked-mods cache")
	}

	if err := os.MkdirAll(filepath.Dir(t.path), 0755); err != nil {
		return errors.Wrap(err, errors.ErrState, "failed to create state directory")
	}
	if err := os.WriteFile(t.path, data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrState, "failed to write tracked-mods cache").
			WithDetails("path", t.path)
	}
	return nil
}

// Get returns the cached entry for a mod ID.
func (t *TrackCache) Get(id int64) (TrackedEntry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	entry, ok := t.entries[id]
	return entry, ok
}

// Put stores the entry for a mod ID.
func (t *TrackCache) Put(id int64, entry TrackedEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[id] = entry
}

// Len returns the number of cached mods.
func (t *TrackCache) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Empty reports whether the cache has no entries, which means the updates
// watcher still has to prime it from the tracked-mods list.
func (t *TrackCache) Empty() bool {
	return t.Len() == 0
}
