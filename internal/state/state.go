// Package state persists watcher state between runs: the set of mod IDs the
// additions watcher has already reported, and the per-mod version cache the
// updates watcher diffs against.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/nexwatch/nexwatch/internal/errors"
)

// SeenFilename is the default filename for the seen-mods store.
const SeenFilename = "seen_mods.json"

// TrackFilename is the default filename for the tracked-mods cache.
const TrackFilename = "update_cache.json"

// Metadata contains information about a state file itself.
type Metadata struct {
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newMetadata() Metadata {
	now := time.Now()
	return Metadata{Version: "1.0", CreatedAt: now, UpdatedAt: now}
}

// seenFile is the on-disk format of the seen-mods store.
type seenFile struct {
	Metadata Metadata `json:"metadata"`
	ModIDs   []int64  `json:"mod_ids"`
}

// SeenStore tracks which mod IDs have already been reported.
type SeenStore struct {
	path string
	mu   sync.RWMutex
	meta Metadata
	ids  map[int64]struct{}
}

// NewSeenStore creates a store for the given path.
// It does not touch the file; call Load() or Save() for that.
func NewSeenStore(path string) *SeenStore {
	return &SeenStore{
		path: path,
		meta: newMetadata(),
		ids:  make(map[int64]struct{}),
	}
}

// NewSeenStoreInDir creates a store for the default file in the given directory.
func NewSeenStoreInDir(dir string) *SeenStore {
	return NewSeenStore(filepath.Join(dir, SeenFilename))
}

// Path returns the file path of the store.
func (s *SeenStore) Path() string {
	return s.path
}

// Load reads the store from disk. A missing file initializes an empty store.
func (s *SeenStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.meta = newMetadata()
			s.ids = make(map[int64]struct{})
			return nil
		}
		return errors.Wrap(err, errors.ErrState, "failed to read seen-mods store").
			WithDetails("path", s.path)
	}

	var file seenFile
	if err := json.Unmarshal(data, &file); err != nil {
		return errors.StateCorrupt(s.path, err)
	}

	s.meta = file.Metadata
	s.ids = make(map[int64]struct{}, len(file.ModIDs))
	for _, id := range file.ModIDs {
		s.ids[id] = struct{}{}
	}
	return nil
}

// Save writes the store to disk, creating parent directories as needed.
func (s *SeenStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.meta.UpdatedAt = time.Now()

	ids := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	data, err := json.MarshalIndent(seenFile{Metadata: s.meta, ModIDs: ids}, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrState, "failed to marshal seen-mods store")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrap(err, errors.ErrState, "failed to create state directory")
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrState, "failed to write seen-mods store").
			WithDetails("path", s.path)
	}
	return nil
}

// Seen reports whether the mod ID has been recorded.
func (s *SeenStore) Seen(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// MarkSeen records a mod ID.
func (s *SeenStore) MarkSeen(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = struct{}{}
}

// Len returns the number of recorded mod IDs.
func (s *SeenStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}
