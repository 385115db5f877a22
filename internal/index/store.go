// Package index persists the mapping from content hash to the canonical
// relative path under the destination root, so that repeated runs never
// re-import content the tree already holds.
package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/user/mediasort/internal/fingerprint"
)

// FileName returns the index filename for a hashing mode. Content mode
// keeps its own index because pixel hashes and byte hashes never collide
// meaningfully.
func FileName(mode fingerprint.Mode) string {
	if mode == fingerprint.ModeContent {
		return "photo_index_visual.json"
	}
	return "photo_index.json"
}

// Store is an in-memory hash index backed by a JSON file. At most one
// entry exists per hash; a later insert for the same hash overwrites the
// earlier one.
type Store struct {
	path    string
	entries map[string]string
}

// Open loads the index at path. A missing or malformed file yields an
// empty index, never an error: the worst case is re-hashing work that was
// already done.
func Open(path string) *Store {
	s := &Store{path: path, entries: map[string]string{}}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	entries := map[string]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return s
	}
	s.entries = entries
	return s
}

// Lookup returns the relative path recorded for hash.
func (s *Store) Lookup(hash string) (string, bool) {
	rel, ok := s.entries[hash]
	return rel, ok
}

// Add records hash -> relPath, overwriting any previous entry.
func (s *Store) Add(hash, relPath string) {
	s.entries[hash] = relPath
}

// HasPath reports whether relPath is already recorded under any hash.
func (s *Store) HasPath(relPath string) bool {
	for _, rel := range s.entries {
		if rel == relPath {
			return true
		}
	}
	return false
}

// Len returns the number of indexed entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Save rewrites the whole index file. The write goes through a temp file
// in the same directory followed by a rename, so an interrupted save can
// lose recent entries but never corrupt the index.
func (s *Store) Save() error {
	data, err := json.MarshalIndent(s.entries, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}
	return writeFileAtomic(s.path, data)
}

// writeFileAtomic writes data to path via a same-directory temp file and
// rename. The temp file name is dot-prefixed to keep it out of media
// library views.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create index directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp index file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp index file %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp index file %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp index file %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace index file %s: %w", path, err)
	}
	return nil
}
