// Package cache provides the on-disk snapshot store the route and weather
// providers use to avoid repeated API calls. It is an explicit dependency
// injected at construction, never module-level state; whether a snapshot is
// still valid is decided by the caller comparing the stored key.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Store reads and writes named JSON snapshots under a directory.
type Store struct {
	dir string
}

// NewStore creates the snapshot directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Load reads the named snapshot into v. It returns false with a nil error
// when no snapshot exists.
func (s *Store) Load(name string, v any) (bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name+".json"))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache: read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("cache: decode %s: %w", name, err)
	}
	return true, nil
}

// Save writes v as the named snapshot, replacing any previous one.
func (s *Store) Save(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cache: write %s: %w", name, err)
	}
	return nil
}
