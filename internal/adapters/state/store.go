// Package state implements persisted package-state storage and configure
// fingerprinting.
package state

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/zerr"

	"github.com/wolfprint3d/mako/internal/core/domain"
	"github.com/wolfprint3d/mako/internal/core/ports"
)

// Store implements ports.PackageStore using a flat JSON file. The file is
// loaded lazily on first access, so the path can still be rebound from the
// profile before a run starts.
type Store struct {
	mu     sync.RWMutex
	path   string
	loaded bool
	cache  map[string]domain.PackageInfo
}

var _ ports.PackageStore = (*Store)(nil)

// NewStore creates a Store backed by the file at the given path.
func NewStore(path string) *Store {
	return &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.PackageInfo),
	}
}

// SetPath rebinds the store to a different file. Any cached state is
// discarded and reloaded from the new path on next access. Must not be
// called while a run is in progress.
func (s *Store) SetPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if filepath.Clean(path) == s.path {
		return
	}
	s.path = filepath.Clean(path)
	s.loaded = false
	s.cache = make(map[string]domain.PackageInfo)
}

// ensureLoaded reads the backing file into the cache. Caller must hold the
// write lock.
func (s *Store) ensureLoaded() error {
	if s.loaded {
		return nil
	}
	s.loaded = true

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read package state")
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.Wrap(err, "failed to unmarshal package state")
	}

	return nil
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal package state")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for package state")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write package state")
	}

	return nil
}

// Get retrieves the package info for a target name.
func (s *Store) Get(target string) (*domain.PackageInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	info, ok := s.cache[target]
	if !ok {
		return nil, nil
	}
	return &info, nil
}

// Put stores the package info and persists the file.
func (s *Store) Put(info domain.PackageInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(); err != nil {
		return err
	}

	s.cache[info.Target] = info
	return s.save()
}
