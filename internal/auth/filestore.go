package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	// storeDirPermissions is the permission mode for the session store directory.
	storeDirPermissions = 0750

	// storeFilePermissions is the permission mode for the session store file.
	storeFilePermissions = 0600
)

// FileStore is a SessionStore backed by a single JSON file on disk.
//
// Writes go through a temporary file and an atomic rename, so a crash
// mid-write leaves the previous contents intact. File permissions
// match the datastore (0600 file, 0750 directory).
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed session store at the given path.
// The file is created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (f *FileStore) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return "", err
	}

	value, ok := values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}

	values[key] = value
	return f.save(values)
}

// Delete removes the value under key. Deleting an absent key returns
// ErrKeyNotFound.
func (f *FileStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}

	if _, ok := values[key]; !ok {
		return ErrKeyNotFound
	}
	delete(values, key)
	return f.save(values)
}

// load reads the store file. A missing or empty file is an empty store.
func (f *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading session store: %w", err)
	}

	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing session store: %w", err)
	}
	return values, nil
}

// save writes the store file atomically via a temporary file.
func (f *FileStore) save(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), storeDirPermissions); err != nil {
		return fmt.Errorf("creating session store directory: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session store: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, storeFilePermissions); err != nil {
		return fmt.Errorf("writing session store: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replacing session store: %w", err)
	}
	return nil
}
