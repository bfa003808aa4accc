// Package store persists toggle values as a flat JSON object keyed by dotted
// paths ("ui.animations"). Writes are atomic: marshal to a temp file in the
// same directory, then rename over the old one, so a crash mid-write never
// leaves a half-written store behind.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"shellmate/internal/logging/events"
)

// FileStore is the on-disk key/value store. The single-threaded menu loop is
// its only writer, so no locking is needed; atomicity of individual writes is
// what matters.
type FileStore struct {
	path   string
	values map[string]interface{}
}

// DefaultPath places the store under the user config directory.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "shellmate", "config.json"), nil
}

// Open loads the store at path. A missing file yields an empty store; a
// malformed one is an error rather than a silent reset.
func Open(path string) (*FileStore, error) {
	s := &FileStore{path: path, values: map[string]interface{}{}}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			events.Store.Load(path, 0)
			return s, nil
		}
		return nil, fmt.Errorf("read config store: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &s.values); err != nil {
			return nil, fmt.Errorf("parse config store %s: %w", path, err)
		}
	}
	events.Store.Load(path, len(s.values))
	return s, nil
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the stored value for key, or fallback when absent.
func (s *FileStore) Get(key string, fallback interface{}) interface{} {
	if v, ok := s.values[key]; ok {
		return v
	}
	return fallback
}

// GetBool returns the stored boolean for key. Non-boolean values count as
// absent.
func (s *FileStore) GetBool(key string, fallback bool) bool {
	if v, ok := s.values[key].(bool); ok {
		return v
	}
	return fallback
}

// Set stores key and writes the whole object through to disk. On write
// failure the in-memory value is rolled back so the store never reports a
// value the file does not hold.
func (s *FileStore) Set(key string, value interface{}) error {
	prev, existed := s.values[key]
	s.values[key] = value
	if err := s.flush(); err != nil {
		if existed {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		events.Store.Write(key, value, false)
		return err
	}
	events.Store.Write(key, value, true)
	return nil
}

// SetBool is Set for toggle values.
func (s *FileStore) SetBool(key string, value bool) error {
	return s.Set(key, value)
}

func (s *FileStore) flush() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config store: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, ".config-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp store: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace config store: %w", err)
	}
	return nil
}
