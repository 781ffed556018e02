// Package session keeps track of which user is logged in.
//
// The persisted form is a small YAML file holding a single user_id key.
// Presence of a non-empty user_id is the only authentication signal; no
// token is validated client-side.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// record is the on-disk layout of the session file.
type record struct {
	UserID string `yaml:"user_id"`
}

// Store reads and writes the session file.
type Store struct {
	path string
}

// NewStore returns a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the session file path.
func (s *Store) Path() string {
	return s.path
}

// Read returns the persisted user id. A missing file yields "" and no error.
func (s *Store) Read() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read session: %w", err)
	}
	var rec record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return "", fmt.Errorf("invalid session file: %w", err)
	}
	return strings.TrimSpace(rec.UserID), nil
}

// Write persists userID, creating the parent directory (0700) if needed.
// The file is written with mode 0600.
func (s *Store) Write(userID string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := yaml.Marshal(record{UserID: userID})
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the session file. Clearing a missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
