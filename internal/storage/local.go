// Package storage persists binary artifacts (uploaded documents,
// rendered certificates) on the local filesystem.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store writes and reads artifacts under a base directory. Returned
// references are paths relative to the base so rows stay portable if
// the directory moves.
type Store struct {
	baseDir string
}

// NewStore creates a store rooted at baseDir, creating it if needed.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Save writes the contents of r into a new file under subdir. The stored
// name is a fresh uuid with the original extension, so uploads can never
// collide or traverse outside the base.
func (s *Store) Save(subdir, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	rel := filepath.Join(subdir, uuid.New().String()+ext)

	abs := filepath.Join(s.baseDir, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return "", fmt.Errorf("create subdir: %w", err)
	}

	f, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(abs)
		return "", fmt.Errorf("write file: %w", err)
	}
	return rel, nil
}

// SaveBytes stores a fully rendered artifact under the exact relative
// name given.
func (s *Store) SaveBytes(rel string, data []byte) (string, error) {
	abs := filepath.Join(s.baseDir, filepath.Clean(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return "", fmt.Errorf("create subdir: %w", err)
	}
	if err := os.WriteFile(abs, data, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return filepath.Clean(rel), nil
}

// Remove deletes a previously stored artifact. A missing file is not an
// error.
func (s *Store) Remove(rel string) error {
	abs := filepath.Join(s.baseDir, filepath.Clean(rel))
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove artifact: %w", err)
	}
	return nil
}

// Open returns a reader for a previously stored artifact.
func (s *Store) Open(rel string) (io.ReadCloser, error) {
	abs := filepath.Join(s.baseDir, filepath.Clean(rel))
	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	return f, nil
}
