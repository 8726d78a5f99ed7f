package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore abstracts attachment blob storage. Save returns the
// generated storage key; Remove discards a stored blob, e.g. when the
// owning record fails to persist.
type FileStore interface {
	Save(r io.Reader, originalName string) (string, error)
	Remove(key string) error
	Path(key string) (string, error)
}

// LocalStore writes blobs under a base directory. Keys are generated
// (uuid + original extension) so uploads never collide and caller-
// supplied names never touch the filesystem.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

func (s *LocalStore) Save(r io.Reader, originalName string) (string, error) {
	key := uuid.New().String() + filepath.Ext(originalName)

	f, err := os.Create(filepath.Join(s.baseDir, key))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return key, nil
}

func (s *LocalStore) Remove(key string) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// Path resolves a key to an absolute path, rejecting traversal outside
// the base directory.
func (s *LocalStore) Path(key string) (string, error) {
	cleaned := filepath.Clean(key)
	if cleaned != filepath.Base(cleaned) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(s.baseDir, cleaned), nil
}
