// Package storage provides the object store port the media-response path
// persists generated artifacts through, plus a filesystem implementation.
// Remote bucket backends satisfy the same interface.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ObjectStore accepts one artifact and returns a stable reference locator.
type ObjectStore interface {
	Save(ctx context.Context, folder, name, mimeType string, contents []byte) (string, error)
}

// FileStore persists artifacts under a root directory on the local
// filesystem.
type FileStore struct {
	root string
}

// NewFileStore creates a store rooted at the given directory.
func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

// Save writes the artifact to <root>/<folder>/<name> and returns the
// absolute path as its locator. The MIME type is accepted for interface
// parity with bucket backends; the filesystem has no use for it.
func (s *FileStore) Save(ctx context.Context, folder, name, mimeType string, contents []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if name == "" {
		return "", fmt.Errorf("artifact name is required")
	}

	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact folder: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve artifact path: %w", err)
	}
	return abs, nil
}
