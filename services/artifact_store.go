package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ArtifactStore persists produced artifacts (PDF reports, signature blobs)
// under a caller-chosen key and resolves keys to caller-facing locations.
type ArtifactStore interface {
	// Put stores data under key, overwriting any previous artifact.
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// URL resolves a stored key to the location surfaced to callers.
	URL(ctx context.Context, key string) (string, error)
}

// LocalArtifactStore writes artifacts under a base directory on the local
// filesystem. The default backend for development and tests.
type LocalArtifactStore struct {
	Dir string
}

// NewLocalArtifactStore creates a filesystem-backed artifact store rooted
// at dir.
func NewLocalArtifactStore(dir string) *LocalArtifactStore {
	return &LocalArtifactStore{Dir: dir}
}

// Put writes the artifact to Dir/key, creating directories as needed.
func (s *LocalArtifactStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	path := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact %s: %w", key, err)
	}
	return nil
}

// URL returns the filesystem path of the stored artifact.
func (s *LocalArtifactStore) URL(ctx context.Context, key string) (string, error) {
	return filepath.Join(s.Dir, filepath.FromSlash(key)), nil
}
