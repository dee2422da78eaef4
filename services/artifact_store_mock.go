package services

import (
	"context"
	"fmt"
)

// MockArtifactStore is an in-memory ArtifactStore for testing.
type MockArtifactStore struct {
	Artifacts    map[string][]byte
	ContentTypes map[string]string
	PutError     error
}

// NewMockArtifactStore creates an empty mock store.
func NewMockArtifactStore() *MockArtifactStore {
	return &MockArtifactStore{
		Artifacts:    make(map[string][]byte),
		ContentTypes: make(map[string]string),
	}
}

// Put records the artifact in memory, or fails with PutError if set.
func (m *MockArtifactStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if m.PutError != nil {
		return m.PutError
	}
	m.Artifacts[key] = data
	m.ContentTypes[key] = contentType
	return nil
}

// URL returns a mock location for the key.
func (m *MockArtifactStore) URL(ctx context.Context, key string) (string, error) {
	return fmt.Sprintf("mock://artifacts/%s", key), nil
}
