package services

import (
	"context"
	"fmt"
)

// MockImageFetcher serves images from memory and records every request.
type MockImageFetcher struct {
	Images   map[string][]byte
	Requests []string
}

// NewMockImageFetcher creates an empty mock fetcher.
func NewMockImageFetcher() *MockImageFetcher {
	return &MockImageFetcher{Images: make(map[string][]byte)}
}

// Fetch returns the configured image, or an error for unknown URLs.
func (m *MockImageFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	m.Requests = append(m.Requests, url)
	if img, ok := m.Images[url]; ok {
		return img, nil
	}
	return nil, fmt.Errorf("failed to fetch image %s: status 404", url)
}
