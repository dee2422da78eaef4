package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ImageFetcher retrieves a remotely-hosted image by URL. Each fetch is
// independent and timeout-bounded; callers treat failures as non-fatal.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPImageFetcher fetches images over HTTP with a bounded timeout.
type HTTPImageFetcher struct {
	client *resty.Client
}

// NewImageFetcher creates the fetcher used by the closure pipeline.
func NewImageFetcher(timeout time.Duration) *HTTPImageFetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "maintenance-orders-api/1.0")
	return &HTTPImageFetcher{client: client}
}

// Fetch downloads the image. Non-HTTP locations (signature blobs stored on
// the local artifact store) are read from the filesystem.
func (f *HTTPImageFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty image url")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		data, err := os.ReadFile(url)
		if err != nil {
			return nil, fmt.Errorf("failed to read local image %s: %w", url, err)
		}
		return data, nil
	}

	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image %s: %w", url, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("failed to fetch image %s: status %d", url, resp.StatusCode())
	}
	return resp.Body(), nil
}
