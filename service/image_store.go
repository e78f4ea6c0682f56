package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// ImageStore persists image bytes and returns a public URL for them
type ImageStore interface {
	Save(ctx context.Context, key string, contentType string, data []byte) (string, error)
}

// LocalImageStore keeps images on local disk and serves them under baseURL
type LocalImageStore struct {
	dir     string
	baseURL string
}

// NewLocalImageStore creates a LocalImageStore rooted at dir, creating it if needed
func NewLocalImageStore(dir, baseURL string) (*LocalImageStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalImageStore{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Ensure LocalImageStore implements ImageStore
var _ ImageStore = (*LocalImageStore)(nil)

// Dir returns the directory images are written to
func (s *LocalImageStore) Dir() string {
	return s.dir
}

// Save writes data under key. Keys may contain slashes but never escape the store directory.
func (s *LocalImageStore) Save(ctx context.Context, key string, contentType string, data []byte) (string, error) {
	clean := filepath.Clean("/" + key)[1:]
	if clean == "" {
		return "", fmt.Errorf("invalid image key %q", key)
	}

	path := filepath.Join(s.dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	log.Printf("✓ Image stored: %s (%d bytes)", path, len(data))
	return s.baseURL + "/" + filepath.ToSlash(clean), nil
}
