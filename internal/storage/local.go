package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore implements ObjectStore on the local filesystem. The API
// serves the base path under the configured base URL, so returned URLs
// resolve in development.
type LocalStore struct {
	basePath string
	baseURL  string
}

// NewLocalStore creates a new local store instance.
func NewLocalStore(cfg Config) (*LocalStore, error) {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "./uploads"
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "/files"
	}

	return &LocalStore{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// BasePath returns the directory files are stored under.
func (s *LocalStore) BasePath() string {
	return s.basePath
}

// BaseURL returns the URL prefix the files are served from.
func (s *LocalStore) BaseURL() string {
	return s.baseURL
}

// Upload stores the object on disk.
func (s *LocalStore) Upload(ctx context.Context, key string, reader io.Reader, contentType string) (*UploadResult, error) {
	fullPath := filepath.Join(s.basePath, key)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &UploadResult{
		URL: fmt.Sprintf("%s/%s", s.baseURL, key),
		Key: key,
	}, nil
}

// Delete removes the object from disk.
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	fullPath := filepath.Join(s.basePath, key)

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}
