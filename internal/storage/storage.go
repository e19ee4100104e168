package storage

import (
	"context"
	"fmt"
	"io"
)

// UploadResult is what the object store hands back for a stored object.
// It is consumed immediately by the ingest pipeline and never persisted.
type UploadResult struct {
	// URL is the publicly resolvable address of the object.
	URL string
	// Key is the store-side identifier, used only for deletes.
	Key string
}

// ObjectStore is the external collaborator providing binary upload.
// Implementations own their connection pooling and serialize their own
// writes; the pipeline never assumes more than upload and delete.
type ObjectStore interface {
	// Upload stores the object under key and returns its public URL.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) (*UploadResult, error)

	// Delete removes the object at key. Deleting a missing object is not
	// an error.
	Delete(ctx context.Context, key string) error
}

// Config holds object-store configuration
type Config struct {
	Type      string // local, s3, cloudflare_r2
	BasePath  string // For local storage
	BaseURL   string // Public URL base
	Bucket    string // For S3/R2
	Region    string // For S3
	AccessKey string // For S3/R2
	SecretKey string // For S3/R2
	Endpoint  string // For R2 or custom S3
}

// NewObjectStore creates a store instance based on configuration.
func NewObjectStore(cfg Config) (ObjectStore, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStore(cfg)
	case "s3", "cloudflare_r2":
		// R2 is S3-compatible, same implementation behind a different endpoint
		return NewS3Store(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
