package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"hiremind_backend/internal/config"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("storage: object not found")

// Storage stores resume files by key
type Storage interface {
	// Save stores a file under the given key
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Get retrieves a file, ErrNotFound if missing
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a file, missing files are not an error
	Delete(ctx context.Context, key string) error

	Exists(ctx context.Context, key string) (bool, error)
}

// NewStorage creates a storage backend from configuration
func NewStorage(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg.BasePath)
	case "s3":
		return NewS3Storage(cfg)
	case "memory":
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
