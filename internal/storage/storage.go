package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage abstracts where uploaded complaint attachments live.
type Storage interface {
	// Save stores a file at the given path, relative to the store root.
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error

	// Delete removes a file. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// Exists checks whether a file is present.
	Exists(ctx context.Context, path string) (bool, error)

	// GetURL returns the public URL for the file.
	GetURL(ctx context.Context, path string) (string, error)
}

// Config holds storage configuration.
type Config struct {
	Type     string // only "local" is implemented
	BasePath string
	BaseURL  string
}

func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
