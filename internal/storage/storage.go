// Package storage persists uploaded avatar images. Files are addressed by a
// relative path like "employees/<generated-name>.<ext>"; clients resolve that
// against the configured public base URL.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/frahmantamala/employee-directory/internal"
	"github.com/google/uuid"
)

// FileStore is the durable store for uploaded files. Save blocks until the
// file is durably written and returns the relative path to persist.
type FileStore interface {
	Save(ctx context.Context, dir, ext string, r io.Reader) (string, error)
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
}

// NewFileStore builds the backend selected by config.
func NewFileStore(ctx context.Context, cfg internal.StorageConfig) (FileStore, error) {
	switch cfg.Driver {
	case "local":
		return NewLocalStore(cfg.BasePath)
	case "s3":
		return NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// generateName produces a collision-free file name under dir.
func generateName(dir, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	return fmt.Sprintf("%s/%s.%s", dir, uuid.NewString(), ext)
}
