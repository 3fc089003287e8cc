// Package storage persists uploaded product images and returns the URL they
// are served from.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/arzan03/StoreFront/internal/config"
	"github.com/arzan03/StoreFront/internal/logger"
	"github.com/google/uuid"
)

// ImageStore writes one object and returns its public URL or path.
type ImageStore interface {
	Save(ctx context.Context, name, contentType string, size int64, body io.Reader) (string, error)
}

// Upload is one file received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// New builds the store selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (ImageStore, error) {
	switch cfg.Driver {
	case "local":
		return NewLocal(cfg.UploadDir, cfg.URLPrefix)
	case "minio":
		return NewMinio(ctx, cfg.Minio, log)
	case "s3":
		return NewS3(ctx, cfg.S3.Bucket)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// ObjectName derives a collision-free object name that keeps the original
// extension.
func ObjectName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return uuid.NewString() + ext
}

func IsImage(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(contentType), "image/")
}
