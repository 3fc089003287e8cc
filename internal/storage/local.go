package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// Local writes images into a directory that the HTTP layer serves
// statically.
type Local struct {
	dir       string
	urlPrefix string
}

func NewLocal(dir, urlPrefix string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: dir, urlPrefix: urlPrefix}, nil
}

func (l *Local) Save(ctx context.Context, name, _ string, _ int64, body io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	objectName := ObjectName(name)
	f, err := os.Create(filepath.Join(l.dir, objectName))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, body); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write file: %w", err)
	}
	return path.Join(l.urlPrefix, objectName), nil
}
