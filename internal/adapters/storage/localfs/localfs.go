package localfs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/phenrril/kiddocorner/internal/adapters/storage"
)

// Store writes uploads under dir and serves them from urlPrefix.
type Store struct {
	dir       string
	urlPrefix string
}

func New(dir, urlPrefix string) *Store {
	if urlPrefix == "" {
		urlPrefix = "/uploads"
	}
	return &Store{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

func (s *Store) SaveImage(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	name := storage.ObjectName(filename)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", err
	}
	return s.urlPrefix + "/" + name, nil
}
