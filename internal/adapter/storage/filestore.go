package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore persists uploaded item images under a single directory. Stored
// names are prefixed with a uuid so repeated uploads of the same file never
// collide.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve upload dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStore{dir: abs}, nil
}

// Store writes the uploaded content to disk and returns the stored path.
func (f *FileStore) Store(filename string, src io.Reader) (string, error) {
	name := uuid.NewString() + "-" + filepath.Base(filename)
	path := filepath.Join(f.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file %s: %w", name, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write file %s: %w", name, err)
	}
	return path, nil
}
