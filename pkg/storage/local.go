package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStorage is an ObjectStorage backed by a local directory. Filenames
// are prefixed with a UUID so repeated uploads of the same file never clash.
type LocalStorage struct {
	dir     string
	baseURL string
}

// NewLocalStorage creates the upload directory if needed and returns a
// LocalStorage serving files under baseURL.
func NewLocalStorage(dir, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &LocalStorage{
		dir:     dir,
		baseURL: baseURL,
	}, nil
}

// Upload writes the file to disk and returns its URL.
func (s *LocalStorage) Upload(file File) (string, error) {
	name := fmt.Sprintf("%s_%s", uuid.New().String(), filepath.Base(file.Name))
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, file.Content, 0o644); err != nil {
		return "", fmt.Errorf("failed to store file %s: %w", file.Name, err)
	}
	return s.baseURL + "/" + name, nil
}
