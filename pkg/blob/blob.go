// Package blob stores uploaded file contents on local disk. Metadata lives
// in pkg/storage; this package only handles the bytes. Stored names are
// generated, never taken from the client, so path traversal through upload
// filenames is not possible.
package blob

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store persists file contents under a single directory.
type Store struct {
	dir string
}

// New creates a blob store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating blob directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes the contents of r to a newly generated file and returns the
// storage key to record in the file's metadata.
func (s *Store) Save(r io.Reader) (string, error) {
	key := uuid.NewString()
	f, err := os.Create(filepath.Join(s.dir, key))
	if err != nil {
		return "", fmt.Errorf("creating blob: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("writing blob: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("closing blob: %w", err)
	}
	return key, nil
}

// Open returns a reader over the contents stored under key.
func (s *Store) Open(key string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, filepath.Base(key)))
	if err != nil {
		return nil, fmt.Errorf("opening blob %s: %w", key, err)
	}
	return f, nil
}

// Remove deletes the contents stored under key. Removing a key that does
// not exist is not an error.
func (s *Store) Remove(key string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing blob %s: %w", key, err)
	}
	return nil
}
