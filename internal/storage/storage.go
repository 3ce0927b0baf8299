// Package storage keeps uploaded attachment payloads on local disk.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrEmptyFile = errors.New("uploaded file is empty")

// DiskStore writes blobs under a single directory, one file per attachment.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save stores content as <id><ext>, ext taken from the client filename, and
// returns the stored name. A partially written file is removed on failure.
func (s *DiskStore) Save(ctx context.Context, id uuid.UUID, filename string, content io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := id.String() + strings.ToLower(filepath.Ext(filepath.Base(filename)))
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create blob %s: %w", name, err)
	}

	written, err := io.Copy(f, content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil && written == 0 {
		err = ErrEmptyFile
	}
	if err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			log.Printf("⚠️  Failed to remove partial blob %s: %v", path, rmErr)
		}
		return "", fmt.Errorf("write blob %s: %w", name, err)
	}

	return name, nil
}

// Remove deletes a stored blob; removing a missing blob is not an error.
func (s *DiskStore) Remove(ctx context.Context, name string) error {
	if name != filepath.Base(name) {
		return fmt.Errorf("invalid blob name %q", name)
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove blob %s: %w", name, err)
	}
	return nil
}

// Open returns a reader for a stored blob. The caller closes it.
func (s *DiskStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name != filepath.Base(name) {
		return nil, fmt.Errorf("invalid blob name %q", name)
	}
	return os.Open(filepath.Join(s.dir, name))
}
