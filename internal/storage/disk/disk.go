package disk

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Tribeoftech/atlas-files-manager/internal/store"

	"github.com/rs/xid"
)

// Storage persists uploaded content and its derived thumbnail variants
// under a single root directory, each original under a fresh random name.
type Storage struct {
	rootPath string
}

// New cleans the configured root and ensures the directory exists.
func New(rootPath string) (*Storage, error) {
	p := filepath.Clean(rootPath)

	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage root %s: %w", p, err)
	}

	return &Storage{rootPath: p}, nil
}

// Save writes a payload to a freshly named file inside the root and
// returns its absolute path, which callers record as the node's content
// reference.
func (s *Storage) Save(data []byte) (string, error) {
	path := filepath.Join(s.rootPath, xid.New().String())

	if err := os.WriteFile(path, data, 0644); err != nil {
		// Best effort cleanup of a partial write.
		os.Remove(path)
		return "", fmt.Errorf("failed to write content file: %w", err)
	}

	return path, nil
}

// Open returns a reader over a previously saved file. A missing file maps
// to store.ErrNotFound so callers can collapse it into their own
// not-found handling.
func (s *Storage) Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open content file: %w", err)
	}
	return file, nil
}

// VariantPath derives the on-disk location of a resized variant from the
// original content path and the target width.
func VariantPath(path string, width int) string {
	return fmt.Sprintf("%s_%d", path, width)
}

// SaveVariant writes a derived variant next to its original, overwriting
// any previous run's output for the same width.
func (s *Storage) SaveVariant(originalPath string, width int, data []byte) error {
	if err := os.WriteFile(VariantPath(originalPath, width), data, 0644); err != nil {
		return fmt.Errorf("failed to write %d px variant: %w", width, err)
	}
	return nil
}
