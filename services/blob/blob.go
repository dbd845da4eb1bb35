// Package blob is the image storage boundary: bytes in, content URL out.
package blob

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Store saves an uploaded image and returns the URL it is served under.
type Store interface {
	SaveImage(data []byte, name string) (string, error)
}

// DiskStore writes images to a local directory served as static content.
// Filenames are content-addressed, so re-uploading the same bytes is
// idempotent.
type DiskStore struct {
	dir     string
	baseURL string
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating image directory: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *DiskStore) SaveImage(data []byte, name string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty image payload")
	}
	sum := sha256.Sum256(data)
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = ".img"
	}
	filename := hex.EncodeToString(sum[:]) + ext
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("writing image: %w", err)
	}
	return s.baseURL + "/" + path.Join("images", filename), nil
}
