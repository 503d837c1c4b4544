package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists uploaded files under a single directory. Files are written
// under opaque generated keys; the client-supplied filename contributes only
// a sanitized extension and never reaches the filesystem as a path.
type Store struct {
	dir string
}

// New creates the upload directory if absent and returns a Store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Save writes data under a fresh opaque key and returns the key. Same bytes
// saved twice get two distinct keys; nothing is ever overwritten.
func (s *Store) Save(data []byte, originalName string) (string, error) {
	key := uuid.NewString() + safeExt(originalName)
	path := filepath.Join(s.dir, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload %s: %w", key, err)
	}
	return key, nil
}

// Path returns the on-disk location of a stored key.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, key)
}

// safeExt extracts a lowercase alphanumeric extension from the client
// filename, or returns "" when the extension is missing or suspicious.
func safeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if len(ext) < 2 || len(ext) > 8 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
