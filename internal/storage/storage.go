package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"path"
	"path/filepath"
	"strings"
)

// Service persists uploaded files under content-derived names.
//
// Store returns the relative path of the written file, e.g. "logos/<hash>.png".
// Delete is a no-op when the file is already gone.
type Service interface {
	Store(ctx context.Context, prefix, originalName string, r io.Reader) (string, error)
	Delete(ctx context.Context, relPath string) error
	Exists(ctx context.Context, relPath string) (bool, error)
}

// hashedPath derives the storage path for a file from its content hash and the
// original file's extension. Identical bytes always map to the same path.
func hashedPath(prefix, originalName string, data []byte) string {
	sum := sha256.Sum256(data)
	name := hex.EncodeToString(sum[:]) + strings.ToLower(filepath.Ext(originalName))
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}
