package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalService stores files under a public directory on the local filesystem.
type LocalService struct {
	root string
}

func NewLocalService(root string) (*LocalService, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("storage root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &LocalService{root: filepath.Clean(root)}, nil
}

// Root returns the directory files are written under, for static file serving.
func (s *LocalService) Root() string {
	return s.root
}

func (s *LocalService) Store(ctx context.Context, prefix, originalName string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	relPath := hashedPath(prefix, originalName, data)
	fullPath, err := s.resolve(relPath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("create storage dir: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return relPath, nil
}

func (s *LocalService) Delete(ctx context.Context, relPath string) error {
	if relPath == "" {
		return nil
	}
	fullPath, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

func (s *LocalService) Exists(ctx context.Context, relPath string) (bool, error) {
	if relPath == "" {
		return false, nil
	}
	fullPath, err := s.resolve(relPath)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(fullPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat file: %w", err)
	}
	return true, nil
}

// resolve joins relPath onto the root and rejects paths escaping it.
func (s *LocalService) resolve(relPath string) (string, error) {
	full := filepath.Clean(filepath.Join(s.root, filepath.FromSlash(relPath)))
	if rel, err := filepath.Rel(s.root, full); err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid storage path %q", relPath)
	}
	return full, nil
}
