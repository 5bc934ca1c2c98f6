package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore keeps blobs on the local filesystem under a base directory and
// serves them from a public base URL. Relative paths always use forward
// slashes, independent of the host OS.
type LocalStore struct {
	basePath string
	baseURL  string
}

func NewLocalStore(basePath, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStore{basePath: basePath, baseURL: baseURL}, nil
}

func (s *LocalStore) Put(ctx context.Context, prefix, filename string, r io.Reader) (string, error) {
	rel := path.Join(prefix, uuid.NewString()+strings.ToLower(path.Ext(filename)))

	abs, err := s.safeJoin(rel)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("failed to create blob directory: %w", err)
	}

	f, err := os.Create(abs)
	if err != nil {
		return "", fmt.Errorf("failed to create blob: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(abs)
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(abs)
		return "", fmt.Errorf("failed to close blob: %w", err)
	}
	return rel, nil
}

func (s *LocalStore) Exists(p string) bool {
	abs, err := s.safeJoin(p)
	if err != nil {
		return false
	}
	info, err := os.Stat(abs)
	return err == nil && !info.IsDir()
}

func (s *LocalStore) Delete(p string) error {
	abs, err := s.safeJoin(p)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}

func (s *LocalStore) URL(p string) string {
	return PublicURL(s.baseURL, p)
}

// safeJoin resolves a relative blob path under basePath and rejects directory
// traversal.
func (s *LocalStore) safeJoin(rel string) (string, error) {
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid storage base path: %w", err)
	}
	abs, err := filepath.Abs(filepath.Join(s.basePath, filepath.FromSlash(rel)))
	if err != nil {
		return "", fmt.Errorf("invalid blob path: %w", err)
	}
	if !strings.HasPrefix(abs, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("blob path escapes storage root")
	}
	return abs, nil
}
