package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a blob does not exist at the given path.
var ErrNotFound = errors.New("blob not found")

// Store is the blob store holding uploaded images. Blobs are addressed by a
// relative path (the canonical persisted form); URL resolves a relative path
// to its public form.
type Store interface {
	// Put writes the blob under prefix, deriving the extension from filename,
	// and returns the relative path of the stored blob.
	Put(ctx context.Context, prefix, filename string, r io.Reader) (string, error)
	Exists(path string) bool
	Delete(path string) error
	URL(path string) string
}
