package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePutAndExists(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "http://localhost:8082")
	require.NoError(t, err)

	ctx := context.Background()
	rel, err := store.Put(ctx, "products", "photo.JPG", bytes.NewReader([]byte("fake jpeg data")))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rel, "products/"))
	assert.True(t, strings.HasSuffix(rel, ".jpg"), "extension is lowercased: %s", rel)
	assert.True(t, store.Exists(rel))
	assert.False(t, store.Exists("products/nope.jpg"))
}

func TestLocalStorePutSecondaryPrefix(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "http://localhost:8082")
	require.NoError(t, err)

	rel, err := store.Put(context.Background(), "products/secondary", "b.png", bytes.NewReader([]byte("png")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "products/secondary/"))
	assert.True(t, store.Exists(rel))
}

func TestLocalStoreDelete(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "http://localhost:8082")
	require.NoError(t, err)

	rel, err := store.Put(context.Background(), "services", "c.webp", bytes.NewReader([]byte("webp")))
	require.NoError(t, err)

	require.NoError(t, store.Delete(rel))
	assert.False(t, store.Exists(rel))
	assert.ErrorIs(t, store.Delete(rel), ErrNotFound)
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalStore(base, "http://localhost:8082")
	require.NoError(t, err)

	outside := filepath.Join(base, "..", "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	assert.False(t, store.Exists("../victim.txt"))
	assert.Error(t, store.Delete("../victim.txt"))
	_, err = os.Stat(outside)
	assert.NoError(t, err, "file outside the root must survive")
}

func TestLocalStoreURL(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "http://localhost:8082")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8082/storage/products/a.jpg", store.URL("products/a.jpg"))
	assert.Equal(t, "", store.URL(""))
}
