package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore records puts and deletes in memory. failAfter triggers a Put
// failure once that many blobs have been written.
type fakeStore struct {
	blobs     map[string]bool
	putOrder  []string
	deleted   []string
	failAfter int
	puts      int
}

func newFakeStore() *fakeStore {
	return &fakeStore{blobs: map[string]bool{}, failAfter: -1}
}

func (s *fakeStore) Put(_ context.Context, prefix, filename string, _ io.Reader) (string, error) {
	if s.failAfter >= 0 && s.puts >= s.failAfter {
		return "", errors.New("store unavailable")
	}
	s.puts++
	path := fmt.Sprintf("%s/blob-%d-%s", prefix, s.puts, filename)
	s.blobs[path] = true
	s.putOrder = append(s.putOrder, path)
	return path, nil
}

func (s *fakeStore) Exists(path string) bool { return s.blobs[path] }

func (s *fakeStore) Delete(path string) error {
	if !s.blobs[path] {
		return errors.New("missing blob")
	}
	delete(s.blobs, path)
	s.deleted = append(s.deleted, path)
	return nil
}

func (s *fakeStore) URL(path string) string { return "http://test/storage/" + path }

func testLogger() *gecho.Logger {
	return gecho.NewLogger(gecho.NewConfig(gecho.WithLogLevel(gecho.ParseLogLevel("error"))))
}

// multipartFiles builds real multipart file headers for the given filenames.
func multipartFiles(t *testing.T, names ...string) []*multipart.FileHeader {
	t.Helper()

	var body strings.Builder
	w := multipart.NewWriter(&body)
	for _, name := range names {
		part, err := w.CreateFormFile("files[]", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("payload-" + name))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", strings.NewReader(body.String()))
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["files[]"]
}

func TestUploadHeadersPreservesOrder(t *testing.T) {
	store := newFakeStore()
	pending := &pendingUploads{}
	files := multipartFiles(t, "a.jpg", "b.jpg", "c.jpg")

	paths, err := uploadHeaders(context.Background(), store, pending, "products/secondary", files)
	require.NoError(t, err)
	require.Len(t, paths, 3)
	assert.Equal(t, store.putOrder, paths)
	assert.Equal(t, paths, pending.paths)
}

func TestPendingUploadsCleanupRemovesAllTracked(t *testing.T) {
	store := newFakeStore()
	pending := &pendingUploads{}
	files := multipartFiles(t, "a.jpg", "b.jpg")

	paths, err := uploadHeaders(context.Background(), store, pending, "products", files)
	require.NoError(t, err)

	pending.cleanup(store, testLogger())

	for _, path := range paths {
		assert.False(t, store.Exists(path))
	}
	assert.Empty(t, pending.paths)
}

func TestUploadHeadersFailureLeavesEarlierUploadsTracked(t *testing.T) {
	store := newFakeStore()
	store.failAfter = 2
	pending := &pendingUploads{}
	files := multipartFiles(t, "a.jpg", "b.jpg", "c.jpg")

	_, err := uploadHeaders(context.Background(), store, pending, "products", files)
	require.Error(t, err)
	require.Len(t, pending.paths, 2)

	// The failure path must be able to remove what was already written.
	pending.cleanup(store, testLogger())
	assert.Empty(t, store.blobs)
}

func TestNormalizeRefsDropsEmptyEntries(t *testing.T) {
	refs := []string{
		"http://host/storage/products/a.jpg",
		"",
		"  ",
		"products/b.jpg",
	}
	assert.Equal(t, []string{"products/a.jpg", "products/b.jpg"}, normalizeRefs(refs))
}

func TestDiffRetained(t *testing.T) {
	tests := []struct {
		name     string
		current  []string
		retained []string
		want     []string
	}{
		{
			name:     "subset retained",
			current:  []string{"a", "b", "c"},
			retained: []string{"b"},
			want:     []string{"a", "c"},
		},
		{
			name:     "everything retained",
			current:  []string{"a", "b"},
			retained: []string{"a", "b"},
			want:     nil,
		},
		{
			name:     "nothing retained",
			current:  []string{"a", "b"},
			retained: nil,
			want:     []string{"a", "b"},
		},
		{
			name:     "retained entries not in current are ignored",
			current:  []string{"a"},
			retained: []string{"a", "z"},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, diffRetained(tt.current, tt.retained))
		})
	}
}

func TestRemoveFirst(t *testing.T) {
	remaining, found := removeFirst([]string{"a", "b", "a"}, "a")
	assert.True(t, found)
	assert.Equal(t, []string{"b", "a"}, remaining)

	remaining, found = removeFirst([]string{"a", "b"}, "z")
	assert.False(t, found)
	assert.Equal(t, []string{"a", "b"}, remaining)

	remaining, found = removeFirst(nil, "a")
	assert.False(t, found)
	assert.Empty(t, remaining)
}

func TestReconcileItems(t *testing.T) {
	id := func(v int64) *int64 { return &v }

	t.Run("omitted items are deleted, matched update, idless create", func(t *testing.T) {
		existing := []int64{1, 2, 3}
		submitted := []ServiceItemInput{
			{ID: id(1), Title: "Leak repair"},
			{Title: "Pipe install"},
		}

		plan := reconcileItems(existing, submitted)

		assert.Equal(t, map[int64]string{1: "Leak repair"}, plan.ToUpdate)
		assert.Equal(t, []string{"Pipe install"}, plan.ToCreate)
		assert.ElementsMatch(t, []int64{2, 3}, plan.ToDelete)
	})

	t.Run("delete marker wins over resubmission", func(t *testing.T) {
		plan := reconcileItems([]int64{5}, []ServiceItemInput{
			{ID: id(5), Title: "Keep me", Delete: true},
		})

		assert.Empty(t, plan.ToUpdate)
		assert.Empty(t, plan.ToCreate)
		assert.Equal(t, []int64{5}, plan.ToDelete)
	})

	t.Run("unknown resubmitted ids are ignored", func(t *testing.T) {
		plan := reconcileItems([]int64{1}, []ServiceItemInput{
			{ID: id(1), Title: "Mine"},
			{ID: id(99), Title: "Not mine"},
		})

		assert.Equal(t, map[int64]string{1: "Mine"}, plan.ToUpdate)
		assert.Empty(t, plan.ToCreate)
		assert.Empty(t, plan.ToDelete)
	})

	t.Run("empty submission deletes everything", func(t *testing.T) {
		plan := reconcileItems([]int64{1, 2}, nil)

		assert.ElementsMatch(t, []int64{1, 2}, plan.ToDelete)
	})
}
