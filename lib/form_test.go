package lib

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlexibleBool(t *testing.T) {
	truthy := []string{"1", "true", "TRUE", " True "}
	falsy := []string{"0", "false", "FALSE", " False "}

	for _, s := range truthy {
		v, err := ParseFlexibleBool(s)
		require.NoError(t, err, s)
		assert.True(t, v, s)
	}
	for _, s := range falsy {
		v, err := ParseFlexibleBool(s)
		require.NoError(t, err, s)
		assert.False(t, v, s)
	}

	_, err := ParseFlexibleBool("yes")
	assert.Error(t, err)
	_, err = ParseFlexibleBool("")
	assert.Error(t, err)
}

func TestFormValuePresence(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("name", "Chair"))
	require.NoError(t, w.WriteField("empty", ""))
	require.NoError(t, w.Close())

	r := httptest.NewRequest("POST", "/products", &buf)
	r.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, ParseForm(r, 1<<20))

	v, ok := FormValue(r, "name")
	assert.True(t, ok)
	assert.Equal(t, "Chair", v)

	v, ok = FormValue(r, "empty")
	assert.True(t, ok, "submitted-but-empty is still present")
	assert.Equal(t, "", v)

	_, ok = FormValue(r, "missing")
	assert.False(t, ok)
}

func TestFormValuesBracketSpelling(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("existing_images_secondaires[]", "a.jpg"))
	require.NoError(t, w.WriteField("existing_images_secondaires[]", "b.jpg"))
	require.NoError(t, w.Close())

	r := httptest.NewRequest("POST", "/products/1", &buf)
	r.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, ParseForm(r, 1<<20))

	vals, ok := FormValues(r, "existing_images_secondaires")
	assert.True(t, ok)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, vals)
}

func TestFormValuesIndexedSpelling(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("service_items[0]", "Leak repair"))
	require.NoError(t, w.WriteField("service_items[1]", "Pipe install"))
	require.NoError(t, w.WriteField("name", "Plumbing"))
	require.NoError(t, w.Close())

	r := httptest.NewRequest("POST", "/services", &buf)
	r.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, ParseForm(r, 1<<20))

	vals, ok := FormValues(r, "service_items")
	assert.True(t, ok)
	assert.Equal(t, []string{"Leak repair", "Pipe install"}, vals)

	_, ok = FormValues(r, "other_items")
	assert.False(t, ok)
}

func TestValidateImageFile(t *testing.T) {
	fh := &multipart.FileHeader{Filename: "photo.jpg", Size: 100}
	assert.Empty(t, ValidateImageFile(fh, ProductImageExts, MaxImageBytes))

	fh = &multipart.FileHeader{Filename: "photo.webp", Size: 100}
	assert.Empty(t, ValidateImageFile(fh, ServiceImageExts, MaxImageBytes))
	assert.NotEmpty(t, ValidateImageFile(fh, ProductImageExts, MaxImageBytes), "webp rejected for products")

	fh = &multipart.FileHeader{Filename: "huge.png", Size: MaxImageBytes + 1}
	assert.Equal(t, "must not exceed 2MB", ValidateImageFile(fh, ProductImageExts, MaxImageBytes))

	fh = &multipart.FileHeader{Filename: "doc.pdf", Size: 100}
	assert.NotEmpty(t, ValidateImageFile(fh, ProductImageExts, MaxImageBytes))

	assert.Empty(t, ValidateImageFile(nil, ProductImageExts, MaxImageBytes))
}

func TestParseOptionalFloat(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("price", "19.99"))
	require.NoError(t, w.WriteField("bad", "abc"))
	require.NoError(t, w.Close())

	r := httptest.NewRequest("POST", "/products", &buf)
	r.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, ParseForm(r, 1<<20))

	v, err := ParseOptionalFloat(r, "price")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.InDelta(t, 19.99, *v, 1e-9)

	missing, err := ParseOptionalFloat(r, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = ParseOptionalFloat(r, "bad")
	assert.Error(t, err)
}
