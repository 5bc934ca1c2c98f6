package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already relative", "products/a.jpg", "products/a.jpg"},
		{"leading storage slash", "/storage/products/a.jpg", "products/a.jpg"},
		{"leading storage", "storage/services/b.png", "services/b.png"},
		{"leading public", "public/services/c.webp", "services/c.webp"},
		{"absolute url with storage", "http://host/storage/x/y.jpg", "x/y.jpg"},
		{"https url with storage", "https://cdn.example.com/storage/projects/secondary/z.gif", "projects/secondary/z.gif"},
		{"absolute url without storage", "http://host/x/y.jpg", "x/y.jpg"},
		{"empty", "", ""},
		{"whitespace", "  products/a.jpg ", "products/a.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePath(tt.in))
		})
	}
}

func TestNormalizePathIdempotent(t *testing.T) {
	inputs := []string{
		"products/a.jpg",
		"/storage/products/a.jpg",
		"http://host/storage/x/y.jpg",
		"public/services/c.webp",
	}
	for _, in := range inputs {
		once := NormalizePath(in)
		assert.Equal(t, once, NormalizePath(once), "normalizing twice must be a no-op for %q", in)
	}
}

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		path string
		want string
	}{
		{"relative path", "http://localhost:8082", "products/a.jpg", "http://localhost:8082/storage/products/a.jpg"},
		{"base with trailing slash", "http://localhost:8082/", "products/a.jpg", "http://localhost:8082/storage/products/a.jpg"},
		{"already absolute http", "http://localhost:8082", "http://cdn/x.jpg", "http://cdn/x.jpg"},
		{"already absolute https", "http://localhost:8082", "https://cdn/x.jpg", "https://cdn/x.jpg"},
		{"empty path", "http://localhost:8082", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PublicURL(tt.base, tt.path))
		})
	}
}
