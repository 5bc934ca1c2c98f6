package storage

import (
	"net/url"
	"strings"
)

// prefixes stripped from externally supplied image references. Clients send
// back the public URLs they received, so persisted form must shed the public
// base before comparison with freshly uploaded paths.
var strippedPrefixes = []string{"/storage/", "storage/", "public/"}

// NormalizePath canonicalizes an externally supplied image reference into a
// relative storage path. Absolute URLs are reduced to their path component
// first; a leading /storage/, storage/ or public/ prefix is removed. Already
// relative paths pass through unchanged, so the function is idempotent.
func NormalizePath(ref string) string {
	s := strings.TrimSpace(ref)
	if s == "" {
		return ""
	}

	if u, err := url.Parse(s); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		s = strings.TrimPrefix(u.Path, "/")
		s = strings.TrimPrefix(s, "storage/")
		return strings.TrimPrefix(s, "public/")
	}

	for _, prefix := range strippedPrefixes {
		if strings.HasPrefix(s, prefix) {
			return strings.TrimPrefix(s, prefix)
		}
	}
	return s
}

// PublicURL maps a persisted relative path to its public URL. Values already
// carrying an http/https scheme pass through unchanged; empty input stays
// empty.
func PublicURL(base, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimSuffix(base, "/") + "/storage/" + strings.TrimPrefix(path, "/")
}
