package lib

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
)

// MaxImageBytes is the default per-file cap for uploaded images (2MB, matching
// the admin UI contract).
const MaxImageBytes int64 = 2 << 20

// Image extension whitelists per entity family.
var (
	ProductImageExts = []string{"jpeg", "png", "jpg", "gif", "svg"}
	ServiceImageExts = []string{"jpeg", "png", "jpg", "gif", "webp"}
)

// ParseForm parses a multipart or urlencoded body. Call before reading form
// values on write endpoints.
func ParseForm(r *http.Request, maxMemory int64) error {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		return r.ParseMultipartForm(maxMemory)
	}
	return r.ParseForm()
}

// FormValue returns the trimmed form value and whether the key was present at
// all. Presence matters: several endpoints distinguish "field omitted" from
// "field submitted empty".
func FormValue(r *http.Request, key string) (string, bool) {
	if r.Form == nil {
		return "", false
	}
	vals, ok := r.Form[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return strings.TrimSpace(vals[0]), true
}

// FormValues returns every submitted value for a repeated key, accepting the
// bare name plus the PHP-style "name[]" and indexed "name[0]", "name[1]"
// spellings the admin UI sends. Indexed values come back in index order.
func FormValues(r *http.Request, key string) ([]string, bool) {
	if r.Form == nil {
		return nil, false
	}
	if vals, ok := r.Form[key]; ok {
		return vals, true
	}
	if vals, ok := r.Form[key+"[]"]; ok {
		return vals, true
	}
	if indices, ok := indexedKeys(key, len(r.Form), func(k string) bool { _, ok := r.Form[k]; return ok }); ok {
		vals := make([]string, 0, len(indices))
		for _, i := range indices {
			vals = append(vals, r.Form[fmt.Sprintf("%s[%d]", key, i)]...)
		}
		return vals, true
	}
	return nil, false
}

// indexedKeys probes for "key[0]", "key[1]", ... and returns the contiguous
// run of present indices. keyCount bounds the probe so a sparse form cannot
// loop forever.
func indexedKeys(key string, keyCount int, present func(string) bool) ([]int, bool) {
	var indices []int
	for i := 0; i <= keyCount; i++ {
		if !present(fmt.Sprintf("%s[%d]", key, i)) {
			break
		}
		indices = append(indices, i)
	}
	return indices, len(indices) > 0
}

// FormFile returns the first uploaded file for key, nil when absent.
func FormFile(r *http.Request, key string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	if fhs := r.MultipartForm.File[key]; len(fhs) > 0 {
		return fhs[0]
	}
	return nil
}

// FormFiles returns every uploaded file for a repeated key, accepting the
// bare name, "name[]" and indexed "name[0]", "name[1]" spellings.
func FormFiles(r *http.Request, key string) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File
	if fhs := files[key]; len(fhs) > 0 {
		return fhs
	}
	if fhs := files[key+"[]"]; len(fhs) > 0 {
		return fhs
	}
	if indices, ok := indexedKeys(key, len(files), func(k string) bool { return len(files[k]) > 0 }); ok {
		var fhs []*multipart.FileHeader
		for _, i := range indices {
			fhs = append(fhs, files[fmt.Sprintf("%s[%d]", key, i)]...)
		}
		return fhs
	}
	return nil
}

// ParseFlexibleBool accepts the boolean spellings the admin UI sends:
// "1"/"0"/"true"/"false" (case-insensitive).
func ParseFlexibleBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true":
		return true, nil
	case "0", "false":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean value %q", s)
}

// ParseOptionalBool returns nil when the key was not submitted.
func ParseOptionalBool(r *http.Request, key string) (*bool, error) {
	s, ok := FormValue(r, key)
	if !ok || s == "" {
		return nil, nil
	}
	v, err := ParseFlexibleBool(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ParseOptionalFloat returns nil when the key was not submitted.
func ParseOptionalFloat(r *http.Request, key string) (*float64, error) {
	s, ok := FormValue(r, key)
	if !ok || s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid numeric value %q", s)
	}
	return &v, nil
}

// ValidateImageFile checks an uploaded file against the image contract: size
// cap and extension whitelist. Returns a message suitable for the per-field
// error map, empty when valid.
func ValidateImageFile(fh *multipart.FileHeader, allowedExts []string, maxBytes int64) string {
	if fh == nil {
		return ""
	}
	if fh.Size > maxBytes {
		return fmt.Sprintf("must not exceed %dMB", maxBytes/(1<<20))
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fh.Filename)), ".")
	for _, allowed := range allowedExts {
		if ext == allowed {
			return ""
		}
	}
	return "must be an image of type: " + strings.Join(allowedExts, ", ")
}
