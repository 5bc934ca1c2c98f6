package lib

import (
	"strings"
	"unicode"
)

// Slugify derives a URL-safe slug from a name. The mapping is deterministic:
// the same name always yields the same slug, which backs the slug uniqueness
// and recomputation rules on categories and services.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true // suppress leading dashes

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case unicode.IsLetter(r):
			if mapped, ok := asciiFold[r]; ok {
				b.WriteString(mapped)
				lastDash = false
			}
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// asciiFold maps the accented letters that show up in French catalog names.
var asciiFold = map[rune]string{
	'à': "a", 'â': "a", 'ä': "a",
	'ç': "c",
	'é': "e", 'è': "e", 'ê': "e", 'ë': "e",
	'î': "i", 'ï': "i",
	'ô': "o", 'ö': "o",
	'ù': "u", 'û': "u", 'ü': "u",
	'ÿ': "y",
	'œ': "oe", 'æ': "ae",
}
