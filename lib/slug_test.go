package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Plumbing", "plumbing"},
		{"Interior Design", "interior-design"},
		{"  Déco & Rénovation  ", "deco-renovation"},
		{"Already-Slugged", "already-slugged"},
		{"Multiple   spaces", "multiple-spaces"},
		{"Trailing! ", "trailing"},
		{"123 Go", "123-go"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	assert.Equal(t, Slugify("Pipe Install"), Slugify("Pipe Install"))
}
