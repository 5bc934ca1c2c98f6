package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCategorySlug(t *testing.T) {
	custom := "jardins"
	empty := ""

	assert.Equal(t, "interior-design", resolveCategorySlug("Interior Design", nil),
		"slug follows the name when not submitted")
	assert.Equal(t, "jardins", resolveCategorySlug("Jardins & Terrasses", &custom),
		"explicit slug wins")
	assert.Equal(t, "jardins-terrasses", resolveCategorySlug("Jardins & Terrasses", &empty),
		"submitted-but-empty falls back to the name")
}
