package handling

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategoryListOptionsDefaultsAndClamping(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		wantPage    int
		wantPerPage int
	}{
		{"defaults", "/categories", 1, 100},
		{"explicit", "/categories?page=3&per_page=50", 3, 50},
		{"per_page clamped high", "/categories?per_page=999", 1, 200},
		{"per_page clamped low", "/categories?per_page=0", 1, 1},
		{"negative page clamped", "/categories?page=-2", 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := ParseCategoryListOptions(httptest.NewRequest("GET", tt.url, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, opts.Page)
			assert.Equal(t, tt.wantPerPage, opts.PerPage)
		})
	}
}

func TestParseCategoryListOptionsRejectsGarbage(t *testing.T) {
	_, err := ParseCategoryListOptions(httptest.NewRequest("GET", "/categories?page=abc", nil))
	assert.Error(t, err)
}

func TestParseProductListOptions(t *testing.T) {
	opts, err := ParseProductListOptions(httptest.NewRequest("GET", "/products?search=rose&active=1&en_stock=false&sort_by=price&sort_order=ASC", nil))
	require.NoError(t, err)

	assert.Equal(t, "rose", opts.Search)
	require.NotNil(t, opts.Active)
	assert.True(t, *opts.Active)
	require.NotNil(t, opts.InStock)
	assert.False(t, *opts.InStock)
	assert.Equal(t, "price", opts.SortBy)
	assert.Equal(t, "asc", opts.SortOrder)
	assert.Equal(t, 15, opts.PerPage)
}

func TestParseProductListOptionsPerPageCap(t *testing.T) {
	opts, err := ParseProductListOptions(httptest.NewRequest("GET", "/products?per_page=500", nil))
	require.NoError(t, err)
	assert.Equal(t, 100, opts.PerPage)
}

func TestParseServiceListOptionsActiveFilter(t *testing.T) {
	opts, err := ParseServiceListOptions(httptest.NewRequest("GET", "/services?is_active=0", nil))
	require.NoError(t, err)
	require.NotNil(t, opts.IsActive)
	assert.False(t, *opts.IsActive)

	opts, err = ParseServiceListOptions(httptest.NewRequest("GET", "/services", nil))
	require.NoError(t, err)
	assert.Nil(t, opts.IsActive)
}

func TestParseProjectListOptionsLimit(t *testing.T) {
	opts, err := ParseProjectListOptions(httptest.NewRequest("GET", "/projects?limit=6", nil))
	require.NoError(t, err)
	assert.Equal(t, 6, opts.Limit)

	opts, err = ParseProjectListOptions(httptest.NewRequest("GET", "/projects", nil))
	require.NoError(t, err)
	assert.Equal(t, 0, opts.Limit)
}

func TestParseIDParam(t *testing.T) {
	id, ok := ParseIDParam("42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok = ParseIDParam("0")
	assert.False(t, ok)
	_, ok = ParseIDParam("abc")
	assert.False(t, ok)
}
