package structs

import (
	"testing"
	"time"
	"vitrine_server/structs/tables"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://localhost:8082"

func strPtr(s string) *string { return &s }

func TestNewProductViewAbsolutizesImagePaths(t *testing.T) {
	created := time.Date(2026, time.March, 7, 12, 0, 0, 0, time.UTC)
	product := &tables.Product{
		ID:              1,
		Name:            "Bouquet",
		Price:           24.95,
		PrimaryImage:    strPtr("products/main.jpg"),
		SecondaryImages: []string{"products/secondary/a.jpg", "", "products/secondary/b.jpg"},
		InStock:         true,
		Active:          true,
		CreatedAt:       created,
		UpdatedAt:       created,
	}

	view := NewProductView(testBaseURL, product)

	require.NotNil(t, view.PrimaryImage)
	assert.Equal(t, "http://localhost:8082/storage/products/main.jpg", *view.PrimaryImage)
	assert.Equal(t, []string{
		"http://localhost:8082/storage/products/secondary/a.jpg",
		"http://localhost:8082/storage/products/secondary/b.jpg",
	}, view.SecondaryImages)
	assert.Equal(t, "07 Mar 2026", view.CreatedAt)
	assert.Nil(t, view.CreatedBy)
}

func TestNewProductViewAbsoluteURLPassthrough(t *testing.T) {
	product := &tables.Product{
		PrimaryImage: strPtr("https://cdn.example.com/x.jpg"),
	}

	view := NewProductView(testBaseURL, product)

	require.NotNil(t, view.PrimaryImage)
	assert.Equal(t, "https://cdn.example.com/x.jpg", *view.PrimaryImage)
}

func TestNewProductViewEmbedsCreator(t *testing.T) {
	product := &tables.Product{
		CreatedBy: &tables.User{ID: 7, Name: "Ana", Email: "ana@example.com"},
	}

	view := NewProductView(testBaseURL, product)

	require.NotNil(t, view.CreatedBy)
	assert.Equal(t, int64(7), view.CreatedBy.ID)
	assert.Equal(t, "Ana", view.CreatedBy.Name)
}

func TestNewProjectViewEmbedsCategory(t *testing.T) {
	project := &tables.Project{
		ID:    3,
		UUID:  "0b0e8f9e-1111-2222-3333-444444444444",
		Title: "Terrasse",
		Image: strPtr("projects/j.jpg"),
		Category: &tables.Category{
			ID:   2,
			Name: "Aménagement",
			Slug: "amenagement",
		},
	}

	view := NewProjectView(testBaseURL, project)

	require.NotNil(t, view.Category)
	assert.Equal(t, "amenagement", view.Category.Slug)
	require.NotNil(t, view.Image)
	assert.Equal(t, "http://localhost:8082/storage/projects/j.jpg", *view.Image)
	assert.Equal(t, project.UUID, view.UUID)
}

func TestNewServiceViewFeaturesInOrder(t *testing.T) {
	service := &tables.Service{
		ID:       12,
		Name:     "Plumbing",
		Slug:     "plumbing",
		Duration: 45,
		Items: []tables.ServiceItem{
			{ID: 1, Title: "Leak repair"},
			{ID: 2, Title: "Pipe install"},
		},
	}

	view := NewServiceView(testBaseURL, service)

	assert.Equal(t, "12", view.ID)
	assert.Equal(t, []string{"Leak repair", "Pipe install"}, view.Features)
	assert.Nil(t, view.Image)
}

func TestNewServiceViewNoItems(t *testing.T) {
	view := NewServiceView(testBaseURL, &tables.Service{ID: 1})

	assert.NotNil(t, view.Features)
	assert.Empty(t, view.Features)
}
