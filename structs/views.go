package structs

import (
	"strconv"
	"time"
	"vitrine_server/storage"
	"vitrine_server/structs/tables"
)

// View DTOs returned by the API. Image paths are stored relative and
// absolutized here with the public base URL; mapping is pure.

const viewDateLayout = "02 Jan 2006"

type CategoryView struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CreatorView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ProductView struct {
	ID              int64        `json:"id"`
	Name            string       `json:"name"`
	Price           float64      `json:"price"`
	Description     *string      `json:"description"`
	PrimaryImage    *string      `json:"image_principale"`
	SecondaryImages []string     `json:"images_secondaires"`
	InStock         bool         `json:"en_stock"`
	Active          bool         `json:"active"`
	CreatedBy       *CreatorView `json:"created_by,omitempty"`
	CreatedAt       string       `json:"created_at"`
	UpdatedAt       string       `json:"updated_at"`
}

type ProjectView struct {
	ID              int64         `json:"id"`
	UUID            string        `json:"uuid"`
	Title           string        `json:"title"`
	Description     *string       `json:"description"`
	Image           *string       `json:"image"`
	SecondaryImages []string      `json:"secondary_images"`
	Category        *CategoryView `json:"category,omitempty"`
	CreatedAt       string        `json:"created_at"`
}

type ServiceView struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Duration    int      `json:"duration"`
	IsActive    bool     `json:"is_active"`
	Image       *string  `json:"image"`
	Features    []string `json:"features"`
	CreatedAt   string   `json:"created_at"`
}

func NewCategoryView(c *tables.Category) CategoryView {
	return CategoryView{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		CreatedAt: formatViewDate(c.CreatedAt),
		UpdatedAt: formatViewDate(c.UpdatedAt),
	}
}

func NewCategoryViews(categories []tables.Category) []CategoryView {
	views := make([]CategoryView, 0, len(categories))
	for i := range categories {
		views = append(views, NewCategoryView(&categories[i]))
	}
	return views
}

func NewProductView(baseURL string, p *tables.Product) ProductView {
	view := ProductView{
		ID:              p.ID,
		Name:            p.Name,
		Price:           p.Price,
		Description:     p.Description,
		PrimaryImage:    publicURLPtr(baseURL, p.PrimaryImage),
		SecondaryImages: publicURLs(baseURL, p.SecondaryImages),
		InStock:         p.InStock,
		Active:          p.Active,
		CreatedAt:       formatViewDate(p.CreatedAt),
		UpdatedAt:       formatViewDate(p.UpdatedAt),
	}
	if p.CreatedBy != nil {
		view.CreatedBy = &CreatorView{
			ID:    p.CreatedBy.ID,
			Name:  p.CreatedBy.Name,
			Email: p.CreatedBy.Email,
		}
	}
	return view
}

func NewProductViews(baseURL string, products []tables.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, NewProductView(baseURL, &products[i]))
	}
	return views
}

func NewProjectView(baseURL string, p *tables.Project) ProjectView {
	view := ProjectView{
		ID:              p.ID,
		UUID:            p.UUID,
		Title:           p.Title,
		Description:     p.Description,
		Image:           publicURLPtr(baseURL, p.Image),
		SecondaryImages: publicURLs(baseURL, p.SecondaryImages),
		CreatedAt:       formatViewDate(p.CreatedAt),
	}
	if p.Category != nil {
		cat := NewCategoryView(p.Category)
		view.Category = &cat
	}
	return view
}

func NewProjectViews(baseURL string, projects []tables.Project) []ProjectView {
	views := make([]ProjectView, 0, len(projects))
	for i := range projects {
		views = append(views, NewProjectView(baseURL, &projects[i]))
	}
	return views
}

// NewServiceView flattens item titles into features, preserving order.
func NewServiceView(baseURL string, s *tables.Service) ServiceView {
	features := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		features = append(features, item.Title)
	}
	return ServiceView{
		ID:          strconv.FormatInt(s.ID, 10),
		Name:        s.Name,
		Slug:        s.Slug,
		Description: s.Description,
		Price:       s.Price,
		Duration:    s.Duration,
		IsActive:    s.IsActive,
		Image:       publicURLPtr(baseURL, s.Image),
		Features:    features,
		CreatedAt:   formatViewDate(s.CreatedAt),
	}
}

func NewServiceViews(baseURL string, services []tables.Service) []ServiceView {
	views := make([]ServiceView, 0, len(services))
	for i := range services {
		views = append(views, NewServiceView(baseURL, &services[i]))
	}
	return views
}

func formatViewDate(t time.Time) string {
	return t.Format(viewDateLayout)
}

func publicURLPtr(base string, path *string) *string {
	if path == nil || *path == "" {
		return nil
	}
	u := storage.PublicURL(base, *path)
	return &u
}

// publicURLs maps each stored path to its public URL, dropping empty entries
// so stale placeholders never reach clients.
func publicURLs(base string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		out = append(out, storage.PublicURL(base, p))
	}
	return out
}
