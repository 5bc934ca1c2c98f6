package structs

// ListOptions carries the common filter, sort and pagination parameters of the
// public listing endpoints. Entity-specific filters embed it.
type ListOptions struct {
	Page      int    `json:"page"`
	PerPage   int    `json:"per_page"`
	Search    string `json:"search,omitempty"`
	SortBy    string `json:"sort_by"`
	SortOrder string `json:"sort_order"` // asc or desc
}

type ProductListOptions struct {
	ListOptions
	Active  *bool `json:"active,omitempty"`
	InStock *bool `json:"en_stock,omitempty"`
}

type ServiceListOptions struct {
	ListOptions
	IsActive *bool `json:"is_active,omitempty"`
}

type CategoryListOptions struct {
	ListOptions
}

// ProjectListOptions mirrors the original listing: newest first, optional cap.
type ProjectListOptions struct {
	Limit int `json:"limit,omitempty"`
}
