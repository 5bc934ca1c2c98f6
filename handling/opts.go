package handling

import (
	"net/http"
	"strconv"
	"strings"
	"vitrine_server/lib"
	"vitrine_server/structs"
)

// Query-parameter parsers for the listing endpoints. Out-of-range pagination
// values are clamped rather than rejected.

func parseListOptions(r *http.Request, defaultPerPage, maxPerPage int) (structs.ListOptions, error) {
	query := r.URL.Query()
	opts := structs.ListOptions{
		Page:    1,
		PerPage: defaultPerPage,
		Search:  strings.TrimSpace(query.Get("search")),
	}

	if page := query.Get("page"); page != "" {
		v, err := strconv.Atoi(page)
		if err != nil {
			return opts, err
		}
		opts.Page = max(v, 1)
	}

	if perPage := query.Get("per_page"); perPage != "" {
		v, err := strconv.Atoi(perPage)
		if err != nil {
			return opts, err
		}
		opts.PerPage = min(max(v, 1), maxPerPage)
	}

	opts.SortBy = strings.TrimSpace(query.Get("sort_by"))
	opts.SortOrder = strings.ToLower(strings.TrimSpace(query.Get("sort_order")))

	return opts, nil
}

func ParseCategoryListOptions(r *http.Request) (*structs.CategoryListOptions, error) {
	opts, err := parseListOptions(r, 100, 200)
	if err != nil {
		return nil, err
	}
	return &structs.CategoryListOptions{ListOptions: opts}, nil
}

func ParseProductListOptions(r *http.Request) (*structs.ProductListOptions, error) {
	opts, err := parseListOptions(r, 15, 100)
	if err != nil {
		return nil, err
	}

	out := &structs.ProductListOptions{ListOptions: opts}

	if active := r.URL.Query().Get("active"); active != "" {
		v, err := lib.ParseFlexibleBool(active)
		if err != nil {
			return nil, err
		}
		out.Active = &v
	}
	if inStock := r.URL.Query().Get("en_stock"); inStock != "" {
		v, err := lib.ParseFlexibleBool(inStock)
		if err != nil {
			return nil, err
		}
		out.InStock = &v
	}

	return out, nil
}

func ParseServiceListOptions(r *http.Request) (*structs.ServiceListOptions, error) {
	opts, err := parseListOptions(r, 15, 100)
	if err != nil {
		return nil, err
	}

	out := &structs.ServiceListOptions{ListOptions: opts}

	if isActive := r.URL.Query().Get("is_active"); isActive != "" {
		v, err := lib.ParseFlexibleBool(isActive)
		if err != nil {
			return nil, err
		}
		out.IsActive = &v
	}

	return out, nil
}

func ParseProjectListOptions(r *http.Request) (*structs.ProjectListOptions, error) {
	opts := &structs.ProjectListOptions{}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		v, err := strconv.Atoi(limit)
		if err != nil {
			return nil, err
		}
		opts.Limit = max(v, 0)
	}

	return opts, nil
}

// ParseIDParam parses a positive int64 path parameter.
func ParseIDParam(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
