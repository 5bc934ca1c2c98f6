package services

import (
	"context"
	"fmt"
	"time"
	"vitrine_server/database"
	"vitrine_server/lib"
	"vitrine_server/structs"
	"vitrine_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

type CategoryService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewCategoryService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *CategoryService {
	return &CategoryService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

// CategoryInput carries the writable category fields. Slug defaults to the
// slugified name when absent.
type CategoryInput struct {
	Name string  `validate:"required,min=1,max=255"`
	Slug *string `validate:"omitempty,min=1,max=255"`
}

const (
	categoryDefaultPerPage = 100
	categoryMaxPerPage     = 200
)

// List returns categories ordered by name with pagination metadata.
func (cs *CategoryService) List(ctx context.Context, opts *structs.CategoryListOptions) ([]tables.Category, database.ListMeta, error) {
	if opts == nil {
		opts = &structs.CategoryListOptions{}
	}
	perPage := opts.PerPage
	if perPage == 0 {
		perPage = categoryDefaultPerPage
	}

	type cachedList struct {
		Data []tables.Category `json:"data"`
		Meta database.ListMeta `json:"meta"`
	}
	cacheKey := ListCacheKey("categories", fmt.Sprintf("p%d:pp%d:s%s", opts.Page, perPage, opts.Search))

	if cached, err := GetCachedList[cachedList](cs.cacheService, cacheKey); err != nil {
		cs.logger.Warn("Failed to read category list cache", gecho.Field("error", err))
	} else if cached != nil {
		return cached.Data, cached.Meta, nil
	}

	query := database.Query[tables.Category](cs.db).
		OrderBy("name", database.ASC).
		Timeout(10 * time.Second)

	if opts.Search != "" {
		query = query.WhereRaw("name ILIKE ?", "%"+opts.Search+"%")
	}

	categories, meta, err := query.Paginate(ctx, opts.Page, perPage, categoryMaxPerPage)
	if err != nil {
		cs.logger.Error("Failed to fetch categories", gecho.Field("error", err))
		return nil, database.ListMeta{}, fmt.Errorf("failed to fetch categories: %w", err)
	}

	if err := SetCachedList(cs.cacheService, cacheKey, cachedList{Data: categories, Meta: meta}); err != nil {
		cs.logger.Warn("Failed to cache category list", gecho.Field("error", err))
	}

	return categories, meta, nil
}

// GetByID returns the category or lib.ErrNotFound.
func (cs *CategoryService) GetByID(ctx context.Context, id int64) (*tables.Category, error) {
	category, err := database.FindByID[tables.Category](ctx, cs.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	if category == nil {
		return nil, lib.ErrNotFound
	}
	return category, nil
}

// resolveCategorySlug returns the explicitly submitted slug, or one derived
// from the name when absent.
func resolveCategorySlug(name string, slug *string) string {
	if slug != nil && *slug != "" {
		return *slug
	}
	return lib.Slugify(name)
}

// Create inserts a category. Name collisions surface as lib.ErrConflict.
func (cs *CategoryService) Create(ctx context.Context, input *CategoryInput) (*tables.Category, error) {
	category := &tables.Category{
		Name: input.Name,
		Slug: resolveCategorySlug(input.Name, input.Slug),
	}

	created, err := database.Query[tables.Category](cs.db).Insert(ctx, category)
	if err != nil {
		if mapped := lib.MapPgError(err); mapped == lib.ErrConflict {
			return nil, lib.ErrConflict
		}
		cs.logger.Error("Failed to create category", gecho.Field("error", err), gecho.Field("name", input.Name))
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	cs.cacheService.InvalidateEntityLists("categories")
	cs.logger.Info("Category created", gecho.Field("id", created.ID), gecho.Field("slug", created.Slug))
	return created, nil
}

// Update applies the submitted fields. The slug follows the new name unless
// one was submitted explicitly.
func (cs *CategoryService) Update(ctx context.Context, id int64, input *CategoryInput) (*tables.Category, error) {
	category, err := cs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = input.Name
	category.Slug = resolveCategorySlug(input.Name, input.Slug)
	category.UpdatedAt = time.Now()

	_, err = database.Query[tables.Category](cs.db).
		Where("id", id).
		Update(ctx, map[string]any{
			"name":       category.Name,
			"slug":       category.Slug,
			"updated_at": category.UpdatedAt,
		})
	if err != nil {
		if mapped := lib.MapPgError(err); mapped == lib.ErrConflict {
			return nil, lib.ErrConflict
		}
		cs.logger.Error("Failed to update category", gecho.Field("error", err), gecho.Field("id", id))
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	cs.cacheService.InvalidateEntityLists("categories")
	return category, nil
}

// Delete removes a category. Deletion is restricted while projects still
// reference it, surfacing lib.ErrConflict.
func (cs *CategoryService) Delete(ctx context.Context, id int64) error {
	category, err := cs.GetByID(ctx, id)
	if err != nil {
		return err
	}

	referenced, err := database.Query[tables.Project](cs.db).
		Where("category_id", id).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("failed to check category references: %w", err)
	}
	if referenced {
		return lib.ErrConflict
	}

	deleted, err := database.DeleteByID[tables.Category](ctx, cs.db, id)
	if err != nil {
		// The reference check races with concurrent project writes; the FK
		// constraint is the backstop.
		if mapped := lib.MapPgError(err); mapped == lib.ErrConflict {
			return lib.ErrConflict
		}
		cs.logger.Error("Failed to delete category", gecho.Field("error", err), gecho.Field("id", id))
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if !deleted {
		return lib.ErrNotFound
	}

	cs.cacheService.InvalidateEntityLists("categories")
	cs.logger.Info("Category deleted", gecho.Field("id", id), gecho.Field("slug", category.Slug))
	return nil
}
