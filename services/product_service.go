package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"
	"vitrine_server/database"
	"vitrine_server/lib"
	"vitrine_server/storage"
	"vitrine_server/structs"
	"vitrine_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
)

type ProductService struct {
	logger       *gecho.Logger
	db           *database.DB
	store        storage.Store
	cacheService *CacheService
}

func NewProductService(logger *gecho.Logger, db *database.DB, store storage.Store, cacheService *CacheService) *ProductService {
	return &ProductService{
		logger:       logger,
		db:           db,
		store:        store,
		cacheService: cacheService,
	}
}

const (
	productDefaultPerPage = 15
	productMaxPerPage     = 100

	productImagePrefix          = "products"
	productSecondaryImagePrefix = "products/secondary"
)

// ProductCreateInput carries the assembled multipart payload of a create.
// Files are validated before this struct is built.
type ProductCreateInput struct {
	Name              string  `validate:"required,min=1,max=255"`
	Price             float64 `validate:"gte=0"`
	Description       *string
	PrimaryFile       *multipart.FileHeader
	SecondaryFiles    []*multipart.FileHeader
	ExistingSecondary []string // pre-seeded refs, normalized before persist
	InStock           *bool    // default true
	Active            *bool    // default true
	CreatedBy         int64    `validate:"required"`
}

// ProductUpdateInput carries a partial update. Nil fields stay untouched. The
// retained secondary subset only applies when SecondarySubmitted is set.
type ProductUpdateInput struct {
	Name               *string `validate:"omitempty,min=1,max=255"`
	Price              *float64
	Description        *string
	PrimaryFile        *multipart.FileHeader
	SecondaryFiles     []*multipart.FileHeader
	ExistingSecondary  []string
	SecondarySubmitted bool
	InStock            *bool
	Active             *bool
}

// List returns products with creator relation and pagination metadata. Public
// calls are cached by query signature.
func (ps *ProductService) List(ctx context.Context, opts *structs.ProductListOptions) ([]tables.Product, database.ListMeta, error) {
	if opts == nil {
		opts = &structs.ProductListOptions{}
	}
	perPage := opts.PerPage
	if perPage == 0 {
		perPage = productDefaultPerPage
	}

	type cachedList struct {
		Data []tables.Product  `json:"data"`
		Meta database.ListMeta `json:"meta"`
	}
	cacheKey := ListCacheKey("products", fmt.Sprintf("p%d:pp%d:s%s:sb%s:so%s:a%v:st%v",
		opts.Page, perPage, opts.Search, opts.SortBy, opts.SortOrder, formatBoolPtr(opts.Active), formatBoolPtr(opts.InStock)))

	if cached, err := GetCachedList[cachedList](ps.cacheService, cacheKey); err != nil {
		ps.logger.Warn("Failed to read product list cache", gecho.Field("error", err))
	} else if cached != nil {
		return cached.Data, cached.Meta, nil
	}

	query := database.Query[tables.Product](ps.db).
		Relation("CreatedBy").
		Timeout(10 * time.Second)

	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		query = query.WhereRaw("(p.name ILIKE ? OR p.description ILIKE ?)", pattern, pattern)
	}
	if opts.Active != nil {
		query = query.Where("active", *opts.Active)
	}
	if opts.InStock != nil {
		query = query.Where("en_stock", *opts.InStock)
	}

	query = applyListSort(query, opts.SortBy, opts.SortOrder, map[string]bool{
		"name": true, "price": true, "created_at": true, "updated_at": true,
	})

	products, meta, err := query.Paginate(ctx, opts.Page, perPage, productMaxPerPage)
	if err != nil {
		ps.logger.Error("Failed to fetch products", gecho.Field("error", err))
		return nil, database.ListMeta{}, fmt.Errorf("failed to fetch products: %w", err)
	}

	if err := SetCachedList(ps.cacheService, cacheKey, cachedList{Data: products, Meta: meta}); err != nil {
		ps.logger.Warn("Failed to cache product list", gecho.Field("error", err))
	}

	return products, meta, nil
}

// GetByID returns the product with its creator, or lib.ErrNotFound.
func (ps *ProductService) GetByID(ctx context.Context, id int64) (*tables.Product, error) {
	product, err := database.Query[tables.Product](ps.db).
		Where("id", id).
		Relation("CreatedBy").
		First(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	if product == nil {
		return nil, lib.ErrNotFound
	}
	return product, nil
}

// Create uploads the submitted images, then persists the product in one
// transaction. Any failure removes every blob written for this request.
func (ps *ProductService) Create(ctx context.Context, input *ProductCreateInput) (*tables.Product, error) {
	pending := &pendingUploads{}

	product, err := ps.create(ctx, input, pending)
	if err != nil {
		pending.cleanup(ps.store, ps.logger)
		return nil, err
	}

	ps.cacheService.InvalidateEntityLists("products")
	ps.logger.Info("Product created", gecho.Field("id", product.ID), gecho.Field("name", product.Name))
	return product, nil
}

func (ps *ProductService) create(ctx context.Context, input *ProductCreateInput, pending *pendingUploads) (*tables.Product, error) {
	var primary *string
	if input.PrimaryFile != nil {
		path, err := uploadHeader(ctx, ps.store, pending, productImagePrefix, input.PrimaryFile)
		if err != nil {
			return nil, err
		}
		primary = &path
	}

	secondary := normalizeRefs(input.ExistingSecondary)
	uploaded, err := uploadHeaders(ctx, ps.store, pending, productSecondaryImagePrefix, input.SecondaryFiles)
	if err != nil {
		return nil, err
	}
	secondary = append(secondary, uploaded...)

	product := &tables.Product{
		Name:            input.Name,
		Price:           input.Price,
		Description:     input.Description,
		PrimaryImage:    primary,
		SecondaryImages: secondary,
		InStock:         boolOrDefault(input.InStock, true),
		Active:          boolOrDefault(input.Active, true),
		CreatedByID:     input.CreatedBy,
	}

	err = ps.db.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(product).Returning("*").Exec(ctx)
		return err
	})
	if err != nil {
		ps.logger.Error("Failed to persist product", gecho.Field("error", err), gecho.Field("name", input.Name))
		return nil, fmt.Errorf("failed to persist product: %w", lib.MapPgError(err))
	}

	return product, nil
}

// Update applies a partial update. New uploads are cleaned up on failure;
// blobs dropped from the retained subset are deleted only after commit.
func (ps *ProductService) Update(ctx context.Context, id int64, input *ProductUpdateInput) (*tables.Product, error) {
	current, err := ps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pending := &pendingUploads{}
	updated, removed, err := ps.update(ctx, current, input, pending)
	if err != nil {
		pending.cleanup(ps.store, ps.logger)
		return nil, err
	}

	deleteBlobs(ps.store, ps.logger, removed)
	ps.cacheService.InvalidateEntityLists("products")
	return updated, nil
}

func (ps *ProductService) update(ctx context.Context, current *tables.Product, input *ProductUpdateInput, pending *pendingUploads) (*tables.Product, []string, error) {
	product := *current

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}
	if input.Active != nil {
		product.Active = *input.Active
	}

	var removed []string

	if input.PrimaryFile != nil {
		if product.PrimaryImage != nil {
			deleteBlobs(ps.store, ps.logger, []string{*product.PrimaryImage})
		}
		path, err := uploadHeader(ctx, ps.store, pending, productImagePrefix, input.PrimaryFile)
		if err != nil {
			return nil, nil, err
		}
		product.PrimaryImage = &path
	}

	retained := product.SecondaryImages
	if input.SecondarySubmitted {
		retained = normalizeRefs(input.ExistingSecondary)
		removed = diffRetained(current.SecondaryImages, retained)
	}

	uploaded, err := uploadHeaders(ctx, ps.store, pending, productSecondaryImagePrefix, input.SecondaryFiles)
	if err != nil {
		return nil, nil, err
	}
	product.SecondaryImages = append(retained, uploaded...)
	product.UpdatedAt = time.Now()

	err = ps.db.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().Model(&product).WherePK().Exec(ctx)
		return err
	})
	if err != nil {
		ps.logger.Error("Failed to persist product update", gecho.Field("error", err), gecho.Field("id", product.ID))
		return nil, nil, fmt.Errorf("failed to persist product update: %w", lib.MapPgError(err))
	}

	return &product, removed, nil
}

// Delete removes the product's blobs best-effort, then the row.
func (ps *ProductService) Delete(ctx context.Context, id int64) error {
	product, err := ps.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if product.PrimaryImage != nil {
		deleteBlobs(ps.store, ps.logger, []string{*product.PrimaryImage})
	}
	deleteBlobs(ps.store, ps.logger, product.SecondaryImages)

	deleted, err := database.DeleteByID[tables.Product](ctx, ps.db, id)
	if err != nil {
		ps.logger.Error("Failed to delete product", gecho.Field("error", err), gecho.Field("id", id))
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !deleted {
		return lib.ErrNotFound
	}

	ps.cacheService.InvalidateEntityLists("products")
	ps.logger.Info("Product deleted", gecho.Field("id", id))
	return nil
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func formatBoolPtr(v *bool) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%v", *v)
}

// applyListSort applies a whitelisted sort column, defaulting to newest first.
func applyListSort[T any](query *database.QueryBuilder[T], sortBy, sortOrder string, allowed map[string]bool) *database.QueryBuilder[T] {
	if !allowed[sortBy] {
		sortBy = "created_at"
	}
	direction := database.DESC
	if sortOrder == "asc" || sortOrder == "ASC" {
		direction = database.ASC
	}
	return query.OrderBy(sortBy, direction).OrderBy("id", database.ASC)
}
