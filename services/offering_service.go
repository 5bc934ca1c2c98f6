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

// OfferingService manages the services catalog (the rows in the services
// table) and their feature items.
type OfferingService struct {
	logger       *gecho.Logger
	db           *database.DB
	store        storage.Store
	cacheService *CacheService
}

func NewOfferingService(logger *gecho.Logger, db *database.DB, store storage.Store, cacheService *CacheService) *OfferingService {
	return &OfferingService{
		logger:       logger,
		db:           db,
		store:        store,
		cacheService: cacheService,
	}
}

const (
	offeringDefaultPerPage = 15
	offeringMaxPerPage     = 100

	offeringImagePrefix = "services"
)

// OfferingCreateInput carries the assembled payload of a create. Items arrive
// as plain titles.
type OfferingCreateInput struct {
	Name        string `validate:"required,min=1,max=255"`
	Description string `validate:"required"`
	Price       *float64
	Duration    *int
	IsActive    *bool
	ImageFile   *multipart.FileHeader
	Items       []string
}

// OfferingUpdateInput carries a partial update. Items, when submitted, are
// reconciled against the existing rows: id-matched rows update, id-less rows
// create, omitted or delete-flagged rows are removed.
type OfferingUpdateInput struct {
	Name           *string `validate:"omitempty,min=1,max=255"`
	Description    *string
	Price          *float64
	Duration       *int
	IsActive       *bool
	ImageFile      *multipart.FileHeader
	Items          []ServiceItemInput
	ItemsSubmitted bool
}

// List returns services with their items and pagination metadata.
func (os *OfferingService) List(ctx context.Context, opts *structs.ServiceListOptions) ([]tables.Service, database.ListMeta, error) {
	if opts == nil {
		opts = &structs.ServiceListOptions{}
	}
	perPage := opts.PerPage
	if perPage == 0 {
		perPage = offeringDefaultPerPage
	}

	type cachedList struct {
		Data []tables.Service  `json:"data"`
		Meta database.ListMeta `json:"meta"`
	}
	cacheKey := ListCacheKey("services", fmt.Sprintf("p%d:pp%d:s%s:sb%s:so%s:a%s",
		opts.Page, perPage, opts.Search, opts.SortBy, opts.SortOrder, formatBoolPtr(opts.IsActive)))

	if cached, err := GetCachedList[cachedList](os.cacheService, cacheKey); err != nil {
		os.logger.Warn("Failed to read service list cache", gecho.Field("error", err))
	} else if cached != nil {
		return cached.Data, cached.Meta, nil
	}

	query := database.Query[tables.Service](os.db).
		Relation("Items").
		Timeout(10 * time.Second)

	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		query = query.WhereRaw("(s.name ILIKE ? OR s.description ILIKE ?)", pattern, pattern)
	}
	if opts.IsActive != nil {
		query = query.Where("is_active", *opts.IsActive)
	}

	query = applyListSort(query, opts.SortBy, opts.SortOrder, map[string]bool{
		"name": true, "price": true, "duration": true, "created_at": true,
	})

	services, meta, err := query.Paginate(ctx, opts.Page, perPage, offeringMaxPerPage)
	if err != nil {
		os.logger.Error("Failed to fetch services", gecho.Field("error", err))
		return nil, database.ListMeta{}, fmt.Errorf("failed to fetch services: %w", err)
	}

	if err := SetCachedList(os.cacheService, cacheKey, cachedList{Data: services, Meta: meta}); err != nil {
		os.logger.Warn("Failed to cache service list", gecho.Field("error", err))
	}

	return services, meta, nil
}

// GetByID returns the service with its items, or lib.ErrNotFound.
func (os *OfferingService) GetByID(ctx context.Context, id int64) (*tables.Service, error) {
	service, err := database.Query[tables.Service](os.db).
		Where("id", id).
		Relation("Items").
		First(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service: %w", err)
	}
	if service == nil {
		return nil, lib.ErrNotFound
	}
	return service, nil
}

// Create uploads the image, persists the service and its items in one
// transaction, and cleans up blobs on failure.
func (os *OfferingService) Create(ctx context.Context, input *OfferingCreateInput) (*tables.Service, error) {
	pending := &pendingUploads{}

	service, err := os.create(ctx, input, pending)
	if err != nil {
		pending.cleanup(os.store, os.logger)
		return nil, err
	}

	os.cacheService.InvalidateEntityLists("services")
	os.logger.Info("Service created", gecho.Field("id", service.ID), gecho.Field("slug", service.Slug))
	return service, nil
}

func (os *OfferingService) create(ctx context.Context, input *OfferingCreateInput, pending *pendingUploads) (*tables.Service, error) {
	var image *string
	if input.ImageFile != nil {
		path, err := uploadHeader(ctx, os.store, pending, offeringImagePrefix, input.ImageFile)
		if err != nil {
			return nil, err
		}
		image = &path
	}

	service := &tables.Service{
		Name:        input.Name,
		Slug:        lib.Slugify(input.Name),
		Description: input.Description,
		Price:       floatOrDefault(input.Price, 0),
		Duration:    intOrDefault(input.Duration, 30),
		IsActive:    boolOrDefault(input.IsActive, true),
		Image:       image,
	}

	err := os.db.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(service).Returning("*").Exec(ctx); err != nil {
			return err
		}

		items := make([]tables.ServiceItem, 0, len(input.Items))
		for _, title := range input.Items {
			if title == "" {
				continue
			}
			items = append(items, tables.ServiceItem{ServiceID: service.ID, Title: title})
		}
		if len(items) == 0 {
			return nil
		}
		if _, err := tx.NewInsert().Model(&items).Returning("*").Exec(ctx); err != nil {
			return err
		}
		service.Items = items
		return nil
	})
	if err != nil {
		os.logger.Error("Failed to persist service", gecho.Field("error", err), gecho.Field("name", input.Name))
		return nil, fmt.Errorf("failed to persist service: %w", lib.MapPgError(err))
	}

	return service, nil
}

// Update applies a partial update. The slug is recomputed whenever the name
// changes; submitted items are reconciled inside the same transaction.
func (os *OfferingService) Update(ctx context.Context, id int64, input *OfferingUpdateInput) (*tables.Service, error) {
	current, err := os.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	pending := &pendingUploads{}
	updated, err := os.update(ctx, current, input, pending)
	if err != nil {
		pending.cleanup(os.store, os.logger)
		return nil, err
	}

	os.cacheService.InvalidateEntityLists("services")
	return updated, nil
}

func (os *OfferingService) update(ctx context.Context, current *tables.Service, input *OfferingUpdateInput, pending *pendingUploads) (*tables.Service, error) {
	service := *current
	service.Items = nil

	if input.Name != nil && *input.Name != service.Name {
		service.Name = *input.Name
		service.Slug = lib.Slugify(*input.Name)
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.Price != nil {
		service.Price = *input.Price
	}
	if input.Duration != nil {
		service.Duration = *input.Duration
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if input.ImageFile != nil {
		if service.Image != nil {
			deleteBlobs(os.store, os.logger, []string{*service.Image})
		}
		path, err := uploadHeader(ctx, os.store, pending, offeringImagePrefix, input.ImageFile)
		if err != nil {
			return nil, err
		}
		service.Image = &path
	}

	service.UpdatedAt = time.Now()

	err := os.db.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().Model(&service).WherePK().Exec(ctx); err != nil {
			return err
		}
		if !input.ItemsSubmitted {
			return nil
		}

		existing := make([]int64, 0, len(current.Items))
		for _, item := range current.Items {
			existing = append(existing, item.ID)
		}
		plan := reconcileItems(existing, input.Items)

		for id, title := range plan.ToUpdate {
			if _, err := tx.NewUpdate().Model((*tables.ServiceItem)(nil)).
				Set("title = ?", title).
				Where("id = ?", id).
				Exec(ctx); err != nil {
				return err
			}
		}
		if len(plan.ToDelete) > 0 {
			if _, err := tx.NewDelete().Model((*tables.ServiceItem)(nil)).
				Where("id IN (?)", bun.In(plan.ToDelete)).
				Exec(ctx); err != nil {
				return err
			}
		}
		if len(plan.ToCreate) > 0 {
			items := make([]tables.ServiceItem, 0, len(plan.ToCreate))
			for _, title := range plan.ToCreate {
				items = append(items, tables.ServiceItem{ServiceID: service.ID, Title: title})
			}
			if _, err := tx.NewInsert().Model(&items).Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		os.logger.Error("Failed to persist service update", gecho.Field("error", err), gecho.Field("id", service.ID))
		return nil, fmt.Errorf("failed to persist service update: %w", lib.MapPgError(err))
	}

	// Reload items so the response reflects the reconciled state.
	return os.GetByID(ctx, service.ID)
}

// Delete removes the service's blob best-effort, then its items and row.
func (os *OfferingService) Delete(ctx context.Context, id int64) error {
	service, err := os.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if service.Image != nil {
		deleteBlobs(os.store, os.logger, []string{*service.Image})
	}

	err = os.db.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*tables.ServiceItem)(nil)).
			Where("service_id = ?", id).
			Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewDelete().Model((*tables.Service)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		return err
	})
	if err != nil {
		os.logger.Error("Failed to delete service", gecho.Field("error", err), gecho.Field("id", id))
		return fmt.Errorf("failed to delete service: %w", err)
	}

	os.cacheService.InvalidateEntityLists("services")
	os.logger.Info("Service deleted", gecho.Field("id", id))
	return nil
}

func floatOrDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func intOrDefault(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
