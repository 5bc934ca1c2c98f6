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
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type ProjectService struct {
	logger       *gecho.Logger
	db           *database.DB
	store        storage.Store
	cacheService *CacheService
}

func NewProjectService(logger *gecho.Logger, db *database.DB, store storage.Store, cacheService *CacheService) *ProjectService {
	return &ProjectService{
		logger:       logger,
		db:           db,
		store:        store,
		cacheService: cacheService,
	}
}

const (
	projectImagePrefix          = "projects"
	projectSecondaryImagePrefix = "projects/secondary"
)

// ProjectCreateInput carries the assembled multipart payload of a create. The
// main image file is required.
type ProjectCreateInput struct {
	Title             string `validate:"required,min=1,max=255"`
	Description       *string
	ImageFile         *multipart.FileHeader
	SecondaryFiles    []*multipart.FileHeader
	ExistingSecondary []string
	CategoryID        int64 `validate:"required"`
}

// ProjectUpdateInput carries a partial update.
type ProjectUpdateInput struct {
	Title              *string `validate:"omitempty,min=1,max=255"`
	Description        *string
	ImageFile          *multipart.FileHeader
	SecondaryFiles     []*multipart.FileHeader
	ExistingSecondary  []string
	SecondarySubmitted bool
	CategoryID         *int64
}

// List returns projects newest first with their category, optionally capped.
func (ps *ProjectService) List(ctx context.Context, opts *structs.ProjectListOptions) ([]tables.Project, error) {
	if opts == nil {
		opts = &structs.ProjectListOptions{}
	}

	cacheKey := ListCacheKey("projects", fmt.Sprintf("l%d", opts.Limit))
	if cached, err := GetCachedList[[]tables.Project](ps.cacheService, cacheKey); err != nil {
		ps.logger.Warn("Failed to read project list cache", gecho.Field("error", err))
	} else if cached != nil {
		return *cached, nil
	}

	query := database.Query[tables.Project](ps.db).
		Relation("Category").
		OrderBy("created_at", database.DESC).
		OrderBy("id", database.DESC).
		Timeout(10 * time.Second)

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	projects, err := query.All(ctx)
	if err != nil {
		ps.logger.Error("Failed to fetch projects", gecho.Field("error", err))
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}

	if err := SetCachedList(ps.cacheService, cacheKey, projects); err != nil {
		ps.logger.Warn("Failed to cache project list", gecho.Field("error", err))
	}
	return projects, nil
}

// GetByID returns the project with its category, or lib.ErrNotFound.
func (ps *ProjectService) GetByID(ctx context.Context, id int64) (*tables.Project, error) {
	project, err := database.Query[tables.Project](ps.db).
		Where("id", id).
		Relation("Category").
		First(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}
	if project == nil {
		return nil, lib.ErrNotFound
	}
	return project, nil
}

// Create uploads the submitted images and persists the project. The business
// uuid is assigned here, once, and never changes afterwards.
func (ps *ProjectService) Create(ctx context.Context, input *ProjectCreateInput) (*tables.Project, error) {
	category, err := database.FindByID[tables.Category](ctx, ps.db, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to check category: %w", err)
	}
	if category == nil {
		validationErr := lib.NewValidationError()
		validationErr.Add("category_id", "does not exist")
		return nil, validationErr
	}

	pending := &pendingUploads{}
	project, err := ps.create(ctx, input, pending)
	if err != nil {
		pending.cleanup(ps.store, ps.logger)
		return nil, err
	}

	project.Category = category
	ps.cacheService.InvalidateEntityLists("projects")
	ps.logger.Info("Project created", gecho.Field("id", project.ID), gecho.Field("uuid", project.UUID))
	return project, nil
}

func (ps *ProjectService) create(ctx context.Context, input *ProjectCreateInput, pending *pendingUploads) (*tables.Project, error) {
	var image *string
	if input.ImageFile != nil {
		path, err := uploadHeader(ctx, ps.store, pending, projectImagePrefix, input.ImageFile)
		if err != nil {
			return nil, err
		}
		image = &path
	}

	secondary := normalizeRefs(input.ExistingSecondary)
	uploaded, err := uploadHeaders(ctx, ps.store, pending, projectSecondaryImagePrefix, input.SecondaryFiles)
	if err != nil {
		return nil, err
	}
	secondary = append(secondary, uploaded...)

	project := &tables.Project{
		UUID:            uuid.NewString(),
		Title:           input.Title,
		Description:     input.Description,
		Image:           image,
		SecondaryImages: secondary,
		CategoryID:      input.CategoryID,
	}

	err = ps.db.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(project).Returning("*").Exec(ctx)
		return err
	})
	if err != nil {
		ps.logger.Error("Failed to persist project", gecho.Field("error", err), gecho.Field("title", input.Title))
		return nil, fmt.Errorf("failed to persist project: %w", lib.MapPgError(err))
	}

	return project, nil
}

// Update applies a partial update with the same blob lifecycle as products.
func (ps *ProjectService) Update(ctx context.Context, id int64, input *ProjectUpdateInput) (*tables.Project, error) {
	current, err := ps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		category, err := database.FindByID[tables.Category](ctx, ps.db, *input.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to check category: %w", err)
		}
		if category == nil {
			validationErr := lib.NewValidationError()
			validationErr.Add("category_id", "does not exist")
			return nil, validationErr
		}
	}

	pending := &pendingUploads{}
	updated, removed, err := ps.update(ctx, current, input, pending)
	if err != nil {
		pending.cleanup(ps.store, ps.logger)
		return nil, err
	}

	deleteBlobs(ps.store, ps.logger, removed)
	ps.cacheService.InvalidateEntityLists("projects")
	return updated, nil
}

func (ps *ProjectService) update(ctx context.Context, current *tables.Project, input *ProjectUpdateInput, pending *pendingUploads) (*tables.Project, []string, error) {
	project := *current
	project.Category = nil

	if input.Title != nil {
		project.Title = *input.Title
	}
	if input.Description != nil {
		project.Description = input.Description
	}
	if input.CategoryID != nil {
		project.CategoryID = *input.CategoryID
	}

	var removed []string

	if input.ImageFile != nil {
		if project.Image != nil {
			deleteBlobs(ps.store, ps.logger, []string{*project.Image})
		}
		path, err := uploadHeader(ctx, ps.store, pending, projectImagePrefix, input.ImageFile)
		if err != nil {
			return nil, nil, err
		}
		project.Image = &path
	}

	retained := project.SecondaryImages
	if input.SecondarySubmitted {
		retained = normalizeRefs(input.ExistingSecondary)
		removed = diffRetained(current.SecondaryImages, retained)
	}

	uploaded, err := uploadHeaders(ctx, ps.store, pending, projectSecondaryImagePrefix, input.SecondaryFiles)
	if err != nil {
		return nil, nil, err
	}
	project.SecondaryImages = append(retained, uploaded...)
	project.UpdatedAt = time.Now()

	err = ps.db.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().Model(&project).WherePK().Exec(ctx)
		return err
	})
	if err != nil {
		ps.logger.Error("Failed to persist project update", gecho.Field("error", err), gecho.Field("id", project.ID))
		return nil, nil, fmt.Errorf("failed to persist project update: %w", lib.MapPgError(err))
	}

	return &project, removed, nil
}

// DeleteSecondaryImage removes a single secondary image by its (normalized)
// path. A path absent from the list is lib.ErrNotFound with no side effect.
func (ps *ProjectService) DeleteSecondaryImage(ctx context.Context, id int64, imagePath string) (*tables.Project, error) {
	project, err := ps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target := storage.NormalizePath(imagePath)
	remaining, found := removeFirst(project.SecondaryImages, target)
	if !found {
		return nil, lib.ErrNotFound
	}

	project.SecondaryImages = remaining
	project.UpdatedAt = time.Now()
	category := project.Category
	project.Category = nil

	err = ps.db.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().Model(project).WherePK().Exec(ctx)
		return err
	})
	if err != nil {
		ps.logger.Error("Failed to remove secondary image", gecho.Field("error", err), gecho.Field("id", id))
		return nil, fmt.Errorf("failed to remove secondary image: %w", err)
	}

	deleteBlobs(ps.store, ps.logger, []string{target})
	project.Category = category
	ps.cacheService.InvalidateEntityLists("projects")
	return project, nil
}

// Delete removes the project's blobs best-effort, then the row.
func (ps *ProjectService) Delete(ctx context.Context, id int64) error {
	project, err := ps.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if project.Image != nil {
		deleteBlobs(ps.store, ps.logger, []string{*project.Image})
	}
	deleteBlobs(ps.store, ps.logger, project.SecondaryImages)

	deleted, err := database.DeleteByID[tables.Project](ctx, ps.db, id)
	if err != nil {
		ps.logger.Error("Failed to delete project", gecho.Field("error", err), gecho.Field("id", id))
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if !deleted {
		return lib.ErrNotFound
	}

	ps.cacheService.InvalidateEntityLists("projects")
	ps.logger.Info("Project deleted", gecho.Field("id", id))
	return nil
}
