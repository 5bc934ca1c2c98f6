package services

import (
	"vitrine_server/database"
	"vitrine_server/storage"
	"vitrine_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	CacheService    *CacheService
	HealthService   *HealthService
	CategoryService *CategoryService
	ProductService  *ProductService
	ProjectService  *ProjectService
	OfferingService *OfferingService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB, store storage.Store) *ServiceManager {
	cacheService := NewCacheService(logger, cfg)
	healthService := NewHealthService(logger, db)
	categoryService := NewCategoryService(logger, db, cacheService)
	productService := NewProductService(logger, db, store, cacheService)
	projectService := NewProjectService(logger, db, store, cacheService)
	offeringService := NewOfferingService(logger, db, store, cacheService)

	return &ServiceManager{
		CacheService:    cacheService,
		HealthService:   healthService,
		CategoryService: categoryService,
		ProductService:  productService,
		ProjectService:  projectService,
		OfferingService: offeringService,
	}
}
