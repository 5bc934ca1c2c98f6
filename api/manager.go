package api

import (
	"vitrine_server/api/categories"
	"vitrine_server/api/health"
	"vitrine_server/api/middleware"
	"vitrine_server/api/offerings"
	"vitrine_server/api/products"
	"vitrine_server/api/projects"
	"vitrine_server/services"
	"vitrine_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	categoryRoutes *categories.CategoryRoutesManager
	productRoutes  *products.ProductRoutesManager
	projectRoutes  *projects.ProjectRoutesManager
	offeringRoutes *offerings.OfferingRoutesManager
	healthRoutes   *health.HealthRoutesManager
}

func NewRouterManager(
	logger *gecho.Logger,
	cfg *structs.Config,
	sm *services.ServiceManager,
	mw *middleware.Middleware,
) *routerManager {
	return &routerManager{
		categoryRoutes: categories.NewCategoryRoutesManager(logger, sm.CategoryService, mw),
		productRoutes:  products.NewProductRoutesManager(logger, cfg, sm.ProductService, mw),
		projectRoutes:  projects.NewProjectRoutesManager(logger, cfg, sm.ProjectService, mw),
		offeringRoutes: offerings.NewOfferingRoutesManager(logger, cfg, sm.OfferingService, mw),
		healthRoutes:   health.NewHealthRoutesManager(sm.HealthService),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.categoryRoutes.RegisterRoutes(r)
	rm.productRoutes.RegisterRoutes(r)
	rm.projectRoutes.RegisterRoutes(r)
	rm.offeringRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
}
