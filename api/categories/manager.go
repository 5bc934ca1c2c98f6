package categories

import (
	"vitrine_server/api/middleware"
	"vitrine_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CategoryRoutesManager struct {
	logger          *gecho.Logger
	categoryService *services.CategoryService
	mw              *middleware.Middleware
}

func NewCategoryRoutesManager(
	logger *gecho.Logger,
	categoryService *services.CategoryService,
	mw *middleware.Middleware,
) *CategoryRoutesManager {
	return &CategoryRoutesManager{
		logger:          logger,
		categoryService: categoryService,
		mw:              mw,
	}
}

func (crm *CategoryRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/categories", crm.FetchAllCategories)
	r.Get("/categories/{id}", crm.FetchCategoryByID)

	r.Group(func(r chi.Router) {
		r.Use(crm.mw.UserAuthMiddleware)
		r.Post("/categories", crm.CreateCategory)
		r.Put("/categories/{id}", crm.UpdateCategory)
		r.Delete("/categories/{id}", crm.DeleteCategory)
	})
}
