package products

import (
	"vitrine_server/api/middleware"
	"vitrine_server/services"
	"vitrine_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ProductRoutesManager struct {
	logger         *gecho.Logger
	cfg            *structs.Config
	productService *services.ProductService
	mw             *middleware.Middleware
}

func NewProductRoutesManager(
	logger *gecho.Logger,
	cfg *structs.Config,
	productService *services.ProductService,
	mw *middleware.Middleware,
) *ProductRoutesManager {
	return &ProductRoutesManager{
		logger:         logger,
		cfg:            cfg,
		productService: productService,
		mw:             mw,
	}
}

func (prm *ProductRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/products", prm.FetchAllProducts)
	r.Get("/products/{id}", prm.FetchProductByID)

	r.Group(func(r chi.Router) {
		r.Use(prm.mw.UserAuthMiddleware)
		r.Post("/products", prm.CreateProduct)
		// The admin UI posts multipart updates with a method override, so
		// POST is accepted alongside PUT and PATCH.
		r.Post("/products/{id}", prm.UpdateProduct)
		r.Put("/products/{id}", prm.UpdateProduct)
		r.Patch("/products/{id}", prm.UpdateProduct)
		r.Delete("/products/{id}", prm.DeleteProduct)
	})
}
