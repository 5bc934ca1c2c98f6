package offerings

import (
	"vitrine_server/api/middleware"
	"vitrine_server/services"
	"vitrine_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// OfferingRoutesManager serves the /services resource (the services catalog).
type OfferingRoutesManager struct {
	logger          *gecho.Logger
	cfg             *structs.Config
	offeringService *services.OfferingService
	mw              *middleware.Middleware
}

func NewOfferingRoutesManager(
	logger *gecho.Logger,
	cfg *structs.Config,
	offeringService *services.OfferingService,
	mw *middleware.Middleware,
) *OfferingRoutesManager {
	return &OfferingRoutesManager{
		logger:          logger,
		cfg:             cfg,
		offeringService: offeringService,
		mw:              mw,
	}
}

func (orm *OfferingRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/services", orm.FetchAllServices)
	r.Get("/services/{id}", orm.FetchServiceByID)

	r.Group(func(r chi.Router) {
		r.Use(orm.mw.UserAuthMiddleware)
		r.Post("/services", orm.CreateService)
		// The admin UI posts multipart updates with a method override, so
		// POST is accepted alongside PUT and PATCH.
		r.Post("/services/{id}", orm.UpdateService)
		r.Put("/services/{id}", orm.UpdateService)
		r.Patch("/services/{id}", orm.UpdateService)
		r.Delete("/services/{id}", orm.DeleteService)
	})
}
