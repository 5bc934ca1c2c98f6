package projects

import (
	"vitrine_server/api/middleware"
	"vitrine_server/services"
	"vitrine_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ProjectRoutesManager struct {
	logger         *gecho.Logger
	cfg            *structs.Config
	projectService *services.ProjectService
	mw             *middleware.Middleware
}

func NewProjectRoutesManager(
	logger *gecho.Logger,
	cfg *structs.Config,
	projectService *services.ProjectService,
	mw *middleware.Middleware,
) *ProjectRoutesManager {
	return &ProjectRoutesManager{
		logger:         logger,
		cfg:            cfg,
		projectService: projectService,
		mw:             mw,
	}
}

func (prm *ProjectRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/projects", prm.FetchAllProjects)
	r.Get("/projects/{id}", prm.FetchProjectByID)

	r.Group(func(r chi.Router) {
		r.Use(prm.mw.UserAuthMiddleware)
		r.Post("/projects", prm.CreateProject)
		r.Post("/projects/{id}", prm.UpdateProject)
		r.Put("/projects/{id}", prm.UpdateProject)
		r.Delete("/projects/{id}", prm.DeleteProject)
		// Wildcard so image paths containing slashes survive routing.
		r.Delete("/projects/{id}/secondary-images/*", prm.DeleteSecondaryImage)
	})
}
