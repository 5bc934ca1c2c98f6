package projects

import (
	"net/http"
	"vitrine_server/handling"
	"vitrine_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// FetchAllProjects handles GET /projects, newest first, optionally capped
func (prm *ProjectRoutesManager) FetchAllProjects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	opts, err := handling.ParseProjectListOptions(r)
	if err != nil {
		prm.logger.Warn("Invalid query parameters", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("Invalid query parameters"),
			gecho.Send(),
		)
		return
	}

	projects, err := prm.projectService.List(ctx, opts)
	if err != nil {
		handling.HandleError(err, "Failed to fetch projects", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(structs.NewProjectViews(prm.cfg.Storage.PublicBaseURL, projects)),
		gecho.Send(),
	)
}

// FetchProjectByID handles GET /projects/{id}
func (prm *ProjectRoutesManager) FetchProjectByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := handling.ParseIDParam(chi.URLParam(r, "id"))
	if !ok {
		gecho.BadRequest(w, gecho.WithMessage("Invalid project id"), gecho.Send())
		return
	}

	project, err := prm.projectService.GetByID(ctx, id)
	if err != nil {
		handling.HandleError(err, "Project not found", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(structs.NewProjectView(prm.cfg.Storage.PublicBaseURL, project)),
		gecho.Send(),
	)
}
