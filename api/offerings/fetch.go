package offerings

import (
	"net/http"
	"vitrine_server/handling"
	"vitrine_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// FetchAllServices handles GET /services with filtering and pagination
func (orm *OfferingRoutesManager) FetchAllServices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	opts, err := handling.ParseServiceListOptions(r)
	if err != nil {
		orm.logger.Warn("Invalid query parameters", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("Invalid query parameters"),
			gecho.Send(),
		)
		return
	}

	services, meta, err := orm.offeringService.List(ctx, opts)
	if err != nil {
		handling.HandleError(err, "Failed to fetch services", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"data": structs.NewServiceViews(orm.cfg.Storage.PublicBaseURL, services),
			"meta": meta,
		}),
		gecho.Send(),
	)
}

// FetchServiceByID handles GET /services/{id}
func (orm *OfferingRoutesManager) FetchServiceByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := handling.ParseIDParam(chi.URLParam(r, "id"))
	if !ok {
		gecho.BadRequest(w, gecho.WithMessage("Invalid service id"), gecho.Send())
		return
	}

	service, err := orm.offeringService.GetByID(ctx, id)
	if err != nil {
		handling.HandleError(err, "Service not found", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(structs.NewServiceView(orm.cfg.Storage.PublicBaseURL, service)),
		gecho.Send(),
	)
}
