package categories

import (
	"net/http"
	"vitrine_server/handling"
	"vitrine_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// FetchAllCategories handles GET /categories with search and pagination
func (crm *CategoryRoutesManager) FetchAllCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	opts, err := handling.ParseCategoryListOptions(r)
	if err != nil {
		crm.logger.Warn("Invalid query parameters", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("Invalid query parameters"),
			gecho.Send(),
		)
		return
	}

	categories, meta, err := crm.categoryService.List(ctx, opts)
	if err != nil {
		handling.HandleError(err, "Failed to fetch categories", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"data": structs.NewCategoryViews(categories),
			"meta": meta,
		}),
		gecho.Send(),
	)
}

// FetchCategoryByID handles GET /categories/{id}
func (crm *CategoryRoutesManager) FetchCategoryByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := handling.ParseIDParam(chi.URLParam(r, "id"))
	if !ok {
		gecho.BadRequest(w, gecho.WithMessage("Invalid category id"), gecho.Send())
		return
	}

	category, err := crm.categoryService.GetByID(ctx, id)
	if err != nil {
		handling.HandleError(err, "Category not found", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(structs.NewCategoryView(category)),
		gecho.Send(),
	)
}
