package products

import (
	"net/http"
	"vitrine_server/handling"
	"vitrine_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// FetchAllProducts handles GET /products with filtering, pagination and sorting
func (prm *ProductRoutesManager) FetchAllProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	opts, err := handling.ParseProductListOptions(r)
	if err != nil {
		prm.logger.Warn("Invalid query parameters", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("Invalid query parameters"),
			gecho.Send(),
		)
		return
	}

	products, meta, err := prm.productService.List(ctx, opts)
	if err != nil {
		handling.HandleError(err, "Failed to fetch products", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"data": structs.NewProductViews(prm.cfg.Storage.PublicBaseURL, products),
			"meta": meta,
		}),
		gecho.Send(),
	)
}

// FetchProductByID handles GET /products/{id}
func (prm *ProductRoutesManager) FetchProductByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := handling.ParseIDParam(chi.URLParam(r, "id"))
	if !ok {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	product, err := prm.productService.GetByID(ctx, id)
	if err != nil {
		handling.HandleError(err, "Product not found", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(structs.NewProductView(prm.cfg.Storage.PublicBaseURL, product)),
		gecho.Send(),
	)
}
