package products

import (
	"net/http"
	"strconv"
	"vitrine_server/api/middleware"
	"vitrine_server/handling"
	"vitrine_server/lib"
	"vitrine_server/services"
	"vitrine_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// multipart parse threshold before spilling to disk
const formMemoryLimit = 8 << 20

// CreateProduct handles POST /products (multipart). Validation happens in
// full before any blob is written.
func (prm *ProductRoutesManager) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := middleware.GetClaimsFromContext(ctx)
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Missing credentials"), gecho.Send())
		return
	}

	if err := lib.ParseForm(r, formMemoryLimit); err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid form payload"), gecho.Send())
		return
	}

	input := &services.ProductCreateInput{CreatedBy: claims.Sub}
	validationErr := lib.NewValidationError()

	name, _ := lib.FormValue(r, "name")
	if name == "" {
		validationErr.Add("name", "is required")
	}
	input.Name = name

	if raw, ok := lib.FormValue(r, "price"); !ok || raw == "" {
		validationErr.Add("price", "is required")
	} else if price, err := strconv.ParseFloat(raw, 64); err != nil || price < 0 {
		validationErr.Add("price", "must be a non-negative number")
	} else {
		input.Price = price
	}

	if desc, ok := lib.FormValue(r, "description"); ok && desc != "" {
		input.Description = &desc
	}

	inStock, err := lib.ParseOptionalBool(r, "en_stock")
	if err != nil {
		validationErr.Add("en_stock", "must be a boolean")
	}
	input.InStock = inStock

	active, err := lib.ParseOptionalBool(r, "active")
	if err != nil {
		validationErr.Add("active", "must be a boolean")
	}
	input.Active = active

	input.PrimaryFile = lib.FormFile(r, "image_principale")
	if msg := lib.ValidateImageFile(input.PrimaryFile, lib.ProductImageExts, prm.cfg.Storage.MaxUploadBytes); msg != "" {
		validationErr.Add("image_principale", msg)
	}

	input.SecondaryFiles = lib.FormFiles(r, "images_secondaires")
	for i, fh := range input.SecondaryFiles {
		if msg := lib.ValidateImageFile(fh, lib.ProductImageExts, prm.cfg.Storage.MaxUploadBytes); msg != "" {
			validationErr.Add("images_secondaires."+strconv.Itoa(i), msg)
		}
	}

	input.ExistingSecondary, _ = lib.FormValues(r, "existing_images_secondaires")

	if !validationErr.Empty() {
		handling.HandleError(validationErr, "Validation failed", prm.logger, w)
		return
	}

	product, err := prm.productService.Create(ctx, input)
	if err != nil {
		handling.HandleError(err, "Failed to create product", prm.logger, w)
		return
	}

	gecho.Created(w,
		gecho.WithMessage("Product created"),
		gecho.WithData(structs.NewProductView(prm.cfg.Storage.PublicBaseURL, product)),
		gecho.Send(),
	)
}

// UpdateProduct handles POST|PUT|PATCH /products/{id} (multipart, partial).
// The retained secondary subset only applies when the submitted flag is "1".
func (prm *ProductRoutesManager) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := handling.ParseIDParam(chi.URLParam(r, "id"))
	if !ok {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	if err := lib.ParseForm(r, formMemoryLimit); err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid form payload"), gecho.Send())
		return
	}

	input := &services.ProductUpdateInput{}
	validationErr := lib.NewValidationError()

	if name, ok := lib.FormValue(r, "name"); ok {
		if name == "" {
			validationErr.Add("name", "must not be empty")
		} else {
			input.Name = &name
		}
	}

	if raw, ok := lib.FormValue(r, "price"); ok && raw != "" {
		if price, err := strconv.ParseFloat(raw, 64); err != nil || price < 0 {
			validationErr.Add("price", "must be a non-negative number")
		} else {
			input.Price = &price
		}
	}

	if desc, ok := lib.FormValue(r, "description"); ok {
		input.Description = &desc
	}

	inStock, err := lib.ParseOptionalBool(r, "en_stock")
	if err != nil {
		validationErr.Add("en_stock", "must be a boolean")
	}
	input.InStock = inStock

	active, err := lib.ParseOptionalBool(r, "active")
	if err != nil {
		validationErr.Add("active", "must be a boolean")
	}
	input.Active = active

	input.PrimaryFile = lib.FormFile(r, "image_principale")
	if msg := lib.ValidateImageFile(input.PrimaryFile, lib.ProductImageExts, prm.cfg.Storage.MaxUploadBytes); msg != "" {
		validationErr.Add("image_principale", msg)
	}

	input.SecondaryFiles = lib.FormFiles(r, "images_secondaires")
	for i, fh := range input.SecondaryFiles {
		if msg := lib.ValidateImageFile(fh, lib.ProductImageExts, prm.cfg.Storage.MaxUploadBytes); msg != "" {
			validationErr.Add("images_secondaires."+strconv.Itoa(i), msg)
		}
	}

	if flag, ok := lib.FormValue(r, "existing_images_secondaires_submitted"); ok {
		submitted, err := lib.ParseFlexibleBool(flag)
		if err != nil {
			validationErr.Add("existing_images_secondaires_submitted", "must be a boolean")
		}
		input.SecondarySubmitted = submitted
	}
	input.ExistingSecondary, _ = lib.FormValues(r, "existing_images_secondaires")

	if !validationErr.Empty() {
		handling.HandleError(validationErr, "Validation failed", prm.logger, w)
		return
	}

	product, err := prm.productService.Update(ctx, id, input)
	if err != nil {
		handling.HandleError(err, "Failed to update product", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product updated"),
		gecho.WithData(structs.NewProductView(prm.cfg.Storage.PublicBaseURL, product)),
		gecho.Send(),
	)
}

// DeleteProduct handles DELETE /products/{id}
func (prm *ProductRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := handling.ParseIDParam(chi.URLParam(r, "id"))
	if !ok {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	if err := prm.productService.Delete(ctx, id); err != nil {
		handling.HandleError(err, "Failed to delete product", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product deleted"),
		gecho.Send(),
	)
}
