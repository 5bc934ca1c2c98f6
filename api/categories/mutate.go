package categories

import (
	"net/http"
	"vitrine_server/handling"
	"vitrine_server/lib"
	"vitrine_server/services"
	"vitrine_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// categoryPayload is the JSON body of a category write.
type categoryPayload struct {
	Name string  `json:"name" validate:"required,min=1,max=255"`
	Slug *string `json:"slug" validate:"omitempty,min=1,max=255"`
}

// CreateCategory handles POST /categories
func (crm *CategoryRoutesManager) CreateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload, err := lib.ExtractAndValidateBody[categoryPayload](r)
	if err != nil {
		handling.HandleError(err, "Invalid category payload", crm.logger, w)
		return
	}

	category, err := crm.categoryService.Create(ctx, &services.CategoryInput{
		Name: payload.Name,
		Slug: payload.Slug,
	})
	if err != nil {
		handling.HandleError(err, "A category with this name or slug already exists", crm.logger, w)
		return
	}

	gecho.Created(w,
		gecho.WithMessage("Category created"),
		gecho.WithData(structs.NewCategoryView(category)),
		gecho.Send(),
	)
}

// UpdateCategory handles PUT /categories/{id}
func (crm *CategoryRoutesManager) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := handling.ParseIDParam(chi.URLParam(r, "id"))
	if !ok {
		gecho.BadRequest(w, gecho.WithMessage("Invalid category id"), gecho.Send())
		return
	}

	payload, err := lib.ExtractAndValidateBody[categoryPayload](r)
	if err != nil {
		handling.HandleError(err, "Invalid category payload", crm.logger, w)
		return
	}

	category, err := crm.categoryService.Update(ctx, id, &services.CategoryInput{
		Name: payload.Name,
		Slug: payload.Slug,
	})
	if err != nil {
		handling.HandleError(err, "Failed to update category", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Category updated"),
		gecho.WithData(structs.NewCategoryView(category)),
		gecho.Send(),
	)
}

// DeleteCategory handles DELETE /categories/{id}. Deletion is refused while
// projects still reference the category.
func (crm *CategoryRoutesManager) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := handling.ParseIDParam(chi.URLParam(r, "id"))
	if !ok {
		gecho.BadRequest(w, gecho.WithMessage("Invalid category id"), gecho.Send())
		return
	}

	if err := crm.categoryService.Delete(ctx, id); err != nil {
		handling.HandleError(err, "Cannot delete category while projects reference it", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Category deleted"),
		gecho.Send(),
	)
}
