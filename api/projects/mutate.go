package projects

import (
	"net/http"
	"net/url"
	"strconv"
	"vitrine_server/handling"
	"vitrine_server/lib"
	"vitrine_server/services"
	"vitrine_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

const formMemoryLimit = 8 << 20

// CreateProject handles POST /projects (multipart). The main image is
// required on create.
func (prm *ProjectRoutesManager) CreateProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := lib.ParseForm(r, formMemoryLimit); err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid form payload"), gecho.Send())
		return
	}

	input := &services.ProjectCreateInput{}
	validationErr := lib.NewValidationError()

	title, _ := lib.FormValue(r, "title")
	if title == "" {
		validationErr.Add("title", "is required")
	}
	input.Title = title

	if desc, ok := lib.FormValue(r, "description"); ok && desc != "" {
		input.Description = &desc
	}

	if raw, ok := lib.FormValue(r, "category_id"); !ok || raw == "" {
		validationErr.Add("category_id", "is required")
	} else if categoryID, err := strconv.ParseInt(raw, 10, 64); err != nil || categoryID < 1 {
		validationErr.Add("category_id", "must be a valid id")
	} else {
		input.CategoryID = categoryID
	}

	input.ImageFile = lib.FormFile(r, "image")
	if input.ImageFile == nil {
		validationErr.Add("image", "is required")
	} else if msg := lib.ValidateImageFile(input.ImageFile, lib.ProductImageExts, prm.cfg.Storage.MaxUploadBytes); msg != "" {
		validationErr.Add("image", msg)
	}

	input.SecondaryFiles = lib.FormFiles(r, "secondary_images")
	for i, fh := range input.SecondaryFiles {
		if msg := lib.ValidateImageFile(fh, lib.ProductImageExts, prm.cfg.Storage.MaxUploadBytes); msg != "" {
			validationErr.Add("secondary_images."+strconv.Itoa(i), msg)
		}
	}

	input.ExistingSecondary, _ = lib.FormValues(r, "existing_secondary_images")

	if !validationErr.Empty() {
		handling.HandleError(validationErr, "Validation failed", prm.logger, w)
		return
	}

	project, err := prm.projectService.Create(ctx, input)
	if err != nil {
		handling.HandleError(err, "Failed to create project", prm.logger, w)
		return
	}

	gecho.Created(w,
		gecho.WithMessage("Project created"),
		gecho.WithData(structs.NewProjectView(prm.cfg.Storage.PublicBaseURL, project)),
		gecho.Send(),
	)
}

// UpdateProject handles POST|PUT /projects/{id} (multipart, partial)
func (prm *ProjectRoutesManager) UpdateProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := handling.ParseIDParam(chi.URLParam(r, "id"))
	if !ok {
		gecho.BadRequest(w, gecho.WithMessage("Invalid project id"), gecho.Send())
		return
	}

	if err := lib.ParseForm(r, formMemoryLimit); err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid form payload"), gecho.Send())
		return
	}

	input := &services.ProjectUpdateInput{}
	validationErr := lib.NewValidationError()

	if title, ok := lib.FormValue(r, "title"); ok {
		if title == "" {
			validationErr.Add("title", "must not be empty")
		} else {
			input.Title = &title
		}
	}

	if desc, ok := lib.FormValue(r, "description"); ok {
		input.Description = &desc
	}

	if raw, ok := lib.FormValue(r, "category_id"); ok && raw != "" {
		if categoryID, err := strconv.ParseInt(raw, 10, 64); err != nil || categoryID < 1 {
			validationErr.Add("category_id", "must be a valid id")
		} else {
			input.CategoryID = &categoryID
		}
	}

	input.ImageFile = lib.FormFile(r, "image")
	if msg := lib.ValidateImageFile(input.ImageFile, lib.ProductImageExts, prm.cfg.Storage.MaxUploadBytes); msg != "" {
		validationErr.Add("image", msg)
	}

	input.SecondaryFiles = lib.FormFiles(r, "secondary_images")
	for i, fh := range input.SecondaryFiles {
		if msg := lib.ValidateImageFile(fh, lib.ProductImageExts, prm.cfg.Storage.MaxUploadBytes); msg != "" {
			validationErr.Add("secondary_images."+strconv.Itoa(i), msg)
		}
	}

	if flag, ok := lib.FormValue(r, "existing_secondary_images_submitted"); ok {
		submitted, err := lib.ParseFlexibleBool(flag)
		if err != nil {
			validationErr.Add("existing_secondary_images_submitted", "must be a boolean")
		}
		input.SecondarySubmitted = submitted
	}
	input.ExistingSecondary, _ = lib.FormValues(r, "existing_secondary_images")

	if !validationErr.Empty() {
		handling.HandleError(validationErr, "Validation failed", prm.logger, w)
		return
	}

	project, err := prm.projectService.Update(ctx, id, input)
	if err != nil {
		handling.HandleError(err, "Failed to update project", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Project updated"),
		gecho.WithData(structs.NewProjectView(prm.cfg.Storage.PublicBaseURL, project)),
		gecho.Send(),
	)
}

// DeleteSecondaryImage handles DELETE /projects/{id}/secondary-images/{path}.
// The path arrives URL-encoded and may contain slashes.
func (prm *ProjectRoutesManager) DeleteSecondaryImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := handling.ParseIDParam(chi.URLParam(r, "id"))
	if !ok {
		gecho.BadRequest(w, gecho.WithMessage("Invalid project id"), gecho.Send())
		return
	}

	rawPath := chi.URLParam(r, "*")
	imagePath, err := url.PathUnescape(rawPath)
	if err != nil {
		imagePath = rawPath
	}
	if imagePath == "" {
		gecho.BadRequest(w, gecho.WithMessage("Image path is required"), gecho.Send())
		return
	}

	project, err := prm.projectService.DeleteSecondaryImage(ctx, id, imagePath)
	if err != nil {
		handling.HandleError(err, "Secondary image not found", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Secondary image removed"),
		gecho.WithData(structs.NewProjectView(prm.cfg.Storage.PublicBaseURL, project)),
		gecho.Send(),
	)
}

// DeleteProject handles DELETE /projects/{id}
func (prm *ProjectRoutesManager) DeleteProject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := handling.ParseIDParam(chi.URLParam(r, "id"))
	if !ok {
		gecho.BadRequest(w, gecho.WithMessage("Invalid project id"), gecho.Send())
		return
	}

	if err := prm.projectService.Delete(ctx, id); err != nil {
		handling.HandleError(err, "Failed to delete project", prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Project deleted"),
		gecho.Send(),
	)
}
