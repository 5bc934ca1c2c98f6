package offerings

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"vitrine_server/handling"
	"vitrine_server/lib"
	"vitrine_server/services"
	"vitrine_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

const formMemoryLimit = 8 << 20

// parseItemTitles reads create-time items: repeated plain values, or a single
// JSON array of strings.
func parseItemTitles(r *http.Request) []string {
	values, ok := lib.FormValues(r, "service_items")
	if !ok {
		return nil
	}

	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var decoded []string
		if err := json.Unmarshal([]byte(values[0]), &decoded); err == nil {
			values = decoded
		}
	}

	titles := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			titles = append(titles, trimmed)
		}
	}
	return titles
}

// parseItemInputs reads update-time items: a JSON array of {id?,title,_delete?}
// objects, or repeated plain titles treated as id-less creates.
func parseItemInputs(r *http.Request) ([]services.ServiceItemInput, bool, error) {
	values, ok := lib.FormValues(r, "service_items")
	if !ok {
		return nil, false, nil
	}

	if len(values) == 1 && strings.HasPrefix(strings.TrimSpace(values[0]), "[") {
		var items []services.ServiceItemInput
		if err := json.Unmarshal([]byte(values[0]), &items); err != nil {
			return nil, true, err
		}
		return items, true, nil
	}

	items := make([]services.ServiceItemInput, 0, len(values))
	for _, v := range values {
		items = append(items, services.ServiceItemInput{Title: strings.TrimSpace(v)})
	}
	return items, true, nil
}

// CreateService handles POST /services (multipart)
func (orm *OfferingRoutesManager) CreateService(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := lib.ParseForm(r, formMemoryLimit); err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid form payload"), gecho.Send())
		return
	}

	input := &services.OfferingCreateInput{}
	validationErr := lib.NewValidationError()

	name, _ := lib.FormValue(r, "name")
	if name == "" {
		validationErr.Add("name", "is required")
	}
	input.Name = name

	description, _ := lib.FormValue(r, "description")
	if description == "" {
		validationErr.Add("description", "is required")
	}
	input.Description = description

	price, err := lib.ParseOptionalFloat(r, "price")
	if err != nil || (price != nil && *price < 0) {
		validationErr.Add("price", "must be a non-negative number")
	}
	input.Price = price

	if raw, ok := lib.FormValue(r, "duration"); ok && raw != "" {
		if duration, err := strconv.Atoi(raw); err != nil || duration < 1 {
			validationErr.Add("duration", "must be a positive number of minutes")
		} else {
			input.Duration = &duration
		}
	}

	isActive, err := lib.ParseOptionalBool(r, "is_active")
	if err != nil {
		validationErr.Add("is_active", "must be a boolean")
	}
	input.IsActive = isActive

	input.ImageFile = lib.FormFile(r, "image")
	if msg := lib.ValidateImageFile(input.ImageFile, lib.ServiceImageExts, orm.cfg.Storage.MaxUploadBytes); msg != "" {
		validationErr.Add("image", msg)
	}

	input.Items = parseItemTitles(r)

	if !validationErr.Empty() {
		handling.HandleError(validationErr, "Validation failed", orm.logger, w)
		return
	}

	service, err := orm.offeringService.Create(ctx, input)
	if err != nil {
		handling.HandleError(err, "Failed to create service", orm.logger, w)
		return
	}

	gecho.Created(w,
		gecho.WithMessage("Service created"),
		gecho.WithData(structs.NewServiceView(orm.cfg.Storage.PublicBaseURL, service)),
		gecho.Send(),
	)
}

// UpdateService handles PUT|PATCH /services/{id} (multipart, partial). Items
// are reconciled against the existing rows when submitted.
func (orm *OfferingRoutesManager) UpdateService(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := handling.ParseIDParam(chi.URLParam(r, "id"))
	if !ok {
		gecho.BadRequest(w, gecho.WithMessage("Invalid service id"), gecho.Send())
		return
	}

	if err := lib.ParseForm(r, formMemoryLimit); err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid form payload"), gecho.Send())
		return
	}

	input := &services.OfferingUpdateInput{}
	validationErr := lib.NewValidationError()

	if name, ok := lib.FormValue(r, "name"); ok {
		if name == "" {
			validationErr.Add("name", "must not be empty")
		} else {
			input.Name = &name
		}
	}

	if desc, ok := lib.FormValue(r, "description"); ok {
		input.Description = &desc
	}

	price, err := lib.ParseOptionalFloat(r, "price")
	if err != nil || (price != nil && *price < 0) {
		validationErr.Add("price", "must be a non-negative number")
	}
	input.Price = price

	if raw, ok := lib.FormValue(r, "duration"); ok && raw != "" {
		if duration, err := strconv.Atoi(raw); err != nil || duration < 1 {
			validationErr.Add("duration", "must be a positive number of minutes")
		} else {
			input.Duration = &duration
		}
	}

	isActive, err := lib.ParseOptionalBool(r, "is_active")
	if err != nil {
		validationErr.Add("is_active", "must be a boolean")
	}
	input.IsActive = isActive

	input.ImageFile = lib.FormFile(r, "image")
	if msg := lib.ValidateImageFile(input.ImageFile, lib.ServiceImageExts, orm.cfg.Storage.MaxUploadBytes); msg != "" {
		validationErr.Add("image", msg)
	}

	items, submitted, err := parseItemInputs(r)
	if err != nil {
		validationErr.Add("service_items", "must be a valid item list")
	}
	input.Items = items
	input.ItemsSubmitted = submitted

	if !validationErr.Empty() {
		handling.HandleError(validationErr, "Validation failed", orm.logger, w)
		return
	}

	service, err := orm.offeringService.Update(ctx, id, input)
	if err != nil {
		handling.HandleError(err, "Failed to update service", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Service updated"),
		gecho.WithData(structs.NewServiceView(orm.cfg.Storage.PublicBaseURL, service)),
		gecho.Send(),
	)
}

// DeleteService handles DELETE /services/{id}
func (orm *OfferingRoutesManager) DeleteService(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := handling.ParseIDParam(chi.URLParam(r, "id"))
	if !ok {
		gecho.BadRequest(w, gecho.WithMessage("Invalid service id"), gecho.Send())
		return
	}

	if err := orm.offeringService.Delete(ctx, id); err != nil {
		handling.HandleError(err, "Failed to delete service", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Service deleted"),
		gecho.Send(),
	)
}
