package handling

import (
	"errors"
	"net/http"
	"vitrine_server/lib"

	"github.com/MonkyMars/gecho"
)

// HandleError maps a service error to its response envelope: validation
// errors carry the field map, sentinel errors their status, everything else
// is a 500 with the underlying message.
func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) {
	var validationErr *lib.ValidationError
	if errors.As(err, &validationErr) {
		gecho.BadRequest(w, gecho.WithMessage("Validation failed"), gecho.WithData(validationErr.Fields), gecho.Send())
		return
	}

	switch {
	case errors.Is(err, lib.ErrNotFound):
		gecho.NotFound(w, gecho.WithMessage(msg), gecho.Send())
		return
	case errors.Is(err, lib.ErrConflict):
		gecho.Conflict(w, gecho.WithMessage(msg), gecho.Send())
		return
	case errors.Is(err, lib.ErrInvalidToken), errors.Is(err, lib.ErrExpiredToken):
		gecho.Unauthorized(w, gecho.WithMessage(msg), gecho.Send())
		return
	}

	logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))

	gecho.InternalServerError(w, gecho.WithMessage(msg), gecho.WithData(map[string]string{
		"message": msg,
		"error":   err.Error(),
	}), gecho.Send())
}
