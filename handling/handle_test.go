package handling

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"vitrine_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
)

func TestHandleErrorStatusMapping(t *testing.T) {
	logger := gecho.NewDefaultLogger()

	validationErr := lib.NewValidationError()
	validationErr.Add("name", "is required")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation error", validationErr, http.StatusBadRequest},
		{"not found", lib.ErrNotFound, http.StatusNotFound},
		{"conflict", lib.ErrConflict, http.StatusConflict},
		{"invalid token", lib.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", lib.ErrExpiredToken, http.StatusUnauthorized},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(tt.err, "request failed", logger, rec)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandleErrorUnwrapsSentinels(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(errors.New("x"), "failed", gecho.NewDefaultLogger(), rec)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	wrapped := errors.Join(errors.New("context"), lib.ErrConflict)
	HandleError(wrapped, "failed", gecho.NewDefaultLogger(), rec)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
