package categories

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
)

func TestCreatedEnvelopeStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	gecho.Created(rec,
		gecho.WithMessage("Category created"),
		gecho.Send(),
	)
	assert.Equal(t, http.StatusCreated, rec.Code)
}
