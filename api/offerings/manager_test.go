package offerings

import (
	"net/http"
	"testing"
	"vitrine_server/api/middleware"
	"vitrine_server/config"
	"vitrine_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestServiceUpdateAcceptsMethodOverridePost(t *testing.T) {
	cfg := config.GetConfig()
	logger := gecho.NewDefaultLogger()
	mw := middleware.NewMiddleware(cfg, logger, services.NewCacheService(logger, cfg))

	r := chi.NewRouter()
	NewOfferingRoutesManager(logger, cfg, nil, mw).RegisterRoutes(r)

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch} {
		assert.True(t, r.Match(chi.NewRouteContext(), method, "/services/42"), method)
	}
}
