package api

import (
	"net/http"
	"vitrine_server/api/middleware"
	"vitrine_server/config"
	"vitrine_server/database"
	"vitrine_server/services"
	"vitrine_server/storage"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	chiware "github.com/go-chi/chi/v5/middleware"
)

func App(store storage.Store) chi.Router {
	r := chi.NewRouter()

	// create loggers
	logLevel := gecho.ParseLogLevel(config.GetLogLevel())
	mwLogger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(false), gecho.WithLogLevel(logLevel)))
	standardLogger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(true), gecho.WithLogLevel(logLevel)))

	db := database.GetInstance()
	cfg := config.GetConfig()

	sm := services.NewServiceManager(standardLogger, cfg, db, store)
	mw := middleware.NewMiddleware(cfg, mwLogger, sm.CacheService)

	// Core infra
	r.Use(chiware.RequestID)
	r.Use(chiware.RealIP)
	r.Use(chiware.Recoverer)

	// Limits & security
	r.Use(mw.BodyLimit(10 * 1024 * 1024))
	r.Use(mw.SecurityHeaders())

	// Observability
	r.Use(mw.SetupLoggerMiddleware())
	r.Use(middleware.MetricsMiddleware)

	// CORS must run before auth
	r.Use(mw.SetupCORS().Handler)

	// Throttling
	r.Use(mw.RateLimitMiddleware())

	// Register all routes
	NewRouterManager(standardLogger, cfg, sm, mw).RegisterRoutes(r)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		gecho.Success(w,
			gecho.WithMessage("Welcome to the Vitrine API"),
			gecho.Send(),
		)
	})

	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		gecho.NotFound(w,
			gecho.Send(),
		)
	})

	return r
}
